package dto

// PublicMessagePayload — данные входящего message_send
type PublicMessagePayload struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// PublicMessageEvent — исходящее message_receive
type PublicMessageEvent struct {
	User    string `json:"user"`
	Message string `json:"message"`
	Time    string `json:"time"`
}

// JoinPrivatePayload — данные join_private
type JoinPrivatePayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// PrivateMessagePayload — данные входящего private_send
type PrivateMessagePayload struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
}

// PrivateMessageEvent — исходящее private_receive
type PrivateMessageEvent struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Message  string `json:"message"`
	Time     string `json:"time"`
}
