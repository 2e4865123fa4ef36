package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/chat-lite/internal/database"
	"github.com/thereayou/chat-lite/internal/middleware"
)

type HTTPChatHandler struct {
	db *database.Database
}

func NewHTTPChatHandler(db *database.Database) *HTTPChatHandler {
	return &HTTPChatHandler{db: db}
}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "static/files"
	}
	return dir
}

// GetPublicHistory возвращает историю общего чата
func (h *HTTPChatHandler) GetPublicHistory(c *gin.Context) {
	messages, err := h.db.ListPublicMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i, msg := range messages {
		result[i] = gin.H{
			"user":    msg.Username,
			"message": msg.Message,
			"time":    msg.Time,
		}
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// GetConversation помечает сообщения друга прочитанными и возвращает переписку
func (h *HTTPChatHandler) GetConversation(c *gin.Context) {
	name := c.MustGet(middleware.UserNameKey).(string)
	friend := c.Param("friend")

	if err := h.db.MarkConversationRead(friend, name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark conversation read"})
		return
	}

	messages, err := h.db.ListPrivateMessages(name, friend)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get messages"})
		return
	}

	result := make([]gin.H, len(messages))
	for i, msg := range messages {
		result[i] = gin.H{
			"sender":   msg.Sender,
			"receiver": msg.Receiver,
			"message":  msg.Message,
			"file":     msg.File,
			"time":     msg.Time,
			"read":     msg.Read,
		}
	}

	c.JSON(http.StatusOK, gin.H{"friend": friend, "messages": result})
}

// UploadFile сохраняет файл и добавляет сообщение с пустым телом и ссылкой
// на файл. Файловые сообщения не пушатся по ws — получатель видит их после
// редиректа на переписку.
func (h *HTTPChatHandler) UploadFile(c *gin.Context) {
	name := c.MustGet(middleware.UserNameKey).(string)
	friend := c.Param("friend")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	stored := time.Now().Format("20060102150405") + "_" + filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(uploadDir(), stored)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	stamp := time.Now().Format(timeLayout)
	if _, err := h.db.AppendPrivateMessage(name, friend, "", stored, stamp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save message"})
		return
	}

	c.Redirect(http.StatusSeeOther, "/api/v1/chats/"+friend)
}
