package websocket

import (
	"sort"
	"strings"
)

// RoomKey строит детерминированный ключ личной комнаты: имена участников,
// отсортированные лексикографически и соединенные подчеркиванием. Обе
// стороны получают один и тот же ключ независимо от того, кто инициатор.
func RoomKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}
