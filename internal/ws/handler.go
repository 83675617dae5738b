package ws

import (
	"net/http"
	"strings"

	"todo_api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// HandleWS upgrades the request and subscribes it to the events of the
// username given by the "username" query parameter or the X-Username
// header, falling back to defaultUsername.
func HandleWS(hub *Hub, defaultUsername, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		username := strings.TrimSpace(c.Query("username"))
		if username == "" {
			username = strings.TrimSpace(c.GetHeader("X-Username"))
		}
		if username == "" {
			username = defaultUsername
		}
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "username required"}})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := NewClient(username, conn, hub)
		go client.Run()
	}
}
