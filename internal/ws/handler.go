package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Displays are unattended devices on school networks; all origins
		// are accepted.
		return true
	},
}

// DisplayHandler upgrades a display device's connection and holds it open
// until the device goes away.
func DisplayHandler(registry *Registry, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		schoolID := c.Param("school_id")
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := newDisplayClient(registry, conn, schoolID)
		registry.Connect(client)
		log.Info("display connected", zap.String("school_id", schoolID))

		go client.writePump()
		client.readPump()
	}
}
