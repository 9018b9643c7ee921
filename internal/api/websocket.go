package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"launchkit/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     allowedOrigin,
}

const writeWait = 10 * time.Second

// PreviewStreamer renders definitions sent over a WebSocket
type PreviewStreamer struct{}

// NewPreviewStreamer creates a new preview streamer
func NewPreviewStreamer() *PreviewStreamer {
	return &PreviewStreamer{}
}

// HandlePreview answers every text message with the rendered plist, or an
// "Error: " line when the definition does not build.
func (ps *PreviewStreamer) HandlePreview(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxDefinitionSize)
	logger.Info("preview connected", "remote", r.RemoteAddr)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("preview client disconnected", "remote", r.RemoteAddr, "error", err)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply, err := render(data)
		if err != nil {
			logger.Debug("preview render failed", "error", err)
			reply = []byte("Error: " + err.Error())
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}
