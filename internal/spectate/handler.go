package spectate

import (
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Handler serves the spectator endpoints:
//
//	GET /ws        websocket stream of frames
//	GET /snapshot  latest frame as JSON
type Handler struct {
	hub      *Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

// NewHandler creates the HTTP handler for a hub. A nil logger logs to
// stderr.
func NewHandler(hub *Hub, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "spectate",
		})
	}

	h := &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		mux: http.NewServeMux(),
	}
	h.mux.HandleFunc("/ws", h.handleWS)
	h.mux.HandleFunc("/snapshot", h.handleSnapshot)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := h.hub.Latest()
	if data == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (h *Handler) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)
	h.logger.Info("spectator joined", "remote", r.RemoteAddr, "spectators", h.hub.Count())

	// Spectators never send anything useful; reading detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case data := <-sub.Frames():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Info("spectator dropped", "remote", r.RemoteAddr, "error", err)
				return
			}
		case <-closed:
			h.logger.Info("spectator left", "remote", r.RemoteAddr)
			return
		case <-sub.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "simulation stopped")
			conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}
