package chat

import (
	"net/http"

	"donmario/config"
	"donmario/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	hub      *realtime.Hub
	cfg      *config.Config
	upgrader websocket.Upgrader
}

func New(hub *realtime.Hub, cfg *config.Config) Handler {
	return Handler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/chat", handler.Connect)
}

// Connect upgrades the request to a websocket and joins the chat room.
func (handler *Handler) Connect(writer http.ResponseWriter, request *http.Request) {
	conn, err := handler.upgrader.Upgrade(writer, request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade chat connection")

		return
	}

	client := realtime.NewClient(handler.hub, conn, handler.cfg.Websocket.SendBufferSize)
	handler.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
