package handlers

import (
	"net/http"

	gws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"gallerio/internal/websocket"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The gallery is a LAN-local, unauthenticated service.
		return true
	},
}

type EventsHandler struct {
	hub *websocket.Hub
}

func NewEventsHandler(hub *websocket.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Subscribe upgrades the connection and streams inventory change events.
func (h *EventsHandler) Subscribe(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := websocket.NewClient(h.hub, conn)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
	return nil
}
