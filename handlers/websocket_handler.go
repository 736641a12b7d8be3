package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Dosada05/club-management/schedule"
	"github.com/Dosada05/club-management/services"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin,
		// чтобы разрешать подключения только с доверенных доменов.
		return true
	},
}

type WebSocketHandler struct {
	hub          *schedule.Hub
	courtService services.CourtService
}

func NewWebSocketHandler(hub *schedule.Hub, courtService services.CourtService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		courtService: courtService,
	}
}

// ServeWs подписывает клиента на события слотов конкретной площадки.
// Клиент подключается к /ws/courts/{courtID}.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	courtID, err := getIDFromURL(r, "courtID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Проверяем, что площадка существует, прежде чем открывать комнату.
	if _, err := h.courtService.GetCourtByID(r.Context(), courtID); err != nil {
		if errors.Is(err, services.ErrCourtNotFound) {
			notFoundResponse(w, r)
			return
		}
		serverErrorResponse(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection for court %d: %v", courtID, err)
		return
	}

	roomID := schedule.CourtRoom(courtID)

	client := &schedule.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()

	log.Printf("Client registered for room %s.", roomID)
}
