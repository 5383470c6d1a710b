package websocket

//go:generate go run go.uber.org/mock/mockgen -source=./websocket.go -destination=./mocks/websocket_mock.go -package=mocks

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const (
	keyUserID = "user_id"
	keyAdmin  = "admin"
)

// Envelope is the frame pushed to sockets.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Hub tracks live sockets per user and pushes server events to them.
// Sockets are push-only; clients write through the REST API.
type Hub interface {
	Serve(w http.ResponseWriter, r *http.Request, userID string, admin bool) error
	SendToUser(userID string, envelope Envelope) error
	SendToAdmins(envelope Envelope) error
	Connections() int
	Close() error
}

type hubImpl struct {
	melody *melody.Melody
}

func New() Hub {
	m := melody.New()

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(keyUserID)
		log.Debug().Interface("user_id", userID).Msg("websocket connected")
	})

	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(keyUserID)
		log.Debug().Interface("user_id", userID).Msg("websocket disconnected")
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Warn().Err(err).Msg("websocket error")
	})

	return &hubImpl{melody: m}
}

func (h *hubImpl) Serve(w http.ResponseWriter, r *http.Request, userID string, admin bool) error {
	err := h.melody.HandleRequestWithKeys(w, r, map[string]any{
		keyUserID: userID,
		keyAdmin:  admin,
	})
	if err != nil {
		return fmt.Errorf("failed to upgrade websocket: %w", err)
	}

	return nil
}

func (h *hubImpl) SendToUser(userID string, envelope Envelope) error {
	return h.broadcast(envelope, func(s *melody.Session) bool {
		id, _ := s.Get(keyUserID)

		return id == userID
	})
}

func (h *hubImpl) SendToAdmins(envelope Envelope) error {
	return h.broadcast(envelope, func(s *melody.Session) bool {
		admin, _ := s.Get(keyAdmin)
		isAdmin, _ := admin.(bool)

		return isAdmin
	})
}

func (h *hubImpl) Connections() int {
	return h.melody.Len()
}

func (h *hubImpl) Close() error {
	if err := h.melody.Close(); err != nil {
		return fmt.Errorf("failed to close websocket hub: %w", err)
	}

	return nil
}

func (h *hubImpl) broadcast(envelope Envelope, filter func(*melody.Session) bool) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to encode websocket frame: %w", err)
	}

	if err := h.melody.BroadcastFilter(payload, filter); err != nil {
		return fmt.Errorf("failed to push websocket frame: %w", err)
	}

	return nil
}
