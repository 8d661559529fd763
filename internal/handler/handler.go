package handler

import (
	"context"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/service"
)

// Pinger is the readiness dependency (satisfied by the pg storage).
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth   service.AuthService
	boards service.BoardService
	pins   service.PinService
	health Pinger
	cfg    *config.Config
}

func New(auth service.AuthService, boards service.BoardService, pins service.PinService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{auth, boards, pins, health, cfg}
}
