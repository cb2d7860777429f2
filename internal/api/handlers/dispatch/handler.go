package dispatch

import (
	"context"
	"fmt"
	"net/http"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/drivedesk/notifier/internal/api/respond"
	"github.com/drivedesk/notifier/internal/service/dispatch"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/dispatch/mock.go -package=mocks
type dispatchEngine interface {
	ProcessPending(ctx context.Context) (dispatch.Stats, error)
	RetryFailed(ctx context.Context) (dispatch.Stats, error)
}

// Handler exposes manual dispatch triggers, used by administrators and by
// external cron when the built-in loop is disabled.
type Handler struct {
	engine dispatchEngine
}

// NewHandler creates a dispatch handler.
func NewHandler(engine dispatchEngine) *Handler {
	return &Handler{engine: engine}
}

// Run handles HTTP POST requests forcing an immediate dispatch pass.
func (h *Handler) Run(c *ginext.Context) {
	stats, err := h.engine.ProcessPending(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("manual dispatch pass failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, stats)
}

// Retry handles HTTP POST requests forcing an immediate retry sweep.
func (h *Handler) Retry(c *ginext.Context) {
	stats, err := h.engine.RetryFailed(c.Request.Context())
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("manual retry sweep failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, stats)
}
