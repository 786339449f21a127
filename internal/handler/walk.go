package handler

import (
	"github.com/deppfellow/dogwalk/internal/model"
	"github.com/deppfellow/dogwalk/internal/server"
	"github.com/deppfellow/dogwalk/internal/service"
	"github.com/deppfellow/dogwalk/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type WalkHandler struct {
	Handler
	walks *service.WalkService
}

func NewWalkHandler(s *server.Server, walks *service.WalkService) *WalkHandler {
	return &WalkHandler{Handler: NewHandler(s), walks: walks}
}

func (h *WalkHandler) ListOpenRequests(c echo.Context, _ *model.NoParams) ([]model.OpenWalkRequest, error) {
	requests, err := h.walks.ListOpen(c.Request().Context())
	if err != nil {
		return nil, sqlerr.HandleError(err, "Failed to fetch walk requests")
	}
	return requests, nil
}

// WalkerSummaries reports rating and completed-walk aggregates for
// every walker, rated or not.
func (h *WalkHandler) WalkerSummaries(c echo.Context, _ *model.NoParams) ([]model.WalkerSummary, error) {
	summaries, err := h.walks.WalkerSummaries(c.Request().Context())
	if err != nil {
		return nil, sqlerr.HandleError(err, "Failed to fetch walker summary")
	}
	return summaries, nil
}
