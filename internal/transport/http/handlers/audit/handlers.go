package audithandler

import (
	"context"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"hrpro/internal/domain/audit"
	"hrpro/internal/transport/http/api"
)

type Lister interface {
	List(ctx context.Context, filter audit.Filter, limit int) ([]audit.Entry, error)
}

type Handler struct {
	Service Lister
}

func NewHandler(service Lister) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/events", h.handleListEvents)
		r.Get("/events/export", h.handleExportEvents)
	})
}

func filterFrom(r *http.Request) (audit.Filter, int) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	return audit.Filter{
		Action:     q.Get("action"),
		EntityType: q.Get("entityType"),
		EntityID:   q.Get("entityId"),
	}, limit
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	filter, limit := filterFrom(r)
	entries, err := h.Service.List(r.Context(), filter, limit)
	if err != nil {
		api.Internal(w, r, "Erro ao obter registos de auditoria", err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(entries)))
	api.OK(w, entries)
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	filter, limit := filterFrom(r)
	entries, err := h.Service.List(r.Context(), filter, limit)
	if err != nil {
		api.Internal(w, r, "Erro ao exportar registos de auditoria", err)
		return
	}

	logger := zerolog.Ctx(r.Context())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		logger.Warn().Err(err).Msg("audit export header failed")
	}
	for _, e := range entries {
		if err := writer.Write([]string{e.ID, e.Action, e.EntityType, e.EntityID, e.RequestID, e.IP, e.CreatedAt.UTC().Format(time.RFC3339)}); err != nil {
			logger.Warn().Err(err).Msg("audit export row failed")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Warn().Err(err).Msg("audit export flush failed")
	}
}
