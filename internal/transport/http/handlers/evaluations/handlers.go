package evaluationshandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrpro/internal/domain/evaluations"
	"hrpro/internal/platform/events"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const (
	MsgEmployeeNotFound = "Colaborador não encontrado"
	MsgReviewerNotFound = "Avaliador não encontrado"
	MsgInvalidScore     = "Pontuação deve estar entre 0 e 5"
	MsgCreated          = "Avaliação criada com sucesso"
)

type Handler struct {
	Service *evaluations.Service
	Audit   shared.Auditor
}

func NewHandler(service *evaluations.Service, audit shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/evaluations", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/employee/{employeeID}", h.handleListByEmployee)
	})
}

// createRequest accepts a type for compatibility; the stored type is always
// derived from the reviewer.
type createRequest struct {
	EmployeeID     shared.ID `json:"employeeId" validate:"required"`
	ReviewerID     shared.ID `json:"reviewerId" validate:"required"`
	Date           string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Score          *float64  `json:"score" validate:"required,gte=0,lte=5"`
	Comments       string    `json:"comments"`
	SelfEvaluation string    `json:"selfEvaluation"`
	Type           string    `json:"type"`
}

func (c *createRequest) Normalize() {
	c.Date = strings.TrimSpace(c.Date)
	c.Comments = strings.TrimSpace(c.Comments)
	c.SelfEvaluation = strings.TrimSpace(c.SelfEvaluation)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Internal(w, r, "Erro ao obter avaliações", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleListByEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgEmployeeNotFound, "")
		return
	}
	list, err := h.Service.ListByEmployee(r.Context(), id)
	if err != nil {
		api.Internal(w, r, "Erro ao obter avaliações do colaborador", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}
	var date time.Time
	if req.Date != "" {
		date, _ = shared.ParseDate(req.Date)
	}

	in := evaluations.NewEvaluation{
		EmployeeID:     req.EmployeeID.Int64(),
		ReviewerID:     req.ReviewerID.Int64(),
		Date:           date,
		Score:          *req.Score,
		Comments:       req.Comments,
		SelfEvaluation: req.SelfEvaluation,
	}
	id, err := h.Service.Create(r.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, evaluations.ErrEmployeeNotFound):
			api.Fail(w, http.StatusNotFound, MsgEmployeeNotFound, "")
		case errors.Is(err, evaluations.ErrReviewerNotFound):
			api.Fail(w, http.StatusNotFound, MsgReviewerNotFound, "")
		case errors.Is(err, evaluations.ErrInvalidScore):
			api.Fail(w, http.StatusBadRequest, MsgInvalidScore, "")
		default:
			api.Internal(w, r, "Erro ao criar avaliação", err)
		}
		return
	}

	key := strconv.FormatInt(id, 10)
	shared.RecordAudit(r, h.Audit, events.EvaluationCreated, "evaluation", key, nil, map[string]any{
		"employeeId": strconv.FormatInt(in.EmployeeID, 10),
		"reviewerId": strconv.FormatInt(in.ReviewerID, 10),
		"score":      in.Score,
		"type":       in.Type(),
	})
	api.Created(w, MsgCreated, key)
}
