package trainingshandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrpro/internal/domain/trainings"
	"hrpro/internal/platform/events"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const (
	MsgNotFound         = "Formação não encontrada"
	MsgEmployeeNotFound = "Colaborador não encontrado"
	MsgNotEnrolled      = "Colaborador não inscrito nesta formação"
	MsgEnrolled         = "Colaborador inscrito com sucesso"
	MsgAlreadyEnrolled  = "Colaborador já inscrito nesta formação"
	MsgRemoved          = "Participante removido com sucesso"
)

type Handler struct {
	Service *trainings.Service
	Audit   shared.Auditor
}

func NewHandler(service *trainings.Service, audit shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trainings", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Route("/{trainingID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Post("/enroll", h.handleEnroll)
			r.Delete("/participants/{employeeID}", h.handleRemoveParticipant)
		})
	})
}

type enrollRequest struct {
	EmployeeID shared.ID `json:"employeeId" validate:"required"`
}

type participationResponse struct {
	Message  string            `json:"message"`
	Training trainings.Program `json:"training"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Internal(w, r, "Erro ao obter formações", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "trainingID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	p, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Erro ao obter formação", err)
		return
	}
	api.OK(w, p)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "trainingID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	var req enrollRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}

	p, added, err := h.Service.Enroll(r.Context(), id, req.EmployeeID.Int64())
	if err != nil {
		h.fail(w, r, "Erro ao inscrever colaborador", err)
		return
	}
	msg := MsgAlreadyEnrolled
	if added {
		msg = MsgEnrolled
		shared.RecordAudit(r, h.Audit, events.TrainingEnrolled, "training", p.ID, nil,
			map[string]string{"employeeId": strconv.FormatInt(req.EmployeeID.Int64(), 10)})
	}
	api.OK(w, participationResponse{Message: msg, Training: p})
}

func (h *Handler) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "trainingID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	employeeID, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotEnrolled, "")
		return
	}

	p, err := h.Service.RemoveParticipant(r.Context(), id, employeeID)
	if err != nil {
		h.fail(w, r, "Erro ao remover participante", err)
		return
	}
	shared.RecordAudit(r, h.Audit, events.TrainingUnenrolled, "training", p.ID,
		map[string]string{"employeeId": strconv.FormatInt(employeeID, 10)}, nil)
	api.OK(w, participationResponse{Message: MsgRemoved, Training: p})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, internalMsg string, err error) {
	switch {
	case errors.Is(err, trainings.ErrNotFound):
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
	case errors.Is(err, trainings.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, MsgEmployeeNotFound, "")
	case errors.Is(err, trainings.ErrNotEnrolled):
		api.Fail(w, http.StatusNotFound, MsgNotEnrolled, "")
	default:
		api.Internal(w, r, internalMsg, err)
	}
}
