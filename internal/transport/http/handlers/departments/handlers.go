package departmentshandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrpro/internal/domain/departments"
	"hrpro/internal/platform/events"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const (
	MsgNotFound        = "Departamento não encontrado"
	MsgManagerNotFound = "Gerente não encontrado"
	MsgManagerUpdated  = "Gerente atualizado com sucesso"
)

type Handler struct {
	Service *departments.Service
	Audit   shared.Auditor
}

func NewHandler(service *departments.Service, audit shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Route("/{departmentID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Get("/employees", h.handleMembers)
			r.Put("/manager", h.handleSetManager)
		})
	})
}

// managerRequest distinguishes an absent managerId from an explicit null.
type managerRequest struct {
	ManagerID json.RawMessage `json:"managerId" validate:"required"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Internal(w, r, "Erro ao obter departamentos", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	d, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Erro ao obter departamento", err)
		return
	}
	api.OK(w, d)
}

func (h *Handler) handleMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	members, err := h.Service.Members(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Erro ao obter colaboradores do departamento", err)
		return
	}
	api.OK(w, members)
}

func (h *Handler) handleSetManager(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "departmentID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	var req managerRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}
	var managerID shared.ID
	if err := json.Unmarshal(req.ManagerID, &managerID); err != nil {
		api.FailFields(w, http.StatusBadRequest, api.MsgInvalidFields, "managerId",
			[]api.FieldIssue{{Field: "managerId", Reason: "valor inválido"}})
		return
	}
	var manager *int64
	if managerID != 0 {
		v := managerID.Int64()
		manager = &v
	}

	d, err := h.Service.AssignManager(r.Context(), id, manager)
	if err != nil {
		h.fail(w, r, "Erro ao atualizar gerente", err)
		return
	}
	shared.RecordAudit(r, h.Audit, events.DepartmentManagerChange, "department", strconv.FormatInt(id, 10), nil, d)
	api.OK(w, d)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, internalMsg string, err error) {
	switch {
	case errors.Is(err, departments.ErrNotFound):
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
	case errors.Is(err, departments.ErrManagerNotFound):
		api.Fail(w, http.StatusBadRequest, MsgManagerNotFound, "")
	default:
		api.Internal(w, r, internalMsg, err)
	}
}
