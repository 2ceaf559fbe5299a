package employeeshandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrpro/internal/domain/employees"
	"hrpro/internal/platform/events"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const (
	MsgNotFound        = "Colaborador não encontrado"
	MsgNIFExists       = "NIF já existe na base de dados"
	MsgEmailExists     = "Email já existe na base de dados"
	MsgInvalidDept     = "Departamento não encontrado"
	MsgCreated         = "Colaborador criado com sucesso"
	MsgUpdated         = "Colaborador atualizado com sucesso"
	MsgDeleted         = "Colaborador eliminado com sucesso"
	msgListFailed      = "Erro ao obter colaboradores"
	msgGetFailed       = "Erro ao obter colaborador"
	msgCreateFailed    = "Erro ao criar colaborador"
	msgUpdateFailed    = "Erro ao atualizar colaborador"
	msgDeleteFailed    = "Erro ao eliminar colaborador"
	msgExportFailed    = "Erro ao exportar colaboradores"
	msgStatementFailed = "Erro ao gerar declaração"
)

type Handler struct {
	Service *employees.Service
	Audit   shared.Auditor
	Now     func() time.Time
}

func NewHandler(service *employees.Service, audit shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: audit, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/export.xlsx", h.handleExport)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
			r.Get("/statement.pdf", h.handleStatement)
		})
	})
}

// profileFields are the writable profile fields shared by create and update.
// Clients may send fullName and a one-line address instead of the parts, and
// a department name instead of its id.
type profileFields struct {
	FullName     string    `json:"fullName"`
	FirstName    string    `json:"firstName" validate:"required"`
	LastName     string    `json:"lastName" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"required"`
	Role         string    `json:"role" validate:"required"`
	DepartmentID shared.ID `json:"departmentId" validate:"required_without=Department"`
	Department   string    `json:"department"`
	Address      string    `json:"address"`
	Street       string    `json:"street"`
	Locality     string    `json:"locality"`
	PostalCode   string    `json:"postalCode"`
}

func (p *profileFields) Normalize() {
	for _, f := range []*string{&p.FullName, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Role,
		&p.Department, &p.Address, &p.Street, &p.Locality, &p.PostalCode} {
		*f = strings.TrimSpace(*f)
	}
	if p.FirstName == "" && p.LastName == "" && p.FullName != "" {
		p.FirstName, p.LastName = employees.SplitFullName(p.FullName)
	}
	if p.Street == "" && p.Locality == "" && p.PostalCode == "" && p.Address != "" {
		p.Street, p.Locality, p.PostalCode = employees.SplitAddress(p.Address)
	}
}

// auditChange is the audit payload for employee writes. Identity, contact
// and address values are reduced to the names of the fields that were set.
type auditChange struct {
	Fields       []string `json:"fields"`
	Role         string   `json:"role,omitempty"`
	DepartmentID int64    `json:"departmentId,omitempty"`
	Department   string   `json:"department,omitempty"`
}

func (p profileFields) auditChange() auditChange {
	set := []struct {
		name  string
		value string
	}{
		{"firstName", p.FirstName},
		{"lastName", p.LastName},
		{"email", p.Email},
		{"phone", p.Phone},
		{"role", p.Role},
		{"department", p.Department},
		{"street", p.Street},
		{"locality", p.Locality},
		{"postalCode", p.PostalCode},
	}
	c := auditChange{
		Fields:       make([]string, 0, len(set)+1),
		Role:         p.Role,
		DepartmentID: p.DepartmentID.Int64(),
		Department:   p.Department,
	}
	for _, f := range set {
		if f.value != "" {
			c.Fields = append(c.Fields, f.name)
		}
	}
	if p.DepartmentID != 0 {
		c.Fields = append(c.Fields, "departmentId")
	}
	return c
}

type createRequest struct {
	profileFields
	NIF             string   `json:"nif" validate:"required"`
	BirthDate       string   `json:"birthDate" validate:"required,datetime=2006-01-02"`
	AdmissionDate   string   `json:"admissionDate" validate:"omitempty,datetime=2006-01-02"`
	BaseSalaryGross *float64 `json:"baseSalaryGross" validate:"omitempty,gte=0"`
}

func (c createRequest) auditChange() auditChange {
	ac := c.profileFields.auditChange()
	ac.Fields = append(ac.Fields, "nif", "birthDate")
	if c.AdmissionDate != "" {
		ac.Fields = append(ac.Fields, "admissionDate")
	}
	if c.BaseSalaryGross != nil {
		ac.Fields = append(ac.Fields, "baseSalaryGross")
	}
	return ac
}

func (c *createRequest) Normalize() {
	c.profileFields.Normalize()
	c.NIF = strings.TrimSpace(c.NIF)
	c.BirthDate = strings.TrimSpace(c.BirthDate)
	c.AdmissionDate = strings.TrimSpace(c.AdmissionDate)
}

type updateRequest struct {
	profileFields
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Internal(w, r, msgListFailed, err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	detail, err := h.Service.Get(r.Context(), id, parseSections(r.URL.Query().Get("sections"))...)
	if err != nil {
		h.fail(w, r, msgGetFailed, err)
		return
	}
	api.OK(w, detail)
}

func parseSections(raw string) []employees.Section {
	if raw == "" {
		return nil
	}
	known := make(map[employees.Section]bool, len(employees.AllSections))
	for _, s := range employees.AllSections {
		known[s] = true
	}
	var out []employees.Section
	for _, part := range strings.Split(raw, ",") {
		s := employees.Section(strings.TrimSpace(part))
		if known[s] {
			out = append(out, s)
		}
	}
	return out
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}
	birth, _ := shared.ParseDate(req.BirthDate)
	var admission time.Time
	if req.AdmissionDate != "" {
		admission, _ = shared.ParseDate(req.AdmissionDate)
	}

	id, err := h.Service.Create(r.Context(), employees.NewEmployee{
		NIF:             req.NIF,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Street:          req.Street,
		Locality:        req.Locality,
		PostalCode:      req.PostalCode,
		BirthDate:       birth,
		Role:            req.Role,
		DepartmentID:    req.DepartmentID.Int64(),
		DepartmentName:  req.Department,
		AdmissionDate:   admission,
		BaseSalaryGross: req.BaseSalaryGross,
	})
	if err != nil {
		h.fail(w, r, msgCreateFailed, err)
		return
	}

	key := strconv.FormatInt(id, 10)
	shared.RecordAudit(r, h.Audit, events.EmployeeCreated, "employee", key, nil, req.auditChange())
	api.Created(w, MsgCreated, key)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	var req updateRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}

	err := h.Service.Update(r.Context(), id, employees.Changes{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Street:         req.Street,
		Locality:       req.Locality,
		PostalCode:     req.PostalCode,
		Role:           req.Role,
		DepartmentID:   req.DepartmentID.Int64(),
		DepartmentName: req.Department,
	})
	if err != nil {
		h.fail(w, r, msgUpdateFailed, err)
		return
	}

	key := strconv.FormatInt(id, 10)
	shared.RecordAudit(r, h.Audit, events.EmployeeUpdated, "employee", key, nil, req.auditChange())
	api.Message(w, MsgUpdated, key)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, msgDeleteFailed, err)
		return
	}

	key := strconv.FormatInt(id, 10)
	shared.RecordAudit(r, h.Audit, events.EmployeeDeleted, "employee", key, nil, nil)
	api.Message(w, MsgDeleted, "")
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Internal(w, r, msgExportFailed, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="colaboradores.xlsx"`)
	if err := employees.WriteSpreadsheet(w, list); err != nil {
		api.Internal(w, r, msgExportFailed, err)
	}
}

func (h *Handler) handleStatement(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "employeeID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
		return
	}
	detail, err := h.Service.Get(r.Context(), id, employees.SectionFinancials, employees.SectionVacations)
	if err != nil {
		h.fail(w, r, msgStatementFailed, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="declaracao-`+detail.ID+`.pdf"`)
	if err := employees.WriteStatement(w, detail, h.Now()); err != nil {
		api.Internal(w, r, msgStatementFailed, err)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, internalMsg string, err error) {
	switch {
	case errors.Is(err, employees.ErrNotFound):
		api.Fail(w, http.StatusNotFound, MsgNotFound, "")
	case errors.Is(err, employees.ErrNIFExists):
		api.Fail(w, http.StatusBadRequest, MsgNIFExists, "")
	case errors.Is(err, employees.ErrEmailExists):
		api.Fail(w, http.StatusBadRequest, MsgEmailExists, "")
	case errors.Is(err, employees.ErrInvalidDepartment):
		api.Fail(w, http.StatusBadRequest, MsgInvalidDept, "")
	case errors.Is(err, employees.ErrInvalidSalary):
		api.Fail(w, http.StatusBadRequest, api.MsgInvalidFields, "baseSalaryGross")
	default:
		api.Internal(w, r, internalMsg, err)
	}
}
