package recruitmenthandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"

	"hrpro/internal/domain/recruitment"
	"hrpro/internal/platform/events"
	"hrpro/internal/transport/http/api"
	"hrpro/internal/transport/http/shared"
)

const (
	MsgJobNotFound       = "Vaga não encontrada"
	MsgCandidateNotFound = "Candidato não encontrado"
	MsgInvalidStatus     = "Estado inválido"
	MsgRecruiterNotFound = "Recrutador não encontrado"
	MsgJobNotOpen        = "A vaga não está aberta"
	MsgNothingToUpdate   = "Nada para atualizar"
)

type Handler struct {
	Service *recruitment.Service
	Audit   shared.Auditor
}

func NewHandler(service *recruitment.Service, audit shared.Auditor) *Handler {
	return &Handler{Service: service, Audit: audit}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		r.Get("/jobs", h.handleListJobs)
		r.Route("/jobs/{jobID}", func(r chi.Router) {
			r.Get("/", h.handleGetJob)
			r.Post("/close", h.handleCloseJob)
			r.Get("/candidates", h.handleJobCandidates)
		})
		r.Get("/candidates", h.handleListCandidates)
		r.Put("/candidates/{candidateID}/status", h.handleUpdateCandidate)
	})
}

// candidateUpdateRequest: recruiterId absent keeps the recruiter, null clears
// it.
type candidateUpdateRequest struct {
	JobID       shared.ID       `json:"jobId" validate:"required"`
	Status      string          `json:"status"`
	RecruiterID json.RawMessage `json:"recruiterId"`
}

func (h *Handler) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListJobs(r.Context())
	if err != nil {
		api.Internal(w, r, "Erro ao obter vagas", err)
		return
	}
	api.OK(w, jobs)
}

func (h *Handler) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "jobID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgJobNotFound, "")
		return
	}
	job, err := h.Service.GetJob(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Erro ao obter vaga", err)
		return
	}
	api.OK(w, job)
}

func (h *Handler) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "jobID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgJobNotFound, "")
		return
	}
	job, err := h.Service.CloseJob(r.Context(), id)
	if err != nil {
		h.fail(w, r, "Erro ao fechar vaga", err)
		return
	}
	shared.RecordAudit(r, h.Audit, events.JobClosed, "job", job.ID, nil, job)
	api.OK(w, job)
}

func (h *Handler) handleJobCandidates(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(r, "jobID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgJobNotFound, "")
		return
	}
	h.listCandidatesByJob(w, r, id)
}

func (h *Handler) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("jobId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.Fail(w, http.StatusNotFound, MsgJobNotFound, "")
			return
		}
		h.listCandidatesByJob(w, r, id)
		return
	}
	list, err := h.Service.ListCandidates(r.Context())
	if err != nil {
		api.Internal(w, r, "Erro ao obter candidatos", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) listCandidatesByJob(w http.ResponseWriter, r *http.Request, jobID int64) {
	list, err := h.Service.ListCandidatesByJob(r.Context(), jobID)
	if err != nil {
		h.fail(w, r, "Erro ao obter candidatos", err)
		return
	}
	api.OK(w, list)
}

func (h *Handler) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := shared.PathID(r, "candidateID")
	if !ok {
		api.Fail(w, http.StatusNotFound, MsgCandidateNotFound, "")
		return
	}
	var req candidateUpdateRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}

	upd := recruitment.CandidateUpdate{Status: req.Status}
	if len(req.RecruiterID) > 0 {
		if bytes.Equal(bytes.TrimSpace(req.RecruiterID), []byte("null")) {
			upd.ClearRecruiter = true
		} else {
			var recruiter shared.ID
			if err := json.Unmarshal(req.RecruiterID, &recruiter); err != nil {
				api.Fail(w, http.StatusBadRequest, MsgRecruiterNotFound, "")
				return
			}
			if recruiter == 0 {
				upd.ClearRecruiter = true
			} else {
				v := recruiter.Int64()
				upd.RecruiterID = &v
			}
		}
	}

	c, err := h.Service.UpdateCandidate(r.Context(), candidateID, req.JobID.Int64(), upd)
	if err != nil {
		h.fail(w, r, "Erro ao atualizar candidato", err)
		return
	}
	shared.RecordAudit(r, h.Audit, events.CandidateUpdated, "candidate", c.ID, nil, c)
	api.OK(w, c)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, internalMsg string, err error) {
	switch {
	case errors.Is(err, recruitment.ErrJobNotFound):
		api.Fail(w, http.StatusNotFound, MsgJobNotFound, "")
	case errors.Is(err, recruitment.ErrApplicationNotFound):
		api.Fail(w, http.StatusNotFound, MsgCandidateNotFound, "")
	case errors.Is(err, recruitment.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, MsgInvalidStatus, "")
	case errors.Is(err, recruitment.ErrRecruiterNotFound):
		api.Fail(w, http.StatusBadRequest, MsgRecruiterNotFound, "")
	case errors.Is(err, recruitment.ErrJobNotOpen):
		api.Fail(w, http.StatusBadRequest, MsgJobNotOpen, "")
	case errors.Is(err, recruitment.ErrEmptyUpdate):
		api.Fail(w, http.StatusBadRequest, MsgNothingToUpdate, "")
	default:
		api.Internal(w, r, internalMsg, err)
	}
}
