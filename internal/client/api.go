// Package client talks to the HR Pro API and drives the client view state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
	"hrpro/internal/transport/http/api"
)

// APIError is a non-2xx answer. Message carries the server's error text.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// EmployeeInput is the body of an employee create or update. Salary and
// dates other than the birth date only apply on create.
type EmployeeInput struct {
	NIF             string   `json:"nif,omitempty"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Street          string   `json:"street,omitempty"`
	Locality        string   `json:"locality,omitempty"`
	PostalCode      string   `json:"postalCode,omitempty"`
	Address         string   `json:"address,omitempty"`
	BirthDate       string   `json:"birthDate,omitempty"`
	Role            string   `json:"role"`
	DepartmentID    string   `json:"departmentId,omitempty"`
	Department      string   `json:"department,omitempty"`
	AdmissionDate   string   `json:"admissionDate,omitempty"`
	BaseSalaryGross *float64 `json:"baseSalaryGross,omitempty"`
}

type EvaluationInput struct {
	EmployeeID     string  `json:"employeeId"`
	ReviewerID     string  `json:"reviewerId"`
	Date           string  `json:"date,omitempty"`
	Score          float64 `json:"score"`
	Comments       string  `json:"comments,omitempty"`
	SelfEvaluation string  `json:"selfEvaluation,omitempty"`
}

// CandidateChange updates one application. An empty Status keeps the
// current one; ClearRecruiter unassigns the recruiter.
type CandidateChange struct {
	JobID          string
	Status         recruitment.CandidateStatus
	RecruiterID    string
	ClearRecruiter bool
}

func (c CandidateChange) body() map[string]any {
	out := map[string]any{"jobId": c.JobID}
	if c.Status != "" {
		out["status"] = c.Status
	}
	switch {
	case c.ClearRecruiter:
		out["recruiterId"] = nil
	case c.RecruiterID != "":
		out["recruiterId"] = c.RecruiterID
	}
	return out
}

// Participation is the answer to an enrollment change.
type Participation struct {
	Message  string            `json:"message"`
	Training trainings.Program `json:"training"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}
}

func (c *Client) ListEmployees(ctx context.Context) ([]employees.Summary, error) {
	var out []employees.Summary
	return out, c.do(ctx, http.MethodGet, "/employees", nil, &out)
}

func (c *Client) GetEmployee(ctx context.Context, id string) (employees.Detail, error) {
	var out employees.Detail
	return out, c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, &out)
}

func (c *Client) CreateEmployee(ctx context.Context, in EmployeeInput) (api.MessageBody, error) {
	var out api.MessageBody
	return out, c.do(ctx, http.MethodPost, "/employees", in, &out)
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (api.MessageBody, error) {
	var out api.MessageBody
	return out, c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), in, &out)
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) (api.MessageBody, error) {
	var out api.MessageBody
	return out, c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, &out)
}

func (c *Client) ListDepartments(ctx context.Context) ([]departments.Department, error) {
	var out []departments.Department
	return out, c.do(ctx, http.MethodGet, "/departments", nil, &out)
}

func (c *Client) DepartmentMembers(ctx context.Context, id string) ([]departments.Member, error) {
	var out []departments.Member
	return out, c.do(ctx, http.MethodGet, "/departments/"+url.PathEscape(id)+"/employees", nil, &out)
}

// SetManager assigns managerID to the department, or clears the manager
// when managerID is empty.
func (c *Client) SetManager(ctx context.Context, id, managerID string) (departments.Department, error) {
	body := map[string]any{"managerId": nil}
	if managerID != "" {
		body["managerId"] = managerID
	}
	var out departments.Department
	return out, c.do(ctx, http.MethodPut, "/departments/"+url.PathEscape(id)+"/manager", body, &out)
}

func (c *Client) ListJobs(ctx context.Context) ([]recruitment.Job, error) {
	var out []recruitment.Job
	return out, c.do(ctx, http.MethodGet, "/recruitment/jobs", nil, &out)
}

func (c *Client) CloseJob(ctx context.Context, id string) (recruitment.Job, error) {
	var out recruitment.Job
	return out, c.do(ctx, http.MethodPost, "/recruitment/jobs/"+url.PathEscape(id)+"/close", nil, &out)
}

func (c *Client) ListCandidates(ctx context.Context) ([]recruitment.Candidate, error) {
	var out []recruitment.Candidate
	return out, c.do(ctx, http.MethodGet, "/recruitment/candidates", nil, &out)
}

func (c *Client) JobCandidates(ctx context.Context, jobID string) ([]recruitment.Candidate, error) {
	var out []recruitment.Candidate
	return out, c.do(ctx, http.MethodGet, "/recruitment/jobs/"+url.PathEscape(jobID)+"/candidates", nil, &out)
}

func (c *Client) UpdateCandidate(ctx context.Context, candidateID string, change CandidateChange) (recruitment.Candidate, error) {
	var out recruitment.Candidate
	return out, c.do(ctx, http.MethodPut, "/recruitment/candidates/"+url.PathEscape(candidateID)+"/status", change.body(), &out)
}

func (c *Client) ListTrainings(ctx context.Context) ([]trainings.Program, error) {
	var out []trainings.Program
	return out, c.do(ctx, http.MethodGet, "/trainings", nil, &out)
}

func (c *Client) Enroll(ctx context.Context, trainingID, employeeID string) (Participation, error) {
	var out Participation
	body := map[string]string{"employeeId": employeeID}
	return out, c.do(ctx, http.MethodPost, "/trainings/"+url.PathEscape(trainingID)+"/enroll", body, &out)
}

func (c *Client) RemoveParticipant(ctx context.Context, trainingID, employeeID string) (Participation, error) {
	var out Participation
	path := "/trainings/" + url.PathEscape(trainingID) + "/participants/" + url.PathEscape(employeeID)
	return out, c.do(ctx, http.MethodDelete, path, nil, &out)
}

func (c *Client) ListEvaluations(ctx context.Context) ([]evaluations.Evaluation, error) {
	var out []evaluations.Evaluation
	return out, c.do(ctx, http.MethodGet, "/evaluations", nil, &out)
}

func (c *Client) CreateEvaluation(ctx context.Context, in EvaluationInput) (api.MessageBody, error) {
	var out api.MessageBody
	return out, c.do(ctx, http.MethodPost, "/evaluations", in, &out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb api.ErrorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			apiErr.Message, apiErr.Detail = eb.Error, eb.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	return nil
}
