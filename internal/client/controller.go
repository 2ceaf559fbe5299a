package client

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hrpro/internal/client/state"
	"hrpro/internal/domain/departments"
	"hrpro/internal/domain/employees"
	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/recruitment"
	"hrpro/internal/domain/trainings"
	"hrpro/internal/transport/http/api"
)

const MsgServerUnavailable = "Erro ao conectar com o servidor. Verifique se o backend está a funcionar."

// API is the server surface the controller drives. *Client implements it.
type API interface {
	ListEmployees(ctx context.Context) ([]employees.Summary, error)
	GetEmployee(ctx context.Context, id string) (employees.Detail, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (api.MessageBody, error)
	UpdateEmployee(ctx context.Context, id string, in EmployeeInput) (api.MessageBody, error)
	DeleteEmployee(ctx context.Context, id string) (api.MessageBody, error)
	ListDepartments(ctx context.Context) ([]departments.Department, error)
	DepartmentMembers(ctx context.Context, id string) ([]departments.Member, error)
	SetManager(ctx context.Context, id, managerID string) (departments.Department, error)
	ListJobs(ctx context.Context) ([]recruitment.Job, error)
	CloseJob(ctx context.Context, id string) (recruitment.Job, error)
	ListCandidates(ctx context.Context) ([]recruitment.Candidate, error)
	UpdateCandidate(ctx context.Context, candidateID string, change CandidateChange) (recruitment.Candidate, error)
	ListTrainings(ctx context.Context) ([]trainings.Program, error)
	Enroll(ctx context.Context, trainingID, employeeID string) (Participation, error)
	RemoveParticipant(ctx context.Context, trainingID, employeeID string) (Participation, error)
	ListEvaluations(ctx context.Context) ([]evaluations.Evaluation, error)
	CreateEvaluation(ctx context.Context, in EvaluationInput) (api.MessageBody, error)
}

// Controller turns user intents into API calls and state actions.
type Controller struct {
	api   API
	store *state.Store
	log   zerolog.Logger
	seq   atomic.Uint64
}

func NewController(a API, store *state.Store, log zerolog.Logger) *Controller {
	if store == nil {
		store = state.NewStore(state.Initial())
	}
	return &Controller{api: a, store: store, log: log.With().Str("component", "controller").Logger()}
}

func (c *Controller) Store() *state.Store { return c.store }

func (c *Controller) State() state.State { return c.store.State() }

// Load fetches every collection concurrently. Only the employee list
// failure is reported; the others are logged and leave their collection
// unchanged.
func (c *Controller) Load(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return c.RefreshEmployees(ctx) })
	g.Go(func() error {
		fetch(ctx, c, "departments", c.api.ListDepartments, func(v []departments.Department) state.Action {
			return state.DepartmentsLoaded{Items: v}
		})
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, "jobs", c.api.ListJobs, func(v []recruitment.Job) state.Action { return state.JobsLoaded{Items: v} })
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, "candidates", c.api.ListCandidates, func(v []recruitment.Candidate) state.Action {
			return state.CandidatesLoaded{Items: v}
		})
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, "trainings", c.api.ListTrainings, func(v []trainings.Program) state.Action {
			return state.TrainingsLoaded{Items: v}
		})
		return nil
	})
	g.Go(func() error {
		fetch(ctx, c, "evaluations", c.api.ListEvaluations, func(v []evaluations.Evaluation) state.Action {
			return state.EvaluationsLoaded{Items: v}
		})
		return nil
	})
	return g.Wait()
}

func fetch[T any](ctx context.Context, c *Controller, name string, list func(context.Context) ([]T, error), loaded func([]T) state.Action) {
	items, err := list(ctx)
	if err != nil {
		c.log.Warn().Err(err).Str("collection", name).Msg("load failed")
		return
	}
	c.store.Dispatch(loaded(items))
}

func (c *Controller) RefreshEmployees(ctx context.Context) error {
	c.store.Dispatch(state.LoadStarted{})
	list, err := c.api.ListEmployees(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("employee list failed")
		c.store.Dispatch(state.EmployeesFailed{Err: MsgServerUnavailable})
		return err
	}
	c.store.Dispatch(state.EmployeesLoaded{Items: list})
	return nil
}

func (c *Controller) Navigate(view state.View) {
	c.store.Dispatch(state.Navigate{View: view})
}

// SelectEmployee always refetches the detail record. Only the answer to the
// latest selection is applied.
func (c *Controller) SelectEmployee(ctx context.Context, id string) error {
	seq := c.seq.Add(1)
	c.store.Dispatch(state.EmployeeSelected{ID: id, Seq: seq})
	detail, err := c.api.GetEmployee(ctx, id)
	if err != nil {
		c.store.Dispatch(state.EmployeeDetailFailed{Seq: seq, Err: err.Error()})
		return err
	}
	c.store.Dispatch(state.EmployeeDetailLoaded{Seq: seq, Detail: detail})
	return nil
}

// SaveEmployee creates the employee when id is empty and updates it
// otherwise, then reloads the list. It returns the employee id.
func (c *Controller) SaveEmployee(ctx context.Context, id string, in EmployeeInput) (string, error) {
	var (
		res api.MessageBody
		err error
	)
	if id == "" {
		res, err = c.api.CreateEmployee(ctx, in)
	} else {
		res, err = c.api.UpdateEmployee(ctx, id, in)
	}
	if err != nil {
		return "", c.fail(err)
	}
	if res.ID == "" {
		res.ID = id
	}
	if err := c.RefreshEmployees(ctx); err != nil {
		return res.ID, err
	}
	c.store.Dispatch(state.Notify{Message: res.Message})
	return res.ID, nil
}

func (c *Controller) DeleteEmployee(ctx context.Context, id string) error {
	res, err := c.api.DeleteEmployee(ctx, id)
	if err != nil {
		return c.fail(err)
	}
	refreshErr := c.RefreshEmployees(ctx)
	c.store.Dispatch(state.EmployeeRemoved{ID: id})
	c.store.Dispatch(state.Notify{Message: res.Message})
	return refreshErr
}

func (c *Controller) SelectDepartment(ctx context.Context, id string) error {
	c.store.Dispatch(state.DepartmentSelected{ID: id})
	members, err := c.api.DepartmentMembers(ctx, id)
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.DepartmentMembersLoaded{ID: id, Members: members})
	return nil
}

// AssignManager persists the department manager; an empty managerID clears it.
func (c *Controller) AssignManager(ctx context.Context, departmentID, managerID string) error {
	d, err := c.api.SetManager(ctx, departmentID, managerID)
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.DepartmentUpdated{Department: d})
	return nil
}

func (c *Controller) SelectJob(id string) {
	c.store.Dispatch(state.JobSelected{ID: id})
}

func (c *Controller) CloseJob(ctx context.Context, id string) error {
	job, err := c.api.CloseJob(ctx, id)
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.JobUpdated{Job: job})
	return nil
}

func (c *Controller) UpdateCandidate(ctx context.Context, candidateID string, change CandidateChange) error {
	cand, err := c.api.UpdateCandidate(ctx, candidateID, change)
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.CandidateUpdated{Candidate: cand})
	return nil
}

func (c *Controller) SelectTraining(id string) {
	c.store.Dispatch(state.TrainingSelected{ID: id})
}

func (c *Controller) AddParticipant(ctx context.Context, trainingID, employeeID string) error {
	return c.participation(c.api.Enroll(ctx, trainingID, employeeID))
}

func (c *Controller) RemoveParticipant(ctx context.Context, trainingID, employeeID string) error {
	return c.participation(c.api.RemoveParticipant(ctx, trainingID, employeeID))
}

func (c *Controller) participation(p Participation, err error) error {
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.TrainingUpdated{Training: p.Training})
	c.store.Dispatch(state.Notify{Message: p.Message})
	return nil
}

func (c *Controller) SelectEvaluation(id string) {
	c.store.Dispatch(state.EvaluationSelected{ID: id})
}

// CreateEvaluation stores the evaluation, reloads the list and returns to it.
func (c *Controller) CreateEvaluation(ctx context.Context, in EvaluationInput) error {
	res, err := c.api.CreateEvaluation(ctx, in)
	if err != nil {
		return c.fail(err)
	}
	list, err := c.api.ListEvaluations(ctx)
	if err != nil {
		return c.fail(err)
	}
	c.store.Dispatch(state.EvaluationsLoaded{Items: list})
	c.store.Dispatch(state.Navigate{View: state.ViewEvaluations})
	c.store.Dispatch(state.Notify{Message: res.Message})
	return nil
}

// Search records the query and returns the matching employees.
func (c *Controller) Search(query string) []employees.Summary {
	s := c.store.Dispatch(state.SearchChanged{Query: query})
	return FilterEmployees(s.Employees, query)
}

func (c *Controller) fail(err error) error {
	c.store.Dispatch(state.Notify{Message: err.Error()})
	return err
}

// FilterEmployees fuzzy-matches query against name, email, role and
// department, best matches first. An empty query returns list unchanged.
func FilterEmployees(list []employees.Summary, query string) []employees.Summary {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	type hit struct {
		row  employees.Summary
		rank int
	}
	var hits []hit
	for _, e := range list {
		best := -1
		for _, field := range []string{e.FullName, e.Email, e.Role, e.Department} {
			r := fuzzy.RankMatchNormalizedFold(query, field)
			if r >= 0 && (best < 0 || r < best) {
				best = r
			}
		}
		if best >= 0 {
			hits = append(hits, hit{row: e, rank: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	out := make([]employees.Summary, len(hits))
	for i, h := range hits {
		out[i] = h.row
	}
	return out
}
