package employees

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"hrpro/internal/domain/evaluations"
	"hrpro/internal/domain/trainings"
)

type Section string

const (
	SectionFinancials  Section = "financials"
	SectionVacations   Section = "vacations"
	SectionTrainings   Section = "trainings"
	SectionEvaluations Section = "evaluations"
	SectionJobHistory  Section = "jobHistory"
	SectionDependents  Section = "dependents"
	SectionAbsences    Section = "absences"
)

var AllSections = []Section{
	SectionFinancials, SectionVacations, SectionTrainings, SectionEvaluations,
	SectionJobHistory, SectionDependents, SectionAbsences,
}

type TrainingReader interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]trainings.Attendance, error)
}

type EvaluationReader interface {
	ListByEmployee(ctx context.Context, employeeID int64) ([]evaluations.Evaluation, error)
}

// DegradeObserver is told about sections that failed and were left empty.
type DegradeObserver interface {
	SectionDegraded(section string)
}

type Service struct {
	Store       StoreAPI
	Trainings   TrainingReader
	Evaluations EvaluationReader
	Policy      SalaryPolicy
	Allotment   int
	Observer    DegradeObserver
	Now         func() time.Time
	Log         zerolog.Logger
	// MaxParallel bounds concurrent section queries per detail read.
	MaxParallel int
}

func NewService(store StoreAPI, tr TrainingReader, ev EvaluationReader, policy SalaryPolicy, allotment int, log zerolog.Logger) *Service {
	if policy == nil {
		policy = NewFlatRate(DefaultNetRate)
	}
	if allotment <= 0 {
		allotment = DefaultVacationAllotment
	}
	return &Service{
		Store:       store,
		Trainings:   tr,
		Evaluations: ev,
		Policy:      policy,
		Allotment:   allotment,
		Now:         time.Now,
		Log:         log,
		MaxParallel: 4,
	}
}

func (s *Service) List(ctx context.Context) ([]Summary, error) {
	list, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	for i := range list {
		list[i].Age = AgeOn(list[i].BirthDate, now)
		list[i].NetSalary, list[i].Deductions = Compensation(s.Policy, list[i].BaseSalaryGross)
	}
	return list, nil
}

// Get assembles the employee record. Only a missing or unreadable profile
// fails the call; each other section degrades to its empty value.
func (s *Service) Get(ctx context.Context, id int64, sections ...Section) (*Detail, error) {
	profile, err := s.Store.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	profile.Age = AgeOn(profile.BirthDate, now)

	if len(sections) == 0 {
		sections = AllSections
	}
	want := make(map[Section]bool, len(sections))
	for _, sec := range sections {
		want[sec] = true
	}

	var gross float64
	var (
		benefits   = []Benefit{}
		history    = []SalaryEntry{}
		vacations  = []VacationRecord{}
		attended   = []trainings.Attendance{}
		evaluated  = []evaluations.Evaluation{}
		jobs       = []JobHistory{}
		dependents = []Dependent{}
		absences   = []Absence{}
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.MaxParallel > 0 {
		g.SetLimit(s.MaxParallel)
	}
	run := func(name string, fetch func(context.Context) error) {
		g.Go(func() error {
			if err := fetch(gctx); err != nil {
				s.degraded(ctx, id, name, err)
			}
			return nil
		})
	}

	if want[SectionFinancials] {
		run("salary", func(ctx context.Context) (err error) {
			gross, err = s.Store.CurrentSalary(ctx, id)
			return err
		})
		run("benefits", func(ctx context.Context) error {
			return assign(&benefits, func() ([]Benefit, error) { return s.Store.Benefits(ctx, id) })
		})
		run("salaryHistory", func(ctx context.Context) error {
			return assign(&history, func() ([]SalaryEntry, error) { return s.Store.SalaryHistory(ctx, id) })
		})
	}
	if want[SectionVacations] {
		run(string(SectionVacations), func(ctx context.Context) error {
			return assign(&vacations, func() ([]VacationRecord, error) { return s.Store.VacationHistory(ctx, id) })
		})
	}
	if want[SectionTrainings] && s.Trainings != nil {
		run(string(SectionTrainings), func(ctx context.Context) error {
			return assign(&attended, func() ([]trainings.Attendance, error) { return s.Trainings.ListByEmployee(ctx, id) })
		})
	}
	if want[SectionEvaluations] && s.Evaluations != nil {
		run(string(SectionEvaluations), func(ctx context.Context) error {
			return assign(&evaluated, func() ([]evaluations.Evaluation, error) { return s.Evaluations.ListByEmployee(ctx, id) })
		})
	}
	if want[SectionJobHistory] {
		run(string(SectionJobHistory), func(ctx context.Context) error {
			return assign(&jobs, func() ([]JobHistory, error) { return s.Store.JobHistory(ctx, id) })
		})
	}
	if want[SectionDependents] {
		run(string(SectionDependents), func(ctx context.Context) error {
			return assign(&dependents, func() ([]Dependent, error) { return s.Store.Dependents(ctx, id) })
		})
	}
	if want[SectionAbsences] {
		run(string(SectionAbsences), func(ctx context.Context) error {
			return assign(&absences, func() ([]Absence, error) { return s.Store.Absences(ctx, id) })
		})
	}
	_ = g.Wait()

	net, deductions := Compensation(s.Policy, gross)
	return &Detail{
		Employee: profile,
		Financials: Financials{
			BaseSalaryGross: gross,
			NetSalary:       net,
			Deductions:      deductions,
			Benefits:        benefits,
			History:         history,
		},
		Vacations:   SummarizeVacations(vacations, s.Allotment, now),
		Trainings:   attended,
		Evaluations: evaluated,
		JobHistory:  jobs,
		Dependents:  dependents,
		Absences:    absences,
	}, nil
}

// assign stores a successful, non-nil result in dst and leaves dst untouched
// otherwise.
func assign[T any](dst *[]T, fetch func() ([]T, error)) error {
	v, err := fetch()
	if err != nil {
		return err
	}
	if v != nil {
		*dst = v
	}
	return nil
}

func (s *Service) degraded(ctx context.Context, id int64, section string, err error) {
	if ctx.Err() != nil {
		return
	}
	s.Log.Warn().Err(err).Int64("employee_id", id).Str("section", section).Msg("employee section degraded")
	if s.Observer != nil {
		s.Observer.SectionDegraded(section)
	}
}

func (s *Service) Create(ctx context.Context, in NewEmployee) (int64, error) {
	if in.AdmissionDate.IsZero() {
		in.AdmissionDate = s.Now()
	}
	var net float64
	if in.BaseSalaryGross != nil {
		if *in.BaseSalaryGross < 0 {
			return 0, ErrInvalidSalary
		}
		net = s.Policy.Net(*in.BaseSalaryGross)
	}
	return s.Store.Create(ctx, in, net)
}

func (s *Service) Update(ctx context.Context, id int64, ch Changes) error {
	return s.Store.Update(ctx, id, ch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.Store.Delete(ctx, id)
}
