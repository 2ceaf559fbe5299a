package db

import (
	"context"
	_ "embed"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures/seed.yaml
var seedYAML []byte

type SeedOptions struct {
	// Demo adds sample employees, trainings, evaluations and recruitment data.
	Demo         bool
	EmployerName string
	// NetSalary computes the stored net amount for seeded salary rows.
	NetSalary func(gross float64) float64
}

type Fixtures struct {
	Departments []DepartmentFixture `yaml:"departments"`
	Demo        DemoFixtures        `yaml:"demo"`
}

type DepartmentFixture struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type DemoFixtures struct {
	Employees   []EmployeeFixture   `yaml:"employees"`
	Managers    map[int]int         `yaml:"managers"`
	Trainings   []TrainingFixture   `yaml:"trainings"`
	Evaluations []EvaluationFixture `yaml:"evaluations"`
	Jobs        []JobFixture        `yaml:"jobs"`
	Candidates  []CandidateFixture  `yaml:"candidates"`
}

type EmployeeFixture struct {
	ID            int     `yaml:"id"`
	NIF           string  `yaml:"nif"`
	FirstName     string  `yaml:"firstName"`
	LastName      string  `yaml:"lastName"`
	Email         string  `yaml:"email"`
	Phone         string  `yaml:"phone"`
	Street        string  `yaml:"street"`
	Locality      string  `yaml:"locality"`
	PostalCode    string  `yaml:"postalCode"`
	BirthDate     string  `yaml:"birthDate"`
	Role          string  `yaml:"role"`
	DepartmentID  int     `yaml:"departmentId"`
	AdmissionDate string  `yaml:"admissionDate"`
	Salary        float64 `yaml:"salary"`
	Benefits      []struct {
		Type  string  `yaml:"type"`
		Value float64 `yaml:"value"`
	} `yaml:"benefits"`
	Vacations []struct {
		StartDate string `yaml:"startDate"`
		EndDate   string `yaml:"endDate"`
		Days      int    `yaml:"days"`
		Status    string `yaml:"status"`
	} `yaml:"vacations"`
	Dependents []struct {
		Name         string `yaml:"name"`
		Relationship string `yaml:"relationship"`
		BirthDate    string `yaml:"birthDate"`
	} `yaml:"dependents"`
	Absences []struct {
		Date   string `yaml:"date"`
		Reason string `yaml:"reason"`
	} `yaml:"absences"`
	PreviousJobs []struct {
		Company   string `yaml:"company"`
		Role      string `yaml:"role"`
		StartDate string `yaml:"startDate"`
		EndDate   string `yaml:"endDate"`
	} `yaml:"previousJobs"`
}

type TrainingFixture struct {
	ID           int    `yaml:"id"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	StartDate    string `yaml:"startDate"`
	EndDate      string `yaml:"endDate"`
	Status       string `yaml:"status"`
	Participants []int  `yaml:"participants"`
}

type EvaluationFixture struct {
	EmployeeID     int     `yaml:"employeeId"`
	ReviewerID     int     `yaml:"reviewerId"`
	Date           string  `yaml:"date"`
	Score          float64 `yaml:"score"`
	Comments       string  `yaml:"comments"`
	SelfEvaluation string  `yaml:"selfEvaluation"`
}

type JobFixture struct {
	ID           int      `yaml:"id"`
	DepartmentID int      `yaml:"departmentId"`
	OpenDate     string   `yaml:"openDate"`
	Status       string   `yaml:"status"`
	Requirements []string `yaml:"requirements"`
}

type CandidateFixture struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	JobID       int    `yaml:"jobId"`
	AppliedDate string `yaml:"appliedDate"`
	Status      string `yaml:"status"`
	RecruiterID int    `yaml:"recruiterId"`
}

// LoadFixtures parses the embedded seed file.
func LoadFixtures() (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(seedYAML, &fx); err != nil {
		return Fixtures{}, errors.Wrap(err, "parse seed fixtures")
	}
	return fx, nil
}

// Seed inserts the fixed department enumeration and, optionally, demo data.
// Every insert is conflict-tolerant so the seed can run on each start.
func Seed(ctx context.Context, pool *pgxpool.Pool, opts SeedOptions) error {
	fx, err := LoadFixtures()
	if err != nil {
		return err
	}
	return WithTx(ctx, pool, func(tx pgx.Tx) error {
		for _, d := range fx.Departments {
			if _, err := tx.Exec(ctx, `
        INSERT INTO departamentos (id_depart, nome, descricao)
        VALUES ($1, $2, $3)
        ON CONFLICT (id_depart) DO NOTHING
      `, d.ID, d.Name, d.Description); err != nil {
				return errors.Wrapf(err, "seed department %d", d.ID)
			}
		}
		if !opts.Demo {
			return nil
		}
		return seedDemo(ctx, tx, fx.Demo, opts)
	})
}

func seedDemo(ctx context.Context, tx pgx.Tx, demo DemoFixtures, opts SeedOptions) error {
	net := opts.NetSalary
	if net == nil {
		net = func(gross float64) float64 { return gross }
	}

	for _, e := range demo.Employees {
		tag, err := tx.Exec(ctx, `
      INSERT INTO funcionarios (id_fun, nif, primeiro_nome, ultimo_nome, email, num_telemovel,
                                nome_rua, nome_localidade, codigo_postal, data_nascimento, cargo, id_depart)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::date,$11,$12)
      ON CONFLICT DO NOTHING
    `, e.ID, e.NIF, e.FirstName, e.LastName, e.Email, e.Phone, e.Street, e.Locality, e.PostalCode, e.BirthDate, e.Role, e.DepartmentID)
		if err != nil {
			return errors.Wrapf(err, "seed employee %d", e.ID)
		}
		if tag.RowsAffected() == 0 {
			continue
		}

		if _, err := tx.Exec(ctx, `
      INSERT INTO historico_empresas (id_fun, nome_empresa, cargo, data_inicio)
      VALUES ($1, $2, $3, $4::date)
    `, e.ID, opts.EmployerName, e.Role, e.AdmissionDate); err != nil {
			return errors.Wrapf(err, "seed admission %d", e.ID)
		}
		for _, j := range e.PreviousJobs {
			if _, err := tx.Exec(ctx, `
        INSERT INTO historico_empresas (id_fun, nome_empresa, cargo, data_inicio, data_fim)
        VALUES ($1, $2, $3, $4::date, NULLIF($5, '')::date)
      `, e.ID, j.Company, j.Role, j.StartDate, j.EndDate); err != nil {
				return errors.Wrapf(err, "seed job history %d", e.ID)
			}
		}
		if e.Salary > 0 {
			if _, err := tx.Exec(ctx, `
        INSERT INTO remuneracoes (id_fun, data_inicio) VALUES ($1, $2::date)
      `, e.ID, e.AdmissionDate); err != nil {
				return errors.Wrapf(err, "seed remuneration %d", e.ID)
			}
			if _, err := tx.Exec(ctx, `
        INSERT INTO salario (id_fun, data_inicio, salario_bruto, salario_liquido)
        VALUES ($1, $2::date, $3, $4)
      `, e.ID, e.AdmissionDate, e.Salary, net(e.Salary)); err != nil {
				return errors.Wrapf(err, "seed salary %d", e.ID)
			}
			for _, b := range e.Benefits {
				if _, err := tx.Exec(ctx, `
          INSERT INTO beneficios (id_fun, data_inicio, tipo, valor)
          VALUES ($1, $2::date, $3, $4)
        `, e.ID, e.AdmissionDate, b.Type, b.Value); err != nil {
					return errors.Wrapf(err, "seed benefit %d", e.ID)
				}
			}
		}
		for _, v := range e.Vacations {
			if _, err := tx.Exec(ctx, `
        INSERT INTO ferias (id_fun, data_inicio, data_fim, num_dias, estado_aprov)
        VALUES ($1, $2::date, $3::date, $4, $5)
      `, e.ID, v.StartDate, v.EndDate, v.Days, v.Status); err != nil {
				return errors.Wrapf(err, "seed vacation %d", e.ID)
			}
		}
		for _, d := range e.Dependents {
			if _, err := tx.Exec(ctx, `
        INSERT INTO dependentes (id_fun, nome, parentesco, data_nascimento)
        VALUES ($1, $2, $3, NULLIF($4, '')::date)
      `, e.ID, d.Name, d.Relationship, d.BirthDate); err != nil {
				return errors.Wrapf(err, "seed dependent %d", e.ID)
			}
		}
		for _, a := range e.Absences {
			if _, err := tx.Exec(ctx, `
        INSERT INTO faltas (id_fun, data, justificacao)
        VALUES ($1, $2::date, NULLIF($3, ''))
      `, e.ID, a.Date, a.Reason); err != nil {
				return errors.Wrapf(err, "seed absence %d", e.ID)
			}
		}
	}

	for deptID, managerID := range demo.Managers {
		if _, err := tx.Exec(ctx, `
      UPDATE departamentos SET id_gerente = $2
      WHERE id_depart = $1 AND id_gerente IS NULL
        AND EXISTS (SELECT 1 FROM funcionarios WHERE id_fun = $2)
    `, deptID, managerID); err != nil {
			return errors.Wrapf(err, "seed manager for department %d", deptID)
		}
	}

	for _, t := range demo.Trainings {
		if _, err := tx.Exec(ctx, `
      INSERT INTO formacoes (id_for, nome_formacao, descricao, data_inicio, data_fim, estado)
      VALUES ($1, $2, $3, $4::date, $5::date, $6)
      ON CONFLICT (id_for) DO NOTHING
    `, t.ID, t.Title, t.Description, t.StartDate, t.EndDate, t.Status); err != nil {
			return errors.Wrapf(err, "seed training %d", t.ID)
		}
		for _, empID := range t.Participants {
			if _, err := tx.Exec(ctx, `
        INSERT INTO teve_formacao (id_fun, id_for, data_inicio, data_fim)
        SELECT $1, id_for, data_inicio, data_fim FROM formacoes WHERE id_for = $2
        ON CONFLICT (id_fun, id_for) DO NOTHING
      `, empID, t.ID); err != nil {
				return errors.Wrapf(err, "seed enrollment %d/%d", t.ID, empID)
			}
		}
	}

	for _, ev := range demo.Evaluations {
		if _, err := tx.Exec(ctx, `
      INSERT INTO avaliacoes (id_fun, id_avaliador, data, avaliacao_numerica, criterios, autoavaliacao)
      SELECT $1, $2, $3::date, $4, $5, NULLIF($6, '')
      WHERE NOT EXISTS (
        SELECT 1 FROM avaliacoes WHERE id_fun = $1 AND id_avaliador = $2 AND data = $3::date
      )
    `, ev.EmployeeID, ev.ReviewerID, ev.Date, ev.Score, ev.Comments, ev.SelfEvaluation); err != nil {
			return errors.Wrapf(err, "seed evaluation for %d", ev.EmployeeID)
		}
	}

	for _, j := range demo.Jobs {
		if _, err := tx.Exec(ctx, `
      INSERT INTO vagas (id_vaga, id_depart, data_abertura, estado)
      VALUES ($1, $2, $3::date, $4)
      ON CONFLICT (id_vaga) DO NOTHING
    `, j.ID, j.DepartmentID, j.OpenDate, j.Status); err != nil {
			return errors.Wrapf(err, "seed job %d", j.ID)
		}
		for _, req := range j.Requirements {
			if _, err := tx.Exec(ctx, `
        INSERT INTO requisitos_vaga (id_vaga, requisito) VALUES ($1, $2)
        ON CONFLICT DO NOTHING
      `, j.ID, req); err != nil {
				return errors.Wrapf(err, "seed requirement for job %d", j.ID)
			}
		}
	}

	for _, c := range demo.Candidates {
		if _, err := tx.Exec(ctx, `
      INSERT INTO candidatos (id_cand, nome, email, telemovel)
      VALUES ($1, $2, $3, $4)
      ON CONFLICT (id_cand) DO NOTHING
    `, c.ID, c.Name, c.Email, c.Phone); err != nil {
			return errors.Wrapf(err, "seed candidate %d", c.ID)
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO candidato_a (id_cand, id_vaga, data_cand, estado, id_recrutador)
      VALUES ($1, $2, $3::date, $4, NULLIF($5, 0))
      ON CONFLICT DO NOTHING
    `, c.ID, c.JobID, c.AppliedDate, c.Status, c.RecruiterID); err != nil {
			return errors.Wrapf(err, "seed application %d", c.ID)
		}
	}

	for _, seq := range [][2]string{{"formacoes", "id_for"}, {"vagas", "id_vaga"}, {"candidatos", "id_cand"}} {
		if _, err := tx.Exec(ctx, `
      SELECT setval(pg_get_serial_sequence($1, $2), GREATEST((SELECT COALESCE(MAX(`+seq[1]+`), 0) FROM `+seq[0]+`), 1))
    `, seq[0], seq[1]); err != nil {
			return errors.Wrapf(err, "sync sequence %s", seq[0])
		}
	}
	return nil
}
