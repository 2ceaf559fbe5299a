package employees

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
)

// CurrentSalary is the latest salary row whose remuneration period starts on
// the same day. Zero when the employee has none.
func (s *Store) CurrentSalary(ctx context.Context, id int64) (float64, error) {
	var gross float64
	err := s.DB.QueryRow(ctx, `
    SELECT sa.salario_bruto::float8
    FROM salario sa
    JOIN remuneracoes r ON r.id_fun = sa.id_fun AND r.data_inicio = sa.data_inicio
    WHERE sa.id_fun = $1
    ORDER BY sa.data_inicio DESC
    LIMIT 1
  `, id).Scan(&gross)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "query current salary")
	}
	return gross, nil
}

// Benefits returns the most recent benefit of each type.
func (s *Store) Benefits(ctx context.Context, id int64) ([]Benefit, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT ON (tipo) tipo, valor::float8, to_char(data_inicio, 'YYYY-MM-DD')
    FROM beneficios
    WHERE id_fun = $1
    ORDER BY tipo, data_inicio DESC
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query benefits")
	}
	return collect(rows, func(row pgx.Rows) (Benefit, error) {
		var b Benefit
		if err := row.Scan(&b.Type, &b.Value, &b.StartDate); err != nil {
			return b, err
		}
		b.ID = ownedID(id, b.Type, b.StartDate)
		return b, nil
	})
}

func (s *Store) SalaryHistory(ctx context.Context, id int64) ([]SalaryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT to_char(data_inicio, 'YYYY-MM-DD'), salario_bruto::float8
    FROM salario
    WHERE id_fun = $1
    ORDER BY data_inicio DESC
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query salary history")
	}
	return collect(rows, func(row pgx.Rows) (SalaryEntry, error) {
		e := SalaryEntry{Reason: SalaryUpdateReason}
		return e, row.Scan(&e.Date, &e.Amount)
	})
}

func (s *Store) VacationHistory(ctx context.Context, id int64) ([]VacationRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT to_char(data_inicio, 'YYYY-MM-DD'), to_char(data_fim, 'YYYY-MM-DD'), num_dias, estado_aprov
    FROM ferias
    WHERE id_fun = $1
    ORDER BY data_inicio DESC
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query vacations")
	}
	return collect(rows, func(row pgx.Rows) (VacationRecord, error) {
		var v VacationRecord
		var status string
		if err := row.Scan(&v.StartDate, &v.EndDate, &v.DaysUsed, &status); err != nil {
			return v, err
		}
		v.ID = ownedID(id, v.StartDate)
		v.Status = VacationStatusFromStore(status)
		return v, nil
	})
}

func (s *Store) JobHistory(ctx context.Context, id int64) ([]JobHistory, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT nome_empresa, cargo, to_char(data_inicio, 'YYYY-MM-DD'),
           COALESCE(to_char(data_fim, 'YYYY-MM-DD'), ''), nome_empresa = $2
    FROM historico_empresas
    WHERE id_fun = $1
    ORDER BY data_inicio DESC
  `, id, s.Employer)
	if err != nil {
		return nil, errors.Wrap(err, "query job history")
	}
	return collect(rows, func(row pgx.Rows) (JobHistory, error) {
		var j JobHistory
		return j, row.Scan(&j.Company, &j.Role, &j.StartDate, &j.EndDate, &j.IsInternal)
	})
}

func (s *Store) Dependents(ctx context.Context, id int64) ([]Dependent, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT nome, parentesco, COALESCE(to_char(data_nascimento, 'YYYY-MM-DD'), '')
    FROM dependentes
    WHERE id_fun = $1
    ORDER BY nome
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query dependents")
	}
	return collect(rows, func(row pgx.Rows) (Dependent, error) {
		var d Dependent
		if err := row.Scan(&d.Name, &d.Relationship, &d.BirthDate); err != nil {
			return d, err
		}
		d.ID = ownedID(id, d.Name)
		return d, nil
	})
}

func (s *Store) Absences(ctx context.Context, id int64) ([]Absence, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT to_char(data, 'YYYY-MM-DD'), COALESCE(justificacao, '')
    FROM faltas
    WHERE id_fun = $1
    ORDER BY data DESC
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query absences")
	}
	return collect(rows, func(row pgx.Rows) (Absence, error) {
		var a Absence
		if err := row.Scan(&a.Date, &a.Reason); err != nil {
			return a, err
		}
		a.ID = ownedID(id, a.Date)
		a.Justified = strings.TrimSpace(a.Reason) != ""
		return a, nil
	})
}

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ownedID builds a stable id for rows keyed by (employee, natural key).
func ownedID(employeeID int64, parts ...string) string {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(employeeID, 10))
	for _, p := range parts {
		b.WriteByte('-')
		b.WriteString(p)
	}
	return b.String()
}
