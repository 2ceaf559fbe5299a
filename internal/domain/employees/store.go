package employees

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store reads and writes employees and the rows they own. Employer is the
// company name that marks internal job history.
type Store struct {
	DB       *pgxpool.Pool
	Employer string
}

func NewStore(db *pgxpool.Pool, employer string) *Store {
	return &Store{DB: db, Employer: employer}
}

// profileColumns is the base profile projection; $1 is the employer name.
const profileColumns = `
    f.id_fun::text, f.primeiro_nome, f.ultimo_nome, f.nif, f.email, f.num_telemovel,
    COALESCE(f.nome_rua, ''), COALESCE(f.nome_localidade, ''), COALESCE(f.codigo_postal, ''),
    to_char(f.data_nascimento, 'YYYY-MM-DD'), f.id_depart::text, COALESCE(d.nome, ''), f.cargo,
    COALESCE(to_char(adm.data_inicio, 'YYYY-MM-DD'), '')
`

const profileJoins = `
    FROM funcionarios f
    LEFT JOIN departamentos d ON d.id_depart = f.id_depart
    LEFT JOIN LATERAL (
      SELECT h.data_inicio FROM historico_empresas h
      WHERE h.id_fun = f.id_fun AND h.nome_empresa = $1
      ORDER BY h.data_inicio DESC LIMIT 1
    ) adm ON true
`

func scanProfile(row pgx.Row, e *Employee, extra ...any) error {
	dest := []any{&e.ID, &e.FirstName, &e.LastName, &e.NIF, &e.Email, &e.Phone,
		&e.Street, &e.Locality, &e.PostalCode, &e.BirthDate, &e.DepartmentID, &e.Department, &e.Role,
		&e.AdmissionDate}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	e.FullName = e.FirstName + " " + e.LastName
	e.Address = AssembleAddress(e.Street, e.Locality, e.PostalCode)
	return nil
}

// List returns every profile with its latest gross salary.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.DB.Query(ctx, `SELECT `+profileColumns+`, COALESCE(sal.salario_bruto, 0)::float8 `+profileJoins+`
    LEFT JOIN LATERAL (
      SELECT sa.salario_bruto FROM salario sa
      WHERE sa.id_fun = f.id_fun
      ORDER BY sa.data_inicio DESC LIMIT 1
    ) sal ON true
    ORDER BY f.primeiro_nome, f.ultimo_nome, f.id_fun
  `, s.Employer)
	if err != nil {
		return nil, errors.Wrap(err, "query employees")
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := scanProfile(rows, &sm.Employee, &sm.BaseSalaryGross); err != nil {
			return nil, errors.Wrap(err, "scan employee")
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func (s *Store) GetProfile(ctx context.Context, id int64) (Employee, error) {
	var e Employee
	err := scanProfile(s.DB.QueryRow(ctx, `SELECT `+profileColumns+profileJoins+` WHERE f.id_fun = $2`, s.Employer, id), &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, errors.Wrap(err, "query employee")
	}
	return e, nil
}
