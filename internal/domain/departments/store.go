package departments

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrpro/internal/platform/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const selectDepartments = `
    SELECT d.id_depart::text, d.nome, COALESCE(d.descricao, ''), d.id_gerente::text,
           COALESCE(g.primeiro_nome || ' ' || g.ultimo_nome, ''),
           (SELECT COUNT(1) FROM funcionarios f WHERE f.id_depart = d.id_depart)
    FROM departamentos d
    LEFT JOIN funcionarios g ON g.id_fun = d.id_gerente
`

func scanDepartment(row pgx.Row) (Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.ManagerID, &d.ManagerName, &d.EmployeeCount)
	return d, err
}

func (s *Store) List(ctx context.Context) ([]Department, error) {
	rows, err := s.DB.Query(ctx, selectDepartments+" ORDER BY d.id_depart")
	if err != nil {
		return nil, errors.Wrap(err, "query departments")
	}
	defer rows.Close()

	out := []Department{}
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan department")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id int64) (Department, error) {
	d, err := scanDepartment(s.DB.QueryRow(ctx, selectDepartments+" WHERE d.id_depart = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrNotFound
	}
	if err != nil {
		return Department{}, errors.Wrap(err, "query department")
	}
	return d, nil
}

func (s *Store) Members(ctx context.Context, id int64) ([]Member, error) {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM departamentos WHERE id_depart = $1)", id).Scan(&exists); err != nil {
		return nil, errors.Wrap(err, "check department")
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := s.DB.Query(ctx, `
    SELECT f.id_fun::text, f.primeiro_nome, f.ultimo_nome, f.email, f.num_telemovel, f.cargo,
           COALESCE(d.id_gerente = f.id_fun, false)
    FROM funcionarios f
    JOIN departamentos d ON d.id_depart = f.id_depart
    WHERE f.id_depart = $1
    ORDER BY f.primeiro_nome, f.ultimo_nome
  `, id)
	if err != nil {
		return nil, errors.Wrap(err, "query department members")
	}
	defer rows.Close()

	out := []Member{}
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.Phone, &m.Role, &m.IsManager); err != nil {
			return nil, errors.Wrap(err, "scan department member")
		}
		m.FullName = m.FirstName + " " + m.LastName
		out = append(out, m)
	}
	return out, rows.Err()
}

// SetManager assigns or, with a nil managerID, clears the department manager.
func (s *Store) SetManager(ctx context.Context, id int64, managerID *int64) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if managerID != nil {
			var exists bool
			if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE id_fun = $1)", *managerID).Scan(&exists); err != nil {
				return errors.Wrap(err, "check manager")
			}
			if !exists {
				return ErrManagerNotFound
			}
		}
		tag, err := tx.Exec(ctx, "UPDATE departamentos SET id_gerente = $2 WHERE id_depart = $1", id, managerID)
		if err != nil {
			if _, ok := db.ForeignKeyViolation(err); ok {
				return ErrManagerNotFound
			}
			return errors.Wrap(err, "update manager")
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}
