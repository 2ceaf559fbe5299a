package trainings

import (
	"context"
	"strconv"
	"time"

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

const selectPrograms = `
    SELECT id_for::text, nome_formacao, COALESCE(descricao, ''),
           to_char(data_inicio, 'YYYY-MM-DD'), to_char(data_fim, 'YYYY-MM-DD'), estado
    FROM formacoes
`

func (s *Store) List(ctx context.Context) ([]Program, error) {
	rows, err := s.DB.Query(ctx, selectPrograms+" ORDER BY data_inicio DESC, id_for")
	if err != nil {
		return nil, errors.Wrap(err, "query trainings")
	}
	defer rows.Close()

	programs := []Program{}
	index := map[string]int{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(programs)
		programs = append(programs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(programs) == 0 {
		return programs, nil
	}

	ids := make([]string, 0, len(programs))
	for _, p := range programs {
		ids = append(ids, p.ID)
	}
	enrolled, err := s.enrolled(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, employees := range enrolled {
		programs[index[id]].EnrolledEmployeeIDs = employees
	}
	return programs, nil
}

func (s *Store) Get(ctx context.Context, id int64) (Program, error) {
	p, err := scanProgram(s.DB.QueryRow(ctx, selectPrograms+" WHERE id_for = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Program{}, ErrNotFound
	}
	if err != nil {
		return Program{}, err
	}
	enrolled, err := s.enrolled(ctx, []string{p.ID})
	if err != nil {
		return Program{}, err
	}
	if ids, ok := enrolled[p.ID]; ok {
		p.EnrolledEmployeeIDs = ids
	}
	return p, nil
}

func scanProgram(row pgx.Row) (Program, error) {
	p := Program{Provider: DefaultProvider, EnrolledEmployeeIDs: []string{}}
	var status string
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.StartDate, &p.EndDate, &status); err != nil {
		return Program{}, err
	}
	p.Status = StatusFromStore(status)
	return p, nil
}

// enrolled maps each training id to its participants' ids.
func (s *Store) enrolled(ctx context.Context, trainingIDs []string) (map[string][]string, error) {
	keys := make([]int64, 0, len(trainingIDs))
	for _, id := range trainingIDs {
		v, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "training id %q", id)
		}
		keys = append(keys, v)
	}

	rows, err := s.DB.Query(ctx, `
    SELECT id_for::text, id_fun::text
    FROM teve_formacao
    WHERE id_for = ANY($1)
    ORDER BY id_for, id_fun
  `, keys)
	if err != nil {
		return nil, errors.Wrap(err, "query enrollments")
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var trainingID, employeeID string
		if err := rows.Scan(&trainingID, &employeeID); err != nil {
			return nil, err
		}
		out[trainingID] = append(out[trainingID], employeeID)
	}
	return out, rows.Err()
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Attendance, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT f.id_for::text, f.nome_formacao,
           to_char(COALESCE(t.data_inicio, f.data_inicio), 'YYYY-MM-DD'),
           to_char(COALESCE(t.data_fim, f.data_fim), 'YYYY-MM-DD'),
           f.estado, COALESCE(t.certificado, '')
    FROM teve_formacao t
    JOIN formacoes f ON f.id_for = t.id_for
    WHERE t.id_fun = $1
    ORDER BY COALESCE(t.data_inicio, f.data_inicio) DESC
  `, employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "query employee trainings")
	}
	defer rows.Close()

	out := []Attendance{}
	for rows.Next() {
		a := Attendance{Provider: DefaultProvider}
		var status string
		if err := rows.Scan(&a.ID, &a.Title, &a.StartDate, &a.EndDate, &status, &a.Certificate); err != nil {
			return nil, err
		}
		a.Status = StatusFromStore(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Enroll adds the employee to the training using the training's own dates.
// It reports whether a new attendance row was written.
func (s *Store) Enroll(ctx context.Context, trainingID, employeeID int64) (bool, error) {
	var added bool
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var start, end time.Time
		err := tx.QueryRow(ctx, "SELECT data_inicio, data_fim FROM formacoes WHERE id_for = $1", trainingID).Scan(&start, &end)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "load training dates")
		}

		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE id_fun = $1)", employeeID).Scan(&exists); err != nil {
			return errors.Wrap(err, "check employee")
		}
		if !exists {
			return ErrEmployeeNotFound
		}

		tag, err := tx.Exec(ctx, `
      INSERT INTO teve_formacao (id_fun, id_for, data_inicio, data_fim)
      VALUES ($1, $2, $3, $4)
      ON CONFLICT ON CONSTRAINT teve_formacao_unique DO NOTHING
    `, employeeID, trainingID, start, end)
		if err != nil {
			return errors.Wrap(err, "insert enrollment")
		}
		added = tag.RowsAffected() > 0
		return nil
	})
	return added, err
}

func (s *Store) RemoveParticipant(ctx context.Context, trainingID, employeeID int64) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM formacoes WHERE id_for = $1)", trainingID).Scan(&exists); err != nil {
			return errors.Wrap(err, "check training")
		}
		if !exists {
			return ErrNotFound
		}
		tag, err := tx.Exec(ctx, "DELETE FROM teve_formacao WHERE id_for = $1 AND id_fun = $2", trainingID, employeeID)
		if err != nil {
			return errors.Wrap(err, "delete enrollment")
		}
		if tag.RowsAffected() == 0 {
			return ErrNotEnrolled
		}
		return nil
	})
}
