package evaluations

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const selectEvaluations = `
    SELECT a.id_aval::text, a.id_fun::text, s.primeiro_nome || ' ' || s.ultimo_nome,
           to_char(a.data, 'YYYY-MM-DD'), a.avaliacao_numerica::float8,
           COALESCE(a.id_avaliador::text, ''),
           COALESCE(r.primeiro_nome || ' ' || r.ultimo_nome, ''),
           COALESCE(a.criterios, ''), COALESCE(a.autoavaliacao, '')
    FROM avaliacoes a
    JOIN funcionarios s ON s.id_fun = a.id_fun
    LEFT JOIN funcionarios r ON r.id_fun = a.id_avaliador
`

func (s *Store) List(ctx context.Context) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, selectEvaluations+" ORDER BY a.data DESC, a.id_aval DESC")
	if err != nil {
		return nil, errors.Wrap(err, "query evaluations")
	}
	return scanEvaluations(rows)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID int64) ([]Evaluation, error) {
	rows, err := s.DB.Query(ctx, selectEvaluations+" WHERE a.id_fun = $1 ORDER BY a.data DESC, a.id_aval DESC", employeeID)
	if err != nil {
		return nil, errors.Wrap(err, "query employee evaluations")
	}
	return scanEvaluations(rows)
}

func scanEvaluations(rows pgx.Rows) ([]Evaluation, error) {
	defer rows.Close()

	out := []Evaluation{}
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.Date, &e.Score,
			&e.ReviewerID, &e.Reviewer, &e.Comments, &e.SelfEvaluation); err != nil {
			return nil, errors.Wrap(err, "scan evaluation")
		}
		e.Type = TypeFor(e.EmployeeID, e.ReviewerID)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID int64) (bool, error) {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE id_fun = $1)", employeeID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check employee")
	}
	return exists, nil
}

func (s *Store) Create(ctx context.Context, in NewEvaluation) (int64, error) {
	var id int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO avaliacoes (id_fun, id_avaliador, data, avaliacao_numerica, criterios, autoavaliacao)
    VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
    RETURNING id_aval
  `, in.EmployeeID, in.ReviewerID, in.Date, in.Score, in.Comments, in.SelfEvaluation).Scan(&id); err != nil {
		return 0, errors.Wrap(err, "insert evaluation")
	}
	return id, nil
}
