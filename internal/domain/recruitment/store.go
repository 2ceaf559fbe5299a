package recruitment

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

const selectJobs = `
    SELECT v.id_vaga, d.nome, v.id_depart::text, v.estado, to_char(v.data_abertura, 'YYYY-MM-DD'),
           (SELECT COUNT(1) FROM candidato_a ca WHERE ca.id_vaga = v.id_vaga)
    FROM vagas v
    JOIN departamentos d ON d.id_depart = v.id_depart
`

func scanJob(row pgx.Row) (Job, int64, error) {
	var (
		j      Job
		id     int64
		status string
	)
	if err := row.Scan(&id, &j.Department, &j.DepartmentID, &status, &j.OpenDate, &j.CandidateCount); err != nil {
		return Job{}, 0, err
	}
	j.ID = formatID(id)
	j.Title = j.Department
	j.Description = JobDescription(j.Department)
	j.Status = JobStatusFromStore(status)
	j.Requirements = []string{}
	return j, id, nil
}

func (s *Store) ListJobs(ctx context.Context) ([]Job, error) {
	rows, err := s.DB.Query(ctx, selectJobs+" ORDER BY v.data_abertura DESC, v.id_vaga")
	if err != nil {
		return nil, errors.Wrap(err, "query jobs")
	}
	defer rows.Close()

	jobs := []Job{}
	ids := []int64{}
	for rows.Next() {
		j, id, err := scanJob(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan job")
		}
		jobs = append(jobs, j)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reqs, err := s.requirements(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		if r, ok := reqs[id]; ok {
			jobs[i].Requirements = r
		}
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id int64) (Job, error) {
	j, _, err := scanJob(s.DB.QueryRow(ctx, selectJobs+" WHERE v.id_vaga = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrJobNotFound
	}
	if err != nil {
		return Job{}, errors.Wrap(err, "query job")
	}
	reqs, err := s.requirements(ctx, []int64{id})
	if err != nil {
		return Job{}, err
	}
	if r, ok := reqs[id]; ok {
		j.Requirements = r
	}
	return j, nil
}

func (s *Store) requirements(ctx context.Context, jobIDs []int64) (map[int64][]string, error) {
	out := map[int64][]string{}
	if len(jobIDs) == 0 {
		return out, nil
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id_vaga, requisito
    FROM requisitos_vaga
    WHERE id_vaga = ANY($1)
    ORDER BY id_vaga, requisito
  `, jobIDs)
	if err != nil {
		return nil, errors.Wrap(err, "query requirements")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int64
			req string
		)
		if err := rows.Scan(&id, &req); err != nil {
			return nil, err
		}
		out[id] = append(out[id], req)
	}
	return out, rows.Err()
}

// CloseJob moves an open job to closed.
func (s *Store) CloseJob(ctx context.Context, id int64) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, "SELECT estado FROM vagas WHERE id_vaga = $1 FOR UPDATE", id).Scan(&status)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrJobNotFound
		}
		if err != nil {
			return errors.Wrap(err, "lock job")
		}
		if JobStatusFromStore(status) != JobOpen {
			return ErrJobNotOpen
		}
		closed, _ := JobClosed.StoreValue()
		if _, err := tx.Exec(ctx, "UPDATE vagas SET estado = $2 WHERE id_vaga = $1", id, closed); err != nil {
			return errors.Wrap(err, "close job")
		}
		return nil
	})
}

const selectCandidates = `
    SELECT c.id_cand::text, c.nome, c.email, COALESCE(c.telemovel, ''),
           COALESCE(ca.id_vaga::text, ''), COALESCE(d.nome, ''), COALESCE(ca.estado, ''),
           COALESCE(to_char(ca.data_cand, 'YYYY-MM-DD'), ''), ca.id_recrutador::text,
           COALESCE(r.primeiro_nome || ' ' || r.ultimo_nome, '')
    FROM candidatos c
    LEFT JOIN candidato_a ca ON ca.id_cand = c.id_cand
    LEFT JOIN vagas v ON v.id_vaga = ca.id_vaga
    LEFT JOIN departamentos d ON d.id_depart = v.id_depart
    LEFT JOIN funcionarios r ON r.id_fun = ca.id_recrutador
`

func (s *Store) ListCandidates(ctx context.Context) ([]Candidate, error) {
	return s.queryCandidates(ctx, selectCandidates+" ORDER BY c.nome, c.id_cand, ca.id_vaga")
}

func (s *Store) ListCandidatesByJob(ctx context.Context, jobID int64) ([]Candidate, error) {
	var exists bool
	if err := s.DB.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM vagas WHERE id_vaga = $1)", jobID).Scan(&exists); err != nil {
		return nil, errors.Wrap(err, "check job")
	}
	if !exists {
		return nil, ErrJobNotFound
	}
	return s.queryCandidates(ctx, selectCandidates+" WHERE ca.id_vaga = $1 ORDER BY ca.data_cand DESC, c.nome", jobID)
}

func (s *Store) GetCandidate(ctx context.Context, candidateID, jobID int64) (Candidate, error) {
	list, err := s.queryCandidates(ctx, selectCandidates+" WHERE c.id_cand = $1 AND ca.id_vaga = $2", candidateID, jobID)
	if err != nil {
		return Candidate{}, err
	}
	if len(list) == 0 {
		return Candidate{}, ErrApplicationNotFound
	}
	return list[0], nil
}

func (s *Store) queryCandidates(ctx context.Context, query string, args ...any) ([]Candidate, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query candidates")
	}
	defer rows.Close()

	out := []Candidate{}
	for rows.Next() {
		var (
			c      Candidate
			status string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.JobID, &c.JobTitle, &status,
			&c.AppliedDate, &c.RecruiterID, &c.RecruiterName); err != nil {
			return nil, errors.Wrap(err, "scan candidate")
		}
		c.Status = CandidateStatusFromStore(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateApplication writes the status and recruiter of one (candidate, job)
// pair. storeStatus is empty when the status is unchanged.
func (s *Store) UpdateApplication(ctx context.Context, candidateID, jobID int64, storeStatus string, upd CandidateUpdate) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if upd.RecruiterID != nil {
			var exists bool
			if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE id_fun = $1)", *upd.RecruiterID).Scan(&exists); err != nil {
				return errors.Wrap(err, "check recruiter")
			}
			if !exists {
				return ErrRecruiterNotFound
			}
		}
		tag, err := tx.Exec(ctx, `
      UPDATE candidato_a
      SET estado = COALESCE(NULLIF($3, ''), estado),
          id_recrutador = CASE WHEN $5 THEN NULL ELSE COALESCE($4, id_recrutador) END
      WHERE id_cand = $1 AND id_vaga = $2
    `, candidateID, jobID, storeStatus, upd.RecruiterID, upd.ClearRecruiter)
		if err != nil {
			return errors.Wrap(err, "update application")
		}
		if tag.RowsAffected() == 0 {
			return ErrApplicationNotFound
		}
		return nil
	})
}
