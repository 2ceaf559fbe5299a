package employees

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"hrpro/internal/platform/db"
)

// Create hires an employee in one transaction: profile row, admission entry
// in the job history and, when a gross salary is given, the first
// remuneration period with its salary row.
func (s *Store) Create(ctx context.Context, in NewEmployee, netSalary float64) (int64, error) {
	var id int64
	err := db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		// Serialises id assignment between concurrent hires.
		if _, err := tx.Exec(ctx, "LOCK TABLE funcionarios IN SHARE ROW EXCLUSIVE MODE"); err != nil {
			return errors.Wrap(err, "lock employees")
		}
		if err := checkUnique(ctx, tx, 0, in.NIF, in.Email); err != nil {
			return err
		}
		deptID, err := resolveDepartment(ctx, tx, in.DepartmentID, in.DepartmentName)
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, "SELECT COALESCE(MAX(id_fun), 0) + 1 FROM funcionarios").Scan(&id); err != nil {
			return errors.Wrap(err, "next employee id")
		}

		if _, err := tx.Exec(ctx, `
      INSERT INTO funcionarios (id_fun, nif, primeiro_nome, ultimo_nome, email, num_telemovel,
        nome_rua, nome_localidade, codigo_postal, data_nascimento, cargo, id_depart)
      VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12)
    `, id, in.NIF, in.FirstName, in.LastName, in.Email, in.Phone,
			in.Street, in.Locality, in.PostalCode, in.BirthDate, in.Role, deptID); err != nil {
			return mapWriteError(err)
		}

		admission := dateOnly(in.AdmissionDate)
		if _, err := tx.Exec(ctx, `
      INSERT INTO historico_empresas (id_fun, nome_empresa, cargo, data_inicio)
      VALUES ($1, $2, $3, $4)
    `, id, s.Employer, in.Role, admission); err != nil {
			return errors.Wrap(err, "insert admission")
		}

		if in.BaseSalaryGross == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, "INSERT INTO remuneracoes (id_fun, data_inicio) VALUES ($1, $2)", id, admission); err != nil {
			return errors.Wrap(err, "insert remuneration")
		}
		if _, err := tx.Exec(ctx, `
      INSERT INTO salario (id_fun, data_inicio, salario_bruto, salario_liquido)
      VALUES ($1, $2, $3, $4)
    `, id, admission, *in.BaseSalaryGross, netSalary); err != nil {
			return errors.Wrap(err, "insert salary")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, ch Changes) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, "SELECT id_fun FROM funcionarios WHERE id_fun = $1 FOR UPDATE", id).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "lock employee")
		}
		if err := checkUnique(ctx, tx, id, "", ch.Email); err != nil {
			return err
		}
		deptID, err := resolveDepartment(ctx, tx, ch.DepartmentID, ch.DepartmentName)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
      UPDATE funcionarios
      SET primeiro_nome = $2, ultimo_nome = $3, email = $4, num_telemovel = $5,
          nome_rua = NULLIF($6, ''), nome_localidade = NULLIF($7, ''), codigo_postal = NULLIF($8, ''),
          cargo = $9, id_depart = $10
      WHERE id_fun = $1
    `, id, ch.FirstName, ch.LastName, ch.Email, ch.Phone,
			ch.Street, ch.Locality, ch.PostalCode, ch.Role, deptID); err != nil {
			return mapWriteError(err)
		}
		return nil
	})
}

// Delete clears department manager references to the employee before
// removing the row; owned rows cascade.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, s.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "UPDATE departamentos SET id_gerente = NULL WHERE id_gerente = $1", id); err != nil {
			return errors.Wrap(err, "clear manager references")
		}
		tag, err := tx.Exec(ctx, "DELETE FROM funcionarios WHERE id_fun = $1", id)
		if err != nil {
			return errors.Wrap(err, "delete employee")
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// checkUnique rejects a NIF or email already used by an employee other than
// self. Empty values are not checked.
func checkUnique(ctx context.Context, tx pgx.Tx, self int64, nif, email string) error {
	if nif != "" {
		var taken bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE nif = $1 AND id_fun <> $2)", nif, self).Scan(&taken); err != nil {
			return errors.Wrap(err, "check nif")
		}
		if taken {
			return ErrNIFExists
		}
	}
	if email != "" {
		var taken bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM funcionarios WHERE lower(email) = lower($1) AND id_fun <> $2)", email, self).Scan(&taken); err != nil {
			return errors.Wrap(err, "check email")
		}
		if taken {
			return ErrEmailExists
		}
	}
	return nil
}

func resolveDepartment(ctx context.Context, tx pgx.Tx, id int64, name string) (int64, error) {
	var resolved int64
	var err error
	if id > 0 {
		err = tx.QueryRow(ctx, "SELECT id_depart FROM departamentos WHERE id_depart = $1", id).Scan(&resolved)
	} else {
		err = tx.QueryRow(ctx, "SELECT id_depart FROM departamentos WHERE lower(nome) = lower($1)", name).Scan(&resolved)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrInvalidDepartment
	}
	if err != nil {
		return 0, errors.Wrap(err, "resolve department")
	}
	return resolved, nil
}

// mapWriteError turns constraint violations that slipped past the pre-checks
// into domain errors.
func mapWriteError(err error) error {
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case "funcionarios_nif_unique":
			return ErrNIFExists
		case "funcionarios_email_unique":
			return ErrEmailExists
		}
	}
	if _, ok := db.ForeignKeyViolation(err); ok {
		return ErrInvalidDepartment
	}
	return errors.Wrap(err, "write employee")
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
