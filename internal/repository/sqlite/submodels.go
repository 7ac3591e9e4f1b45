package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

// ============================================================================
// Nested submodels
// ============================================================================

func (r *Repository) ListShellSubmodels(ctx context.Context, shellID string) ([]domain.SubmodelDescriptor, error) {
	if err := repository.ValidateShellID(shellID); err != nil {
		return nil, err
	}

	var nested []domain.SubmodelDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		shell, err := r.findShell(ctx, tx, shellID)
		if err != nil {
			return err
		}
		nested, err = loadNested(ctx, tx, shell.PK)
		return err
	})
	if err != nil {
		return nil, err
	}
	if nested == nil {
		nested = []domain.SubmodelDescriptor{}
	}
	return nested, nil
}

func (r *Repository) GetShellSubmodel(ctx context.Context, shellID, submodelID string) (*domain.SubmodelDescriptor, error) {
	if err := validatePair(shellID, submodelID); err != nil {
		return nil, err
	}

	var sm *domain.SubmodelDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		shell, err := r.findShell(ctx, tx, shellID)
		if err != nil {
			return err
		}

		var row submodelRow
		err = tx.QueryRowContext(ctx, `
			SELECT `+submodelColumns+` FROM submodels
			WHERE shell_pk = ? AND standalone = 0 AND id_key = ?
		`, shell.PK, r.match.Key(submodelID)).Scan(row.scanArgs()...)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.NewNotFoundInShellError(shell.ID, submodelID)
		}
		if err != nil {
			return fmt.Errorf("failed to query submodel: %w", err)
		}

		sm, err = row.toDomain()
		if err != nil {
			return fmt.Errorf("submodel %q: %w", row.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// AddShellSubmodel appends submodel to the shell's nested collection
func (r *Repository) AddShellSubmodel(ctx context.Context, shellID string, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateShellID(shellID); err != nil {
		return nil, err
	}
	if err := repository.ValidateSubmodel(submodel); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		shell, err := r.findShell(ctx, tx, shellID)
		if err != nil {
			return err
		}

		var count, next int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(CASE WHEN id_key = ? THEN 1 END), COALESCE(MAX(position) + 1, 0)
			FROM submodels WHERE shell_pk = ? AND standalone = 0
		`, r.match.Key(submodel.ID()), shell.PK).Scan(&count, &next); err != nil {
			return fmt.Errorf("failed to query nested submodels: %w", err)
		}
		if count > 0 {
			return repository.NewNestedSubmodelExistsError(shell.ID, submodel.ID())
		}

		if err := r.insertSubmodel(ctx, tx, sql.NullInt64{Int64: shell.PK, Valid: true}, next, submodel); err != nil {
			return err
		}
		return touchShell(ctx, tx, shell.PK)
	})
	if err != nil {
		return nil, err
	}

	cp := submodel.Clone()
	return &cp, nil
}

// DeleteShellSubmodel removes a submodel from the shell's nested collection.
// The remaining collection is written back in order, replacing the old rows.
func (r *Repository) DeleteShellSubmodel(ctx context.Context, shellID, submodelID string) error {
	if err := validatePair(shellID, submodelID); err != nil {
		return err
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		row, err := r.findShell(ctx, tx, shellID)
		if err != nil {
			return err
		}
		shell, err := loadShell(ctx, tx, row)
		if err != nil {
			return err
		}

		i := shell.FindSubmodel(submodelID, r.match)
		if i < 0 {
			return repository.NewNotFoundInShellError(shell.ID(), submodelID)
		}
		shell.RemoveSubmodel(i)

		if err := deleteNested(ctx, tx, row.PK); err != nil {
			return err
		}
		if err := r.insertNested(ctx, tx, row.PK, shell.SubmodelDescriptors); err != nil {
			return err
		}
		return touchShell(ctx, tx, row.PK)
	})
}

// ============================================================================
// Standalone submodels
// ============================================================================

// ListSubmodels returns the standalone submodels ordered by lookup key
func (r *Repository) ListSubmodels(ctx context.Context) ([]domain.SubmodelDescriptor, error) {
	var out []domain.SubmodelDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT `+submodelColumns+` FROM submodels WHERE standalone = 1 ORDER BY id_key`)
		if err != nil {
			return fmt.Errorf("failed to query submodels: %w", err)
		}
		defer rows.Close()

		out, err = scanSubmodels(rows, true, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.SubmodelDescriptor{}
	}
	return out, nil
}

func (r *Repository) GetSubmodel(ctx context.Context, id string) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateSubmodelID(id); err != nil {
		return nil, err
	}

	var sm *domain.SubmodelDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		row, err := r.findStandalone(ctx, tx, id)
		if err != nil {
			return err
		}
		sm, err = row.toDomain()
		if err != nil {
			return fmt.Errorf("submodel %q: %w", row.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// AddSubmodel stores a standalone submodel
func (r *Repository) AddSubmodel(ctx context.Context, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateSubmodel(submodel); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := r.findStandalone(ctx, tx, submodel.ID())
		switch {
		case err == nil:
			return repository.NewSubmodelExistsError(submodel.ID())
		case !repository.IsNotFound(err):
			return err
		}
		return r.insertSubmodel(ctx, tx, sql.NullInt64{}, 0, submodel)
	})
	if err != nil {
		return nil, err
	}

	cp := submodel.Clone()
	return &cp, nil
}

// DeleteSubmodel removes a standalone submodel. Nested rows with the same id
// are not touched.
func (r *Repository) DeleteSubmodel(ctx context.Context, id string) error {
	if err := repository.ValidateSubmodelID(id); err != nil {
		return err
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM submodels WHERE standalone = 1 AND id_key = ?`, r.match.Key(id))
		if err != nil {
			return fmt.Errorf("failed to delete submodel: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return repository.NewSubmodelNotFoundError(id)
		}
		return nil
	})
}

// ============================================================================
// Submodel helpers
// ============================================================================

// findStandalone loads the standalone row for id or returns a not-found error
func (r *Repository) findStandalone(ctx context.Context, tx *sql.Tx, id string) (*submodelRow, error) {
	var row submodelRow
	err := tx.QueryRowContext(ctx,
		`SELECT `+submodelColumns+` FROM submodels WHERE standalone = 1 AND id_key = ?`, r.match.Key(id),
	).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NewSubmodelNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query submodel: %w", err)
	}
	if err := row.checkPlacement(true); err != nil {
		return nil, err
	}
	return &row, nil
}

// insertSubmodel writes one row; an invalid shellPK makes it standalone
func (r *Repository) insertSubmodel(ctx context.Context, tx *sql.Tx, shellPK sql.NullInt64, position int, sm *domain.SubmodelDescriptor) error {
	args, err := submodelWriteArgs(shellPK, position, r.match.Key(sm.ID()), sm)
	if err != nil {
		return fmt.Errorf("submodel %q: %w", sm.ID(), err)
	}
	ts := now()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO submodels (shell_pk, standalone, position, id_key, id, id_type, id_short,
			descriptions, display_names, endpoints, semantic_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, append(args, ts, ts)...); err != nil {
		return fmt.Errorf("failed to insert submodel: %w", err)
	}
	return nil
}

// insertNested writes the nested collection of a shell in order
func (r *Repository) insertNested(ctx context.Context, tx *sql.Tx, shellPK int64, submodels []domain.SubmodelDescriptor) error {
	owner := sql.NullInt64{Int64: shellPK, Valid: true}
	for i := range submodels {
		if err := r.insertSubmodel(ctx, tx, owner, i, &submodels[i]); err != nil {
			return err
		}
	}
	return nil
}

// deleteNested removes every nested row of a shell
func deleteNested(ctx context.Context, tx *sql.Tx, shellPK int64) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM submodels WHERE shell_pk = ? AND standalone = 0`, shellPK); err != nil {
		return fmt.Errorf("failed to delete nested submodels: %w", err)
	}
	return nil
}

// touchShell bumps a shell's updated_at after its collection changed
func touchShell(ctx context.Context, tx *sql.Tx, shellPK int64) error {
	if _, err := tx.ExecContext(ctx, `UPDATE shells SET updated_at = ? WHERE pk = ?`, now(), shellPK); err != nil {
		return fmt.Errorf("failed to update shell: %w", err)
	}
	return nil
}

// loadNested returns the nested submodels of one shell in order
func loadNested(ctx context.Context, tx *sql.Tx, shellPK int64) ([]domain.SubmodelDescriptor, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT `+submodelColumns+` FROM submodels
		WHERE shell_pk = ? AND standalone = 0
		ORDER BY position, pk
	`, shellPK)
	if err != nil {
		return nil, fmt.Errorf("failed to query nested submodels: %w", err)
	}
	defer rows.Close()

	return scanSubmodels(rows, false, nil)
}

// loadAllNested returns the nested submodels of every shell keyed by shell pk
func loadAllNested(ctx context.Context, tx *sql.Tx) (map[int64][]domain.SubmodelDescriptor, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT `+submodelColumns+` FROM submodels
		WHERE standalone = 0
		ORDER BY shell_pk, position, pk
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nested submodels: %w", err)
	}
	defer rows.Close()

	nested := make(map[int64][]domain.SubmodelDescriptor)
	_, err = scanSubmodels(rows, false, func(row *submodelRow, sm *domain.SubmodelDescriptor) {
		nested[row.ShellPK.Int64] = append(nested[row.ShellPK.Int64], *sm)
	})
	if err != nil {
		return nil, err
	}
	return nested, nil
}

// scanSubmodels converts every row, each of which must have the given
// placement. When visit is set rows are handed to it instead of being collected.
func scanSubmodels(rows *sql.Rows, standalone bool, visit func(*submodelRow, *domain.SubmodelDescriptor)) ([]domain.SubmodelDescriptor, error) {
	var out []domain.SubmodelDescriptor
	for rows.Next() {
		var row submodelRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan submodel: %w", err)
		}
		if err := row.checkPlacement(standalone); err != nil {
			return nil, err
		}
		sm, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("submodel %q: %w", row.ID, err)
		}
		if visit != nil {
			visit(&row, sm)
			continue
		}
		out = append(out, *sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submodels: %w", err)
	}
	return out, nil
}

func validatePair(shellID, submodelID string) error {
	if err := repository.ValidateShellID(shellID); err != nil {
		return err
	}
	return repository.ValidateSubmodelID(submodelID)
}
