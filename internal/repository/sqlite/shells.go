package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

// ListShells returns all shells ordered by lookup key, nested submodels included
func (r *Repository) ListShells(ctx context.Context) ([]domain.ShellDescriptor, error) {
	var shells []domain.ShellDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT `+shellColumns+` FROM shells ORDER BY id_key`)
		if err != nil {
			return fmt.Errorf("failed to query shells: %w", err)
		}
		defer rows.Close()

		var pks []int64
		for rows.Next() {
			var row shellRow
			if err := rows.Scan(row.scanArgs()...); err != nil {
				return fmt.Errorf("failed to scan shell: %w", err)
			}
			shell, err := row.toDomain()
			if err != nil {
				return fmt.Errorf("shell %q: %w", row.ID, err)
			}
			shells = append(shells, *shell)
			pks = append(pks, row.PK)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating shells: %w", err)
		}
		rows.Close()

		nested, err := loadAllNested(ctx, tx)
		if err != nil {
			return err
		}
		for i, pk := range pks {
			shells[i].SubmodelDescriptors = nested[pk]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if shells == nil {
		shells = []domain.ShellDescriptor{}
	}
	return shells, nil
}

// GetShell returns the shell with the given id. A blank id is reported as
// not found.
func (r *Repository) GetShell(ctx context.Context, id string) (*domain.ShellDescriptor, error) {
	if repository.ValidateShellID(id) != nil {
		return nil, repository.NewShellNotFoundError(id)
	}

	var shell *domain.ShellDescriptor
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		row, err := r.findShell(ctx, tx, id)
		if err != nil {
			return err
		}
		shell, err = loadShell(ctx, tx, row)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shell, nil
}

// CreateShell persists the shell and cascades its nested submodels
func (r *Repository) CreateShell(ctx context.Context, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	if err := repository.ValidateShell(shell, r.match); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		_, err := r.findShell(ctx, tx, shell.ID())
		switch {
		case err == nil:
			return repository.NewShellExistsError(shell.ID())
		case !repository.IsNotFound(err):
			return err
		}

		args, err := shellWriteArgs(r.match.Key(shell.ID()), shell)
		if err != nil {
			return fmt.Errorf("shell %q: %w", shell.ID(), err)
		}
		ts := now()
		res, err := tx.ExecContext(ctx, `
			INSERT INTO shells (id_key, id, id_type, id_short, descriptions, display_names,
				endpoints, global_asset_id, specific_asset_ids, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, append(args, ts, ts)...)
		if err != nil {
			return fmt.Errorf("failed to insert shell: %w", err)
		}
		pk, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read shell key: %w", err)
		}

		return r.insertNested(ctx, tx, pk, shell.SubmodelDescriptors)
	})
	if err != nil {
		return nil, err
	}

	cp := shell.Clone()
	return &cp, nil
}

// UpdateShell rebuilds the row stored under id from shell and replaces the
// nested collection. The descriptor's own id must refer to the same shell;
// identifiers are immutable.
func (r *Repository) UpdateShell(ctx context.Context, id string, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	if err := repository.ValidateShellUpdate(id, shell, r.match); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		current, err := r.findShell(ctx, tx, id)
		if err != nil {
			return err
		}
		if !r.match.Same(id, shell.ID()) {
			if _, err := r.findShell(ctx, tx, shell.ID()); err != nil {
				return err
			}
			return repository.NewInvalidArgumentError("shell %q cannot be replaced by descriptor of shell %q", id, shell.ID())
		}

		args, err := shellWriteArgs(r.match.Key(shell.ID()), shell)
		if err != nil {
			return fmt.Errorf("shell %q: %w", shell.ID(), err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE shells SET id_key = ?, id = ?, id_type = ?, id_short = ?, descriptions = ?,
				display_names = ?, endpoints = ?, global_asset_id = ?, specific_asset_ids = ?,
				updated_at = ?
			WHERE pk = ?
		`, append(args, now(), current.PK)...); err != nil {
			return fmt.Errorf("failed to update shell: %w", err)
		}

		if err := deleteNested(ctx, tx, current.PK); err != nil {
			return err
		}
		return r.insertNested(ctx, tx, current.PK, shell.SubmodelDescriptors)
	})
	if err != nil {
		return nil, err
	}

	cp := shell.Clone()
	return &cp, nil
}

// DeleteShell removes the shell; its nested submodel rows go with it through
// the foreign key cascade.
func (r *Repository) DeleteShell(ctx context.Context, id string) error {
	if err := repository.ValidateShellID(id); err != nil {
		return err
	}

	return r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM shells WHERE id_key = ?`, r.match.Key(id))
		if err != nil {
			return fmt.Errorf("failed to delete shell: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if n == 0 {
			return repository.NewShellNotFoundError(id)
		}
		return nil
	})
}

// ============================================================================
// Shell helpers
// ============================================================================

// findShell loads the shell row for id or returns a not-found error
func (r *Repository) findShell(ctx context.Context, tx *sql.Tx, id string) (*shellRow, error) {
	var row shellRow
	err := tx.QueryRowContext(ctx,
		`SELECT `+shellColumns+` FROM shells WHERE id_key = ?`, r.match.Key(id),
	).Scan(row.scanArgs()...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.NewShellNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shell: %w", err)
	}
	return &row, nil
}

// loadShell converts row and attaches its nested submodels
func loadShell(ctx context.Context, tx *sql.Tx, row *shellRow) (*domain.ShellDescriptor, error) {
	shell, err := row.toDomain()
	if err != nil {
		return nil, fmt.Errorf("shell %q: %w", row.ID, err)
	}
	nested, err := loadNested(ctx, tx, row.PK)
	if err != nil {
		return nil, err
	}
	shell.SubmodelDescriptors = nested
	return shell, nil
}
