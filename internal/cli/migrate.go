package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aasregistry/internal/config"
	"aasregistry/internal/domain"
	registrylog "aasregistry/internal/log"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/sqlite"
)

func (a *App) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "migrate",
		Short:       "Apply pending SQLite schema migrations and print the schema version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoRepo: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !strings.EqualFold(a.cfg.Backend, config.BackendSQLite) {
				return repository.NewInvalidArgumentError("migrate requires the sqlite backend, configured backend is %q", a.cfg.Backend)
			}

			match, err := domain.ParseIDMatch(a.cfg.IDMatch)
			if err != nil {
				return repository.NewInvalidArgumentError("id_match: %v", err)
			}

			// Opening the database applies pending migrations.
			db, err := sqlite.New(a.cfg.Database.Path, sqlite.WithIDMatch(match))
			if err != nil {
				return err
			}
			defer db.Close()

			version, dirty, err := db.SchemaVersion()
			if err != nil {
				return err
			}
			registrylog.FromContext(cmd.Context()).Info("schema migrated",
				"path", a.cfg.Database.Path, "version", version, "dirty", dirty)

			state := "clean"
			if dirty {
				state = "dirty"
			}
			_, err = fmt.Fprintf(a.out, "schema version %d (%s)\n", version, state)
			return err
		},
	}
}
