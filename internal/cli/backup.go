package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aasregistry/internal/backup"
	"aasregistry/internal/codec"
	registrylog "aasregistry/internal/log"
)

func (a *App) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the whole registry",
	}
	cmd.AddCommand(a.backupExportCommand(), a.backupImportCommand())
	return cmd
}

func (a *App) backupExportCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export [-f <file>]",
		Short: "Write every shell and standalone submodel to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := backup.Export(cmd.Context(), a.repo)
			if err != nil {
				return err
			}

			if file == "" || file == "-" {
				return a.print(doc)
			}

			f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("create %s: %w", file, err)
			}
			exporter := codec.ForPath(file).(codec.Exporter)
			if err := exporter.Export(doc, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("write %s: %w", file, err)
			}

			registrylog.FromContext(cmd.Context()).Info("registry exported",
				"path", file, "shells", len(doc.Shells), "submodels", len(doc.Submodels))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "output file, format from extension (default stdout)")
	return cmd
}

func (a *App) backupImportCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import -f <file>",
		Short: "Create every shell and standalone submodel listed in a backup file",
		Long: `Create every shell and standalone submodel listed in a backup file.

Import stops at the first entry that cannot be created, for example because
it already exists. Entries created before that point are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var doc codec.Document
			if err := a.readFile(file, &doc); err != nil {
				return err
			}

			res, err := backup.Import(cmd.Context(), a.repo, &doc)
			registrylog.FromContext(cmd.Context()).Info("registry imported",
				"shells", res.Shells, "submodels", res.Submodels, "complete", err == nil)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.out, "imported %d shells and %d submodels\n", res.Shells, res.Submodels)
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "backup file (- for stdin)")
	return cmd
}
