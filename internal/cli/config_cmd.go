package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aasregistry/internal/config"
	registrylog "aasregistry/internal/log"
	"aasregistry/internal/repository"
)

func (a *App) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Show or create the configuration file",
		Annotations: map[string]string{annotationNoRepo: "true"},
	}
	cmd.AddCommand(a.configShowCommand(), a.configInitCommand())
	return cmd
}

func (a *App) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the effective configuration",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoRepo: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfgPath
			if path == "" {
				path = "(defaults)"
			}
			_, err := fmt.Fprintf(a.out, "Config: %s\n%s\n", path, a.cfg.Summary())
			return err
		},
	}
}

func (a *App) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a new config file",
		Long: `Write the effective configuration, defaults plus any flags given, to a
config file. The file goes to the given path, or to ` + config.DefaultConfigPath() + `.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{annotationNoRepo: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return repository.NewInvalidArgumentError("%s already exists (use --force to overwrite)", path)
			}
			if err := a.cfg.Save(path); err != nil {
				return err
			}

			registrylog.FromContext(cmd.Context()).Info("config written", "path", path)
			_, err := fmt.Fprintf(a.out, "wrote %s\n", path)
			return err
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
