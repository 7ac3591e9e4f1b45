package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"aasregistry/internal/domain"
	registrylog "aasregistry/internal/log"
)

func (a *App) shellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Manage shell descriptors",
	}
	cmd.AddCommand(
		a.shellListCommand(),
		a.shellGetCommand(),
		a.shellCreateCommand(),
		a.shellUpdateCommand(),
		a.shellDeleteCommand(),
	)
	return cmd
}

func (a *App) shellListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all shell descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			shells, err := a.repo.ListShells(cmd.Context())
			if err != nil {
				return err
			}
			if shells == nil {
				shells = []domain.ShellDescriptor{}
			}
			return a.print(shells)
		},
	}
}

func (a *App) shellGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <shell-id>",
		Short: "Show one shell descriptor with its submodels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell, err := a.repo.GetShell(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(shell)
		},
	}
}

func (a *App) shellCreateCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create -f <file>",
		Short: "Register a new shell descriptor",
		Long: `Register a new shell descriptor read from a JSON or YAML file.

Examples:
  aas-registry shell create -f pump.json
  cat pump.yaml | aas-registry shell create -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var shell domain.ShellDescriptor
			if err := a.readFile(file, &shell); err != nil {
				return err
			}
			created, err := a.repo.CreateShell(cmd.Context(), &shell)
			if err != nil {
				return err
			}
			registrylog.FromContext(cmd.Context()).Info("shell created",
				"shell_id", created.ID(), "submodels", len(created.SubmodelDescriptors))
			return a.print(created)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "descriptor file (- for stdin)")
	return cmd
}

func (a *App) shellUpdateCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "update <shell-id> -f <file>",
		Short: "Replace a shell descriptor, nested submodels included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var shell domain.ShellDescriptor
			if err := a.readFile(file, &shell); err != nil {
				return err
			}
			updated, err := a.repo.UpdateShell(cmd.Context(), args[0], &shell)
			if err != nil {
				return err
			}
			registrylog.FromContext(cmd.Context()).Info("shell updated", "shell_id", updated.ID())
			return a.print(updated)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "descriptor file (- for stdin)")
	return cmd
}

func (a *App) shellDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <shell-id>",
		Short: "Delete a shell descriptor and its nested submodels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repo.DeleteShell(cmd.Context(), args[0]); err != nil {
				return err
			}
			registrylog.FromContext(cmd.Context()).Info("shell deleted", "shell_id", args[0])
			_, err := fmt.Fprintf(a.out, "deleted shell %s\n", args[0])
			return err
		},
	}
}
