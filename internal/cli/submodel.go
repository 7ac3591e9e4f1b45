package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"aasregistry/internal/domain"
	registrylog "aasregistry/internal/log"
)

func (a *App) submodelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submodel",
		Short: "Manage submodel descriptors",
		Long: `Manage submodel descriptors.

Without --shell the commands address standalone submodel descriptors. With
--shell they address the submodels nested in that shell.`,
	}
	cmd.AddCommand(
		a.submodelListCommand(),
		a.submodelGetCommand(),
		a.submodelAddCommand(),
		a.submodelDeleteCommand(),
	)
	return cmd
}

func shellFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "shell", "s", "", "owning shell id (nested scope)")
}

func (a *App) submodelListCommand() *cobra.Command {
	var shellID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submodel descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				submodels []domain.SubmodelDescriptor
				err       error
			)
			if cmd.Flags().Changed("shell") {
				submodels, err = a.repo.ListShellSubmodels(cmd.Context(), shellID)
			} else {
				submodels, err = a.repo.ListSubmodels(cmd.Context())
			}
			if err != nil {
				return err
			}
			if submodels == nil {
				submodels = []domain.SubmodelDescriptor{}
			}
			return a.print(submodels)
		},
	}
	shellFlag(cmd, &shellID)
	return cmd
}

func (a *App) submodelGetCommand() *cobra.Command {
	var shellID string
	cmd := &cobra.Command{
		Use:   "get <submodel-id>",
		Short: "Show one submodel descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sm  *domain.SubmodelDescriptor
				err error
			)
			if cmd.Flags().Changed("shell") {
				sm, err = a.repo.GetShellSubmodel(cmd.Context(), shellID, args[0])
			} else {
				sm, err = a.repo.GetSubmodel(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return a.print(sm)
		},
	}
	shellFlag(cmd, &shellID)
	return cmd
}

func (a *App) submodelAddCommand() *cobra.Command {
	var shellID, file string
	cmd := &cobra.Command{
		Use:   "add -f <file>",
		Short: "Register a submodel descriptor",
		Long: `Register a submodel descriptor read from a JSON or YAML file.

Examples:
  # Standalone
  aas-registry submodel add -f nameplate.json

  # Nested in a shell, appended after its existing submodels
  aas-registry submodel add --shell urn:pump:1 -f nameplate.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var sm domain.SubmodelDescriptor
			if err := a.readFile(file, &sm); err != nil {
				return err
			}

			var (
				added *domain.SubmodelDescriptor
				err   error
			)
			lg := registrylog.FromContext(cmd.Context())
			if cmd.Flags().Changed("shell") {
				added, err = a.repo.AddShellSubmodel(cmd.Context(), shellID, &sm)
				if err == nil {
					lg.Info("submodel added", "shell_id", shellID, "submodel_id", added.ID())
				}
			} else {
				added, err = a.repo.AddSubmodel(cmd.Context(), &sm)
				if err == nil {
					lg.Info("submodel added", "submodel_id", added.ID())
				}
			}
			if err != nil {
				return err
			}
			return a.print(added)
		},
	}
	shellFlag(cmd, &shellID)
	cmd.Flags().StringVarP(&file, "file", "f", "", "descriptor file (- for stdin)")
	return cmd
}

func (a *App) submodelDeleteCommand() *cobra.Command {
	var shellID string
	cmd := &cobra.Command{
		Use:   "delete <submodel-id>",
		Short: "Delete a submodel descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cmd.Flags().Changed("shell") {
				err = a.repo.DeleteShellSubmodel(cmd.Context(), shellID, args[0])
			} else {
				err = a.repo.DeleteSubmodel(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			registrylog.FromContext(cmd.Context()).Info("submodel deleted", "shell_id", shellID, "submodel_id", args[0])
			_, err = fmt.Fprintf(a.out, "deleted submodel %s\n", args[0])
			return err
		},
	}
	shellFlag(cmd, &shellID)
	return cmd
}
