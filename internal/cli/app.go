// Package cli implements the aas-registry command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"aasregistry/internal/codec"
	"aasregistry/internal/config"
	registrylog "aasregistry/internal/log"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/backend"
	"aasregistry/internal/tracing"
)

// annotation set on commands that manage their own storage
const annotationNoRepo = "aas-registry/no-repo"

// App holds the state shared by all commands of one invocation
type App struct {
	Version string

	out    io.Writer
	errOut io.Writer
	in     io.Reader

	// flags
	cfgFile   string
	backendFl string
	dbPath    string
	idMatch   string
	logLevel  string
	output    string

	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	tracer  *tracing.Provider
	repo    repository.Repository
}

// New creates an App writing command output to out and logs and traces to
// errOut. Descriptor files named "-" are read from in.
func New(in io.Reader, out, errOut io.Writer) *App {
	return &App{
		Version: "dev",
		in:      in,
		out:     out,
		errOut:  errOut,
		logger:  registrylog.NewNopLogger(),
	}
}

// Execute runs the command line in args and releases every resource it
// opened, even when the command fails.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close(ctx))
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "aas-registry",
		Short: "Manage Asset Administration Shell and submodel descriptors",
		Long: `aas-registry stores shell descriptors, the submodel descriptors nested
in them, and standalone submodel descriptors in a memory or SQLite backend.

Descriptors are read from JSON or YAML files and printed as JSON unless
--output yaml is given.`,
		Version:           a.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "",
		"config file (default: $"+config.EnvConfigPath+" or "+config.DefaultConfigPath()+")")
	flags.StringVar(&a.backendFl, "backend", "", "storage backend: memory or sqlite")
	flags.StringVar(&a.dbPath, "db", "", "SQLite database path")
	flags.StringVar(&a.idMatch, "id-match", "", "identifier matching: exact or fold")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVarP(&a.output, "output", "o", "json", "output format: json or yaml")

	root.AddCommand(
		a.shellCommand(),
		a.submodelCommand(),
		a.backupCommand(),
		a.migrateCommand(),
		a.configCommand(),
	)
	return root
}

// setup loads configuration, applies flag overrides and opens the logger,
// the tracer and the repository.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	level, err := registrylog.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return repository.NewInvalidArgumentError("log level: %v", err)
	}
	a.logger = registrylog.NewLogger(registrylog.LoggerConfig{
		Version: a.Version,
		Out:     a.errOut,
		Level:   level,
		JSON:    a.cfg.Log.JSON,
	})
	cmd.SetContext(registrylog.ContextWithLogger(cmd.Context(), a.logger))

	if a.cfgPath != "" {
		a.logger.Debug("config loaded", "path", a.cfgPath)
	}

	if cmd.Annotations[annotationNoRepo] != "" {
		return nil
	}

	a.tracer, err = tracing.NewProvider(a.cfg.Tracing, a.errOut)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	var tracer = a.tracer.Tracer()
	if !a.tracer.Enabled() {
		tracer = nil
	}
	a.repo, err = backend.Open(a.cfg, tracer)
	if err != nil {
		return err
	}

	a.logger.Debug("registry opened", "backend", a.repo.Name(), "id_match", a.cfg.IDMatch)
	if a.repo.Name() == config.BackendMemory && mutates(cmd) {
		a.logger.Warn("memory backend does not persist between invocations")
	}
	return nil
}

func (a *App) loadConfig() error {
	var err error
	if a.cfgFile != "" {
		a.cfg, a.cfgPath, err = config.LoadFromPath(a.cfgFile)
	} else {
		a.cfg, a.cfgPath, err = config.Load()
	}
	if err != nil {
		return repository.NewInvalidArgumentError("%v", err)
	}

	if a.backendFl != "" {
		a.cfg.Backend = a.backendFl
	}
	if a.dbPath != "" {
		a.cfg.Database.Path = a.dbPath
		if a.backendFl == "" {
			a.cfg.Backend = config.BackendSQLite
		}
	}
	if a.idMatch != "" {
		a.cfg.IDMatch = a.idMatch
	}
	if a.logLevel != "" {
		a.cfg.Log.Level = a.logLevel
	}

	if err := a.cfg.Validate(); err != nil {
		return repository.NewInvalidArgumentError("%v", err)
	}
	return nil
}

func (a *App) close(ctx context.Context) error {
	var errs []error
	if a.repo != nil {
		errs = append(errs, a.repo.Close())
		a.repo = nil
	}
	if a.tracer != nil {
		errs = append(errs, a.tracer.Shutdown(ctx))
		a.tracer = nil
	}
	return errors.Join(errs...)
}

func mutates(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "create", "update", "delete", "add", "import":
		return true
	}
	return false
}

// ============================================================================
// Input and output
// ============================================================================

func (a *App) outputCodec() (codec.Codec, error) {
	c, err := codec.ForFormat(a.output)
	if err != nil {
		return nil, repository.NewInvalidArgumentError("output: %v", err)
	}
	return c, nil
}

// print writes v to stdout in the selected output format
func (a *App) print(v any) error {
	c, err := a.outputCodec()
	if err != nil {
		return err
	}
	return c.Encode(a.out, v)
}

// readFile decodes the descriptor file at path into v. The format follows
// the file extension; "-" reads JSON or YAML from stdin.
func (a *App) readFile(path string, v any) error {
	if strings.TrimSpace(path) == "" {
		return repository.NewInvalidArgumentError("a descriptor file is required (-f)")
	}

	var (
		data []byte
		err  error
		c    codec.Codec
	)
	if path == "-" {
		data, err = io.ReadAll(a.in)
		c = codec.ForPath(".yaml")
		if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			c = codec.NewJSONCodec()
		}
	} else {
		data, err = os.ReadFile(path)
		c = codec.ForPath(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := c.Unmarshal(data, v); err != nil {
		return repository.NewInvalidArgumentError("%s: %v", path, err)
	}
	return nil
}
