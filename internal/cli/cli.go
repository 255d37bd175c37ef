package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/binary"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/dist"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/launch"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/platform"
)

// Options injects collaborators into the commands. Zero values select the
// production implementations.
type Options struct {
	Detector   platform.Detector
	Fetcher    binary.Fetcher
	Resolver   binary.Resolver
	Manifest   *dist.Manifest
	WrapperDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdin() io.Reader {
	if o.Stdin != nil {
		return o.Stdin
	}
	return os.Stdin
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// Run is the wrapper entry point. args are handed to the native binary
// untouched; nothing is parsed here, so a child's own subcommands and flags
// (--help, completion, __complete) always reach it.
func Run(ctx context.Context, opts Options, args []string) error {
	return run(ctx, opts, args)
}

// NewInstallCommand creates the postinstall command.
func NewInstallCommand(opts Options) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "binwrap-install",
		Short:         "Make sure the platform-native binary is present",
		Long:          `Downloads the platform package tarball from the registry when the package manager did not install the optional platform package. Does nothing when a binary is already present.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return install(cmd.Context(), opts, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func run(ctx context.Context, opts Options, args []string) error {
	cfg, logger, err := setup(ctx, opts, false)
	if err != nil {
		return err
	}

	inst := newInstaller(cfg, opts, logger)
	if _, err := inst.MaybeInstall(ctx); err != nil {
		return stageErr(StageInstall, err)
	}

	l := launch.New(cfg, inst.Locator(),
		launch.WithStdio(opts.stdin(), opts.stdout(), opts.stderr()),
		launch.WithLogger(logger),
	)
	if err := l.Run(ctx, args); err != nil {
		return stageErr(StageRun, err)
	}
	return nil
}

func install(ctx context.Context, opts Options, verbose bool) error {
	cfg, logger, err := setup(ctx, opts, verbose)
	if err != nil {
		return err
	}

	downloaded, err := newInstaller(cfg, opts, logger).MaybeInstall(ctx)
	if err != nil {
		return stageErr(StageInstall, err)
	}
	if !downloaded {
		logger.Info("binary already present", "package", cfg.Package)
	}
	return nil
}

// setup loads the configuration and builds the logger it asks for.
func setup(ctx context.Context, opts Options, verbose bool) (config.Config, *log.Logger, error) {
	cfg, err := config.Load(ctx, config.LoadOptions{
		Manifest:   opts.Manifest,
		Detector:   opts.Detector,
		WrapperDir: opts.WrapperDir,
	})
	if err != nil {
		return config.Config{}, nil, stageErr(StageConfig, err)
	}

	level, ok := parseLevel(cfg.LogLevel)
	if verbose {
		level = log.DebugLevel
	}
	logger := newLogger(opts.stderr(), level)
	if !ok {
		logger.Warn("unknown log level, using warn", "level", cfg.LogLevel)
	}

	logger.Debug("resolved configuration",
		"platform", cfg.Key,
		"package", cfg.Package,
		"version", cfg.Version,
		"registry", cfg.Registry,
		"wrapper_dir", cfg.WrapperDir,
	)

	return cfg, logger, nil
}

func newInstaller(cfg config.Config, opts Options, logger *log.Logger) *binary.Installer {
	instOpts := []binary.InstallerOption{binary.WithLogger(logger)}
	if opts.Fetcher != nil {
		instOpts = append(instOpts, binary.WithFetcher(opts.Fetcher))
	}
	if opts.Resolver != nil {
		instOpts = append(instOpts, binary.WithResolver(opts.Resolver))
	}
	return binary.NewInstaller(cfg, instOpts...)
}
