// Package launch runs the resolved native binary as a child process and
// maps its termination back to the wrapper.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/ZebulonRouseFrantzich/binwrap/internal/binary"
	"github.com/ZebulonRouseFrantzich/binwrap/internal/config"
)

// Launcher executes the binary chosen by a binary.Locator.
type Launcher struct {
	cfg     config.Config
	locator *binary.Locator
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStdio replaces the streams handed to the child. Nil values keep the
// wrapper's own streams.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(l *Launcher) {
		if stdin != nil {
			l.stdin = stdin
		}
		if stdout != nil {
			l.stdout = stdout
		}
		if stderr != nil {
			l.stderr = stderr
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a launcher. A nil locator resolves from cfg alone.
func New(cfg config.Config, locator *binary.Locator, opts ...Option) *Launcher {
	if locator == nil {
		locator = binary.NewLocator(cfg, nil)
	}
	l := &Launcher{
		cfg:     cfg,
		locator: locator,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the binary with args and waits for it to exit.
//
// A zero exit returns nil. A non-zero exit returns *ExitError, termination
// by a signal returns *AbnormalExitError. SIGINT and SIGTERM delivered to
// the wrapper while the child runs are forwarded to the child. ctx is only
// checked before the child starts; the child decides how to react to
// forwarded signals.
func (l *Launcher) Run(ctx context.Context, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	loc := l.locator.Resolve()
	info, err := os.Stat(loc.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &BinaryNotFoundError{Path: loc.Path}
	case err != nil:
		return fmt.Errorf("stat %s: %w", loc.Path, err)
	case info.IsDir():
		return &BinaryNotFoundError{Path: loc.Path}
	}

	// Package managers do not always preserve the executable bit.
	if loc.Origin == binary.OriginInstalledPackage && l.cfg.Platform.HasPOSIXPermissions() {
		if err := os.Chmod(loc.Path, 0755); err != nil {
			return fmt.Errorf("make %s executable: %w", loc.Path, err)
		}
	}

	l.logger.Debug("launching binary", "path", loc.Path, "origin", loc.Origin, "args", len(args))

	cmd := exec.Command(loc.Path, args...)
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", loc.Path, err)
	}

	stop := l.relaySignals(cmd.Process)
	err = cmd.Wait()
	stop()

	return exitResult(err)
}

// relaySignals forwards interrupt and terminate signals to p until the
// returned function is called.
func (l *Launcher) relaySignals(p *os.Process) func() {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case sig := <-sigs:
				if err := p.Signal(sig); err != nil {
					l.logger.Debug("failed to forward signal", "signal", sig, "error", err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func exitResult(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return fmt.Errorf("wait for binary: %w", err)
	}

	if code := exitErr.ExitCode(); code >= 0 {
		return &ExitError{Code: code}
	}
	return &AbnormalExitError{Err: exitErr}
}
