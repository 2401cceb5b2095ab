package apps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// Close result codes, surfaced so callers can phrase the reply.
const (
	// CloseOK means the application was asked to close.
	CloseOK = 0

	// CloseNoExecutable means the catalog entry has no executable to kill.
	CloseNoExecutable = -1

	// CloseNotRunning means no matching process was found.
	CloseNotRunning = 128
)

var (
	// ErrUnknownApp is returned when the name matches nothing in the catalog.
	ErrUnknownApp = errors.New("unknown application")

	// ErrUnsupportedPlatform is returned for platforms without a manager.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// CommandRunner abstracts process execution so tests can fake it.
type CommandRunner interface {
	// Start launches the command without waiting for it.
	Start(ctx context.Context, name string, args ...string) error

	// Run executes the command and returns its exit code.
	Run(ctx context.Context, name string, args ...string) (int, error)
}

type execRunner struct{}

func (execRunner) Start(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func (execRunner) Run(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}

// Manager opens and closes catalog applications on one platform.
type Manager struct {
	catalog *Catalog
	runner  CommandRunner
	goos    string
	logger  *slog.Logger
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(runner CommandRunner) ManagerOption {
	return func(m *Manager) {
		m.runner = runner
	}
}

// WithManagerLogger sets a structured logger.
func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates the manager for the given GOOS value.
// Returns ErrUnsupportedPlatform for platforms without open/close commands.
func NewManager(catalog *Catalog, goos string, opts ...ManagerOption) (*Manager, error) {
	switch goos {
	case "windows", "darwin", "linux":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}

	m := &Manager{
		catalog: catalog,
		runner:  execRunner{},
		goos:    goos,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return m, nil
}

// Open launches the named application.
func (m *Manager) Open(ctx context.Context, name string) error {
	app, ok := m.catalog.Find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownApp, name)
	}

	command, args := m.openCommand(app)
	if command == "" {
		return fmt.Errorf("%w: %s has no launch command", ErrUnknownApp, name)
	}

	m.logger.Debug("opening app", "app", app.Name, "command", command)
	return m.runner.Start(ctx, command, args...)
}

func (m *Manager) openCommand(app App) (string, []string) {
	if app.Command != "" {
		return app.Command, app.Args
	}

	switch m.goos {
	case "darwin":
		return "open", []string{"-a", app.Name}
	case "windows":
		return "cmd", []string{"/C", "start", "", app.Name}
	default:
		return app.Executable, nil
	}
}

// Close terminates the named application and returns a close code:
// CloseOK, CloseNoExecutable, CloseNotRunning, or the raw exit code of the
// kill command.
func (m *Manager) Close(ctx context.Context, name string) (int, error) {
	app, ok := m.catalog.Find(name)
	if !ok {
		return CloseNoExecutable, fmt.Errorf("%w: %s", ErrUnknownApp, name)
	}
	if app.Executable == "" {
		return CloseNoExecutable, nil
	}

	command, args := m.closeCommand(app)

	code, err := m.runner.Run(ctx, command, args...)
	if err != nil {
		return code, err
	}
	m.logger.Debug("close app finished", "app", app.Name, "code", code)

	// pkill exits 1 when no process matched; taskkill uses 128. Normalize so
	// callers see a single not-running code.
	if m.goos != "windows" && code == 1 {
		return CloseNotRunning, nil
	}
	return code, nil
}

func (m *Manager) closeCommand(app App) (string, []string) {
	if m.goos == "windows" {
		return "taskkill", []string{"/F", "/IM", app.Executable}
	}
	return "pkill", []string{"-x", app.Executable}
}
