package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	ace "github.com/acelabs/ace"
	"github.com/acelabs/ace/internal/adapters/file"
	"github.com/acelabs/ace/internal/adapters/memory"
	"github.com/acelabs/ace/internal/adapters/redis"
	"github.com/acelabs/ace/internal/apis/todo"
	"github.com/acelabs/ace/internal/apis/weather"
	"github.com/acelabs/ace/internal/apps"
	"github.com/acelabs/ace/internal/classifier"
	"github.com/acelabs/ace/internal/config"
	"github.com/acelabs/ace/internal/console"
	"github.com/acelabs/ace/internal/entity"
	"github.com/acelabs/ace/internal/intents"
	"github.com/acelabs/ace/internal/observability"
	"github.com/acelabs/ace/internal/ports"
	"github.com/acelabs/ace/internal/presentation/tui"
)

// RunOptions are the flags shared by the interactive and server commands.
type RunOptions struct {
	ConfigPath string
	Debug      bool

	// Headless suppresses the banner and system messages, for piped or
	// scripted sessions.
	Headless bool

	// Speech enables the spoken output alongside the terminal one.
	Speech bool

	// SessionID names the transcript session to append to, so a session can
	// be resumed. Empty gets a fresh ID.
	SessionID string
}

// buildAssistant wires the classifier, registry, and services into an
// Assistant. The returned metrics feed the /metrics endpoint in serve mode.
func buildAssistant(cfg config.Config, logger *slog.Logger) (*ace.Assistant, *observability.Metrics, error) {
	model, err := classifier.Load(cfg.Model.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("no trained model at %s; run 'ace train' first", cfg.Model.Path)
		}
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}

	places, err := loadPlaces(cfg.Entities.Places)
	if err != nil {
		return nil, nil, err
	}
	extractor := entity.NewExtractor(places)

	cache, err := buildCache(cfg.Store)
	if err != nil {
		return nil, nil, err
	}

	weatherClient := weather.NewClient(cfg.Weather.APIKey,
		weather.WithHomeLocation(cfg.Weather.Home),
		weather.WithUnits(cfg.Weather.Units),
		weather.WithCache(cache, cfg.Weather.CacheTTL),
		weather.WithLogger(logger),
	)

	todoClient := todo.NewClient(cfg.Todo.APIKey, todo.WithLogger(logger))

	deps := intents.Deps{
		Weather:         weatherClient,
		Todo:            todoClient,
		Platform:        runtime.GOOS,
		Extractor:       extractor,
		DefaultLocation: cfg.Location,
		Logger:          logger,
	}

	catalog, err := apps.LoadCatalog(cfg.Apps.Catalog)
	if err != nil {
		logger.Warn("app catalog unavailable", "path", cfg.Apps.Catalog, "error", err)
		catalog = apps.NewCatalog(nil)
	}

	manager, err := apps.NewManager(catalog, runtime.GOOS, apps.WithManagerLogger(logger))
	if err != nil {
		// Unsupported platform: the handlers reply apologetically instead.
		logger.Debug("no app manager for platform", "platform", runtime.GOOS)
	} else {
		deps.Apps = manager
	}

	registry := intents.NewRegistry(logger)
	intents.RegisterBuiltins(registry, deps)

	metrics := observability.NewMetrics()

	assistant := ace.New(model, registry,
		ace.WithLogger(logger),
		ace.WithHooks(metrics.Hooks()),
	)

	return assistant, metrics, nil
}

// resolveSessionID keeps an explicitly named session, so its transcript is
// appended to across runs, and mints a fresh ID otherwise.
func resolveSessionID(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return uuid.NewString()
}

func buildCache(cfg config.StoreConfig) (ports.Cache, error) {
	if cfg.Backend == "redis" {
		return redis.NewCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), nil
	}
	return memory.NewCache(), nil
}

func buildStore(cfg config.StoreConfig) (ports.TranscriptStore, error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "file", "":
		return file.NewStore(cfg.Dir)
	case "redis":
		return redis.NewStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithStoreTTL(cfg.Redis.TTL)), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// RunSession runs the interactive terminal session until the user says
// goodbye or interrupts.
func RunSession(opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, logCloser := createLogger(cfg.Logging, opts.Debug)
	defer logCloser.Close()

	if !opts.Headless {
		tui.PrintBanner(os.Stdout)
	}

	assistant, _, err := buildAssistant(cfg, logger)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg.Store)
	if err != nil {
		return err
	}

	sessionID := resolveSessionID(opts.SessionID)
	logger.Info("session started", "session_id", sessionID)

	profile := termenv.ColorProfile()
	prompt := termenv.String(cfg.Console.Prompt).Foreground(profile.Color("6")).String()
	prefix := termenv.String(cfg.Console.Prefix).Foreground(profile.Color("3")).String()

	input := console.NewCommandLineInput(prompt, os.Stdin, os.Stdout)

	lineOut := console.NewCommandLineOutput(prefix, os.Stdout)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		lineOut.Render = tui.NewRenderer()
	}

	outputs := []ace.OutputSink{lineOut}

	if opts.Speech || cfg.Speech.Enabled {
		diction, err := config.LoadDiction(cfg.Speech.Diction)
		if err != nil {
			logger.Warn("failed to load diction", "error", err)
			diction = map[string]string{}
		}
		outputs = append(outputs, console.NewSpeechOutput(runtime.GOOS, diction,
			console.WithSpeechLogger(logger)))
	}

	runner := ace.NewRunner(input, outputs...)
	runner.Transcript = func(ctx context.Context, reply ace.Reply, text string, at time.Time) {
		turn := ports.Turn{At: at, Text: text, Intent: reply.Intent, Reply: reply.Text}
		if err := store.Append(ctx, sessionID, turn); err != nil {
			logger.Warn("failed to record turn", "session_id", sessionID, "error", err)
		}
	}

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	runErr := runner.Run(sigCtx, assistant)

	if sigCtx.Signal() != nil && !opts.Headless {
		fmt.Println()
		printSystemMessage("Interrupted.")
	}

	logger.Info("session finished", "session_id", sessionID)
	return handleExecutionError(runErr)
}
