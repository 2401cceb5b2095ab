package apps

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var testApps = []App{
	{
		Name:       "Firefox",
		Aliases:    []string{"browser", "web"},
		Command:    "firefox",
		Executable: "firefox",
	},
	{
		Name:    "Music Player",
		Aliases: []string{"music"},
		Command: "rhythmbox",
	},
}

type fakeRunner struct {
	started []string
	ran     []string
	code    int
	err     error
}

func (f *fakeRunner) Start(ctx context.Context, name string, args ...string) error {
	f.started = append(f.started, name)
	return f.err
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (int, error) {
	f.ran = append(f.ran, name)
	return f.code, f.err
}

func TestCatalogFind(t *testing.T) {
	catalog := NewCatalog(testApps)

	tests := []struct {
		query string
		want  string
		found bool
	}{
		{"firefox", "Firefox", true},
		{"fire", "Firefox", true},
		{"browser", "Firefox", true},
		{"BROWSER", "Firefox", true},
		{"music", "Music Player", true},
		{"spreadsheet", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		app, found := catalog.Find(tt.query)
		if found != tt.found {
			t.Errorf("Find(%q) found = %v, want %v", tt.query, found, tt.found)
			continue
		}
		if found && app.Name != tt.want {
			t.Errorf("Find(%q) = %q, want %q", tt.query, app.Name, tt.want)
		}
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	content := `apps:
  - name: Firefox
    aliases: [browser]
    command: firefox
    executable: firefox
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found := catalog.Find("browser"); !found {
		t.Error("expected alias from YAML catalog to resolve")
	}
}

func TestNewManager_UnsupportedPlatform(t *testing.T) {
	_, err := NewManager(NewCatalog(testApps), "plan9")
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got %v", err)
	}
}

func TestManagerOpen(t *testing.T) {
	runner := &fakeRunner{}
	manager, err := NewManager(NewCatalog(testApps), "linux", WithRunner(runner))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := manager.Open(context.Background(), "firefox"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if len(runner.started) != 1 || runner.started[0] != "firefox" {
		t.Errorf("expected firefox to be started, got %v", runner.started)
	}

	if err := manager.Open(context.Background(), "spreadsheet"); !errors.Is(err, ErrUnknownApp) {
		t.Errorf("expected ErrUnknownApp, got %v", err)
	}
}

func TestManagerClose(t *testing.T) {
	t.Run("running app closes", func(t *testing.T) {
		runner := &fakeRunner{code: 0}
		manager, _ := NewManager(NewCatalog(testApps), "linux", WithRunner(runner))

		code, err := manager.Close(context.Background(), "firefox")
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if code != CloseOK {
			t.Errorf("expected CloseOK, got %d", code)
		}
		if len(runner.ran) != 1 || runner.ran[0] != "pkill" {
			t.Errorf("expected pkill invocation, got %v", runner.ran)
		}
	})

	t.Run("no executable in catalog", func(t *testing.T) {
		manager, _ := NewManager(NewCatalog(testApps), "linux", WithRunner(&fakeRunner{}))

		code, err := manager.Close(context.Background(), "music")
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if code != CloseNoExecutable {
			t.Errorf("expected CloseNoExecutable, got %d", code)
		}
	})

	t.Run("not running normalizes to 128", func(t *testing.T) {
		runner := &fakeRunner{code: 1}
		manager, _ := NewManager(NewCatalog(testApps), "linux", WithRunner(runner))

		code, err := manager.Close(context.Background(), "firefox")
		if err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if code != CloseNotRunning {
			t.Errorf("expected CloseNotRunning, got %d", code)
		}
	})

	t.Run("unknown app", func(t *testing.T) {
		manager, _ := NewManager(NewCatalog(testApps), "linux", WithRunner(&fakeRunner{}))

		if _, err := manager.Close(context.Background(), "spreadsheet"); !errors.Is(err, ErrUnknownApp) {
			t.Errorf("expected ErrUnknownApp, got %v", err)
		}
	})

	t.Run("windows uses taskkill", func(t *testing.T) {
		runner := &fakeRunner{code: 0}
		manager, _ := NewManager(NewCatalog(testApps), "windows", WithRunner(runner))

		if _, err := manager.Close(context.Background(), "firefox"); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if len(runner.ran) != 1 || runner.ran[0] != "taskkill" {
			t.Errorf("expected taskkill invocation, got %v", runner.ran)
		}
	})
}
