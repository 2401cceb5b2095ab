// Package apps opens and closes desktop applications on behalf of the
// assistant. A YAML catalog maps spoken names and aliases to the commands
// and executables of each application.
package apps

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// App describes one application the assistant can manage.
type App struct {
	// Name is the display name, matched by substring.
	Name string `yaml:"name"`

	// Aliases are alternative names, matched exactly.
	Aliases []string `yaml:"aliases"`

	// Command launches the application, with optional Args.
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`

	// Executable is the process image name used to close the application.
	Executable string `yaml:"executable"`
}

// Catalog is the set of known applications.
type Catalog struct {
	apps []App
}

type catalogFile struct {
	Apps []App `yaml:"apps"`
}

// NewCatalog creates a catalog from a fixed list of apps.
func NewCatalog(apps []App) *Catalog {
	return &Catalog{apps: apps}
}

// LoadCatalog reads the catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read app catalog: %w", err)
	}

	var parsed catalogFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse app catalog: %w", err)
	}

	return NewCatalog(parsed.Apps), nil
}

// Find looks up an application by name. The query matches as a substring of
// the display name or exactly against an alias, case-insensitively.
func (c *Catalog) Find(name string) (App, bool) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return App{}, false
	}

	for _, app := range c.apps {
		if strings.Contains(strings.ToLower(app.Name), query) {
			return app, true
		}
		for _, alias := range app.Aliases {
			if strings.ToLower(alias) == query {
				return app, true
			}
		}
	}

	return App{}, false
}

// Apps returns the catalog entries.
func (c *Catalog) Apps() []App {
	return c.apps
}
