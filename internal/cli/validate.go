package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/acelabs/ace/internal/apps"
	"github.com/acelabs/ace/internal/classifier"
	"github.com/acelabs/ace/internal/config"
	"github.com/acelabs/ace/internal/intents"
	"github.com/acelabs/ace/internal/logging"
)

// ValidateOptions are the flags of the validate command.
type ValidateOptions struct {
	ConfigPath string
}

// RunValidate checks the configuration, the training data, and the app
// catalog without touching any external service. It reports what it finds
// and fails on anything that would break a session.
func RunValidate(opts ValidateOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	var problems int

	dataset, err := classifier.LoadDataset(cfg.Model.Dataset, false)
	if err != nil {
		printSystemMessage("Dataset: FAIL (%v)", err)
		problems++
	} else {
		printSystemMessage("Dataset: %d examples, %d intents.", dataset.Len(), len(dataset.Intents()))

		// Every trained label needs a handler, or it will always fall back
		// to the unknown reply.
		registry := intents.NewRegistry(logging.NewNop())
		intents.RegisterBuiltins(registry, intents.Deps{})
		registered := registry.Names()

		for _, intent := range dataset.Intents() {
			if !slices.Contains(registered, intent) {
				printSystemMessage("Dataset: WARN intent %q has no registered handler.", intent)
			}
		}

		for _, dup := range dataset.Duplicates() {
			if len(dup.Intents) > 1 {
				// Conflicting labels make the training data ambiguous.
				printSystemMessage("Dataset: FAIL example %q is labeled %s.", dup.Text, strings.Join(dup.Intents, " and "))
				problems++
			} else {
				printSystemMessage("Dataset: WARN duplicate example %q under %q.", dup.Text, dup.Intents[0])
			}
		}
	}

	if _, err := apps.LoadCatalog(cfg.Apps.Catalog); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			printSystemMessage("App catalog: missing (%s); open/close intents will apologize.", cfg.Apps.Catalog)
		} else {
			printSystemMessage("App catalog: FAIL (%v)", err)
			problems++
		}
	} else {
		printSystemMessage("App catalog: OK (%s).", cfg.Apps.Catalog)
	}

	if _, err := os.Stat(cfg.Model.Path); err != nil {
		printSystemMessage("Model: not trained yet (%s); run 'ace train'.", cfg.Model.Path)
	} else if _, err := classifier.Load(cfg.Model.Path); err != nil {
		printSystemMessage("Model: FAIL (%v)", err)
		problems++
	} else {
		printSystemMessage("Model: OK (%s).", cfg.Model.Path)
	}

	if cfg.Weather.APIKey == "" {
		printSystemMessage("Weather: no API key (set %s); weather intents will apologize.", config.EnvWeatherKey)
	}
	if cfg.Todo.APIKey == "" {
		printSystemMessage("Todo: no API key (set %s); todo intents will apologize.", config.EnvTodoKey)
	}

	if problems > 0 {
		return fmt.Errorf("validation found %d problem(s)", problems)
	}

	printSystemMessage("Configuration is valid.")
	return nil
}
