package cli

import (
	"fmt"

	"github.com/acelabs/ace/internal/classifier"
	"github.com/acelabs/ace/internal/config"
)

// TrainOptions are the flags of the train command.
type TrainOptions struct {
	ConfigPath string
	Debug      bool

	// Dataset overrides the configured training data path.
	Dataset string
}

// RunTrain trains the intent classifier from the CSV dataset and saves the
// model. Held-out accuracy is reported but never gates the save; a small
// dataset with a weak split is still a usable model. The saved model is
// always fit on the full dataset, the split exists only to measure it.
func RunTrain(opts TrainOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logger, logCloser := createLogger(cfg.Logging, opts.Debug)
	defer logCloser.Close()

	datasetPath := cfg.Model.Dataset
	if opts.Dataset != "" {
		datasetPath = opts.Dataset
	}

	dataset, err := classifier.LoadDataset(datasetPath, true)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	logger.Info("dataset loaded",
		"path", datasetPath,
		"examples", dataset.Len(),
		"intents", len(dataset.Intents()),
	)

	if train, test := dataset.Split(cfg.Model.TrainFraction); len(train) > 0 && len(test) > 0 {
		held := classifier.Train(train, cfg.Model.Threshold)
		accuracy := held.Evaluate(test)
		printSystemMessage("Held-out accuracy: %.1f%% (%d of %d examples held out).",
			accuracy*100, len(test), dataset.Len())
	}

	model := classifier.Train(dataset.Examples(), cfg.Model.Threshold)

	printSystemMessage("Trained on %d examples across %d intents.", dataset.Len(), len(dataset.Intents()))

	if err := model.Save(cfg.Model.Path); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}

	printSystemMessage("Model saved to %s.", cfg.Model.Path)
	logger.Info("model trained", "path", cfg.Model.Path)
	return nil
}
