package classifier

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"slices"
)

// DefaultSeed keeps shuffles and splits reproducible across runs.
const DefaultSeed = 42

// Example is one labeled training utterance.
type Example struct {
	Intent string
	Text   string
}

// Dataset holds the labeled examples an intent model is trained from.
type Dataset struct {
	examples []Example
	seed     int64
}

// DatasetOption configures dataset loading.
type DatasetOption func(*Dataset)

// WithSeed overrides the shuffle seed.
func WithSeed(seed int64) DatasetOption {
	return func(d *Dataset) {
		d.seed = seed
	}
}

// LoadDataset reads a CSV file with header "intent,example" into a Dataset.
// When shuffle is true the rows are permuted deterministically by the seed.
func LoadDataset(path string, shuffle bool, opts ...DatasetOption) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	if records[0][0] != "intent" || records[0][1] != "example" {
		return nil, fmt.Errorf("dataset header must be %q, got %q", "intent,example", records[0][0]+","+records[0][1])
	}

	d := &Dataset{seed: DefaultSeed}
	for _, opt := range opts {
		opt(d)
	}

	for _, rec := range records[1:] {
		d.examples = append(d.examples, Example{Intent: rec[0], Text: rec[1]})
	}

	if shuffle {
		rng := rand.New(rand.NewSource(d.seed))
		rng.Shuffle(len(d.examples), func(i, j int) {
			d.examples[i], d.examples[j] = d.examples[j], d.examples[i]
		})
	}

	return d, nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.examples)
}

// Examples returns the examples in their current order.
func (d *Dataset) Examples() []Example {
	return d.examples
}

// Intents lists the distinct intent labels in first-seen order.
func (d *Dataset) Intents() []string {
	seen := make(map[string]bool)
	var intents []string
	for _, ex := range d.examples {
		if !seen[ex.Intent] {
			seen[ex.Intent] = true
			intents = append(intents, ex.Intent)
		}
	}
	return intents
}

// Duplicate is an example text that appears in more than one dataset row,
// with every label it carries.
type Duplicate struct {
	Text    string
	Intents []string
}

// Duplicates reports repeated example texts. A text listed under several
// intents makes the labels ambiguous; a repeat under one intent just skews
// its weight.
func (d *Dataset) Duplicates() []Duplicate {
	counts := make(map[string]int)
	labels := make(map[string][]string)
	var order []string

	for _, ex := range d.examples {
		counts[ex.Text]++
		if counts[ex.Text] == 2 {
			order = append(order, ex.Text)
		}
		if !slices.Contains(labels[ex.Text], ex.Intent) {
			labels[ex.Text] = append(labels[ex.Text], ex.Intent)
		}
	}

	var dups []Duplicate
	for _, text := range order {
		dups = append(dups, Duplicate{Text: text, Intents: labels[text]})
	}
	return dups
}

// Split divides the dataset into a training and a held-out slice.
// trainFraction is clamped to [0, 1].
func (d *Dataset) Split(trainFraction float64) (train, test []Example) {
	if trainFraction < 0 {
		trainFraction = 0
	}
	if trainFraction > 1 {
		trainFraction = 1
	}

	cut := int(float64(len(d.examples)) * trainFraction)
	return d.examples[:cut], d.examples[cut:]
}
