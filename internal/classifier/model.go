// Package classifier trains and runs the intent classification model.
//
// The model is a multinomial naive Bayes over unigram bag-of-words with
// add-one smoothing: small, dependency-free, and deterministic, which is what
// an assistant that retrains from a CSV on the user's machine needs. The
// confidence gate mirrors the dispatch contract: when the score distribution
// is too flat, the prediction collapses to "unknown" rather than guessing.
package classifier

import (
	"math"
	"strings"
	"unicode"
)

// Unknown is the label returned when no prediction clears the threshold.
const Unknown = "unknown"

// DefaultThreshold is the minimum confidence required to keep a prediction.
const DefaultThreshold = 0.5

// Model is a trained intent classifier. All fields are exported so the model
// can round-trip through JSON (see persist.go).
type Model struct {
	// Labels in training order.
	Labels []string `json:"labels"`

	// DocCounts is the number of training examples per label.
	DocCounts map[string]int `json:"doc_counts"`

	// TokenCounts maps label -> token -> occurrences.
	TokenCounts map[string]map[string]int `json:"token_counts"`

	// TokenTotals is the total token count per label.
	TokenTotals map[string]int `json:"token_totals"`

	// Vocabulary is the set of tokens seen during training.
	Vocabulary map[string]bool `json:"vocabulary"`

	// TotalDocs is the overall number of training examples.
	TotalDocs int `json:"total_docs"`

	// Threshold is the confidence gate applied by Predict.
	Threshold float64 `json:"threshold"`
}

// Train fits a model on the given examples.
func Train(examples []Example, threshold float64) *Model {
	m := &Model{
		DocCounts:   make(map[string]int),
		TokenCounts: make(map[string]map[string]int),
		TokenTotals: make(map[string]int),
		Vocabulary:  make(map[string]bool),
		Threshold:   threshold,
	}

	for _, ex := range examples {
		if _, ok := m.DocCounts[ex.Intent]; !ok {
			m.Labels = append(m.Labels, ex.Intent)
			m.TokenCounts[ex.Intent] = make(map[string]int)
		}
		m.DocCounts[ex.Intent]++
		m.TotalDocs++

		for _, tok := range Tokenize(ex.Text) {
			m.TokenCounts[ex.Intent][tok]++
			m.TokenTotals[ex.Intent]++
			m.Vocabulary[tok] = true
		}
	}

	return m
}

// Scores returns the posterior probability per label, normalized to sum to 1.
// An empty input or an untrained model yields an empty map.
func (m *Model) Scores(text string) map[string]float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 || m.TotalDocs == 0 {
		return map[string]float64{}
	}

	vocabSize := float64(len(m.Vocabulary))

	logs := make(map[string]float64, len(m.Labels))
	maxLog := math.Inf(-1)
	for _, label := range m.Labels {
		lp := math.Log(float64(m.DocCounts[label]) / float64(m.TotalDocs))
		denom := float64(m.TokenTotals[label]) + vocabSize
		for _, tok := range tokens {
			lp += math.Log((float64(m.TokenCounts[label][tok]) + 1) / denom)
		}
		logs[label] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}

	// Softmax in log space for numerical stability.
	var sum float64
	scores := make(map[string]float64, len(logs))
	for label, lp := range logs {
		v := math.Exp(lp - maxLog)
		scores[label] = v
		sum += v
	}
	for label := range scores {
		scores[label] /= sum
	}

	return scores
}

// Predict classifies the text, collapsing to Unknown when the confidence of
// the score distribution is below the model threshold.
func (m *Model) Predict(text string) (string, float64) {
	scores := m.Scores(strings.ToLower(strings.TrimSpace(text)))
	if len(scores) == 0 {
		return Unknown, 0
	}

	best := ""
	for _, label := range m.Labels {
		if best == "" || scores[label] > scores[best] {
			best = label
		}
	}

	confidence := Confidence(scores)
	if confidence < m.Threshold {
		return Unknown, confidence
	}

	return best, confidence
}

// Evaluate returns the accuracy of the model on a held-out slice.
func (m *Model) Evaluate(examples []Example) float64 {
	if len(examples) == 0 {
		return 0
	}

	var correct int
	for _, ex := range examples {
		if label, _ := m.Predict(ex.Text); label == ex.Intent {
			correct++
		}
	}

	return float64(correct) / float64(len(examples))
}

// Confidence measures how peaked a score distribution is: the sample standard
// deviation of the scores divided by their mean. A flat distribution scores
// near zero; a single dominant label scores high. All-zero scores yield 0.
func Confidence(scores map[string]float64) float64 {
	if len(scores) < 2 {
		if len(scores) == 1 {
			for _, v := range scores {
				if v > 0 {
					return 1
				}
			}
		}
		return 0
	}

	values := make([]float64, 0, len(scores))
	allZero := true
	var sum float64
	for _, v := range scores {
		values = append(values, v)
		sum += v
		if v != 0 {
			allZero = false
		}
	}
	if allZero {
		return 0
	}

	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	stdev := math.Sqrt(sq / float64(len(values)-1))

	return stdev / mean
}

// Tokenize lowercases the text and splits it on anything that is not a letter,
// digit or apostrophe.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
