package classifier

import (
	"path/filepath"
	"testing"
)

func trainingExamples() []Example {
	return []Example{
		{Intent: "greeting", Text: "hello there"},
		{Intent: "greeting", Text: "hi ace"},
		{Intent: "greeting", Text: "hey how are you"},
		{Intent: "goodbye", Text: "goodbye ace"},
		{Intent: "goodbye", Text: "bye see you later"},
		{Intent: "goodbye", Text: "see you tomorrow bye"},
		{Intent: "current_weather", Text: "what is the weather like"},
		{Intent: "current_weather", Text: "how is the weather outside"},
		{Intent: "current_weather", Text: "is it raining right now"},
	}
}

func TestPredictMatchesTrainingIntent(t *testing.T) {
	m := Train(trainingExamples(), DefaultThreshold)

	cases := map[string]string{
		"hello":                    "greeting",
		"hi there":                 "greeting",
		"bye ace":                  "goodbye",
		"what's the weather like?": "current_weather",
	}

	for text, want := range cases {
		got, confidence := m.Predict(text)
		if got != want {
			t.Errorf("Predict(%q) = %q (confidence %.3f), want %q", text, got, confidence, want)
		}
	}
}

func TestPredictEmptyTextIsUnknown(t *testing.T) {
	m := Train(trainingExamples(), DefaultThreshold)

	for _, text := range []string{"", "   ", "\t\n"} {
		got, confidence := m.Predict(text)
		if got != Unknown {
			t.Errorf("Predict(%q) = %q, want %q", text, got, Unknown)
		}
		if confidence != 0 {
			t.Errorf("Predict(%q) confidence = %v, want 0", text, confidence)
		}
	}
}

func TestPredictLowConfidenceCollapsesToUnknown(t *testing.T) {
	m := Train(trainingExamples(), DefaultThreshold)

	// Tokens never seen in training leave only the (balanced) priors, so the
	// score distribution is flat and the gate must trip.
	got, confidence := m.Predict("zxqv plorf wibble")
	if got != Unknown {
		t.Errorf("Predict = %q (confidence %.3f), want %q", got, confidence, Unknown)
	}
}

func TestPredictIsCaseInsensitive(t *testing.T) {
	m := Train(trainingExamples(), DefaultThreshold)

	lower, _ := m.Predict("hello there")
	upper, _ := m.Predict("HELLO THERE")
	if lower != upper {
		t.Errorf("case changed the prediction: %q vs %q", lower, upper)
	}
}

func TestConfidence(t *testing.T) {
	if got := Confidence(map[string]float64{}); got != 0 {
		t.Errorf("empty scores: got %v, want 0", got)
	}

	if got := Confidence(map[string]float64{"a": 0, "b": 0}); got != 0 {
		t.Errorf("all-zero scores: got %v, want 0", got)
	}

	flat := Confidence(map[string]float64{"a": 0.5, "b": 0.5})
	peaked := Confidence(map[string]float64{"a": 1, "b": 0})
	if flat >= peaked {
		t.Errorf("flat (%v) should score below peaked (%v)", flat, peaked)
	}
}

func TestEvaluate(t *testing.T) {
	m := Train(trainingExamples(), DefaultThreshold)

	accuracy := m.Evaluate([]Example{
		{Intent: "greeting", Text: "hello ace"},
		{Intent: "goodbye", Text: "bye for now"},
	})
	if accuracy != 1 {
		t.Errorf("accuracy = %v, want 1", accuracy)
	}

	if got := m.Evaluate(nil); got != 0 {
		t.Errorf("empty evaluation = %v, want 0", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	m := Train(trainingExamples(), 0.4)
	path := filepath.Join(t.TempDir(), "models", "intents.json")

	if err := m.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if loaded.Threshold != 0.4 {
		t.Errorf("threshold = %v, want 0.4", loaded.Threshold)
	}

	want, _ := m.Predict("hello there")
	got, _ := loaded.Predict("hello there")
	if got != want {
		t.Errorf("loaded model predicts %q, original %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing model file")
	}
}
