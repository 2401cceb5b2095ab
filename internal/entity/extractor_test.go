package entity

import "testing"

func newTestExtractor() *Extractor {
	return NewExtractor([]string{"london", "paris", "new york", "rio de janeiro", "Tokyo"})
}

func TestExtractGazetteerHit(t *testing.T) {
	e := newTestExtractor()

	entities := e.Extract("what's the weather like in London today")
	if len(entities) == 0 {
		t.Fatal("expected at least one entity")
	}
	if entities[0].Label != LabelGPE {
		t.Errorf("label = %q, want %q", entities[0].Label, LabelGPE)
	}
	if entities[0].Text != "london" {
		t.Errorf("text = %q, want %q", entities[0].Text, "london")
	}
}

func TestExtractMultiWordPlace(t *testing.T) {
	e := newTestExtractor()

	loc, ok := e.FirstGPE("how is the weather in new york")
	if !ok {
		t.Fatal("expected a GPE entity")
	}
	if loc != "new york" {
		t.Errorf("location = %q, want %q", loc, "new york")
	}
}

func TestExtractPositionalFallback(t *testing.T) {
	e := newTestExtractor()

	// "springfield" is not in the gazetteer; the locative pattern catches it.
	loc, ok := e.FirstGPE("what's the weather in springfield?")
	if !ok {
		t.Fatal("expected a GPE entity from the positional pattern")
	}
	if loc != "springfield" {
		t.Errorf("location = %q, want %q", loc, "springfield")
	}
}

func TestExtractNoEntities(t *testing.T) {
	e := newTestExtractor()

	for _, text := range []string{"", "   ", "add milk to my list"} {
		if entities := e.Extract(text); len(entities) != 0 {
			t.Errorf("Extract(%q) = %v, want none", text, entities)
		}
	}
}

func TestFirstGPEMiss(t *testing.T) {
	e := newTestExtractor()

	if loc, ok := e.FirstGPE("hello there"); ok {
		t.Errorf("unexpected GPE %q", loc)
	}
}
