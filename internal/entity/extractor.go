// Package entity extracts named entities from user utterances.
//
// The assistant only needs coarse location recognition (which city is the
// weather question about), so the extractor combines a configurable gazetteer
// of known places with positional patterns like "weather in <place>". Matches
// are labeled GPE to keep the handler contract stable regardless of how the
// extraction is implemented.
package entity

import (
	"regexp"
	"strings"
)

// LabelGPE marks geopolitical entities (cities, countries).
const LabelGPE = "GPE"

// Entity is a recognized span of the input text.
type Entity struct {
	Text  string
	Label string
}

// Extractor recognizes entities in free text.
type Extractor struct {
	places   map[string]bool
	patterns []*regexp.Regexp
}

// Positional fallbacks: a place name following a locative preposition at the
// end of the utterance ("what's the weather in new york").
var locativePatterns = []string{
	`(?i)\b(?:in|at|for|around|near)\s+(?P<place>[a-z][a-z .'-]*[a-z.])[?!.]*$`,
}

// NewExtractor creates an Extractor with the given gazetteer of known places.
// Place matching is case-insensitive and multi-word aware.
func NewExtractor(places []string) *Extractor {
	e := &Extractor{
		places: make(map[string]bool, len(places)),
	}
	for _, p := range places {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			e.places[p] = true
		}
	}

	for _, pattern := range locativePatterns {
		e.patterns = append(e.patterns, regexp.MustCompile(pattern))
	}

	return e
}

// Extract returns the entities found in the text, gazetteer hits first.
func (e *Extractor) Extract(text string) []Entity {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var entities []Entity
	seen := make(map[string]bool)

	add := func(span string) {
		span = strings.TrimSpace(span)
		key := strings.ToLower(span)
		if span == "" || seen[key] {
			return
		}
		seen[key] = true
		entities = append(entities, Entity{Text: span, Label: LabelGPE})
	}

	// Gazetteer pass: slide a window of up to three words over the utterance
	// so multi-word places ("new york", "rio de janeiro") are found.
	words := strings.Fields(strings.ToLower(stripPunctuation(text)))
	for size := 3; size >= 1; size-- {
		for i := 0; i+size <= len(words); i++ {
			candidate := strings.Join(words[i:i+size], " ")
			if e.places[candidate] {
				add(candidate)
			}
		}
	}

	// Pattern pass: positional fallback for places not in the gazetteer.
	for _, re := range e.patterns {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		idx := re.SubexpIndex("place")
		if idx >= 0 && idx < len(match) {
			add(strings.Trim(match[idx], " .?!"))
		}
	}

	return entities
}

// FirstGPE returns the first location entity in the text, if any.
func (e *Extractor) FirstGPE(text string) (string, bool) {
	for _, ent := range e.Extract(text) {
		if ent.Label == LabelGPE {
			return ent.Text, true
		}
	}
	return "", false
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', ',', ';', ':':
			return -1
		}
		return r
	}, s)
}
