// Package ner provides named entity recognition using prose.
// It supplements the regex candidate extractor with higher-precision person
// spans; a failure degrades to an empty result, never an error
package ner

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// Entity represents a named entity found in text
type Entity struct {
	Text  string
	Label string // PERSON, GPE, etc.
}

// Tagger wraps prose behind the collaborator seam the extractors consume
type Tagger struct{}

// New returns a Tagger
func New() *Tagger { return &Tagger{} }

// Entities extracts all named entities from text
func (t *Tagger) Entities(text string) []Entity {
	if text == "" {
		return nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		// collaborator outage degrades quality, never aborts the batch
		return nil
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities
}

// People extracts unique person names from text in first-seen order
func (t *Tagger) People(text string) []string {
	seen := make(map[string]bool)
	var people []string
	for _, ent := range t.Entities(text) {
		if ent.Label != "PERSON" {
			continue
		}
		name := normalizeName(ent.Text)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		people = append(people, name)
	}
	return people
}

// normalizeName cleans up a person's name
func normalizeName(name string) string {
	name = strings.TrimSuffix(name, "'s")
	name = strings.TrimSuffix(name, "’s")
	return strings.TrimSpace(name)
}
