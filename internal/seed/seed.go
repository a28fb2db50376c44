// Package seed loads the embedded question bank into an empty local store.
// The bank is static content: it is validated against a JSON Schema at
// load time and inserted exactly once.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/prepdeck/internal/store"
)

//go:embed questions.json
var questionsJSON []byte

//go:embed schema.json
var schemaJSON []byte

// bankQuestion is the wire shape of one seeded question. Difficulty is the
// integer authoring band; it becomes the initial continuous difficulty.
type bankQuestion struct {
	ID           string   `json:"id"`
	Topic        string   `json:"topic"`
	Subtopic     string   `json:"subtopic"`
	Difficulty   int      `json:"difficulty"`
	Content      string   `json:"content"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Hint         string   `json:"hint"`
	Passage      string   `json:"passage"`
}

// Load parses and validates the embedded bank.
func Load() ([]store.Question, error) {
	if err := validate(questionsJSON); err != nil {
		return nil, fmt.Errorf("seed bank invalid: %w", err)
	}

	var bank []bankQuestion
	if err := json.Unmarshal(questionsJSON, &bank); err != nil {
		return nil, fmt.Errorf("parse seed bank: %w", err)
	}

	qs := make([]store.Question, 0, len(bank))
	for _, b := range bank {
		if b.CorrectIndex >= len(b.Options) {
			return nil, fmt.Errorf("question %s: correct index %d out of range", b.ID, b.CorrectIndex)
		}
		qs = append(qs, store.Question{
			ID:           b.ID,
			Topic:        b.Topic,
			Subtopic:     b.Subtopic,
			Difficulty:   float64(b.Difficulty),
			Content:      b.Content,
			Options:      store.Options(b.Options),
			CorrectIndex: b.CorrectIndex,
			Explanation:  b.Explanation,
			Hint:         b.Hint,
			Passage:      b.Passage,
		})
	}
	return qs, nil
}

// IfEmpty seeds the question bank when the local store holds no questions.
// Returns the number of questions inserted (0 when already seeded).
func IfEmpty(ctx context.Context, questions *store.QuestionRepo) (int, error) {
	n, err := questions.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	qs, err := Load()
	if err != nil {
		return 0, err
	}
	if err := questions.BulkInsert(ctx, qs); err != nil {
		return 0, err
	}
	return len(qs), nil
}

func validate(raw []byte) error {
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://question-bank.json"
	if err := c.AddResource(schemaURL, schemaDoc); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
