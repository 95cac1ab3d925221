package validator

import (
	"strings"
	"testing"

	"github.com/arcanaland/punchcard/internal/card"
	"github.com/arcanaland/punchcard/internal/layout"
	"github.com/arcanaland/punchcard/internal/typeface"
)

func validate(t *testing.T, c card.Card) ValidationResults {
	t.Helper()

	tf, err := typeface.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	t.Cleanup(tf.Close)

	results, err := NewValidator(c, tf, layout.DefaultGeometry(), 6).Validate()
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	return results
}

func TestValidateClean(t *testing.T) {
	results := validate(t, card.Card{Header: "ada@example.com", Footer: "Analyst"})
	if !results.Valid() || len(results.Warnings) != 0 {
		t.Fatalf("results = %+v, want no errors or warnings", results)
	}
	if results.PointSize < 6 {
		t.Fatalf("PointSize = %d, want a legible size", results.PointSize)
	}
}

func TestValidateRejectsWideCharacter(t *testing.T) {
	results := validate(t, card.Card{Header: "a" + string(rune(200)) + "b"})
	if results.Valid() {
		t.Fatal("header with code 200 was accepted")
	}
	if !strings.Contains(results.Errors[0], "position 1") || !strings.Contains(results.Errors[0], card.Warning7Bit) {
		t.Fatalf("error = %q", results.Errors[0])
	}
}

func TestValidateWarnings(t *testing.T) {
	tests := []struct {
		name string
		card card.Card
		want string
	}{
		{name: "empty header", card: card.Card{}, want: "header is empty"},
		{name: "long header", card: card.Card{Header: strings.Repeat("x", 24)}, want: "hard to read"},
		{name: "tiny text", card: card.Card{Header: "x", Footer: strings.Repeat("y", 200)}, want: "below the legible minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := validate(t, tt.card)
			if !results.Valid() {
				t.Fatalf("unexpected errors: %v", results.Errors)
			}
			found := false
			for _, w := range results.Warnings {
				if strings.Contains(w, tt.want) {
					found = true
				}
			}
			if !found {
				t.Fatalf("warnings %v do not mention %q", results.Warnings, tt.want)
			}
		})
	}
}

func TestValidateControlCharacters(t *testing.T) {
	results := validate(t, card.Card{Header: "a\tb", Footer: "x\ny"})
	if len(results.Errors) != 2 {
		t.Fatalf("errors = %v, want one for header and one for footer", results.Errors)
	}
}
