package tokenizer

import (
	"strings"

	"github.com/baditaflorin/go_argument_similarity/internal/ports"
)

// WhitespaceTokenizer counts whitespace-separated tokens. Sentence lengths
// are defined as raw word counts, so no case folding or punctuation
// stripping is applied.
type WhitespaceTokenizer struct{}

// NewWhitespaceTokenizer creates a new whitespace tokenizer.
func NewWhitespaceTokenizer() ports.Tokenizer {
	return &WhitespaceTokenizer{}
}

// Count returns the number of whitespace-separated tokens in the text.
func (t *WhitespaceTokenizer) Count(text string) int {
	return len(strings.Fields(text))
}
