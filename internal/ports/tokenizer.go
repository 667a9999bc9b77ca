package ports

// Tokenizer defines the interface for counting the tokens of a sentence.
type Tokenizer interface {
	// Count returns the number of tokens in the text.
	Count(text string) int
}
