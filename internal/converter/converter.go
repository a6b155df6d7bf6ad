// Package converter rewrites mixed Japanese and English text so that a Japanese
// voice model can read it: English words, abbreviations and file extensions are
// replaced by katakana from the custom dictionary or the fallback table.
package converter

import (
	"log/slog"
	"strings"
)

// maxCombinedTokens is the longest run of adjacent tokens tried as a single
// dictionary key.
const maxCombinedTokens = 3

// Dictionary is the custom pronunciation dictionary.
type Dictionary interface {
	// ReloadIfStale picks up edits made to the dictionary since the last call.
	ReloadIfStale()
	Lookup(key string) (string, bool)
}

// Fallback is a read-only English to katakana table.
type Fallback interface {
	Lookup(word string) (string, bool)
}

// Result is the outcome of a conversion.
type Result struct {
	Text string
	// Unconverted lists, once each and in order of appearance, the lowercase
	// forms of tokens that neither the dictionary nor the fallback knew.
	Unconverted []string
}

type Converter struct {
	dictionary Dictionary
	fallback   Fallback
}

// New creates a Converter. fallback may be nil, in which case only the
// dictionary is consulted.
func New(dictionary Dictionary, fallback Fallback) *Converter {
	return &Converter{
		dictionary: dictionary,
		fallback:   fallback,
	}
}

// Convert reloads the dictionary if its file changed and converts text.
func (c *Converter) Convert(text string) Result {
	c.dictionary.ReloadIfStale()

	tokens := Tokenize(text)
	var builder strings.Builder
	unconverted := newWordSet()

	for i := 0; i < len(tokens); {
		if reading, consumed, ok := c.lookupRun(tokens[i:]); ok {
			builder.WriteString(reading)
			i += consumed
			continue
		}

		token := tokens[i]
		if token.Kind == KindCompound {
			builder.WriteString(c.convertCompound(token, unconverted))
		} else {
			builder.WriteString(c.convertToken(token, unconverted))
		}
		i++
	}

	result := Result{
		Text:        builder.String(),
		Unconverted: unconverted.words,
	}
	slog.Default().Debug("converted text",
		"input", text,
		"output", result.Text,
		"unconverted", result.Unconverted)
	return result
}

// lookupRun tries the concatenation of the next 3, 2 and then 1 tokens as a
// dictionary key and returns the first hit with the number of tokens used.
func (c *Converter) lookupRun(tokens []Token) (string, int, bool) {
	for length := min(maxCombinedTokens, len(tokens)); length > 0; length-- {
		var key strings.Builder
		for _, token := range tokens[:length] {
			key.WriteString(token.Text)
		}
		if reading, ok := c.dictionary.Lookup(key.String()); ok {
			return reading, length, true
		}
	}
	return "", 0, false
}

// convertCompound handles "word.ext" tokens that are not dictionary keys as a
// whole. When the extension is registered, the word is converted on its own
// and the extension reading is appended.
func (c *Converter) convertCompound(token Token, unconverted *wordSet) string {
	dot := strings.IndexByte(token.Text, '.')
	base, extension := token.Text[:dot], token.Text[dot:]
	if reading, ok := c.dictionary.Lookup(extension); ok {
		return c.convertToken(Token{Text: base, Kind: KindWord}, unconverted) + reading
	}
	return c.convertToken(token, unconverted)
}

func (c *Converter) convertToken(token Token, unconverted *wordSet) string {
	if !isConvertible(token) {
		return token.Text
	}

	lower := strings.ToLower(token.Text)
	if reading, ok := c.dictionary.Lookup(lower); ok {
		return reading
	}
	if c.fallback != nil && isLetters(token.Text) {
		if reading, ok := c.fallback.Lookup(lower); ok {
			return reading
		}
	}
	if !isDigits(token.Text) {
		unconverted.add(lower)
	}
	return token.Text
}

// isConvertible reports whether the token is English, a file name, an
// extension or a number made only of [A-Za-z0-9._].
func isConvertible(token Token) bool {
	switch token.Kind {
	case KindCompound, KindExtension, KindWord, KindNumber:
	default:
		return false
	}
	for i := 0; i < len(token.Text); i++ {
		ch := token.Text[i]
		if !isASCIILetter(ch) && !isASCIIDigit(ch) && ch != '.' && ch != '_' {
			return false
		}
	}
	return token.Text != ""
}

// isLetters reports whether s is ASCII letters with an optional leading dot.
func isLetters(s string) bool {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIILetter(s[i]) {
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isASCIIDigit(s[i]) {
			return false
		}
	}
	return true
}

func isASCIILetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isASCIIDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// wordSet keeps insertion order and drops duplicates.
type wordSet struct {
	words []string
	seen  map[string]struct{}
}

func newWordSet() *wordSet {
	return &wordSet{
		words: []string{},
		seen:  make(map[string]struct{}),
	}
}

func (s *wordSet) add(word string) {
	if _, ok := s.seen[word]; ok {
		return
	}
	s.seen[word] = struct{}{}
	s.words = append(s.words, word)
}
