package converter

import (
	"regexp"
)

// Kind classifies a token.
type Kind int

// The order matches the alternation order in tokenPattern; earlier kinds win.
const (
	KindCompound    Kind = iota // word.ext, e.g. "main.py"
	KindExtension               // ".py"
	KindWord                    // ASCII letters
	KindNumber                  // digits with an optional counter, e.g. "3個"
	KindJapanese                // hiragana, katakana and kanji run
	KindPunctuation             // one symbol
	KindSpace                   // whitespace run
	KindOther                   // one character matched by nothing above
)

var kindNames = [...]string{
	KindCompound:    "compound",
	KindExtension:   "extension",
	KindWord:        "word",
	KindNumber:      "number",
	KindJapanese:    "japanese",
	KindPunctuation: "punctuation",
	KindSpace:       "space",
	KindOther:       "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is a classified substring of the input.
type Token struct {
	Text string
	Kind Kind
}

// CounterSuffixes are the characters accepted directly after a digit run.
const CounterSuffixes = "つ個枚本件度回目番月日年時分秒"

const spaceClass = `\s\v\x{1c}-\x{1f}\x{85}\p{Zs}\x{2028}\x{2029}`

var tokenPattern = regexp.MustCompile(
	`([A-Za-z]+\.[A-Za-z]+)` +
		`|(\.[A-Za-z]+)` +
		`|([A-Za-z]+)` +
		`|(\p{Nd}+[` + CounterSuffixes + `]?)` +
		`|([\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FAF}]+)` +
		`|([^\p{L}\p{N}_` + spaceClass + `])` +
		`|([` + spaceClass + `]+)` +
		`|((?s:.))`,
)

// Tokenize splits text into tokens covering every byte of the input in order.
// Joining the Text of all tokens gives back the input.
func Tokenize(text string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	tokens := make([]Token, 0, len(matches))
	for _, match := range matches {
		kind := KindOther
		for group := 1; group*2 < len(match); group++ {
			if match[group*2] >= 0 {
				kind = Kind(group - 1)
				break
			}
		}
		tokens = append(tokens, Token{
			Text: text[match[0]:match[1]],
			Kind: kind,
		})
	}
	return tokens
}
