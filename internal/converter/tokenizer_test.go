package converter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  []Token{},
		},
		{
			name:  "file names and extensions",
			input: "main.py と .csv",
			want: []Token{
				{Text: "main.py", Kind: KindCompound},
				{Text: " ", Kind: KindSpace},
				{Text: "と", Kind: KindJapanese},
				{Text: " ", Kind: KindSpace},
				{Text: ".csv", Kind: KindExtension},
			},
		},
		{
			name:  "numbers with counters",
			input: "3個と2つ目、10",
			want: []Token{
				{Text: "3個", Kind: KindNumber},
				{Text: "と", Kind: KindJapanese},
				{Text: "2つ", Kind: KindNumber},
				{Text: "目", Kind: KindJapanese},
				{Text: "、", Kind: KindPunctuation},
				{Text: "10", Kind: KindNumber},
			},
		},
		{
			name:  "english words and punctuation",
			input: "Hello,  API!",
			want: []Token{
				{Text: "Hello", Kind: KindWord},
				{Text: ",", Kind: KindPunctuation},
				{Text: "  ", Kind: KindSpace},
				{Text: "API", Kind: KindWord},
				{Text: "!", Kind: KindPunctuation},
			},
		},
		{
			name:  "dotted chain splits left to right",
			input: "a.b.c",
			want: []Token{
				{Text: "a.b", Kind: KindCompound},
				{Text: ".c", Kind: KindExtension},
			},
		},
		{
			name:  "katakana with long vowel mark",
			input: "サーバーを再起動",
			want: []Token{
				{Text: "サーバーを再起動", Kind: KindJapanese},
			},
		},
		{
			name:  "characters no other class takes",
			input: "snake_case ＡＢ",
			want: []Token{
				{Text: "snake", Kind: KindWord},
				{Text: "_", Kind: KindOther},
				{Text: "case", Kind: KindWord},
				{Text: " ", Kind: KindSpace},
				{Text: "Ａ", Kind: KindOther},
				{Text: "Ｂ", Kind: KindOther},
			},
		},
		{
			name:  "ideographic space is whitespace",
			input: "音声　テスト",
			want: []Token{
				{Text: "音声", Kind: KindJapanese},
				{Text: "　", Kind: KindSpace},
				{Text: "テスト", Kind: KindJapanese},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestTokenize_CoversInput(t *testing.T) {
	inputs := []string{
		"use main.py and data.csv now",
		"今日は2024年10月14日です。",
		"emoji 🎉 and café",
		"tabs\tand\nnewlines\r\n",
		"under_score__and..dots",
		"invalid \xff\xfe bytes",
		"全角１２３とＡＢＣ",
		"𠮷野家 (kanji outside the basic block)",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			var builder strings.Builder
			for _, token := range Tokenize(input) {
				assert.NotEmpty(t, token.Text)
				builder.WriteString(token.Text)
			}
			assert.Equal(t, input, builder.String())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "compound", KindCompound.String())
	assert.Equal(t, "other", KindOther.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
