package transliteration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 200)

	tests := []struct {
		word   string
		want   string
		wantOK bool
	}{
		{word: "hello", want: "ハロー", wantOK: true},
		{word: "World", want: "ワールド", wantOK: true},
		{word: "no", want: "ノー", wantOK: true},
		{word: "true", want: "トゥルー", wantOK: true},
		{word: "xyzzy", wantOK: false},
		{word: ".py", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := table.Lookup(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, table, again)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]string
		wantErr bool
	}{
		{
			name:  "mixed case keys are lowercased",
			input: "Hello: ハロー\nAPI: エーピーアイ\n",
			want:  map[string]string{"hello": "ハロー", "api": "エーピーアイ"},
		},
		{
			name:  "blank values dropped",
			input: "hello: ハロー\nempty: \"\"\n",
			want:  map[string]string{"hello": "ハロー"},
		},
		{
			name:  "empty document",
			input: "",
			want:  map[string]string{},
		},
		{
			name:    "not a mapping",
			input:   "- hello\n- world\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.words)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kubernetes: クバネティス\n"), 0644))

	table, err := LoadFile(path)
	require.NoError(t, err)
	got, ok := table.Lookup("kubernetes")
	assert.True(t, ok)
	assert.Equal(t, "クバネティス", got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTable_Lookup_Nil(t *testing.T) {
	var table *Table
	got, ok := table.Lookup("hello")
	assert.False(t, ok)
	assert.Empty(t, got)
}
