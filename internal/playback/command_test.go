package playback

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCommand(t *testing.T) {
	tests := []struct {
		name            string
		goos            string
		wsl             bool
		installed       []string
		wantArgv0       string
		wantWindowsPath bool
		wantErr         error
	}{
		{
			name:            "wsl uses vlc through powershell",
			goos:            "linux",
			wsl:             true,
			wantArgv0:       "powershell.exe",
			wantWindowsPath: true,
		},
		{
			name:      "macOS",
			goos:      "darwin",
			wantArgv0: "afplay",
		},
		{
			name:      "pulseaudio preferred",
			goos:      "linux",
			installed: []string{"aplay", "paplay"},
			wantArgv0: "paplay",
		},
		{
			name:      "ffplay as the last resort",
			goos:      "linux",
			installed: []string{"ffplay"},
			wantArgv0: "ffplay",
		},
		{
			name:    "nothing installed",
			goos:    "linux",
			wantErr: ErrNoPlayer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath := func(file string) (string, error) {
				for _, installed := range tt.installed {
					if installed == file {
						return "/usr/bin/" + file, nil
					}
				}
				return "", errors.New("not found")
			}

			got, err := detectCommand(tt.goos, tt.wsl, lookPath)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantArgv0, got.argv[0])
			assert.Equal(t, tt.wantWindowsPath, got.windowsPath)
		})
	}
}

func TestCommandPlayer_args(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "placeholder replaced",
			argv: []string{"ffplay", "-nodisp", "{file}"},
			want: []string{"ffplay", "-nodisp", "/tmp/a.wav"},
		},
		{
			name: "placeholder inside an argument",
			argv: []string{"sh", "-c", "play '{file}'"},
			want: []string{"sh", "-c", "play '/tmp/a.wav'"},
		},
		{
			name: "path appended without placeholder",
			argv: []string{"aplay", "-q"},
			want: []string{"aplay", "-q", "/tmp/a.wav"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := &CommandPlayer{argv: tt.argv}
			assert.Equal(t, tt.want, player.args("/tmp/a.wav"))
		})
	}
}

func TestCommandPlayer_Play(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	dir := t.TempDir()
	source := filepath.Join(dir, "voice_test.wav")
	copied := filepath.Join(dir, "copied.wav")
	require.NoError(t, os.WriteFile(source, []byte("RIFF"), 0644))

	player, err := NewCommandPlayer([]string{"sh", "-c", `cp "$0" "$1"`, FilePlaceholder, copied})
	require.NoError(t, err)
	require.NoError(t, player.Play(context.Background(), source))

	contents, err := os.ReadFile(copied)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(contents))

	failing, err := NewCommandPlayer([]string{"sh", "-c", "echo broken >&2; exit 3", FilePlaceholder})
	require.NoError(t, err)
	err = failing.Play(context.Background(), source)
	assert.ErrorContains(t, err, "broken")
}

func TestNopPlayer_Play(t *testing.T) {
	assert.NoError(t, NopPlayer{}.Play(context.Background(), "/nonexistent.wav"))
}
