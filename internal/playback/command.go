package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// FilePlaceholder in a command argument is replaced by the audio file path.
// When no argument contains it, the path is appended as the last argument.
const FilePlaceholder = "{file}"

const vlcPath = `C:\Program Files\VideoLAN\VLC\vlc.exe`

// ErrNoPlayer is returned when no audio player command can be found.
var ErrNoPlayer = errors.New("no audio player found: install paplay, aplay or ffplay, or set playback.command")

// CommandPlayer plays files by running an external program.
type CommandPlayer struct {
	argv []string
	// windowsPath converts the file path with wslpath before running argv.
	windowsPath bool
}

// NewCommandPlayer runs argv for each file. An empty argv picks a player for
// the current platform.
func NewCommandPlayer(argv []string) (*CommandPlayer, error) {
	if len(argv) > 0 {
		return &CommandPlayer{argv: argv}, nil
	}

	player, err := detectCommand(runtime.GOOS, isWSL(), exec.LookPath)
	if err != nil {
		return nil, fmt.Errorf("detectCommand > %w", err)
	}
	slog.Default().Debug("audio player detected", "command", player.argv)
	return player, nil
}

func detectCommand(goos string, wsl bool, lookPath func(string) (string, error)) (*CommandPlayer, error) {
	if wsl {
		script := fmt.Sprintf(`& "%s" --intf dummy --dummy-quiet --play-and-exit "%s"`, vlcPath, FilePlaceholder)
		return &CommandPlayer{
			argv:        []string{"powershell.exe", "-NoProfile", "-Command", script},
			windowsPath: true,
		}, nil
	}
	if goos == "darwin" {
		return &CommandPlayer{argv: []string{"afplay", FilePlaceholder}}, nil
	}

	candidates := [][]string{
		{"paplay", FilePlaceholder},
		{"aplay", "-q", FilePlaceholder},
		{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", FilePlaceholder},
	}
	for _, candidate := range candidates {
		if _, err := lookPath(candidate[0]); err == nil {
			return &CommandPlayer{argv: candidate}, nil
		}
	}
	return nil, ErrNoPlayer
}

func isWSL() bool {
	release, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(release)), "microsoft")
}

// Play implements the Player interface
func (p *CommandPlayer) Play(ctx context.Context, path string) error {
	if p.windowsPath {
		converted, err := exec.CommandContext(ctx, "wslpath", "-w", path).Output()
		if err != nil {
			return fmt.Errorf("wslpath > %w", err)
		}
		path = strings.TrimSpace(string(converted))
	}

	args := p.args(path)
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s > %w: %s", args[0], err, strings.TrimSpace(output.String()))
	}
	return nil
}

func (p *CommandPlayer) args(path string) []string {
	args := make([]string, 0, len(p.argv)+1)
	replaced := false
	for _, arg := range p.argv {
		if strings.Contains(arg, FilePlaceholder) {
			arg = strings.ReplaceAll(arg, FilePlaceholder, path)
			replaced = true
		}
		args = append(args, arg)
	}
	if !replaced {
		args = append(args, path)
	}
	return args
}

// NopPlayer discards audio.
type NopPlayer struct{}

// Play implements the Player interface
func (NopPlayer) Play(_ context.Context, path string) error {
	slog.Default().Debug("playback disabled, skipping audio", "path", path)
	return nil
}
