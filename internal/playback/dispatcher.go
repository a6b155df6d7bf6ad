// Package playback queues synthesized audio per voice model and plays it in
// the background. Audio for one model is played in the order it was queued;
// different models play independently of each other.
package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned by Enqueue after Close has been called.
var ErrClosed = errors.New("playback dispatcher is closed")

const filePrefix = "voice_"

type Options struct {
	// TempDirectory receives the audio files. Empty means os.TempDir().
	TempDirectory string
	// KeepFiles is how many old audio files survive each cleanup.
	KeepFiles int
	// QueueSize is the number of files that can wait per model before Enqueue blocks.
	QueueSize int
}

type Dispatcher struct {
	player        Player
	tempDirectory string
	keepFiles     int
	queueSize     int

	ctx    context.Context
	cancel context.CancelFunc

	// sendMu is held for reading while a file is handed to a queue and for
	// writing while the queues are closed.
	sendMu sync.RWMutex
	mu     sync.Mutex
	closed bool
	// closing is closed by Close to wake senders blocked on a full queue.
	closing     chan struct{}
	closeQueues sync.Once
	queues      map[string]chan string
	// pending holds files that are queued or playing; cleanup never removes them.
	pending map[string]struct{}
	wg      sync.WaitGroup
}

func NewDispatcher(player Player, options Options) *Dispatcher {
	if options.TempDirectory == "" {
		options.TempDirectory = os.TempDir()
	}
	if options.KeepFiles < 1 {
		options.KeepFiles = 10
	}
	if options.QueueSize < 1 {
		options.QueueSize = 32
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		player:        player,
		tempDirectory: options.TempDirectory,
		keepFiles:     options.KeepFiles,
		queueSize:     options.QueueSize,
		ctx:           ctx,
		cancel:        cancel,
		closing:       make(chan struct{}),
		queues:        make(map[string]chan string),
		pending:       make(map[string]struct{}),
	}
}

// Enqueue writes audio to a new file in the temp directory and queues it for
// playback with the given model. It returns the file path without waiting for
// playback.
func (d *Dispatcher) Enqueue(ctx context.Context, model string, audio []byte) (string, error) {
	d.sendMu.RLock()
	defer d.sendMu.RUnlock()

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return "", ErrClosed
	}
	d.cleanupLocked()
	path, err := d.writeFile(model, audio)
	if err != nil {
		d.mu.Unlock()
		return "", fmt.Errorf("writeFile > %w", err)
	}
	d.pending[path] = struct{}{}
	queue := d.queueLocked(model)
	d.mu.Unlock()

	select {
	case queue <- path:
		slog.Default().Debug("audio queued", "model", model, "path", path)
		return path, nil
	case <-ctx.Done():
		d.unqueue(path)
		return "", ctx.Err()
	case <-d.closing:
		d.unqueue(path)
		return "", ErrClosed
	}
}

func (d *Dispatcher) unqueue(path string) {
	d.mu.Lock()
	delete(d.pending, path)
	d.mu.Unlock()
}

// Close stops accepting audio and waits until every queued file has been
// played. If ctx ends first, playback in progress is canceled and ctx.Err()
// is returned.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.closing)
	}
	d.mu.Unlock()

	// Blocked senders return on closing, so this lock is not held up by a
	// full queue.
	d.sendMu.Lock()
	d.closeQueues.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for _, queue := range d.queues {
			close(queue)
		}
	})
	d.sendMu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

// queueLocked returns the queue of model, starting its worker on first use.
func (d *Dispatcher) queueLocked(model string) chan string {
	if queue, ok := d.queues[model]; ok {
		return queue
	}
	queue := make(chan string, d.queueSize)
	d.queues[model] = queue
	d.wg.Add(1)
	go d.work(model, queue)
	slog.Default().Debug("playback worker started", "model", model)
	return queue
}

func (d *Dispatcher) work(model string, queue <-chan string) {
	defer d.wg.Done()
	for path := range queue {
		if d.ctx.Err() == nil {
			if err := d.player.Play(d.ctx, path); err != nil {
				slog.Default().Error("failed to play audio",
					"model", model,
					"path", path,
					"error", err)
			}
		}
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()
	}
}

func (d *Dispatcher) writeFile(model string, audio []byte) (string, error) {
	if err := os.MkdirAll(d.tempDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll > %w", err)
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	path := filepath.Join(d.tempDirectory, filePrefix+sanitize(model)+"_"+id+".wav")
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile > %w", err)
	}
	return path, nil
}

// cleanupLocked removes the oldest audio files so that at most keepFiles
// remain, skipping files that are still queued or playing.
func (d *Dispatcher) cleanupLocked() {
	paths, err := filepath.Glob(filepath.Join(d.tempDirectory, filePrefix+"*.wav"))
	if err != nil || len(paths) <= d.keepFiles {
		return
	}

	type audioFile struct {
		path    string
		modTime int64
	}
	files := make([]audioFile, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, audioFile{path: path, modTime: info.ModTime().UnixNano()})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime > files[j].modTime
	})
	for _, file := range files[min(d.keepFiles, len(files)):] {
		if _, ok := d.pending[file.path]; ok {
			continue
		}
		if err := os.Remove(file.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Default().Warn("could not remove old audio file", "path", file.path, "error", err)
		}
	}
}

// sanitize keeps model names usable as part of a file name.
func sanitize(model string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, model)
}
