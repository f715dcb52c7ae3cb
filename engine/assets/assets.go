package assets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/nanite/engine/core"
)

// MaxSourceSize is the largest shader source accepted, in bytes.
const MaxSourceSize = 1 << 20

// changed paths buffered between two drains; further changes are coalesced
const changeBufferSize = 64

var (
	ErrSourceTooLarge = errors.New("source exceeds maximum size")
	ErrEmptyPath      = errors.New("empty asset path")
	ErrClosed         = errors.New("asset manager already closed")
)

type AssetInfo struct {
	Path       string
	LastLoaded time.Time
}

// AssetManager loads shader sources from disk and, when watching is enabled,
// reports which loaded files changed since the last drain.
type AssetManager struct {
	baseDir string
	assets  map[string]AssetInfo
	watched map[string]bool

	mutex sync.RWMutex

	done     chan struct{}
	wg       sync.WaitGroup
	fsnotify *fsnotify.Watcher
	isClosed bool
	changes  chan string
	pending  map[string]bool
}

func NewAssetManager(baseDir string) *AssetManager {
	return &AssetManager{
		baseDir: baseDir,
		assets:  make(map[string]AssetInfo),
		watched: make(map[string]bool),
		pending: make(map[string]bool),
		changes: make(chan string, changeBufferSize),
		done:    make(chan struct{}),
	}
}

var _ SourceLoader = (*AssetManager)(nil)

// EnableWatch starts the file watcher. Sources loaded afterwards, and those
// loaded before, are reported by DrainChanges when modified on disk.
func (am *AssetManager) EnableWatch() error {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	if am.isClosed {
		return ErrClosed
	}
	if am.fsnotify != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	am.fsnotify = w
	for path := range am.assets {
		if err := am.watchLocked(path); err != nil {
			return err
		}
	}
	am.wg.Add(1)
	go am.start()
	return nil
}

func (am *AssetManager) resolve(path string) string {
	if !filepath.IsAbs(path) && am.baseDir != "" {
		path = filepath.Join(am.baseDir, path)
	}
	return absPath(path)
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// LoadSource reads the file at path, relative to the base directory.
func (am *AssetManager) LoadSource(path string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	full := am.resolve(path)

	f, err := os.Open(full)
	if err != nil {
		return "", fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, MaxSourceSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", path, err)
	}
	if len(buf) > MaxSourceSize {
		return "", fmt.Errorf("%w: %s", ErrSourceTooLarge, path)
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[full] = AssetInfo{
		Path:       path,
		LastLoaded: time.Now(),
	}
	if am.fsnotify != nil {
		if err := am.watchLocked(full); err != nil {
			core.LogWarn("cannot watch %s: %s", path, err)
		}
	}
	return string(buf), nil
}

// watchLocked watches the directory of the file. Editors often replace files
// by rename, which a watch on the file itself would lose.
func (am *AssetManager) watchLocked(full string) error {
	dir := filepath.Dir(full)
	if am.watched[dir] {
		return nil
	}
	if err := am.fsnotify.Add(dir); err != nil {
		return err
	}
	am.watched[dir] = true
	return nil
}

// DrainChanges returns the paths, as given to LoadSource, of the loaded
// sources modified since the previous call. It never blocks.
func (am *AssetManager) DrainChanges() []string {
	var out []string
	for {
		select {
		case p := <-am.changes:
			am.mutex.Lock()
			delete(am.pending, p)
			am.mutex.Unlock()
			out = append(out, p)
		default:
			return out
		}
	}
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				am.handleFileEvent(e.Name)
			}
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("file watcher: %s", err)
		case <-am.done:
			return
		}
	}
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(name string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[absPath(name)]
	if !ok || am.pending[info.Path] {
		return
	}
	select {
	case am.changes <- info.Path:
		am.pending[info.Path] = true
		core.LogDebug("asset changed: %s", info.Path)
	default:
		core.LogWarn("asset change buffer full, dropping %s", info.Path)
	}
}

// Close stops the watcher. Loading keeps working afterwards.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	close(am.done)
	w := am.fsnotify
	am.mutex.Unlock()

	am.wg.Wait()
	if w != nil {
		return w.Close()
	}
	return nil
}
