package audio

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"sluchapp/internal/models"
)

// NotFound is returned by Resolve when no file exists for an asset name
const NotFound models.AudioRef = ""

var supportedExtensions = []string{".mp3", ".ogg", ".wav"}

// Library resolves audio asset names to opaque URLs and serves the files
// behind them. URLs carry a random key per asset, never the asset name.
type Library struct {
	audioDir  string
	urlPrefix string

	mu    sync.RWMutex
	files map[string]string // asset name -> file name
	keys  map[string]string // asset name -> url key
	byKey map[string]string // url key -> file name
}

// NewLibrary creates a library for the audio files stored in audioDir and
// served under urlPrefix
func NewLibrary(audioDir, urlPrefix string) *Library {
	return &Library{
		audioDir:  audioDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		files:     make(map[string]string),
		keys:      make(map[string]string),
		byKey:     make(map[string]string),
	}
}

// Scan reads the audio directory and indexes every supported file by its base name
func (l *Library) Scan() error {
	entries, err := os.ReadDir(l.audioDir)
	if err != nil {
		return fmt.Errorf("failed to read audio directory: %w", err)
	}

	files := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !isSupported(ext) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		// Prefer the first extension in supportedExtensions order
		if existing, ok := files[name]; ok && rank(filepath.Ext(existing)) <= rank(ext) {
			continue
		}
		files[name] = entry.Name()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make(map[string]string, len(files))
	byKey := make(map[string]string, len(files))
	for name, file := range files {
		key, ok := l.keys[name]
		if !ok {
			key = uuid.NewString()
		}
		keys[name] = key
		byKey[key] = file
	}
	l.files, l.keys, l.byKey = files, keys, byKey
	return nil
}

// Resolve returns the URL of the named asset, or NotFound
func (l *Library) Resolve(name string) models.AudioRef {
	l.mu.RLock()
	key, ok := l.keys[name]
	l.mu.RUnlock()
	if !ok {
		return NotFound
	}
	return models.AudioRef(l.urlPrefix + "/" + key)
}

// ServeHTTP serves the file behind the {key} path value
func (l *Library) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l.mu.RLock()
	file, ok := l.byKey[r.PathValue("key")]
	l.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")
	http.ServeFile(w, r, filepath.Join(l.audioDir, file))
}

// Missing returns the asset names that have no file in the library
func (l *Library) Missing(names []string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var missing []string
	for _, name := range names {
		if _, ok := l.files[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Count returns the number of indexed audio files
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.files)
}

func isSupported(ext string) bool {
	return rank(ext) < len(supportedExtensions)
}

func rank(ext string) int {
	ext = strings.ToLower(ext)
	for i, e := range supportedExtensions {
		if e == ext {
			return i
		}
	}
	return len(supportedExtensions)
}
