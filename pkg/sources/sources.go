// Package sources keeps the source files a run has loaded in memory, keyed by
// absolute path, so that diagnostics can quote lines and the watcher can tell
// a real edit from a spurious file event.
package sources

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"minic/pkg/utils"
)

// DefaultMaxFileBytes caps a single source file (1 MiB).
const DefaultMaxFileBytes = 1 << 20

var (
	ErrFileNotFound = errors.New("source file not found")
	ErrFileTooLarge = errors.New("source file exceeds size limit")
	ErrNotRegular   = errors.New("not a regular file")
)

type File struct {
	Path     string // absolute
	Dir      string
	Data     []byte
	Loaded   time.Time
	Modified time.Time // host modification time; zero for in-memory files
}

// Text returns the file contents as source text.
func (f *File) Text() string { return string(f.Data) }

// Line returns the trimmed text of the 1-based line n, or "" when n is out of range.
func (f *File) Line(n int) string {
	if n < 1 {
		return ""
	}
	lines := strings.Split(string(f.Data), "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[n-1])
}

// Store is an in-memory set of source files.
type Store struct {
	Mu           sync.RWMutex
	Files        map[string]*File
	UsedBytes    int
	MaxFileBytes int
}

// NewStore creates an empty store. maxFileBytes <= 0 selects DefaultMaxFileBytes.
func NewStore(maxFileBytes int) *Store {
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}
	return &Store{
		Files:        make(map[string]*File),
		MaxFileBytes: maxFileBytes,
	}
}

// Put stores data under path, replacing any previous contents.
// The data is deep copied.
func (s *Store) Put(path string, data []byte) (*File, error) {
	full, dir, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	return s.put(full, dir, data, time.Time{})
}

func (s *Store) put(full, dir string, data []byte, modified time.Time) (*File, error) {
	if len(data) > s.MaxFileBytes {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", full, ErrFileTooLarge, len(data), s.MaxFileBytes)
	}

	newData := make([]byte, len(data))
	copy(newData, data)
	f := &File{Path: full, Dir: dir, Data: newData, Loaded: time.Now(), Modified: modified}

	s.Mu.Lock()
	defer s.Mu.Unlock()
	if old, ok := s.Files[full]; ok {
		s.UsedBytes -= len(old.Data)
	}
	s.Files[full] = f
	s.UsedBytes += len(newData)
	return f, nil
}

// Load reads path from the host file system into the store.
func (s *Store) Load(path string) (*File, error) {
	full, dir, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if info.Size() > int64(s.MaxFileBytes) {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", path, ErrFileTooLarge, info.Size(), s.MaxFileBytes)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	return s.put(full, dir, data, info.ModTime())
}

// Reload re-reads path and reports whether its contents differ from the
// stored copy. A file that was never loaded counts as changed.
func (s *Store) Reload(path string) (*File, bool, error) {
	full, _, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, false, err
	}
	s.Mu.RLock()
	old, had := s.Files[full]
	s.Mu.RUnlock()

	f, err := s.Load(full)
	if err != nil {
		return nil, false, err
	}
	return f, !had || !bytes.Equal(old.Data, f.Data), nil
}

// Get returns the stored file for path.
func (s *Store) Get(path string) (*File, error) {
	full, _, err := utils.GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	s.Mu.RLock()
	defer s.Mu.RUnlock()
	f, ok := s.Files[full]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}
	return f, nil
}

// Remove drops path from the store.
func (s *Store) Remove(path string) error {
	full, _, err := utils.GetPathInfo(path)
	if err != nil {
		return err
	}
	s.Mu.Lock()
	defer s.Mu.Unlock()
	f, ok := s.Files[full]
	if !ok {
		return fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}
	s.UsedBytes -= len(f.Data)
	delete(s.Files, full)
	return nil
}

// List returns the sorted absolute paths of every stored file.
func (s *Store) List() []string {
	s.Mu.RLock()
	defer s.Mu.RUnlock()

	keys := make([]string, 0, len(s.Files))
	for k := range s.Files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
