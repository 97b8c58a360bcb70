package settings

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/PirateLibrary/PirateLibrary/internal/fsutil"
)

// FileStore keeps the record as a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex // single writer
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the record.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the record, writing the default one if the file does not exist.
func (f *FileStore) Load() (Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		def := Default()

		return def, f.write(def)
	}

	if err != nil {
		return Settings{}, pkgerrors.Wrap(err, "read settings")
	}

	s, err := decode(data)
	if err != nil {
		return Settings{}, pkgerrors.Wrapf(err, "decode %s", f.path)
	}

	return s, nil
}

// Save atomically replaces the record.
func (f *FileStore) Save(s Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(s)
}

// Reset deletes the record file. A missing file is not an error.
func (f *FileStore) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return pkgerrors.Wrap(err, "remove settings")
	}

	return nil
}

func (f *FileStore) write(s Settings) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return pkgerrors.Wrap(err, "create settings directory")
	}

	if _, err = fsutil.WriteFile(f.path, bytes.NewReader(data), 0o600); err != nil {
		return pkgerrors.Wrap(err, "write settings")
	}

	return nil
}
