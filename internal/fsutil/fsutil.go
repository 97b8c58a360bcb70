// Package fsutil holds the path and file helpers shared by the upload and
// settings code paths.
package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PirateLibrary/PirateLibrary/internal/uniuri"
)

// ErrInvalidName is returned for names that do not reduce to a plain file name.
var ErrInvalidName = errors.New("invalid file name")

// SanitizeFilename reduces a client supplied name to its last path element.
// Both slash and backslash count as separators since browsers on Windows may
// send the full local path.
func SanitizeFilename(name string) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}

	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}

	name = strings.TrimSpace(name)

	switch name {
	case "", ".", "..":
		return "", ErrInvalidName
	}

	return name, nil
}

// JoinWithinRoot sanitizes name and joins it to root. The result is always a
// direct child of root.
func JoinWithinRoot(root, name string) (string, error) {
	clean, err := SanitizeFilename(name)
	if err != nil {
		return "", err
	}

	return filepath.Join(root, clean), nil
}

// WriteFile writes r to path through a temporary file in the same directory
// and a rename, so readers never observe a partial file.
func WriteFile(path string, r io.Reader, perm os.FileMode) (int64, error) {
	dir, base := filepath.Split(path)
	tmp := filepath.Join(dir, "."+base+".tmp-"+uniuri.NewLen(8))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, perm)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, r)
	if err == nil {
		err = f.Sync()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err == nil {
		err = os.Rename(tmp, path)
	}

	if err != nil {
		_ = os.Remove(tmp)

		return 0, err
	}

	return n, nil
}
