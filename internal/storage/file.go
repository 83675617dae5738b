package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"todo_api/internal/domain"
)

// readFile loads the whole file at path, mapping failures to read errors.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(err)
	}
	return data, nil
}

func readError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.ReadFailure("file not found", err)
	case errors.Is(err, fs.ErrPermission):
		return domain.ReadFailure("permission denied for reading", err)
	default:
		return domain.ReadFailure("unexpected read error", err)
	}
}

func writeError(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return domain.WriteFailure("file or directory not found", err)
	case errors.Is(err, fs.ErrPermission):
		return domain.WriteFailure("permission denied for writing", err)
	case errors.Is(err, syscall.EROFS):
		return domain.WriteFailure("read-only file system", err)
	case errors.Is(err, syscall.ENOSPC):
		return domain.WriteFailure("no space left on device", err)
	default:
		return domain.WriteFailure("unexpected write error", err)
	}
}

// writeFile replaces the file at path with the output of encode. The data
// goes to a temporary file in the same directory first and is renamed over
// path, so readers see either the old or the new collection. An existing
// file keeps its permissions.
func writeFile(path string, encode func(w io.Writer) error) error {
	mode := fs.FileMode(0o644)
	if f, err := os.OpenFile(path, os.O_WRONLY, 0); err == nil {
		if fi, err := f.Stat(); err == nil {
			mode = fi.Mode().Perm()
		}
		_ = f.Close()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return writeError(err)
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return writeError(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encode(tmp); err != nil {
		_ = tmp.Close()
		return writeError(err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return writeError(err)
	}
	if err := tmp.Close(); err != nil {
		return writeError(err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return writeError(err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return writeError(err)
	}
	return nil
}
