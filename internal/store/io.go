package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"transportkeys/internal/util/memzero"
)

// readSealedJSON reads path into out, opening the envelope first when
// passphrase is set. A missing file is not an error.
func readSealedJSON(path, passphrase string, out any) error {
	b, err := readFile(path)
	if err != nil {
		return err
	}
	if b == nil { // file didn’t exist
		return nil
	}
	if passphrase != "" {
		pt, err := open(passphrase, filepath.Base(path), b)
		if err != nil {
			return err
		}
		defer memzero.Zero(pt)
		b = pt
	}
	return json.Unmarshal(b, out)
}

// writeSealedJSON marshals v, seals it when passphrase is set, and replaces
// path atomically.
func writeSealedJSON(path, passphrase string, params scryptParams, v any, mode os.FileMode) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	defer memzero.Zero(b)
	if passphrase != "" {
		sealed, err := seal(passphrase, filepath.Base(path), b, params)
		if err != nil {
			return err
		}
		return writeFile(path, sealed, mode)
	}
	return writeFile(path, b, mode)
}

// readFile reads the file at path into b; a missing file is not an error.
func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
