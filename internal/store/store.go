package store

import (
	"errors"
	"io"
	"os"
)

var (
	ErrNotFound = errors.New("not found")
)

// writeFileAtomic writes data to path via a temp file in the same directory
// followed by an atomic rename, so readers never observe a partial write.
// The temp file is removed when the write fails.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// copyFile copies src to dst, used for the pre-save backup.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
