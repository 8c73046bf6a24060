package util

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data next to filename and renames it into
// place, so an interrupted run never leaves a half-written file where
// the original was.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, ".pngstash-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err = tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, filename)
}

// BackupFile copies filename to filename.bak before it gets
// overwritten in place.
func BackupFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return os.WriteFile(filename+".bak", data, 0644)
}
