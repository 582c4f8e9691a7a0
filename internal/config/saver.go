package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
)

// PrivateFileMode is used for every file that may hold a secret: the config
// (generator API key), its backup and the file storage (LinkedIn API key).
const PrivateFileMode os.FileMode = 0600

// Save validates cfg, backs up the current file to path.bak and replaces the
// file atomically. An invalid config never reaches disk.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return &InvalidConfigError{
			Path:    path,
			Message: err.Error(),
			Hint:    "Check backend, storage and generator settings and try again",
		}
	}

	if err := checkWritePermission(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := backupConfig(path); err != nil {
		return fmt.Errorf("failed to back up %s: %w", path, err)
	}

	return WriteFileAtomic(path, data, PrivateFileMode)
}

// backupConfig copies an existing file to path.bak. A missing file is not an error.
func backupConfig(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", data, PrivateFileMode)
}

// WriteFileAtomic writes data to path.tmp, syncs it and renames it over path,
// creating the parent directory if needed. Readers see either the old or the
// new content, never a partial write.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// checkWritePermission reports a PermissionError before anything is touched.
func checkWritePermission(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	probe := filepath.Join(dir, ".write-test-"+uuid.NewString()[:8])
	f, err := os.Create(probe)
	if err != nil {
		return &PermissionError{
			Path:    dir,
			Op:      "write",
			Fix:     writePermissionFix(dir),
			Details: "Cannot write to config directory",
		}
	}
	f.Close()
	os.Remove(probe)

	if _, err := os.Stat(path); err != nil {
		return nil
	}
	existing, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &PermissionError{
			Path:    path,
			Op:      "write",
			Fix:     writePermissionFix(path),
			Details: "Config file is read-only",
		}
	}
	existing.Close()
	return nil
}

func writePermissionFix(path string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("Right-click %s → Properties → Security → Grant 'Write' permission", path)
	}
	return fmt.Sprintf("Run: chmod u+w %s", path)
}
