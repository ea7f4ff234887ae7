package seedfile

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupResult contains information about a completed backup
type BackupResult struct {
	Filename string
	Path     string
	Size     int64
}

// Backup writes a gzip copy of the file at path into a "backups" directory
// next to it. The copy is taken from disk, so it reflects the content
// before this run wrote anything.
func Backup(path string, now time.Time) (*BackupResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file for backup: %w", err)
	}

	backupDir := filepath.Join(filepath.Dir(path), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	// Generate timestamped filename
	timestamp := now.Format("2006-01-02_15.04.05")
	filename := timestamp + "_" + filepath.Base(path) + ".gz"
	backupPath := filepath.Join(backupDir, filename)

	file, err := os.Create(backupPath)
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	gzWriter.Name = filepath.Base(path)
	gzWriter.ModTime = now
	if _, err := gzWriter.Write(data); err != nil {
		return nil, fmt.Errorf("write gzip data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return nil, fmt.Errorf("close gzip writer: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	return &BackupResult{
		Filename: filename,
		Path:     backupPath,
		Size:     info.Size(),
	}, nil
}
