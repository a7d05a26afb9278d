package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"boardbill-be-svc/internal/config"
)

// ReceiptStorage stores uploaded payment receipts and returns a public URL
// for later viewing
type ReceiptStorage interface {
	Save(userID string, filename string, content []byte) (string, error)
}

// diskReceiptStorage writes receipts to the local filesystem
type diskReceiptStorage struct {
	dir           string
	publicBaseURL string
}

// NewDiskReceiptStorage creates a ReceiptStorage backed by a local directory
func NewDiskReceiptStorage(cfg config.StorageConfig) ReceiptStorage {
	return &diskReceiptStorage{
		dir:           cfg.ReceiptDir,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

// Save writes the receipt under a unique user-timestamp name and returns its
// public URL
func (s *diskReceiptStorage) Save(userID string, filename string, content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("receipt file is empty")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipt dir: %w", err)
	}

	fname := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixNano(), filepath.Ext(filename))
	path := filepath.Join(s.dir, fname)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write receipt file: %w", err)
	}

	return s.publicBaseURL + "/" + fname, nil
}
