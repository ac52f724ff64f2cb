package image

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/pandamarket/api/pkg/apperror"
)

// MaxUploadSize bounds a single uploaded file
const MaxUploadSize = 5 << 20 // 5 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DiskStorage writes uploaded images to a local directory and serves
// them back as URLs under BaseURL
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates the upload directory if needed
func NewDiskStorage(dir, baseURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save stores the file under a random name and returns its durable URL.
// The original filename contributes only its extension.
func (s *DiskStorage) Save(originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apperror.Validation("unsupported file type")
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize+1)); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	info, err := dst.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() > MaxUploadSize {
		os.Remove(dst.Name())
		return "", apperror.Validation("file exceeds the 5MB limit")
	}

	return s.baseURL + "/" + name, nil
}

// Dir returns the directory files are stored in, for static serving
func (s *DiskStorage) Dir() string {
	return s.dir
}
