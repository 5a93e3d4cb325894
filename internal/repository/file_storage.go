package repository

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"billed/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds upload limit")
	ErrUnsupportedFileType = errors.New("unsupported proof file type")
)

var extByMimeType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// FileStorage writes bill proofs to a local directory served under publicPath.
type FileStorage struct {
	dir        string
	publicPath string
	maxBytes   int64
	logger     *zap.Logger
}

func NewFileStorage(dir, publicPath string, maxBytes int64, logger *zap.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &FileStorage{
		dir:        dir,
		publicPath: publicPath,
		maxBytes:   maxBytes,
		logger:     logger,
	}, nil
}

// Save writes the proof under a fresh unique name and returns that name and its
// public URL. The extension follows the declared media type, never the client
// file name, so everything served from the upload directory is an image.
func (s *FileStorage) Save(file *models.UploadedFile) (string, string, error) {
	if s.maxBytes > 0 && int64(len(file.Content)) > s.maxBytes {
		return "", "", ErrFileTooLarge
	}

	mediaType, _, err := mime.ParseMediaType(file.MimeType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, file.MimeType)
	}
	ext, ok := extByMimeType[strings.ToLower(mediaType)]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, mediaType)
	}
	storedName := uuid.New().String() + ext
	filePath := filepath.Join(s.dir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, bytes.NewReader(file.Content)); err != nil {
		os.Remove(filePath)
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return storedName, path.Join(s.publicPath, storedName), nil
}

// Remove deletes a stored proof. Missing files are not an error.
func (s *FileStorage) Remove(storedName string) {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove stored proof", zap.String("file", storedName), zap.Error(err))
	}
}
