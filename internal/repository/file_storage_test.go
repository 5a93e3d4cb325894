package repository

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"billed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileStorageSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewFileStorage(dir, "/uploads", 1024, zap.NewNop())
	require.NoError(t, err)

	storedName, url, err := storage.Save(&models.UploadedFile{Name: "Ticket.PNG", MimeType: "image/png", Content: []byte("image")})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(storedName, ".png"))
	assert.Equal(t, "/uploads/"+storedName, url)

	content, err := os.ReadFile(filepath.Join(dir, storedName))
	require.NoError(t, err)
	assert.Equal(t, "image", string(content))

	storage.Remove(storedName)
	_, err = os.Stat(filepath.Join(dir, storedName))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStorageExtensionFollowsMediaType(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir(), "/uploads", 0, zap.NewNop())
	require.NoError(t, err)

	testCases := []struct {
		name        string
		fileName    string
		mimeType    string
		expectedExt string
	}{
		{name: "no_extension", fileName: "blob", mimeType: "image/jpeg", expectedExt: ".jpg"},
		{name: "html_declared_as_png", fileName: "evil.html", mimeType: "image/png", expectedExt: ".png"},
		{name: "svg_declared_as_jpeg", fileName: "logo.svg", mimeType: "image/jpeg", expectedExt: ".jpg"},
		{name: "parameters_and_case", fileName: "scan.JPEG", mimeType: "Image/JPEG; charset=binary", expectedExt: ".jpg"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			storedName, url, err := storage.Save(&models.UploadedFile{Name: tc.fileName, MimeType: tc.mimeType, Content: []byte("x")})
			require.NoError(t, err)
			assert.Equal(t, tc.expectedExt, filepath.Ext(storedName))
			assert.Equal(t, tc.expectedExt, filepath.Ext(url))
		})
	}
}

func TestFileStorageRejectsUnsupportedType(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewFileStorage(dir, "/uploads", 0, zap.NewNop())
	require.NoError(t, err)

	for _, mimeType := range []string{"text/html", "image/svg+xml", "", "image/"} {
		_, _, err := storage.Save(&models.UploadedFile{Name: "evil.html", MimeType: mimeType, Content: []byte("<script>")})
		assert.ErrorIs(t, err, ErrUnsupportedFileType, mimeType)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStorageRejectsLargeFile(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir(), "/uploads", 4, zap.NewNop())
	require.NoError(t, err)

	_, _, err = storage.Save(&models.UploadedFile{Name: "big.png", MimeType: "image/png", Content: []byte("too large")})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	require.NotNil(t, nullable("a"))
	assert.Equal(t, "a", *nullable("a"))
}
