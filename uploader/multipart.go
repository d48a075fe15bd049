package uploader

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// ReadMultipart drains an uploaded form file into a LocalFile ready
// for a direct push.
func ReadMultipart(file *multipart.FileHeader) (LocalFile, error) {
	src, err := file.Open()
	if err != nil {
		return LocalFile{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return LocalFile{}, err
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return LocalFile{
		Name:        uniqueName(file.Filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// uniqueName keeps the extension but replaces the base with a
// timestamp and a random suffix so repeated uploads of the same file
// never collide on the object store.
func uniqueName(original string) string {
	ext := filepath.Ext(original)
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8] + ext
}
