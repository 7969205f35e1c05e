package corehandler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"timeclock/internal/transport/http/api"
)

// PhotoURLPrefix is where stored photos are served from.
const PhotoURLPrefix = "/uploads/"

var errNotImage = errors.New("photo must be a JPEG, PNG, GIF or WebP image")

var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// savePhoto stores the "photo" form file, if any, and returns its public URL.
func savePhoto(r *http.Request, dir string) (string, error) {
	file, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	ext, ok := photoExtensions[http.DetectContentType(head[:n])]
	if !ok {
		return "", errNotImage
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ext
	out, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		_ = out.Close()
		_ = os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return PhotoURLPrefix + name, nil
}

// PhotoPath resolves a stored photo URL to its file, refusing anything that
// is not a plain file name under dir.
func PhotoPath(dir, url string) (string, bool) {
	if !strings.HasPrefix(url, PhotoURLPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, PhotoURLPrefix)
	if name == "" || name != path.Base(name) || strings.HasPrefix(name, ".") {
		return "", false
	}
	return filepath.Join(dir, name), true
}

func removePhoto(dir, url string) error {
	file, ok := PhotoPath(dir, url)
	if !ok {
		return nil
	}
	if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func failUpload(w http.ResponseWriter, err error, requestID string) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr), errors.Is(err, multipart.ErrMessageTooLarge):
		api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "photo exceeds the upload limit", requestID)
	case errors.Is(err, errNotImage):
		api.Fail(w, http.StatusBadRequest, "invalid_photo", errNotImage.Error(), requestID)
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", fmt.Sprintf("invalid multipart payload: %v", err), requestID)
	}
}
