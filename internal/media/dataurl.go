// Package media converts uploaded images to the data URLs the backend stores inline.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// DefaultMaxBytes caps an uploaded image before encoding.
const DefaultMaxBytes = 5 << 20

const dataURLPrefix = "data:"

// DataURLFromFile reads an uploaded image and returns it as data:<mime>;base64,<payload>.
func DataURLFromFile(fh *multipart.FileHeader, maxBytes int64) (string, error) {
	if fh == nil {
		return "", apperrors.NewValidationError("image is required", nil)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if fh.Size > maxBytes {
		return "", apperrors.NewValidationError("Image is too large", map[string]any{"max_bytes": maxBytes})
	}

	f, err := fh.Open()
	if err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return "", apperrors.NewInternalError(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(raw)) > maxBytes {
		return "", apperrors.NewValidationError("Image is too large", map[string]any{"max_bytes": maxBytes})
	}
	return Encode(raw)
}

// Encode sniffs raw bytes and returns an image data URL, rejecting non-images.
func Encode(raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", apperrors.NewValidationError("image is empty", nil)
	}
	mime := http.DetectContentType(raw)
	if !strings.HasPrefix(mime, "image/") {
		return "", apperrors.NewValidationError("Only image files are allowed", map[string]any{"content_type": mime})
	}
	return dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// ValidDataURL accepts an image data URL already encoded by the browser.
func ValidDataURL(s string) bool {
	header, payload, ok := strings.Cut(s, ",")
	if !ok || payload == "" {
		return false
	}
	if !strings.HasPrefix(header, dataURLPrefix+"image/") || !strings.HasSuffix(header, ";base64") {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}
