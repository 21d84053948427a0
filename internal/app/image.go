package app

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/context-lens/internal/common"
)

// MaxImageBytes bounds the inline image size accepted by the hosted model.
const MaxImageBytes = 20 << 20

// Extensions the mime package does not know on every system.
var imageExtensions = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".avif": "image/avif",
	".webp": "image/webp",
}

// StripDataURIPrefix returns the base64 payload of a data URI. Other input is
// returned unchanged.
func StripDataURIPrefix(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		return s[i+1:]
	}
	return s
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// MIMETypeFromDataURI extracts the media type of a data URI, or "".
func MIMETypeFromDataURI(uri string) string {
	if !strings.HasPrefix(uri, "data:") {
		return ""
	}
	header, _, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return ""
	}
	mediaType, _, _ := strings.Cut(header, ";")
	return mediaType
}

// DetectImageType sniffs the content first and falls back to the file
// extension only when the content is not recognized at all.
func DetectImageType(name string, data []byte) (string, error) {
	sniffed, _, _ := strings.Cut(http.DetectContentType(data), ";")
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed, nil
	}

	if sniffed == "application/octet-stream" {
		ext := strings.ToLower(filepath.Ext(name))
		byExt, ok := imageExtensions[ext]
		if !ok {
			byExt, _, _ = strings.Cut(mime.TypeByExtension(ext), ";")
		}
		if strings.HasPrefix(byExt, "image/") {
			return byExt, nil
		}
	}

	return "", fmt.Errorf("%w: %s is %s", common.ErrUnsupportedImage, name, sniffed)
}

// NewImageSelection validates raw image bytes and wraps them for submission.
func NewImageSelection(name string, data []byte) (*ImageSelection, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrNoImageSelected, name)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d MiB", common.ErrUnsupportedImage, name, MaxImageBytes>>20)
	}

	mimeType, err := DetectImageType(name, data)
	if err != nil {
		return nil, err
	}

	return &ImageSelection{
		FileName: name,
		MIMEType: mimeType,
		DataURI:  DataURI(mimeType, data),
	}, nil
}

// LoadImageFile reads an image from disk.
func LoadImageFile(path string) (*ImageSelection, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", common.ErrUnsupportedImage, path)
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("%w: %s is larger than %d MiB", common.ErrUnsupportedImage, path, MaxImageBytes>>20)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	return NewImageSelection(filepath.Base(path), data)
}
