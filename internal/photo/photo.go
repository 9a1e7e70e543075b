// Package photo turns image files into data URIs for embedding in entries.
package photo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/julianstephens/dailybloom/internal/constants"
)

var (
	ErrNotImage = errors.New("file is not an image")
	ErrTooLarge = errors.New("photo exceeds size limit")
)

// MaxBytes is the largest photo accepted before encoding.
const MaxBytes = constants.MaxPhotoBytes

// EncodeFile reads the image at path and returns it as a data URI.
func EncodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	uri, err := Encode(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return uri, nil
}

// Encode reads an image from r and returns it as a data URI. The MIME type
// is sniffed from the content, not taken from any file name.
func Encode(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if len(data) > MaxBytes {
		return "", fmt.Errorf("%w (%d MiB)", ErrTooLarge, MaxBytes>>20)
	}

	mime := mimetype.Detect(data)
	if !isImage(mime) {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mime.String())
	}

	return "data:" + mime.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func isImage(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

// MediaType returns the MIME type declared by a data URI, or "" if uri is not one.
func MediaType(uri string) string {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return ""
	}
	media, _, _ := strings.Cut(rest, ";")
	if i := strings.IndexByte(media, ','); i >= 0 {
		media = media[:i]
	}
	return media
}

// Decode returns the raw bytes of a base64 data URI.
func Decode(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, errors.New("not a data URI")
	}
	_, payload, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return nil, errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	return data, nil
}
