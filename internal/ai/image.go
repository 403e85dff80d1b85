package ai

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Image is a decoded meal photo.
type Image struct {
	Data      []byte
	MediaType string
}

// Data URI errors.
var (
	ErrInvalidDataURI = errors.New("photo must be a data URI of the form 'data:<mimetype>;base64,<encoded_data>'")
	ErrNotAnImage     = errors.New("photo data URI must carry an image MIME type")
	ErrEmptyImage     = errors.New("photo is empty")
)

var supportedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ParseImageDataURI decodes a base64 image data URI. When the declared MIME
// type is not one the vision API accepts, the type is sniffed from the bytes.
func ParseImageDataURI(uri string) (Image, error) {
	if !govalidator.IsDataURI(uri) {
		return Image{}, ErrInvalidDataURI
	}

	header, payload, _ := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	mediaType, _, _ := strings.Cut(header, ";")
	mediaType = strings.ToLower(mediaType)
	if !strings.HasPrefix(mediaType, "image/") {
		return Image{}, ErrNotAnImage
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Image{}, ErrInvalidDataURI
	}
	if len(data) == 0 {
		return Image{}, ErrEmptyImage
	}

	if !supportedMediaTypes[mediaType] {
		mediaType = detectImageMediaType(data)
	}
	return Image{Data: data, MediaType: mediaType}, nil
}

// detectImageMediaType returns the MIME type based on magic bytes.
func detectImageMediaType(data []byte) string {
	if len(data) < 4 {
		return "image/jpeg"
	}
	// PNG magic bytes
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}
	// GIF
	if data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return "image/gif"
	}
	// WebP
	if len(data) >= 12 && data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 &&
		data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
		return "image/webp"
	}
	return "image/jpeg"
}
