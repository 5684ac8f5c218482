package utils

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	appErrors "scholarship-portal/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxImageBytes caps uploads when no limit is configured.
const DefaultMaxImageBytes int64 = 5 << 20

// Image is an upload whose content has been sniffed as an image.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string
}

func (i *Image) Reader() io.Reader {
	return bytes.NewReader(i.Data)
}

func (i *Image) Size() int64 {
	return int64(len(i.Data))
}

// ReadImage buffers at most maxBytes from r and accepts it only when the
// content itself is an image. The declared content type is ignored.
func ReadImage(r io.Reader, maxBytes int64) (*Image, error) {
	if r == nil {
		return nil, appErrors.ErrMissingImage
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, appErrors.ErrMissingImage
	}
	if int64(len(data)) > maxBytes {
		return nil, appErrors.ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	contentType := mtype.String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, appErrors.ErrInvalidImage
	}

	return &Image{
		Data:        data,
		ContentType: contentType,
		Extension:   strings.TrimPrefix(mtype.Extension(), "."),
	}, nil
}
