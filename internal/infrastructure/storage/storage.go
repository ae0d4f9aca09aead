package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitryhil/vineweb/pkg/errs"
	"github.com/oklog/ulid/v2"
)

type StoredImage struct {
	Filename string
	Path     string
	Size     int64
	ModTime  time.Time
}

// ImageStore keeps uploaded product images. Paths returned by Save are the
// public paths stored on products and accepted back by Delete.
type ImageStore interface {
	Save(ctx context.Context, field string, fh *multipart.FileHeader) (StoredImage, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context) ([]StoredImage, error)
}

// ValidateImage rejects files that are not declared as image/* or are larger
// than maxBytes.
func ValidateImage(fh *multipart.FileHeader, maxBytes int64) error {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return errs.ErrNotAnImage
	}

	if maxBytes > 0 && fh.Size > maxBytes {
		return errs.ErrFileTooLarge
	}

	return nil
}

// NewFilename builds <field>-<unix millis>-<ulid><ext>.
func NewFilename(field string, original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), ulid.Make().String(), ext)
}
