package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
}

func CreateLocalStore(dir string, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &LocalStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

func (s *LocalStore) Save(ctx context.Context, field string, fh *multipart.FileHeader) (StoredImage, error) {
	src, err := fh.Open()
	if err != nil {
		return StoredImage{}, err
	}
	defer src.Close()

	filename := NewFilename(field, fh.Filename, s.now())
	dst, err := os.OpenFile(filepath.Join(s.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return StoredImage{}, err
	}

	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(s.dir, filename))
		return StoredImage{}, err
	}

	return StoredImage{
		Filename: filename,
		Path:     path.Join(s.urlPrefix, filename),
		Size:     size,
		ModTime:  s.now(),
	}, nil
}

// Delete removes the file behind a public path. Paths outside the upload
// prefix are ignored, and a file that is already gone is not an error.
func (s *LocalStore) Delete(ctx context.Context, p string) error {
	if !strings.HasPrefix(p, s.urlPrefix+"/") {
		return nil
	}

	filename := path.Base(p)
	err := os.Remove(filepath.Join(s.dir, filename))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

func (s *LocalStore) List(ctx context.Context) ([]StoredImage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	images := make([]StoredImage, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		images = append(images, StoredImage{
			Filename: entry.Name(),
			Path:     path.Join(s.urlPrefix, entry.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	return images, nil
}
