package upload

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// PublicPrefix is where the HTTP server exposes the upload root.
const PublicPrefix = "/static/"

// LegacyPrefix also serves the upload root.
const LegacyPrefix = "/uploads/"

// ErrInvalidName is returned for a category or filename that would
// escape its directory.
var ErrInvalidName = errors.New("upload: invalid name")

// ErrNotOwned is returned when a file was not uploaded for the subject
// asking to remove it.
var ErrNotOwned = errors.New("upload: file belongs to another subject")

// Store writes files below root on fs. Every file lives at
// root/{category}/{filename}.
type Store struct {
	fs      afero.Fs
	root    string
	maxSize int64
}

// NewStore returns a store rooted at root accepting files up to MaxSize.
// Use afero.NewOsFs in production and afero.NewMemMapFs in tests.
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{fs: fs, root: root, maxSize: MaxSize}
}

// WithMaxSize changes the size ceiling. Non-positive values are ignored.
func (s *Store) WithMaxSize(n int64) *Store {
	if n > 0 {
		s.maxSize = n
	}
	return s
}

// MaxSize is the largest file Save callers should accept, in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// Fs exposes the underlying filesystem, for serving files over HTTP.
func (s *Store) Fs() afero.Fs { return s.fs }

// Root is the upload directory.
func (s *Store) Root() string { return s.root }

// Path returns where category/filename is stored.
func (s *Store) Path(category, filename string) (string, error) {
	if !validName(category) || !validName(filename) {
		return "", fmt.Errorf("%w: %q/%q", ErrInvalidName, category, filename)
	}
	return filepath.Join(s.root, category, filename), nil
}

// Save writes data to category/filename. The content is written to a
// temporary file in the same directory and renamed into place, so a
// reader never sees a partial file. The directory is created if missing.
func (s *Store) Save(category, filename string, data []byte) (string, error) {
	dst, err := s.Path(category, filename)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(dst)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filename+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = s.fs.Rename(tmpName, dst)
	}
	if err != nil {
		_ = s.fs.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}

// Remove deletes category/filename. A missing file is not an error.
func (s *Store) Remove(category, filename string) error {
	p, err := s.Path(category, filename)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether category/filename is stored.
func (s *Store) Exists(category, filename string) bool {
	p, err := s.Path(category, filename)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, p)
	return err == nil && ok
}

// PublicURL is the URL a stored file is served from.
func (s *Store) PublicURL(category, filename string) string {
	return PublicPrefix + category + "/" + filename
}

// RemoveOwned deletes the file url points to, provided its name was
// generated for ownerID.
func (s *Store) RemoveOwned(url, ownerID string) error {
	category, filename, ok := FilenameFromURL(url)
	if !ok {
		return fmt.Errorf("%w: url %q", ErrInvalidName, url)
	}
	if !OwnedBy(filename, ownerID) {
		return fmt.Errorf("%w: %q is not owned by %s", ErrNotOwned, filename, ownerID)
	}
	return s.Remove(category, filename)
}

// FilenameFromURL splits a public URL into category and filename.
func FilenameFromURL(url string) (category, filename string, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(url, PublicPrefix):
		rest = strings.TrimPrefix(url, PublicPrefix)
	case strings.HasPrefix(url, LegacyPrefix):
		rest = strings.TrimPrefix(url, LegacyPrefix)
	default:
		return "", "", false
	}
	category, filename, found := strings.Cut(rest, "/")
	if !found || !validName(category) || !validName(filename) {
		return "", "", false
	}
	return category, filename, true
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		path.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
