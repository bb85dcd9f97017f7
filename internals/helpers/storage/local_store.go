// internals/helpers/storage/local_store.go
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Store menyimpan file ke disk dan mengembalikan path publik (mis. /uploads/logo/x.png)
// yang dilayani oleh static handler Fiber.
type Store interface {
	SaveUpload(ctx context.Context, dir, filename string, fh *multipart.FileHeader) (string, error)
	SaveBytes(ctx context.Context, dir, filename string, data []byte) (string, error)
	Remove(ctx context.Context, publicPath string) error
}

// Reader membaca kembali file yang pernah disimpan, lewat path publiknya.
type Reader interface {
	ReadFile(ctx context.Context, publicPath string) ([]byte, error)
}

type LocalStore struct {
	Root      string // direktori di disk, mis. "uploads"
	URLPrefix string // prefix publik, mis. "/uploads"
}

func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{
		Root:      filepath.Clean(root),
		URLPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

// LocalPath: path di disk untuk dir/filename di bawah Root
func (s *LocalStore) LocalPath(dir, filename string) string {
	return filepath.Join(s.Root, filepath.FromSlash(dir), filename)
}

// PublicPath: path publik untuk dir/filename
func (s *LocalStore) PublicPath(dir, filename string) string {
	return path.Join(s.URLPrefix, dir, filename)
}

func (s *LocalStore) SaveUpload(ctx context.Context, dir, filename string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", errors.New("nil file header")
	}
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()
	return s.write(ctx, dir, filename, src)
}

func (s *LocalStore) SaveBytes(ctx context.Context, dir, filename string, data []byte) (string, error) {
	return s.write(ctx, dir, filename, bytes.NewReader(data))
}

func (s *LocalStore) write(ctx context.Context, dir, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := s.LocalPath(dir, filename)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("gagal membuat folder: %w", err)
	}
	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("gagal membuat file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("gagal menulis file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return s.PublicPath(dir, filename), nil
}

// Remove menghapus file berdasarkan path publiknya. File yang sudah
// tidak ada bukan error.
func (s *LocalStore) Remove(ctx context.Context, publicPath string) error {
	local, err := s.resolve(publicPath)
	if err != nil {
		return err
	}
	if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *LocalStore) ReadFile(ctx context.Context, publicPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	local, err := s.resolve(publicPath)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(local)
}

// resolve memetakan path publik ke disk, menolak path di luar Root.
func (s *LocalStore) resolve(publicPath string) (string, error) {
	p := path.Clean("/" + strings.TrimSpace(publicPath))
	prefix := s.URLPrefix + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", fmt.Errorf("path %q bukan milik %s", publicPath, s.URLPrefix)
	}
	rel := strings.TrimPrefix(p, prefix)
	return filepath.Join(s.Root, filepath.FromSlash(rel)), nil
}

var (
	reUnsafe     = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	reUnderscore = regexp.MustCompile(`_+`)
)

// SafeName: buang diakritik, spasi → "_", sisakan [A-Za-z0-9._-].
// "Siti Nurhaliza" → "Siti_Nurhaliza", "José" → "Jose".
func SafeName(s string) string {
	var buf []rune
	for _, r := range norm.NFD.String(strings.TrimSpace(s)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		buf = append(buf, r)
	}
	out := reUnsafe.ReplaceAllString(string(buf), "_")
	out = reUnderscore.ReplaceAllString(out, "_")
	out = strings.Trim(out, "_")
	if out == "" {
		return "file"
	}
	return out
}
