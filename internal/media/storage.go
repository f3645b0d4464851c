package media

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PublicPrefix is the URL prefix under which stored files are served.
const PublicPrefix = "/api/uploads/"

// Storage writes validated uploads to local disk under a single directory.
type Storage struct {
	dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

func (s *Storage) Dir() string {
	return s.dir
}

// Store persists each file as "<uuid>_<originalname>" and returns the public
// paths in input order. Callers run Validate first.
func (s *Storage) Store(files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		filename := uuid.NewString() + "_" + filepath.Base(safeName(file))
		if err := s.writeFile(file, filepath.Join(s.dir, filename)); err != nil {
			return nil, err
		}
		paths = append(paths, PublicPrefix+filename)
	}

	return paths, nil
}

// Delete removes previously stored files by public path. Failures are logged
// and skipped so an update never breaks on a missing file.
func (s *Storage) Delete(paths []string) {
	for _, p := range paths {
		if !strings.HasPrefix(p, PublicPrefix) {
			continue
		}
		filename := strings.TrimPrefix(p, PublicPrefix)
		if filename == "" {
			continue
		}
		target := filepath.Join(s.dir, filepath.Base(filename))
		if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", p).Msg("failed to delete media file")
		}
	}
}

func (s *Storage) writeFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
