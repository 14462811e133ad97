package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrUploadTooLarge is returned when uploaded content exceeds the size limit
var ErrUploadTooLarge = errors.New("upload exceeds maximum size")

// maxNameLen bounds the original file name kept in the staged file name
const maxNameLen = 64

// Stager writes uploaded content to a temporary file for inspection
type Stager struct {
	fs      afero.Fs
	dir     string
	maxSize int64
	logger  *zap.Logger
}

// NewStager creates a stager writing into dir (OS temp dir when empty).
// A maxSize of zero or less disables the size limit.
func NewStager(fs afero.Fs, dir string, maxSize int64, logger *zap.Logger) *Stager {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Stager{
		fs:      fs,
		dir:     dir,
		maxSize: maxSize,
		logger:  logger,
	}
}

// WithStagedFile copies src into a fresh temporary file, calls fn with its
// path and removes the file afterwards. The file is removed on every exit
// path, including errors returned by fn and panics raised inside it.
func (s *Stager) WithStagedFile(name string, src io.Reader, fn func(path string) error) error {
	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create staging dir: %w", err)
	}

	f, err := afero.TempFile(s.fs, s.dir, "upload-*-"+sanitizeName(name))
	if err != nil {
		return fmt.Errorf("failed to create staging file: %w", err)
	}
	path := f.Name()

	defer func() {
		if rmErr := s.fs.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			s.logger.Warn("Failed to remove staged file", zap.String("path", path), zap.Error(rmErr))
		} else {
			s.logger.Debug("Removed staged file", zap.String("path", path))
		}
	}()

	if err := s.copyLimited(f, src); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close staging file: %w", err)
	}

	s.logger.Debug("Staged upload", zap.String("name", name), zap.String("path", path))

	return fn(path)
}

// copyLimited copies src into dst and enforces the size limit
func (s *Stager) copyLimited(dst afero.File, src io.Reader) error {
	reader := src
	if s.maxSize > 0 {
		// Read one extra byte to detect overflow
		reader = io.LimitReader(src, s.maxSize+1)
	}

	n, err := io.Copy(dst, reader)
	if err != nil {
		return fmt.Errorf("failed to write staging file: %w", err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		return fmt.Errorf("%w (%d bytes)", ErrUploadTooLarge, s.maxSize)
	}

	return dst.Sync()
}

// sanitizeName keeps only the base name and drops characters that are
// special in temp file patterns or paths
func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return "file"
	}

	name = strings.Map(func(r rune) rune {
		switch {
		case r == '*' || r == '/' || r == 0:
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, name)

	if len(name) > maxNameLen {
		// Keep the tail, starting on a rune boundary
		cut := len(name) - maxNameLen
		for cut < len(name) && !utf8.RuneStart(name[cut]) {
			cut++
		}
		name = name[cut:]
	}
	return name
}
