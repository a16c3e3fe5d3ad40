package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ehimebase/babybase/internal/pkg/logger"
)

// URLPrefix is the route the storage directory is served under
const URLPrefix = "/uploads"

// VideoExtensions are the accepted reel file extensions
var VideoExtensions = []string{".mp4", ".mov", ".webm", ".m4v"}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath   string // root directory of stored files
	baseURL    string // public API origin, may be empty for relative URLs
	extensions []string
}

// NewLocalStorage creates the base directory and returns a LocalStorage.
// An empty extensions list accepts any file.
func NewLocalStorage(basePath, baseURL string, extensions []string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath:   basePath,
		baseURL:    strings.TrimRight(baseURL, "/"),
		extensions: extensions,
	}, nil
}

// BasePath returns the directory served under URLPrefix
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

func (ls *LocalStorage) allowed(ext string) bool {
	if len(ls.extensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, e := range ls.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Save writes the upload to basePath/subPath under a random name
func (ls *LocalStorage) Save(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file uploaded")
	}
	ext := filepath.Ext(fileHeader.Filename)
	if !ls.allowed(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	subPath = cleanSubPath(subPath)

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := filepath.Join(ls.basePath, filepath.FromSlash(subPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("path", dir).Msg("Failed to create subdirectory")
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	name := uuid.New().String() + strings.ToLower(ext)
	dstPath := filepath.Join(dir, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	url := ls.baseURL + path.Join(URLPrefix, subPath, name)
	logger.Info().Str("filename", fileHeader.Filename).Str("url", url).Msg("File saved successfully")
	return url, nil
}

// Delete removes the file a URL returned by Save points at.
// URLs outside the storage prefix (embeds) are ignored.
func (ls *LocalStorage) Delete(fileURL string) error {
	rel, ok := ls.relativePath(fileURL)
	if !ok {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))
	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

func (ls *LocalStorage) relativePath(fileURL string) (string, bool) {
	p := strings.TrimPrefix(fileURL, ls.baseURL)
	if !strings.HasPrefix(p, URLPrefix+"/") {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(p, URLPrefix+"/"))
	if rel == "." || strings.HasPrefix(rel, "..") || strings.HasPrefix(rel, "/") {
		return "", false
	}
	return rel, true
}

func cleanSubPath(p string) string {
	p = path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}
