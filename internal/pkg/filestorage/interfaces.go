package filestorage

import (
	"errors"
	"mime/multipart"
)

// ErrUnsupportedType is returned for files whose extension is not accepted
var ErrUnsupportedType = errors.New("unsupported file type")

// FileStorage stores uploaded media and returns the URL it is served from
type FileStorage interface {
	// Save writes the upload under subPath and returns its public URL
	Save(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// Delete removes a file previously returned by Save. Unknown URLs are ignored.
	Delete(fileURL string) error
}
