// Package file implements per-user search, upload and download on top of a shared bucket.
// Every user's objects live under the key prefix "{user}/".
package file

import (
	"context"
	"io"
	"strings"

	"github.com/cloudfilestorage/service/internal/storage"
)

// Client-facing messages.
const (
	msgInvalidQuery   = "Invalid userName or fileName"
	msgInvalidUpload  = "Invalid user name or file"
	msgNotFound       = "Files not found"
	msgSearchFailed   = "Failed to search files"
	msgUploadFailed   = "Failed to upload file"
	msgDownloadFailed = "Failed to download file"
)

// Upload is a file payload received from a client.
type Upload interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Content is a downloaded object, fully buffered.
type Content struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service validates requests, builds namespaced keys and delegates to storage.
type Service struct {
	store storage.Storage
}

// NewService creates a new file Service.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Search returns the names of userName's files whose key contains fragment,
// in backend listing order. No match is ErrNotFound, not an empty result.
func (s *Service) Search(ctx context.Context, userName, fragment string) ([]string, error) {
	const op = "search"
	if !validUserName(userName) || IsBlank(fragment) {
		return nil, badRequest(op, msgInvalidQuery)
	}

	objects, err := s.store.List(ctx, Prefix(userName))
	if err != nil {
		return nil, fromStorage(op, msgSearchFailed, err)
	}

	var names []string
	for _, obj := range objects {
		if !strings.Contains(obj.Key, fragment) {
			continue
		}
		if name, ok := FileName(userName, obj.Key); ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, notFound(op, nil)
	}
	return names, nil
}

// Upload stores f under "{user}/{f.Name()}", replacing any existing object.
func (s *Service) Upload(ctx context.Context, userName string, f Upload) error {
	const op = "upload"
	if !validUserName(userName) || f == nil || f.Size() <= 0 || !validFileName(f.Name()) {
		return badRequest(op, msgInvalidUpload)
	}

	body, err := f.Open()
	if err != nil {
		return operationFailed(op, msgUploadFailed, err)
	}
	defer body.Close()

	key := ObjectKey(userName, f.Name())
	if err := s.store.Upload(ctx, key, body, f.Size(), f.ContentType()); err != nil {
		return operationFailed(op, msgUploadFailed, err)
	}
	return nil
}

// Download reads the whole object at "{user}/{fileName}" into memory.
func (s *Service) Download(ctx context.Context, userName, fileName string) (*Content, error) {
	const op = "download"
	if !validUserName(userName) || !validFileName(fileName) {
		return nil, badRequest(op, msgInvalidQuery)
	}

	obj, err := s.store.Download(ctx, ObjectKey(userName, fileName))
	if err != nil {
		return nil, fromStorage(op, msgDownloadFailed, err)
	}
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, operationFailed(op, msgDownloadFailed, err)
	}

	return &Content{
		Name:        fileName,
		ContentType: obj.ContentType,
		Data:        data,
	}, nil
}
