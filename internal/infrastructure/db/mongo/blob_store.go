package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"

	"github.com/ArnavTheExploit/EventSphere/internal/core/domain"
)

// BlobStore keeps uploaded event media (posters, brochures) in GridFS.
// Re-uploading a path adds a new revision; reads return the latest one.
type BlobStore struct {
	bucket *gridfs.Bucket
}

func NewBlobStore(db *mongo.Database) (*BlobStore, error) {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	return &BlobStore{bucket: bucket}, nil
}

// Upload stores the blob under the given path.
func (s *BlobStore) Upload(ctx context.Context, path string, r io.Reader) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetWriteDeadline(dl)
	}

	stream, err := s.bucket.OpenUploadStream(path)
	if err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	if _, err := io.Copy(stream, r); err != nil {
		_ = stream.Close()
		return fmt.Errorf("upload %s: %w", path, err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}

// Open returns a reader over the latest revision stored under path.
func (s *BlobStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = s.bucket.SetReadDeadline(dl)
	}

	stream, err := s.bucket.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, fmt.Errorf("open %s: %w", path, domain.ErrBlobNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return stream, nil
}

// URL returns the public path the blob is served from.
func (s *BlobStore) URL(path string) string {
	return "/media/" + path
}
