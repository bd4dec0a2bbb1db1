package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/storage"
)

// FileSource keeps the registry in a local file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return s.Path }

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

// Write replaces the file through a rename so readers never see a partial blob.
func (s FileSource) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".movies-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// S3Source keeps the registry as an object in a bucket.
type S3Source struct {
	Client storage.ObjectAPI
	Bucket string
	Key    string
}

func (s S3Source) String() string { return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key) }

func (s S3Source) Read(ctx context.Context) ([]byte, error) {
	return storage.GetFile(ctx, s.Client, s.Bucket, s.Key)
}

func (s S3Source) Write(ctx context.Context, data []byte) error {
	return storage.PutFile(ctx, s.Client, s.Bucket, s.Key, data, "application/x-protobuf")
}
