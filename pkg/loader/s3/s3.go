package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/singleflight"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"
)

// GetObjectAPI is the part of *s3.Client the loader needs.
type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3ScriptLoader is a ScriptFileLoader implementation that loads scripts from an
// S3 bucket (or an S3 compatible store such as MinIO). File paths are either
// s3://bucket/key URIs or plain keys inside the default bucket.
type S3ScriptLoader struct {
	bucket string
	client GetObjectAPI
	group  singleflight.Group
}

// NewS3ScriptLoader creates a loader on top of an existing client, typically the
// one built by storage.NewS3Client.
func NewS3ScriptLoader(bucket string, client GetObjectAPI) *S3ScriptLoader {
	return &S3ScriptLoader{
		bucket: bucket,
		client: client,
	}
}

// GetFileText retrieves the contents of the given ScriptFile from S3.
func (l *S3ScriptLoader) GetFileText(ctx context.Context, file loader.ScriptFile) ([]byte, error) {
	bucket, key, err := loader.ParseS3URI(file.FilePath)
	if err != nil {
		return nil, err
	}
	if bucket == "" {
		bucket = l.bucket
	}
	if bucket == "" {
		return nil, fmt.Errorf("no bucket for script %q", file.FilePath)
	}

	return loader.SharedRead(ctx, &l.group, bucket+"/"+key, func(ctx context.Context) ([]byte, error) {
		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get script from S3: %w", err)
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, fmt.Errorf("failed to read script contents: %w", err)
		}

		return buf.Bytes(), nil
	})
}
