package loader

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/singleflight"
)

type ScriptSource string

const (
	ScriptSourceLocal ScriptSource = "local"
	ScriptSourceS3    ScriptSource = "s3"
	ScriptSourceWeb   ScriptSource = "web"
)

// ScriptFile is a movie script whose text is retrieved through its Loader.
// FilePath is whatever the movie registry stores: a local path, an
// s3://bucket/key URI or an http(s) URL.
type ScriptFile struct {
	ID       string
	Movie    string
	FilePath string
	Source   ScriptSource
	Loader   ScriptFileLoader
}

// ScriptFileLoader defines the interface for loading the contents of a ScriptFile.
// Implementations may load files from disk, object storage or the web.
type ScriptFileLoader interface {
	GetFileText(ctx context.Context, file ScriptFile) ([]byte, error)
}

// Loaders holds one loader per source. Nil entries disable that source.
type Loaders struct {
	Local ScriptFileLoader
	S3    ScriptFileLoader
	Web   ScriptFileLoader
}

// SourceOf classifies a registry path by its scheme.
func SourceOf(path string) ScriptSource {
	switch {
	case strings.HasPrefix(path, "s3://"):
		return ScriptSourceS3
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return ScriptSourceWeb
	default:
		return ScriptSourceLocal
	}
}

// NewScriptFile resolves the loader for path and returns a ready to read file.
//
// Example:
//
//	file, err := loader.NewScriptFile("Pulp Fiction", "data/scripts/pulp-fiction.txt", loaders)
//	if err != nil {
//		return err
//	}
//	text, err := file.GetText(ctx)
func NewScriptFile(movie, path string, loaders Loaders) (ScriptFile, error) {
	source := SourceOf(path)

	var l ScriptFileLoader
	switch source {
	case ScriptSourceS3:
		l = loaders.S3
	case ScriptSourceWeb:
		l = loaders.Web
	default:
		l = loaders.Local
	}
	if l == nil {
		return ScriptFile{}, fmt.Errorf("no loader configured for %s script %q", source, path)
	}

	id, err := gonanoid.New()
	if err != nil {
		return ScriptFile{}, fmt.Errorf("nanoid: %w", err)
	}

	return ScriptFile{
		ID:       id,
		Movie:    movie,
		FilePath: path,
		Source:   source,
		Loader:   l,
	}, nil
}

// GetText retrieves the raw text content of the file using its Loader.
func (f *ScriptFile) GetText(ctx context.Context) ([]byte, error) {
	if f.Loader == nil {
		return nil, fmt.Errorf("script %q has no loader", f.FilePath)
	}
	return f.Loader.GetFileText(ctx, *f)
}

// FlightKey identifies identical reads so concurrent requests can share one.
func FlightKey(file ScriptFile) string {
	return string(file.Source) + ":" + file.FilePath
}

// ParseS3URI splits s3://bucket/key into its parts. A path without the scheme is
// returned as key with an empty bucket.
func ParseS3URI(path string) (bucket string, key string, err error) {
	if !strings.HasPrefix(path, "s3://") {
		return "", strings.TrimPrefix(path, "/"), nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", "", fmt.Errorf("invalid s3 uri %q: %w", path, err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q: bucket and key required", path)
	}
	return u.Host, key, nil
}

// SharedRead runs read once per key for all concurrent callers. The read itself
// is detached from the cancellation of whichever caller started it; each caller
// stops waiting when its own ctx is done.
func SharedRead(ctx context.Context, group *singleflight.Group, key string, read func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	readCtx := context.WithoutCancel(ctx)
	ch := group.DoChan(key, func() (any, error) {
		return read(readCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}
