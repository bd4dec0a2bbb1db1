package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
)

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrInvalidRegistry = errors.New("invalid movie registry")
)

// Source provides the encoded registry blob.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	String() string
}

// Sink stores an encoded registry blob.
type Sink interface {
	Write(ctx context.Context, data []byte) error
}

// Registry gives read access to the persisted mapping of movie name to script
// path. Every call reads and decodes the blob again, so a registry rewritten on
// disk is picked up by the next request.
type Registry struct {
	source Source
}

type NewRegistryParams struct {
	Source Source
}

func New(params NewRegistryParams) (*Registry, error) {
	if params.Source == nil {
		return nil, errors.New("registry source is required")
	}
	return &Registry{source: params.Source}, nil
}

func (r *Registry) load(ctx context.Context) (map[string]string, error) {
	data, err := r.source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read movie registry %s: %w", r.source, err)
	}
	movies, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.source, err)
	}
	logger.Debug("Loaded movie registry", "source", r.source.String(), "movies", len(movies))
	return movies, nil
}

// ListMovies returns all movie names, sorted.
func (r *Registry) ListMovies(ctx context.Context) ([]string, error) {
	movies, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(movies))
	for name := range movies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// ResolveMovieFile returns the script path stored for name. An unknown name
// yields an error wrapping ErrMovieNotFound.
func (r *Registry) ResolveMovieFile(ctx context.Context, name string) (string, error) {
	movies, err := r.load(ctx)
	if err != nil {
		return "", err
	}

	path, ok := movies[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMovieNotFound, name)
	}
	return path, nil
}

// Write encodes movies and stores them in sink.
func Write(ctx context.Context, sink Sink, movies map[string]string) error {
	data, err := Encode(movies)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to write movie registry: %w", err)
	}
	return nil
}
