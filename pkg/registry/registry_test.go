package registry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var movies = map[string]string{
	"Pulp Fiction":   "data/scripts/pulp-fiction.txt",
	"Heat":           "s3://scripts/heat.txt",
	"Reservoir Dogs": "https://imsdb.com/scripts/Reservoir-Dogs.html",
}

func newFileRegistry(t *testing.T, m map[string]string) (*Registry, FileSource) {
	t.Helper()
	src := FileSource{Path: filepath.Join(t.TempDir(), "scripts", "movies.pb")}
	if err := Write(context.Background(), src, m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	r, err := New(NewRegistryParams{Source: src})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return r, src
}

func TestListMovies(t *testing.T) {
	r, _ := newFileRegistry(t, movies)

	got, err := r.ListMovies(context.Background())
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	want := []string{"Heat", "Pulp Fiction", "Reservoir Dogs"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListMovies() = %v, want %v", got, want)
	}
}

func TestResolveMovieFile(t *testing.T) {
	r, _ := newFileRegistry(t, movies)
	ctx := context.Background()

	tests := []struct {
		name     string
		movie    string
		want     string
		notFound bool
	}{
		{name: "local path", movie: "Pulp Fiction", want: "data/scripts/pulp-fiction.txt"},
		{name: "s3 uri", movie: "Heat", want: "s3://scripts/heat.txt"},
		{name: "unknown movie", movie: "Jackie Brown", notFound: true},
		{name: "names are case sensitive", movie: "heat", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.ResolveMovieFile(ctx, tt.movie)
			if tt.notFound {
				if !errors.Is(err, ErrMovieNotFound) {
					t.Fatalf("ResolveMovieFile(%q) error = %v, want ErrMovieNotFound", tt.movie, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveMovieFile(%q) error = %v", tt.movie, err)
			}
			if got != tt.want {
				t.Fatalf("ResolveMovieFile(%q) = %q, want %q", tt.movie, got, tt.want)
			}
		})
	}
}

func TestRegistryIsReadOnEveryCall(t *testing.T) {
	r, src := newFileRegistry(t, map[string]string{"Heat": "heat.txt"})
	ctx := context.Background()

	if _, err := r.ResolveMovieFile(ctx, "Collateral"); !errors.Is(err, ErrMovieNotFound) {
		t.Fatalf("error = %v, want ErrMovieNotFound", err)
	}

	if err := Write(ctx, src, map[string]string{"Heat": "heat.txt", "Collateral": "collateral.txt"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	got, err := r.ResolveMovieFile(ctx, "Collateral")
	if err != nil {
		t.Fatalf("ResolveMovieFile() error = %v", err)
	}
	if got != "collateral.txt" {
		t.Fatalf("ResolveMovieFile() = %q", got)
	}
}

func TestMissingRegistryFile(t *testing.T) {
	r, err := New(NewRegistryParams{Source: FileSource{Path: filepath.Join(t.TempDir(), "none.pb")}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := r.ListMovies(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("ListMovies() error = %v, want fs.ErrNotExist", err)
	}
}

func TestDecodeInvalid(t *testing.T) {
	numeric, err := proto.Marshal(&structpb.Struct{Fields: map[string]*structpb.Value{
		"Heat": structpb.NewNumberValue(1995),
	}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "truncated varint", data: []byte{0xff, 0xff}},
		{name: "non string path", data: numeric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, ErrInvalidRegistry) {
				t.Fatalf("Decode() error = %v, want ErrInvalidRegistry", err)
			}
		})
	}
}

func TestEncodeDeterministicAndEmpty(t *testing.T) {
	a, err := Encode(movies)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	b, err := Encode(movies)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("Encode() output differs between calls")
	}

	empty, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode(nil) error = %v", err)
	}
	got, err := Decode(empty)
	if err != nil || len(got) != 0 {
		t.Fatalf("Decode(empty) = %v, %v", got, err)
	}

	if _, err := Encode(map[string]string{"": "x.txt"}); !errors.Is(err, ErrInvalidRegistry) {
		t.Fatalf("Encode() with empty name error = %v", err)
	}
}

func TestFileSourceWriteLeavesNoTempFiles(t *testing.T) {
	_, src := newFileRegistry(t, movies)

	entries, err := os.ReadDir(filepath.Dir(src.Path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "movies.pb" {
		t.Fatalf("unexpected directory content: %v", entries)
	}
}

type memoryS3 struct {
	objects map[string][]byte
}

func (m *memoryS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (m *memoryS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Source(t *testing.T) {
	ctx := context.Background()
	src := S3Source{Client: &memoryS3{objects: map[string][]byte{}}, Bucket: "scripts", Key: "movies.pb"}
	if src.String() != "s3://scripts/movies.pb" {
		t.Fatalf("String() = %q", src.String())
	}

	if err := Write(ctx, src, movies); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	r, err := New(NewRegistryParams{Source: src})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got, err := r.ResolveMovieFile(ctx, "Reservoir Dogs")
	if err != nil {
		t.Fatalf("ResolveMovieFile() error = %v", err)
	}
	if got != movies["Reservoir Dogs"] {
		t.Fatalf("ResolveMovieFile() = %q", got)
	}
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(NewRegistryParams{}); err == nil {
		t.Fatalf("expected an error without source")
	}
}
