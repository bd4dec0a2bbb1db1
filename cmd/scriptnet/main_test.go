package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/config"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/figure"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/graph"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/registry"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestReadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	writeFile(t, path, `
[movies]
"Pulp Fiction" = "pulp-fiction.txt"
"Heat" = "s3://scripts/heat.txt"
"Reservoir Dogs" = "https://imsdb.com/scripts/Reservoir-Dogs.html"
"Jackie Brown" = "/srv/scripts/jackie-brown.txt"
`)

	got, err := readCatalog(path, "data/scripts")
	if err != nil {
		t.Fatalf("readCatalog() error = %v", err)
	}
	want := map[string]string{
		"Pulp Fiction":   filepath.Join("data/scripts", "pulp-fiction.txt"),
		"Heat":           "s3://scripts/heat.txt",
		"Reservoir Dogs": "https://imsdb.com/scripts/Reservoir-Dogs.html",
		"Jackie Brown":   "/srv/scripts/jackie-brown.txt",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("readCatalog() = %v, want %v", got, want)
	}
}

func TestReadCatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no movies", content: "title = \"empty\"\n"},
		{name: "empty table", content: "[movies]\n"},
		{name: "empty path", content: "[movies]\n\"Heat\" = \"\"\n"},
		{name: "not toml", content: "[movies\n"},
		{name: "non string path", content: "[movies]\n\"Heat\" = 1995\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.toml")
			writeFile(t, path, tt.content)
			if _, err := readCatalog(path, ""); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestExportFilenames(t *testing.T) {
	got, err := exportFilenames([]string{"Pulp Fiction", "Se7en", "Mr. & Mrs. Smith"})
	if err != nil {
		t.Fatalf("exportFilenames() error = %v", err)
	}
	want := map[string]string{
		"Pulp Fiction":     "pulp-fiction.json",
		"Se7en":            "se7en.json",
		"Mr. & Mrs. Smith": "mr-mrs-smith.json",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("exportFilenames() = %v, want %v", got, want)
	}

	if _, err := exportFilenames([]string{"Alien", "ALIEN"}); err == nil {
		t.Errorf("expected an error for colliding names")
	}
	if _, err := exportFilenames([]string{"!!!"}); err == nil {
		t.Errorf("expected an error for a name without letters")
	}
}

type memoryUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryUploader) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func (m *memoryUploader) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	a, err := app.New(ctx, &config.Config{ScriptsDir: dir, MoviesFile: "movies.pb"})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	talky := filepath.Join(dir, "talky.txt")
	writeFile(t, talky, strings.Repeat("VINCENT: Say what again.\nJULES: What?\n", 6))
	quiet := filepath.Join(dir, "quiet.txt")
	writeFile(t, quiet, "EXT. DESERT - NIGHT\n\nNothing moves.\n")

	if err := registry.Write(ctx, a.RegistrySink, map[string]string{"Pulp Fiction": talky, "Gerry": quiet}); err != nil {
		t.Fatalf("registry.Write() error = %v", err)
	}
	return a
}

func TestExportFigures(t *testing.T) {
	a := newTestApp(t)
	out := filepath.Join(t.TempDir(), "figures")
	uploader := &memoryUploader{objects: map[string][]byte{}}

	err := exportFigures(context.Background(), a, []string{"Gerry", "Pulp Fiction"}, exportParams{
		OutDir:   out,
		Parallel: 2,
		Bucket:   "exports",
		Prefix:   "figures/",
		Uploader: uploader,
	})
	if err != nil {
		t.Fatalf("exportFigures() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "pulp-fiction.json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var figs []figure.Figure
	if err := json.Unmarshal(raw, &figs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(figs) != 1 || len(figs[0].Data) != 2 {
		t.Fatalf("unexpected figure: %s", raw)
	}

	quiet, err := os.ReadFile(filepath.Join(out, "gerry.json"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.HasPrefix(string(quiet), `[{"data":[]`) {
		t.Fatalf("quiet movie should have no traces: %s", quiet)
	}

	if !bytes.Equal(uploader.objects["exports/figures/pulp-fiction.json"], raw) {
		t.Fatalf("uploaded object differs from local file")
	}
	if len(uploader.objects) != 2 {
		t.Fatalf("uploaded %d objects, want 2", len(uploader.objects))
	}
}

func TestExportFiguresUnknownMovie(t *testing.T) {
	a := newTestApp(t)
	err := exportFigures(context.Background(), a, []string{"Jackie Brown"}, exportParams{OutDir: t.TempDir()})
	if !errors.Is(err, registry.ErrMovieNotFound) {
		t.Fatalf("exportFigures() error = %v, want ErrMovieNotFound", err)
	}
	if !strings.Contains(err.Error(), "Jackie Brown") {
		t.Fatalf("error %q does not name the movie", err)
	}
}

func TestPrintPairs(t *testing.T) {
	result := graph.BuildPairs(nil, graph.PairParams{})
	result.TopCharacters["JULES"] = 6
	result.TopCharacters["VINCENT"] = 7
	result.Pairs["JULES-VINCENT"] = 11

	var buf bytes.Buffer
	printPairs(&buf, result)

	want := "CHARACTER  LINES\n" +
		"VINCENT    7\n" +
		"JULES      6\n" +
		"\n" +
		"PAIR           EXCHANGES\n" +
		"JULES-VINCENT  11\n"
	if buf.String() != want {
		t.Fatalf("printPairs() =\n%q\nwant\n%q", buf.String(), want)
	}
}
