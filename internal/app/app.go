package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/config"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/storage"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/graph"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"
	ioloader "github.com/OFFIS-RIT/scriptnet/backend/pkg/loader/io"
	s3loader "github.com/OFFIS-RIT/scriptnet/backend/pkg/loader/s3"
	webloader "github.com/OFFIS-RIT/scriptnet/backend/pkg/loader/web"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/registry"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const webTimeout = 30 * time.Second

// App bundles the long lived clients shared by the server and the CLI.
type App struct {
	Registry *registry.Registry
	Loaders  loader.Loaders
	Network  *graph.NetworkClient
	// S3 is nil unless AWS_REGION or AWS_ENDPOINT is set.
	S3 *s3.Client
	// RegistrySink writes to the same place Registry reads from.
	RegistrySink registry.Sink
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	var client *s3.Client
	if cfg.S3.Enabled() {
		c, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		client = c
	}

	var source interface {
		registry.Source
		registry.Sink
	}
	if cfg.RegistryBucket != "" {
		source = registry.S3Source{Client: client, Bucket: cfg.RegistryBucket, Key: cfg.RegistryKey}
	} else {
		source = registry.FileSource{Path: cfg.RegistryPath()}
	}

	reg, err := registry.New(registry.NewRegistryParams{Source: source})
	if err != nil {
		return nil, err
	}

	network, err := graph.NewNetworkClient(graph.NewNetworkClientParams{
		Sentinels:         cfg.Sentinels,
		MinCharacterLines: cfg.MinCharacterLines,
		MinPairExchanges:  cfg.MinPairExchanges,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create network client: %w", err)
	}

	loaders := loader.Loaders{
		Local: ioloader.NewIOScriptLoader(),
		Web:   webloader.NewWebScriptLoader(&http.Client{Timeout: webTimeout}),
	}
	if client != nil {
		loaders.S3 = s3loader.NewS3ScriptLoader(cfg.RegistryBucket, client)
	}

	logger.Debug("Initialized app", "registry", source.String(), "s3", client != nil)

	return &App{
		Registry:     reg,
		Loaders:      loaders,
		Network:      network,
		S3:           client,
		RegistrySink: source,
	}, nil
}

// ScriptFile resolves movie through the registry and returns its script file.
// Unknown movies yield an error wrapping registry.ErrMovieNotFound.
func (a *App) ScriptFile(ctx context.Context, movie string) (loader.ScriptFile, error) {
	path, err := a.Registry.ResolveMovieFile(ctx, movie)
	if err != nil {
		return loader.ScriptFile{}, err
	}
	return loader.NewScriptFile(movie, path, a.Loaders)
}
