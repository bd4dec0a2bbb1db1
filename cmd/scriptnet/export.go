package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/app"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/storage"
	"github.com/OFFIS-RIT/scriptnet/backend/internal/util"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const (
	uploadTries   = 3
	uploadBackoff = 500 * time.Millisecond
)

type exportParams struct {
	OutDir   string
	Parallel int
	// Bucket and Uploader are both required to upload.
	Bucket   string
	Prefix   string
	Uploader storage.ObjectAPI
}

// exportFilenames maps every movie to a distinct <slug>.json file name.
func exportFilenames(movies []string) (map[string]string, error) {
	names := make(map[string]string, len(movies))
	seen := make(map[string]string, len(movies))
	for _, movie := range movies {
		slug := util.SlugName(movie)
		if slug == "" {
			return nil, fmt.Errorf("movie %q has no usable file name", movie)
		}
		if other, ok := seen[slug]; ok {
			return nil, fmt.Errorf("movies %q and %q share the file name %s.json", other, movie, slug)
		}
		seen[slug] = movie
		names[movie] = slug + ".json"
	}
	return names, nil
}

func exportFigures(ctx context.Context, a *app.App, movies []string, params exportParams) error {
	filenames, err := exportFilenames(movies)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(params.OutDir, 0o755); err != nil {
		return err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(max(params.Parallel, 1))
	for _, movie := range movies {
		g.Go(func() error {
			file, err := a.ScriptFile(gCtx, movie)
			if err != nil {
				return fmt.Errorf("%s: %w", movie, err)
			}
			figs, err := a.Network.BuildNetworkFigure(gCtx, file, movie)
			if err != nil {
				return fmt.Errorf("%s: %w", movie, err)
			}
			data, err := json.Marshal(figs)
			if err != nil {
				return fmt.Errorf("%s: %w", movie, err)
			}

			name := filenames[movie]
			if err := os.WriteFile(filepath.Join(params.OutDir, name), data, 0o644); err != nil {
				return fmt.Errorf("%s: %w", movie, err)
			}
			if params.Bucket != "" && params.Uploader != nil {
				key := params.Prefix + name
				err := util.RetryWithContext(gCtx, uploadTries, uploadBackoff, func(ctx context.Context) error {
					return storage.PutFile(ctx, params.Uploader, params.Bucket, key, data, "application/json")
				})
				if err != nil {
					return fmt.Errorf("%s: %w", movie, err)
				}
			}

			logger.Debug("Exported network", "movie", movie, "file", name)
			return nil
		})
	}
	return g.Wait()
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the network figure of every movie to a directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		params := exportParams{}
		params.OutDir, _ = cmd.Flags().GetString("out")
		params.Parallel, _ = cmd.Flags().GetInt("parallel")
		params.Bucket, _ = cmd.Flags().GetString("bucket")
		params.Prefix, _ = cmd.Flags().GetString("prefix")

		if params.Bucket != "" {
			if scriptApp.S3 == nil {
				return fmt.Errorf("--bucket requires AWS_REGION or AWS_ENDPOINT")
			}
			params.Uploader = scriptApp.S3
		}

		movies, err := scriptApp.Registry.ListMovies(ctx)
		if err != nil {
			return err
		}
		if err := exportFigures(ctx, scriptApp, movies, params); err != nil {
			return err
		}

		logger.Info("Exported networks", "movies", len(movies), "dir", params.OutDir)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("out", "figures", "output directory")
	exportCmd.Flags().Int("parallel", 4, "number of movies processed at once")
	exportCmd.Flags().String("bucket", "", "also upload the figures to this S3 bucket")
	exportCmd.Flags().String("prefix", "figures/", "object key prefix for uploads")
}
