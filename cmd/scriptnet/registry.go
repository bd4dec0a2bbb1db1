package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/registry"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// catalog is the hand-edited TOML form of the registry:
//
//	[movies]
//	"Pulp Fiction" = "pulp-fiction.txt"
type catalog struct {
	Movies map[string]string `toml:"movies"`
}

// readCatalog decodes a catalog file. Relative local paths are resolved
// against base; s3 and http(s) locations are kept as written.
func readCatalog(path, base string) (map[string]string, error) {
	var c catalog
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in catalog %s: %v", path, undecoded)
	}
	if len(c.Movies) == 0 {
		return nil, fmt.Errorf("catalog %s has no [movies] entries", path)
	}

	movies := make(map[string]string, len(c.Movies))
	for name, location := range c.Movies {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("catalog %s: empty movie name or path", path)
		}
		if isRemote(location) || filepath.IsAbs(location) || base == "" {
			movies[name] = location
			continue
		}
		movies[name] = filepath.Join(base, location)
	}
	return movies, nil
}

func isRemote(location string) bool {
	for _, prefix := range []string{"s3://", "http://", "https://"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the movie registry",
}

var registryImportCmd = &cobra.Command{
	Use:   "import <catalog.toml>",
	Short: "Write the movie registry from a TOML catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		base, _ := cmd.Flags().GetString("base")

		movies, err := readCatalog(args[0], base)
		if err != nil {
			return err
		}
		if err := registry.Write(cmd.Context(), scriptApp.RegistrySink, movies); err != nil {
			return err
		}

		logger.Info("Imported movie registry", "movies", len(movies))
		return nil
	},
}

func init() {
	registryImportCmd.Flags().String("base", "", "directory that relative script paths are resolved against")
	registryCmd.AddCommand(registryImportCmd)
}
