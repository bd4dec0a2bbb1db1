package config

import (
	"fmt"
	"path/filepath"

	"github.com/OFFIS-RIT/scriptnet/backend/internal/util"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/graph"
)

type S3Config struct {
	Region    string // AWS_REGION
	Endpoint  string // AWS_ENDPOINT (custom endpoint for MinIO)
	AccessKey string // AWS_ACCESS_KEY
	SecretKey string // AWS_SECRET_KEY
}

// Enabled reports whether enough settings are present to build a client.
func (c S3Config) Enabled() bool {
	return c.Region != "" || c.Endpoint != ""
}

type Config struct {
	Debug bool   // DEBUG
	Port  string // PORT (default "8080")
	// Optional, empty = no auth on /api.
	APIKey string // API_KEY

	ScriptsDir     string // SCRIPTS_DIR (default "data/scripts")
	MoviesFile     string // MOVIES_FILE (default "movies.pb")
	RegistryBucket string // REGISTRY_BUCKET (reads the registry from S3 when set)
	RegistryKey    string // REGISTRY_KEY (default "movies.pb")

	Sentinels         []string // SCRIPT_SENTINELS
	MinCharacterLines int      // MIN_CHARACTER_LINES (default 5)
	MinPairExchanges  int      // MIN_PAIR_EXCHANGES (default 1)

	S3 S3Config
}

func Load() (*Config, error) {
	c := &Config{
		Debug:          util.GetEnvBool("DEBUG", false),
		Port:           util.GetEnvString("PORT", "8080"),
		APIKey:         util.GetEnv("API_KEY"),
		ScriptsDir:     util.GetEnvString("SCRIPTS_DIR", filepath.Join("data", "scripts")),
		MoviesFile:     util.GetEnvString("MOVIES_FILE", "movies.pb"),
		RegistryBucket: util.GetEnv("REGISTRY_BUCKET"),
		RegistryKey:    util.GetEnvString("REGISTRY_KEY", "movies.pb"),
		Sentinels:      util.GetEnvList("SCRIPT_SENTINELS", graph.DefaultSentinels),
		S3: S3Config{
			Region:    util.GetEnv("AWS_REGION"),
			Endpoint:  util.GetEnv("AWS_ENDPOINT"),
			AccessKey: util.GetEnv("AWS_ACCESS_KEY"),
			SecretKey: util.GetEnv("AWS_SECRET_KEY"),
		},
	}

	var err error
	if c.MinCharacterLines, err = util.LookupEnvInt("MIN_CHARACTER_LINES", graph.DefaultMinCharacterLines); err != nil {
		return nil, err
	}
	if c.MinPairExchanges, err = util.LookupEnvInt("MIN_PAIR_EXCHANGES", graph.DefaultMinPairExchanges); err != nil {
		return nil, err
	}

	if c.MinCharacterLines < 1 {
		return nil, fmt.Errorf("MIN_CHARACTER_LINES must be at least 1, got %d", c.MinCharacterLines)
	}
	if c.MinPairExchanges < 1 {
		return nil, fmt.Errorf("MIN_PAIR_EXCHANGES must be at least 1, got %d", c.MinPairExchanges)
	}
	if c.RegistryBucket != "" && !c.S3.Enabled() {
		return nil, fmt.Errorf("REGISTRY_BUCKET requires AWS_REGION or AWS_ENDPOINT")
	}

	return c, nil
}

// RegistryPath is the local registry location: fixed directory plus fixed filename.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.ScriptsDir, c.MoviesFile)
}
