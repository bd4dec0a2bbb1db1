package io

import (
	"context"
	"fmt"
	"os"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"

	"golang.org/x/sync/singleflight"
)

// IOScriptLoader loads scripts directly from the local filesystem. Concurrent
// reads of the same path share one read; nothing is kept afterwards.
type IOScriptLoader struct {
	group singleflight.Group
}

// NewIOScriptLoader creates a new filesystem-based script loader.
func NewIOScriptLoader() *IOScriptLoader {
	return &IOScriptLoader{}
}

// GetFileText reads the file content from the filesystem.
func (l *IOScriptLoader) GetFileText(ctx context.Context, file loader.ScriptFile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return loader.SharedRead(ctx, &l.group, loader.FlightKey(file), func(context.Context) ([]byte, error) {
		data, err := os.ReadFile(file.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read script %q: %w", file.FilePath, err)
		}
		return data, nil
	})
}
