package graph

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/common"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/figure"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/loader"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/logger"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/script"
)

func extractDialogues(ctx context.Context, file loader.ScriptFile) ([]common.DialogueRecord, error) {
	content, err := file.GetText(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", file.FilePath, err)
	}

	text := script.CleanText(string(content))
	sentences := script.SplitSentences(text)
	records := script.ExtractDialogues(sentences)

	logger.Debug("Extracted dialogue",
		"movie", file.Movie,
		"file", file.FilePath,
		"bytes", len(content),
		"sentences", len(sentences),
		"records", len(records),
	)
	return records, nil
}

// BuildNetworkPairs loads the script behind file and returns the filtered
// character pairs.
func (n *NetworkClient) BuildNetworkPairs(ctx context.Context, file loader.ScriptFile) (PairResult, error) {
	records, err := extractDialogues(ctx, file)
	if err != nil {
		return PairResult{}, err
	}

	result := BuildPairs(records, n.params)
	logger.Debug("Built character pairs",
		"movie", file.Movie,
		"characters", len(result.Characters),
		"top_characters", len(result.TopCharacters),
		"pairs", len(result.AllPairs),
		"kept_pairs", len(result.Pairs),
	)
	return result, nil
}

// BuildNetworkFigure loads the script behind file and returns the character
// interaction network as a list holding one figure titled after movie.
//
// A script without qualifying characters yields a figure with no traces. Only a
// failed read is reported as error.
func (n *NetworkClient) BuildNetworkFigure(ctx context.Context, file loader.ScriptFile, movie string) ([]figure.Figure, error) {
	result, err := n.BuildNetworkPairs(ctx, file)
	if err != nil {
		return nil, err
	}

	edges, node := BuildTraces(result)
	return figure.Assemble(edges, node, movie), nil
}
