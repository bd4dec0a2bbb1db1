package graph

import (
	"fmt"
	"math"

	"github.com/OFFIS-RIT/scriptnet/backend/pkg/common"
	"github.com/OFFIS-RIT/scriptnet/backend/pkg/figure"
)

const (
	minEdgeWidth = 1.0
	maxEdgeWidth = 10.0
	minNodeSize  = 10.0
	maxNodeSize  = 50.0

	edgeColor = "#888"
	nodeColor = "#1f77b4"
)

// Point is a node position on the canvas.
type Point struct {
	X float64
	Y float64
}

// CircularLayout places the nodes evenly on the unit circle in the given order,
// the first one at angle 0.
func CircularLayout(nodes []string) map[string]Point {
	pos := make(map[string]Point, len(nodes))
	if len(nodes) == 1 {
		pos[nodes[0]] = Point{}
		return pos
	}
	step := 2 * math.Pi / float64(len(nodes))
	for i, name := range nodes {
		angle := step * float64(i)
		pos[name] = Point{X: round(math.Cos(angle)), Y: round(math.Sin(angle))}
	}
	return pos
}

// round trims float noise so that positions serialize cleanly.
func round(v float64) float64 {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		return 0 // no "-0" in JSON
	}
	return r
}

// scale maps v from [lo, hi] into [outLo, outHi]. A degenerate input range maps
// to the middle of the output range.
func scale(v, lo, hi, outLo, outHi float64) float64 {
	if hi <= lo {
		return (outLo + outHi) / 2
	}
	return outLo + (v-lo)/(hi-lo)*(outHi-outLo)
}

func bounds(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return float64(lo), float64(hi)
}

// BuildTraces converts a pair result into plot traces: one line trace per
// retained pair, ordered like PairTally.Sorted, and one marker trace holding all
// nodes. The node trace is nil when there are no nodes.
func BuildTraces(result PairResult) ([]figure.Trace, *figure.Trace) {
	if len(result.Nodes) == 0 {
		return []figure.Trace{}, nil
	}

	pos := CircularLayout(result.Nodes)

	sortedPairs := result.Pairs.Sorted()
	counts := make([]int, 0, len(sortedPairs))
	for _, p := range sortedPairs {
		counts = append(counts, p.Count)
	}
	lo, hi := bounds(counts)

	edges := make([]figure.Trace, 0, len(sortedPairs))
	for _, p := range sortedPairs {
		a, b := common.PairKey(p.Name).Names()
		pa, pb := pos[a], pos[b]
		edges = append(edges, figure.Trace{
			Type:      "scatter",
			Name:      p.Name,
			X:         []float64{pa.X, pb.X},
			Y:         []float64{pa.Y, pb.Y},
			Mode:      "lines",
			HoverInfo: "none",
			Line: &figure.Line{
				Width: round(scale(float64(p.Count), lo, hi, minEdgeWidth, maxEdgeWidth)),
				Color: edgeColor,
			},
		})
	}

	lineCounts := make([]int, 0, len(result.Nodes))
	for _, name := range result.Nodes {
		lineCounts = append(lineCounts, result.TopCharacters[name])
	}
	lo, hi = bounds(lineCounts)

	node := &figure.Trace{
		Type:         "scatter",
		Name:         "characters",
		Mode:         "markers+text",
		HoverInfo:    "text",
		TextPosition: "top center",
		Marker: &figure.Marker{
			Color: nodeColor,
			Line:  &figure.Line{Width: 2, Color: "#fff"},
		},
	}
	for i, name := range result.Nodes {
		p := pos[name]
		node.X = append(node.X, p.X)
		node.Y = append(node.Y, p.Y)
		node.Text = append(node.Text, name)
		node.HoverText = append(node.HoverText, fmt.Sprintf("%s (%d lines)", name, lineCounts[i]))
		node.Marker.Size = append(node.Marker.Size, round(scale(float64(lineCounts[i]), lo, hi, minNodeSize, maxNodeSize)))
	}

	return edges, node
}
