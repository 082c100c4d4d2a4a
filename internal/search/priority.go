package search

import (
	"github.com/RowanDark/decipher/internal/textscore"
)

// depthPenalty is subtracted per level so shallow chains are tried before
// deep ones with similar-looking text. It is deliberately not admissible:
// the ordering is a heuristic for where plaintext probably is, not a
// shortest-path guarantee.
const depthPenalty = 50.0

// priorityFor scores how promising a node is to expand next. Higher is
// better. The text fitness dominates; depth and the cost of the transform
// that produced the node discount it.
func priorityFor(text string, depth int, costWeight float64) float64 {
	if costWeight <= 0 {
		costWeight = 1.0
	}
	return textscore.Fitness(text) - float64(depth+1)*costWeight*depthPenalty
}
