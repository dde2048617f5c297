package discovery

import "github.com/askiada/go-causality/pkg/cgraph"

// Score compares a learnt graph with the true one.
type Score struct {
	// TruePositives counts adjacencies present in both graphs.
	TruePositives int
	// FalsePositives counts adjacencies only the learnt graph has.
	FalsePositives int
	// FalseNegatives counts adjacencies only the true graph has.
	FalseNegatives int
	// Precision is TP/(TP+FP), 1 when nothing was found.
	Precision float64
	// Recall is TP/(TP+FN), 1 when there was nothing to find.
	Recall float64
	// SHD is the structural Hamming distance: one per missing or extra adjacency and one per
	// shared adjacency whose marks differ.
	SHD int
	// Orientation is the share of true positives whose marks match, 0 without true positives.
	Orientation float64
}

// Compare scores found against truth over the nodes of found. Nodes missing from truth count
// as having no edge.
func Compare(truth, found *cgraph.Mixed) Score {
	var (
		score    Score
		matching int
	)

	nodes := found.Nodes()

	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			inTruth := truth.Adjacent(a, b)
			inFound := found.Adjacent(a, b)

			switch {
			case inTruth && inFound:
				score.TruePositives++

				if sameMarks(truth, found, a, b) {
					matching++
				} else {
					score.SHD++
				}
			case inFound:
				score.FalsePositives++
				score.SHD++
			case inTruth:
				score.FalseNegatives++
				score.SHD++
			}
		}
	}

	score.Precision = ratio(score.TruePositives, score.TruePositives+score.FalsePositives, 1)
	score.Recall = ratio(score.TruePositives, score.TruePositives+score.FalseNegatives, 1)
	score.Orientation = ratio(matching, score.TruePositives, 0)

	return score
}

func sameMarks(g, h *cgraph.Mixed, a, b string) bool {
	ge, _ := g.Edge(a, b)
	he, _ := h.Edge(a, b)

	return ge.MarkA == he.MarkA && ge.MarkB == he.MarkB
}

func ratio(num, den int, empty float64) float64 {
	if den == 0 {
		return empty
	}

	return float64(num) / float64(den)
}

// MeanScore is the average of several scores.
type MeanScore struct {
	TruePositives  float64
	FalsePositives float64
	FalseNegatives float64
	Precision      float64
	Recall         float64
	SHD            float64
	Orientation    float64
	// Exact counts the runs with SHD 0.
	Exact int
	Runs  int
}

// Mean averages scores.
func Mean(scores ...Score) MeanScore {
	res := MeanScore{Runs: len(scores)}
	if len(scores) == 0 {
		return res
	}

	for _, s := range scores {
		res.TruePositives += float64(s.TruePositives)
		res.FalsePositives += float64(s.FalsePositives)
		res.FalseNegatives += float64(s.FalseNegatives)
		res.Precision += s.Precision
		res.Recall += s.Recall
		res.SHD += float64(s.SHD)
		res.Orientation += s.Orientation

		if s.SHD == 0 {
			res.Exact++
		}
	}

	n := float64(len(scores))
	res.TruePositives /= n
	res.FalsePositives /= n
	res.FalseNegatives /= n
	res.Precision /= n
	res.Recall /= n
	res.SHD /= n
	res.Orientation /= n

	return res
}
