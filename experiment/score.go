package experiment

import (
	"math"
	"sort"

	"github.com/featmap/featmap/table"
)

// Scores is the downstream quality of one selected feature subset.
type Scores struct {
	Accuracy float64
	MacroF1  float64
}

// featureRows projects the selected feature columns into row vectors.
func featureRows(features []table.Feature, selected []int) [][]float64 {
	if len(features) == 0 || len(selected) == 0 {
		return nil
	}
	n := len(features[0].Values)
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, len(selected))
		for j, f := range selected {
			row[j] = features[f].Values[i]
		}
		rows[i] = row
	}
	return rows
}

// EvaluateKNN scores a selected feature subset with a k-nearest-neighbor
// majority vote: each validation row is classified by the most common
// label among its k closest training rows (Euclidean distance over the
// selected columns), nearer neighbors winning vote ties.
func EvaluateKNN(trainFeatures []table.Feature, trainLabels []string,
	valFeatures []table.Feature, valLabels []string,
	selected []int, k int) Scores {

	trainRows := featureRows(trainFeatures, selected)
	valRows := featureRows(valFeatures, selected)
	if len(trainRows) == 0 || len(valRows) == 0 {
		return Scores{}
	}
	if k > len(trainRows) {
		k = len(trainRows)
	}

	predicted := make([]string, len(valRows))
	for i, row := range valRows {
		predicted[i] = classify(row, trainRows, trainLabels, k)
	}
	return Scores{
		Accuracy: accuracy(valLabels, predicted),
		MacroF1:  macroF1(valLabels, predicted),
	}
}

type neighbor struct {
	dist  float64
	label string
}

func classify(row []float64, trainRows [][]float64, trainLabels []string, k int) string {
	neighbors := make([]neighbor, len(trainRows))
	for j, tr := range trainRows {
		var sum float64
		for d := range row {
			diff := row[d] - tr[d]
			sum += diff * diff
		}
		neighbors[j] = neighbor{dist: math.Sqrt(sum), label: trainLabels[j]}
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].dist < neighbors[b].dist
	})

	votes := make(map[string]int, k)
	for _, nb := range neighbors[:k] {
		votes[nb.label]++
	}

	// Walk neighbors nearest-first so vote ties go to the closer label.
	best, bestVotes := "", -1
	for _, nb := range neighbors[:k] {
		if votes[nb.label] > bestVotes {
			best = nb.label
			bestVotes = votes[nb.label]
		}
	}
	return best
}

func accuracy(want, got []string) float64 {
	if len(want) == 0 {
		return 0
	}
	correct := 0
	for i := range want {
		if want[i] == got[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(want))
}

// macroF1 averages the per-class F1 over every class present in the
// true labels.
func macroF1(want, got []string) float64 {
	classes := make(map[string]bool)
	for _, l := range want {
		classes[l] = true
	}
	if len(classes) == 0 {
		return 0
	}

	var sum float64
	for class := range classes {
		var tp, fp, fn float64
		for i := range want {
			switch {
			case got[i] == class && want[i] == class:
				tp++
			case got[i] == class:
				fp++
			case want[i] == class:
				fn++
			}
		}
		if tp > 0 {
			precision := tp / (tp + fp)
			recall := tp / (tp + fn)
			sum += 2 * precision * recall / (precision + recall)
		}
	}
	return sum / float64(len(classes))
}
