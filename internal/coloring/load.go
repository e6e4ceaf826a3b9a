package coloring

import (
	"sort"

	"github.com/amterp/namemap/internal/model"
)

// PeakLoads returns, for each label, the largest number of regions showing a name
// under that label in any single year.
func PeakLoads(g *Graph, l Labeling, sets [][]model.Placement) []int {
	peaks := make([]int, l.Count())
	for _, set := range sets {
		year := make([]int, len(peaks))
		for _, p := range set {
			v, ok := g.Index(p.Name)
			if !ok {
				continue
			}
			label := l[v]
			year[label]++
			if year[label] > peaks[label] {
				peaks[label] = year[label]
			}
		}
	}
	return peaks
}

// RankByLoad returns label numbers sorted by peak load, heaviest first.
// Equal loads keep ascending label order.
func RankByLoad(peaks []int) []int {
	ranked := make([]int, len(peaks))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return peaks[ranked[i]] > peaks[ranked[j]]
	})
	return ranked
}
