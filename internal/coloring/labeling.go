package coloring

import "fmt"

// Labeling assigns a color class to each vertex of a Graph, indexed by vertex.
// Labels are contiguous from 0.
type Labeling []int

// Count returns the number of distinct labels.
func (l Labeling) Count() int {
	highest := -1
	for _, label := range l {
		if label > highest {
			highest = label
		}
	}
	return highest + 1
}

// Groups returns, for each label, its vertices in ascending order.
func (l Labeling) Groups() [][]int {
	groups := make([][]int, l.Count())
	for v, label := range l {
		groups[label] = append(groups[label], v)
	}
	return groups
}

// Names maps each name of g to its label.
func (l Labeling) Names(g *Graph) map[string]int {
	out := make(map[string]int, len(l))
	for v, label := range l {
		out[g.Name(v)] = label
	}
	return out
}

// Validate checks that no two adjacent vertices share a label.
func (l Labeling) Validate(g *Graph) error {
	if len(l) != g.Len() {
		return fmt.Errorf("labeling covers %d vertices, graph has %d", len(l), g.Len())
	}
	for v := range l {
		for _, u := range g.Neighbors(v) {
			if u > v && l[u] == l[v] {
				return fmt.Errorf("%s and %s conflict but share label %d", g.Name(v), g.Name(u), l[v])
			}
		}
	}
	return nil
}
