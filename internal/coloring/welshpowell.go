package coloring

import "sort"

// WelshPowell colors g greedily, largest degree first. Ties keep vertex order.
// For each color in turn, every still-uncolored vertex in that order takes the
// color unless a neighbor already has it.
func WelshPowell(g *Graph) Labeling {
	n := g.Len()
	order := make([]int, n)
	for v := range order {
		order[v] = v
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(order[i]) > g.Degree(order[j])
	})

	labels := make(Labeling, n)
	for v := range labels {
		labels[v] = -1
	}

	remaining := n
	for color := 0; remaining > 0; color++ {
		for _, v := range order {
			if labels[v] != -1 || hasNeighborWith(g, labels, v, color) {
				continue
			}
			labels[v] = color
			remaining--
		}
	}
	return labels
}

func hasNeighborWith(g *Graph, labels Labeling, v, color int) bool {
	for u := range g.adj[v] {
		if labels[u] == color {
			return true
		}
	}
	return false
}
