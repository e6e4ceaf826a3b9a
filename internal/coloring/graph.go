// Package coloring assigns color classes to names so that names shown in the same
// year never share a class.
//
// The pipeline is: Build a conflict Graph from the yearly name sets, give it an
// initial proper coloring with WelshPowell, shrink the number of classes with
// MergeLabels, then rank classes by PeakLoads to decide palette order.
package coloring

import (
	"sort"

	"github.com/amterp/namemap/internal/model"
)

// Graph is an undirected conflict graph over names. Vertices are numbered in the
// order names were first added.
type Graph struct {
	names []string
	index map[string]int
	adj   []map[int]struct{}
	self  []bool
	edges int
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]int)}
}

// Build creates the conflict graph of one category: every pair of names placed in
// the same year set is connected, a name with itself included.
func Build(sets [][]model.Placement) *Graph {
	g := NewGraph()
	for _, set := range sets {
		for _, p := range set {
			g.AddVertex(p.Name)
		}
	}
	for _, set := range sets {
		for i, a := range set {
			for _, b := range set[i:] {
				g.AddEdge(a.Name, b.Name)
			}
		}
	}
	return g
}

// AddVertex adds name if absent and returns its vertex number.
func (g *Graph) AddVertex(name string) int {
	if v, ok := g.index[name]; ok {
		return v
	}
	v := len(g.names)
	g.index[name] = v
	g.names = append(g.names, name)
	g.adj = append(g.adj, make(map[int]struct{}))
	g.self = append(g.self, false)
	return v
}

// AddEdge records a conflict between a and b, adding either as a vertex if needed.
// Edges are symmetric; a == b records a self-pair, which never affects coloring.
func (g *Graph) AddEdge(a, b string) {
	va, vb := g.AddVertex(a), g.AddVertex(b)
	if va == vb {
		g.self[va] = true
		return
	}
	if _, ok := g.adj[va][vb]; ok {
		return
	}
	g.adj[va][vb] = struct{}{}
	g.adj[vb][va] = struct{}{}
	g.edges++
}

// Adjacent reports whether vertices u and v conflict.
func (g *Graph) Adjacent(u, v int) bool {
	if u == v {
		return g.self[u]
	}
	_, ok := g.adj[u][v]
	return ok
}

// Conflicts reports whether names a and b conflict. Unknown names never do.
func (g *Graph) Conflicts(a, b string) bool {
	u, ok := g.index[a]
	if !ok {
		return false
	}
	v, ok := g.index[b]
	if !ok {
		return false
	}
	return g.Adjacent(u, v)
}

// Degree returns the number of distinct other vertices v conflicts with.
func (g *Graph) Degree(v int) int {
	return len(g.adj[v])
}

// Neighbors returns v's neighbors in ascending order, excluding v itself.
func (g *Graph) Neighbors(v int) []int {
	out := make([]int, 0, len(g.adj[v]))
	for u := range g.adj[v] {
		out = append(out, u)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of vertices.
func (g *Graph) Len() int {
	return len(g.names)
}

// EdgeCount returns the number of edges between distinct vertices.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Name returns the name of vertex v.
func (g *Graph) Name(v int) string {
	return g.names[v]
}

// Names returns all vertex names in vertex order.
// The returned slice must not be modified.
func (g *Graph) Names() []string {
	return g.names
}

// Index returns the vertex number of name.
func (g *Graph) Index(name string) (int, bool) {
	v, ok := g.index[name]
	return v, ok
}
