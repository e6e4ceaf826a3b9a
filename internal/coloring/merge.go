package coloring

// MergePair names two labels whose vertices never conflict, From > Into.
type MergePair struct {
	Into int
	From int
}

// Merge records one applied merge, with the names under each label at the time.
type Merge struct {
	MergePair
	IntoNames []string
	FromNames []string
}

// FindMergeable returns the first pair of labels, scanning (l1, l2) ascending
// with l1 < l2, such that no vertex under l1 conflicts with any vertex under l2.
func FindMergeable(g *Graph, l Labeling) (MergePair, bool) {
	groups := l.Groups()
	for l1 := range groups {
		for l2 := l1 + 1; l2 < len(groups); l2++ {
			if !groupsConflict(g, groups[l1], groups[l2]) {
				return MergePair{Into: l1, From: l2}, true
			}
		}
	}
	return MergePair{}, false
}

func groupsConflict(g *Graph, a, b []int) bool {
	for _, u := range a {
		for _, v := range b {
			if g.Adjacent(u, v) {
				return true
			}
		}
	}
	return false
}

// Combine returns a new labeling where the larger of l1, l2 is folded into the
// smaller and every label above it shifts down by one. l is not modified.
func Combine(l Labeling, l1, l2 int) Labeling {
	a, b := l1, l2
	if a > b {
		a, b = b, a
	}
	out := make(Labeling, len(l))
	for v, label := range l {
		switch {
		case label == b:
			out[v] = a
		case label > b:
			out[v] = label - 1
		default:
			out[v] = label
		}
	}
	return out
}

// MergeLabels applies the first mergeable pair, then keeps merging while the
// label count is above ceiling and a pair can still be merged. One merge is always
// attempted, so a labeling already at or under ceiling still loses a class when
// two of them never conflict. It is a first-fit heuristic and may stop above the
// minimum possible count.
func MergeLabels(g *Graph, initial Labeling, ceiling int) (Labeling, []Merge) {
	l := initial
	var merges []Merge
	for {
		pair, ok := FindMergeable(g, l)
		if !ok {
			break
		}
		groups := l.Groups()
		merges = append(merges, Merge{
			MergePair: pair,
			IntoNames: namesOf(g, groups[pair.Into]),
			FromNames: namesOf(g, groups[pair.From]),
		})
		l = Combine(l, pair.Into, pair.From)
		if l.Count() <= ceiling {
			break
		}
	}
	return l, merges
}

func namesOf(g *Graph, vertices []int) []string {
	names := make([]string, len(vertices))
	for i, v := range vertices {
		names[i] = g.Name(v)
	}
	return names
}
