package service

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/amterp/namemap/internal/coloring"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/palette"
)

// CategoryReport summarizes how one category was colored.
type CategoryReport struct {
	Category      model.Category   `json:"category"`
	Names         int              `json:"names"`
	Edges         int              `json:"edges"`
	InitialLabels int              `json:"initial_labels"`
	FinalLabels   int              `json:"final_labels"`
	Merges        []coloring.Merge `json:"merges,omitempty"`
	PeakLoads     []int            `json:"peak_loads"` // Indexed by final label
	Deficit       int              `json:"deficit"`    // Labels that had to reuse a palette slot
}

// AssignResult is the output of one assigner run.
type AssignResult struct {
	Table      model.ColorTable `json:"-"`
	Categories []CategoryReport `json:"categories"`
}

// Deficit returns the largest palette deficit across categories.
func (r *AssignResult) Deficit() int {
	worst := 0
	for _, c := range r.Categories {
		if c.Deficit > worst {
			worst = c.Deficit
		}
	}
	return worst
}

// Assigner maps every name in a dataset to a palette color such that names shown
// in the same year and category never share one, as long as the palette is large
// enough.
type Assigner struct {
	palette palette.Palette
	ceiling int
	log     logrus.FieldLogger
}

// NewAssigner creates an assigner that merges labels down to ceiling.
func NewAssigner(p palette.Palette, ceiling int, log logrus.FieldLogger) *Assigner {
	if log == nil {
		log = discardLogger()
	}
	return &Assigner{palette: p, ceiling: ceiling, log: log}
}

// Assign colors each category in turn. Categories later in model.Categories
// overwrite earlier ones for names they share.
func (a *Assigner) Assign(ds *model.Dataset) *AssignResult {
	result := &AssignResult{Table: model.ColorTable{}}
	for _, c := range model.Categories {
		table, report := a.assignCategory(c, ds.Sets(c))
		result.Table.Merge(table)
		result.Categories = append(result.Categories, report)
	}
	return result
}

func (a *Assigner) assignCategory(c model.Category, sets [][]model.Placement) (model.ColorTable, CategoryReport) {
	log := a.log.WithField("category", string(c))

	g := coloring.Build(sets)
	initial := coloring.WelshPowell(g)
	labels, merges := coloring.MergeLabels(g, initial, a.ceiling)
	for _, m := range merges {
		log.WithFields(logrus.Fields{
			"into": m.Into,
			"from": m.From,
		}).Debugf("Combining %v with %v", m.IntoNames, m.FromNames)
	}

	peaks := coloring.PeakLoads(g, labels, sets)
	ranked := coloring.RankByLoad(peaks)

	slot := make([]string, len(peaks))
	for i, label := range ranked {
		slot[label] = a.palette.At(i)
	}

	table := make(model.ColorTable, g.Len())
	for v, label := range labels {
		table[g.Name(v)] = slot[label]
	}

	report := CategoryReport{
		Category:      c,
		Names:         g.Len(),
		Edges:         g.EdgeCount(),
		InitialLabels: initial.Count(),
		FinalLabels:   labels.Count(),
		Merges:        merges,
		PeakLoads:     peaks,
		Deficit:       a.palette.Deficit(labels.Count()),
	}
	if report.Deficit > 0 {
		log.WithFields(logrus.Fields{
			"labels":  report.FinalLabels,
			"palette": len(a.palette),
		}).Warnf("palette too small, %d labels reuse colors", report.Deficit)
	}
	log.WithFields(logrus.Fields{
		"names":  report.Names,
		"labels": report.FinalLabels,
		"merges": len(merges),
	}).Debug("category colored")

	return table, report
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
