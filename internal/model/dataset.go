package model

import "sort"

// Category identifies which name column of the input a value came from.
type Category string

const (
	CategoryMale   Category = "M"
	CategoryFemale Category = "F"
)

// Categories lists categories in processing order.
// When a name appears in both, the later category's color wins.
var Categories = []Category{CategoryMale, CategoryFemale}

// Row is one line of the input file.
type Row struct {
	Year     int
	State    string
	M        string
	F        string
	Count    float64
	HasCount bool
}

// Name returns the row's name for the given category.
func (r Row) Name(c Category) string {
	if c == CategoryFemale {
		return r.F
	}
	return r.M
}

// Placement is one region showing a name in a given year.
type Placement struct {
	Region string
	Name   string
}

// YearRecord holds, per category, which name each region shows in one year.
// Regions keep first-appearance order; a later write for the same region replaces
// the name in place.
type YearRecord struct {
	Year       int
	placements map[Category][]Placement
	index      map[Category]map[string]int
}

// NewYearRecord creates an empty record for the given year.
func NewYearRecord(year int) *YearRecord {
	return &YearRecord{
		Year:       year,
		placements: make(map[Category][]Placement),
		index:      make(map[Category]map[string]int),
	}
}

// Set records that region shows name for category c.
func (y *YearRecord) Set(c Category, region, name string) {
	idx, ok := y.index[c]
	if !ok {
		idx = make(map[string]int)
		y.index[c] = idx
	}
	if i, exists := idx[region]; exists {
		y.placements[c][i].Name = name
		return
	}
	idx[region] = len(y.placements[c])
	y.placements[c] = append(y.placements[c], Placement{Region: region, Name: name})
}

// Placements returns the region/name pairs for category c in region order.
// The returned slice must not be modified.
func (y *YearRecord) Placements(c Category) []Placement {
	return y.placements[c]
}

// Name returns the name shown in region for category c.
func (y *YearRecord) Name(c Category, region string) (string, bool) {
	i, ok := y.index[c][region]
	if !ok {
		return "", false
	}
	return y.placements[c][i].Name, true
}

// Dataset is the input grouped by year, then category, then region.
type Dataset struct {
	years  []*YearRecord
	byYear map[int]*YearRecord
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{byYear: make(map[int]*YearRecord)}
}

// Add folds one input row into the dataset. Empty name cells mean the region has
// no data for that category and are skipped.
func (d *Dataset) Add(row Row) {
	rec := d.record(row.Year)
	for _, c := range Categories {
		if name := row.Name(c); name != "" {
			rec.Set(c, row.State, name)
		}
	}
}

// record returns the record for year, creating it in sorted position if needed.
func (d *Dataset) record(year int) *YearRecord {
	if rec, ok := d.byYear[year]; ok {
		return rec
	}
	rec := NewYearRecord(year)
	d.byYear[year] = rec

	i := sort.Search(len(d.years), func(i int) bool { return d.years[i].Year >= year })
	d.years = append(d.years, nil)
	copy(d.years[i+1:], d.years[i:])
	d.years[i] = rec
	return rec
}

// Years returns the year records in ascending year order.
func (d *Dataset) Years() []*YearRecord {
	return d.years
}

// Record returns the record for year, or nil if the year is absent.
func (d *Dataset) Record(year int) *YearRecord {
	return d.byYear[year]
}

// Sets returns, for each year in ascending order, the placements of category c.
// Years where c has no data are omitted.
func (d *Dataset) Sets(c Category) [][]Placement {
	var sets [][]Placement
	for _, rec := range d.years {
		if p := rec.Placements(c); len(p) > 0 {
			sets = append(sets, p)
		}
	}
	return sets
}

// Names returns the distinct names of category c in first-appearance order.
func (d *Dataset) Names(c Category) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range d.years {
		for _, p := range rec.Placements(c) {
			if !seen[p.Name] {
				seen[p.Name] = true
				names = append(names, p.Name)
			}
		}
	}
	return names
}

// Len returns the number of distinct years.
func (d *Dataset) Len() int {
	return len(d.years)
}
