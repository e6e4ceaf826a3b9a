package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDataset_GroupsByYearAndCategory(t *testing.T) {
	d := NewDataset()
	d.Add(Row{Year: 2001, State: "CA", M: "Jacob", F: "Emily"})
	d.Add(Row{Year: 2000, State: "CA", M: "Daniel", F: "Emily"})
	d.Add(Row{Year: 2000, State: "NY", M: "Michael", F: "Emily"})

	if d.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", d.Len())
	}

	years := d.Years()
	if years[0].Year != 2000 || years[1].Year != 2001 {
		t.Errorf("years not ascending: got %d, %d", years[0].Year, years[1].Year)
	}

	want := []Placement{{Region: "CA", Name: "Daniel"}, {Region: "NY", Name: "Michael"}}
	if diff := cmp.Diff(want, years[0].Placements(CategoryMale)); diff != "" {
		t.Errorf("2000 M placements mismatch (-want +got):\n%s", diff)
	}

	name, ok := d.Record(2001).Name(CategoryFemale, "CA")
	if !ok || name != "Emily" {
		t.Errorf("Name(F, CA) = %q, %v; want Emily, true", name, ok)
	}
}

func TestDataset_LaterRowOverwritesInPlace(t *testing.T) {
	d := NewDataset()
	d.Add(Row{Year: 1990, State: "CA", M: "Michael", F: "Jessica"})
	d.Add(Row{Year: 1990, State: "TX", M: "Christopher", F: "Ashley"})
	d.Add(Row{Year: 1990, State: "CA", M: "Daniel", F: "Jessica"})

	want := []Placement{{Region: "CA", Name: "Daniel"}, {Region: "TX", Name: "Christopher"}}
	if diff := cmp.Diff(want, d.Record(1990).Placements(CategoryMale)); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
}

func TestDataset_EmptyNameSkipped(t *testing.T) {
	d := NewDataset()
	d.Add(Row{Year: 1910, State: "AK", M: "John", F: ""})

	if got := d.Record(1910).Placements(CategoryFemale); len(got) != 0 {
		t.Errorf("expected no F placements, got %v", got)
	}
	if sets := d.Sets(CategoryFemale); len(sets) != 0 {
		t.Errorf("expected no F sets, got %d", len(sets))
	}
	if sets := d.Sets(CategoryMale); len(sets) != 1 {
		t.Errorf("expected 1 M set, got %d", len(sets))
	}
}

func TestDataset_NamesFirstAppearanceOrder(t *testing.T) {
	d := NewDataset()
	d.Add(Row{Year: 2, State: "CA", M: "Alice"})
	d.Add(Row{Year: 2, State: "NY", M: "Carol"})
	d.Add(Row{Year: 1, State: "CA", M: "Alice"})
	d.Add(Row{Year: 1, State: "NY", M: "Bob"})

	want := []string{"Alice", "Bob", "Carol"}
	if diff := cmp.Diff(want, d.Names(CategoryMale)); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
}

func TestRow_Name(t *testing.T) {
	r := Row{M: "Liam", F: "Olivia"}
	if r.Name(CategoryMale) != "Liam" {
		t.Errorf("Name(M) = %q, want Liam", r.Name(CategoryMale))
	}
	if r.Name(CategoryFemale) != "Olivia" {
		t.Errorf("Name(F) = %q, want Olivia", r.Name(CategoryFemale))
	}
}
