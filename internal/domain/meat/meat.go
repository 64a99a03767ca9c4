// Package meat holds the static meat profile table used by the estimator.
package meat

import (
	"fmt"
	"slices"
)

// Profile describes how a single cut is cooked.
type Profile struct {
	// Name is the display name and lookup key, e.g. "Brisket".
	Name string `json:"meat_type"`
	// TargetInternalTempF is the doneness temperature in °F.
	TargetInternalTempF int `json:"target_internal_temp_f"`
	// HoursPerPound is the cook rate at smoker temperature.
	HoursPerPound float64 `json:"hours_per_pound"`
}

// Known meat type names, in listing order.
const (
	Brisket       = "Brisket"
	PorkShoulder  = "Pork Shoulder"
	BabyBackRibs  = "Baby Back Ribs"
	SpareRibs     = "Spare Ribs"
	WholeChicken  = "Whole Chicken"
	TurkeyBreast  = "Turkey Breast"
	LambShoulder  = "Lamb Shoulder"
	BeefShortRibs = "Beef Short Ribs"
)

var defaultProfiles = []Profile{ //nolint:gochecknoglobals // read-only reference data
	{Name: Brisket, TargetInternalTempF: 203, HoursPerPound: 1.5},
	{Name: PorkShoulder, TargetInternalTempF: 195, HoursPerPound: 1.2},
	{Name: BabyBackRibs, TargetInternalTempF: 190, HoursPerPound: 1.0},
	{Name: SpareRibs, TargetInternalTempF: 190, HoursPerPound: 1.2},
	{Name: WholeChicken, TargetInternalTempF: 165, HoursPerPound: 0.75},
	{Name: TurkeyBreast, TargetInternalTempF: 160, HoursPerPound: 0.75},
	{Name: LambShoulder, TargetInternalTempF: 190, HoursPerPound: 1.3},
	{Name: BeefShortRibs, TargetInternalTempF: 200, HoursPerPound: 1.4},
}

// Table is an immutable set of profiles keyed by name.
// The zero value is an empty table.
type Table struct {
	order  []string
	byName map[string]Profile
}

// DefaultTable returns the built-in eight-entry profile table.
func DefaultTable() Table {
	t, err := NewTable(defaultProfiles...)
	if err != nil {
		// defaultProfiles is static; a failure here is a programming error.
		panic(err)
	}
	return t
}

// NewTable builds a table from profiles, keeping the given order.
func NewTable(profiles ...Profile) (Table, error) {
	t := Table{
		order:  make([]string, 0, len(profiles)),
		byName: make(map[string]Profile, len(profiles)),
	}
	for _, p := range profiles {
		switch {
		case p.Name == "":
			return Table{}, fmt.Errorf("%w: empty name", ErrInvalidProfile)
		case p.HoursPerPound <= 0:
			return Table{}, fmt.Errorf("%w: %q has non-positive hours per pound", ErrInvalidProfile, p.Name)
		}
		if _, dup := t.byName[p.Name]; dup {
			return Table{}, fmt.Errorf("%w: duplicate %q", ErrInvalidProfile, p.Name)
		}
		t.order = append(t.order, p.Name)
		t.byName[p.Name] = p
	}
	return t, nil
}

// Lookup returns the profile for name.
// Returns ErrUnknown if the table has no such entry.
func (t Table) Lookup(name string) (Profile, error) {
	p, ok := t.byName[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return p, nil
}

// Has reports whether name is a known meat type.
func (t Table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Names returns the meat type names in listing order.
func (t Table) Names() []string {
	return slices.Clone(t.order)
}

// Profiles returns all profiles in listing order.
func (t Table) Profiles() []Profile {
	out := make([]Profile, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.byName[name])
	}
	return out
}

// Len returns the number of profiles.
func (t Table) Len() int { return len(t.order) }
