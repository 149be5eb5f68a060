// Package climate holds the EN 14825 reference climate data used by the
// seasonal performance calculation: per-zone design temperatures, the
// heating-season temperature bins (Annex B) and the annual off-mode hour
// budgets (Annex A, tables A.4 and A.6).
package climate

import (
	"fmt"
	"sort"
)

// Zone identifies one of the three European reference heating climates.
type Zone string

// Reference climate zones defined by EN 14825.
const (
	ZoneAverage Zone = "Average"
	ZoneWarmer  Zone = "Warmer"
	ZoneColder  Zone = "Colder"
)

// Bin is one discretized outdoor-temperature interval with its assigned
// annual hours.
type Bin struct {
	// Index is the bin number j from Annex B.
	Index int

	// Temperature is the bin outdoor dry-bulb temperature Tj in degC.
	Temperature float64

	// Hours is the annual hour count hj assigned to the bin.
	Hours int
}

// Profile is the immutable reference data for one climate zone.
// Bins are sorted ascending by temperature. The total bin hours do not
// need to cover the full year: only active-mode bins are tabulated.
type Profile struct {
	// Zone names the climate this profile describes.
	Zone Zone

	// DesignTemp is the reference design temperature Tdesignh in degC.
	DesignTemp float64

	// ActiveHours is the equivalent active mode hour count HHE.
	ActiveHours int

	// OffHours, ThermostatOffHours, StandbyHours and CrankcaseHours are
	// the annual duty-mode hour counts HOFF, HTO, HSB and HCK.
	OffHours           int
	ThermostatOffHours int
	StandbyHours       int
	CrankcaseHours     int

	// Bins is the ordered heating-season bin table.
	Bins []Bin
}

// Validate checks the profile invariants: at least one bin, bins sorted
// ascending by temperature and non-negative hour counts.
func (p Profile) Validate() error {
	if len(p.Bins) == 0 {
		return fmt.Errorf("climate %s: profile has no bins", p.Zone)
	}
	if !sort.SliceIsSorted(p.Bins, func(i, j int) bool {
		return p.Bins[i].Temperature < p.Bins[j].Temperature
	}) {
		return fmt.Errorf("climate %s: bins not sorted by temperature", p.Zone)
	}
	for _, b := range p.Bins {
		if b.Hours < 0 {
			return fmt.Errorf("climate %s: bin %d has negative hours", p.Zone, b.Index)
		}
	}
	return nil
}

// TotalBinHours sums the annual hours over all bins.
func (p Profile) TotalBinHours() int {
	total := 0
	for _, b := range p.Bins {
		total += b.Hours
	}
	return total
}

// Registry is an immutable lookup of climate profiles. Calculations take
// a Registry at construction time so tests can substitute synthetic
// climates without global state.
type Registry struct {
	profiles map[Zone]Profile
}

// NewRegistry builds a registry from the given profiles.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	reg := &Registry{profiles: make(map[Zone]Profile, len(profiles))}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := reg.profiles[p.Zone]; exists {
			return nil, fmt.Errorf("climate %s: duplicate profile", p.Zone)
		}
		reg.profiles[p.Zone] = p
	}
	return reg, nil
}

// Lookup returns the profile for a zone.
func (r *Registry) Lookup(zone Zone) (Profile, error) {
	p, ok := r.profiles[zone]
	if !ok {
		return Profile{}, fmt.Errorf("unknown climate %q (expected one of %v)", zone, r.Zones())
	}
	return p, nil
}

// Zones lists the registered zones in a stable order.
func (r *Registry) Zones() []Zone {
	zones := make([]Zone, 0, len(r.profiles))
	for z := range r.profiles {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}
