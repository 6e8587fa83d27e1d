// Package holidays supplies named holiday dates to the planner: built-in
// country presets of observed public holidays, plus user-defined
// recurrence rules.
package holidays

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ca"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/us"

	"github.com/jakechorley/pto-planner/pkg/core/calendar"
)

// ErrUnknownCountry is returned for a country code with no preset
var ErrUnknownCountry = errors.New("unknown country preset")

type preset struct {
	description string
	holidays    []*cal.Holiday
}

var presets = map[string]preset{
	"us": {"United States federal holidays", us.Holidays},
	"gb": {"United Kingdom bank holidays", gb.Holidays},
	"ca": {"Canada national holidays", ca.Holidays},
	"de": {"Germany public holidays", de.Holidays},
	"fr": {"France public holidays", fr.Holidays},
}

// Countries returns the supported country codes, sorted
func Countries() []string {
	codes := make([]string, 0, len(presets))
	for c := range presets {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Describe returns the human-readable name of a country preset
func Describe(country string) (string, error) {
	p, ok := presets[strings.ToLower(country)]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnknownCountry, country, strings.Join(Countries(), ", "))
	}
	return p.description, nil
}

// Preset returns the observed holidays of a country for a year, ordered
// by date and deduplicated (two holidays observed on the same date keep
// the first name).
func Preset(country string, year int) ([]calendar.Holiday, error) {
	p, ok := presets[strings.ToLower(country)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownCountry, country, strings.Join(Countries(), ", "))
	}

	out := make([]calendar.Holiday, 0, len(p.holidays))
	for _, h := range p.holidays {
		_, observed := h.Calc(year)
		if observed.IsZero() || observed.Year() != year {
			continue
		}
		out = append(out, calendar.Holiday{Date: observed, Name: h.Name})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	deduped := out[:0]
	for _, h := range out {
		if len(deduped) > 0 && deduped[len(deduped)-1].Date.Equal(h.Date) {
			continue
		}
		deduped = append(deduped, h)
	}
	return deduped, nil
}
