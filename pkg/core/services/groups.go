package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/pto-planner/internal/config"
	"github.com/jakechorley/pto-planner/pkg/core/calendar"
	"github.com/jakechorley/pto-planner/pkg/core/planner"
	"github.com/jakechorley/pto-planner/pkg/holidays"
)

// ResolveHolidays assembles a holiday list from an optional country preset
// and explicit YYYY-MM-DD dates. Duplicate dates keep the first name seen,
// so an explicit date overrides nothing and a preset wins on collisions.
func ResolveHolidays(year int, country string, dates []string) ([]calendar.Holiday, error) {
	var lists [][]calendar.Holiday

	if country != "" {
		preset, err := holidays.Preset(country, year)
		if err != nil {
			return nil, err
		}
		lists = append(lists, preset)
	}

	explicit := make([]calendar.Holiday, 0, len(dates))
	for _, s := range dates {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q (use YYYY-MM-DD): %w", s, err)
		}
		explicit = append(explicit, calendar.Holiday{
			Date: d,
			Name: d.Format("Jan 02"),
		})
	}
	lists = append(lists, explicit)

	return mergeHolidays(lists...), nil
}

// BuildGroups resolves every configured group's country preset, explicit
// dates and recurrence rules into concrete holiday lists for the year
func BuildGroups(cfg *config.Config, year int) ([]planner.HolidayGroup, error) {
	groups := make([]planner.HolidayGroup, 0, len(cfg.Groups))

	for _, g := range cfg.Groups {
		resolved, err := ResolveHolidays(year, g.Country, g.Holidays)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}

		lists := [][]calendar.Holiday{resolved}
		for _, rule := range g.Rules {
			expanded, err := holidays.ExpandRule(rule.Name, rule.RRule, year)
			if err != nil {
				return nil, fmt.Errorf("group %q: rule %q: %w", g.Name, rule.Name, err)
			}
			lists = append(lists, expanded)
		}

		groups = append(groups, planner.HolidayGroup{
			Name:             g.Name,
			Holidays:         mergeHolidays(lists...),
			PTOBudget:        g.PTOBudget,
			FloatingHolidays: g.FloatingHolidays,
		})
	}

	return groups, nil
}

// mergeHolidays concatenates holiday lists, dropping duplicate dates
// (first occurrence wins) and sorting by date
func mergeHolidays(lists ...[]calendar.Holiday) []calendar.Holiday {
	seen := map[string]bool{}
	var merged []calendar.Holiday
	for _, list := range lists {
		for _, h := range list {
			key := h.Date.Format("2006-01-02")
			if seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, h)
		}
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}
