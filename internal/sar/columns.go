package sar

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// EffectiveExclude resolves the include/exclude policy against a header.
// An explicit exclude list always wins; otherwise every non-time column
// missing from include is excluded. With neither list nothing is excluded.
func EffectiveExclude(header, include, exclude []string) []string {
	if len(exclude) > 0 || len(include) == 0 {
		return exclude
	}

	keep := mapset.NewSet(include...)
	var excluded []string
	for _, name := range metricColumns(header) {
		if !keep.Contains(name) {
			excluded = append(excluded, name)
		}
	}
	return excluded
}

// SelectColumns returns the header with excluded columns removed.
// Order is preserved and TimeColumn always comes first.
func SelectColumns(header, include, exclude []string) []string {
	drop := mapset.NewSet(EffectiveExclude(header, include, exclude)...)

	selected := []string{TimeColumn}
	for _, name := range metricColumns(header) {
		if !drop.Contains(name) {
			selected = append(selected, name)
		}
	}
	return selected
}

// UnknownColumns lists names that do not appear in the header.
// Selection ignores them; callers may want to warn.
func UnknownColumns(header, names []string) []string {
	known := mapset.NewSet(metricColumns(header)...)
	var unknown []string
	for _, name := range names {
		if !known.Contains(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

func metricColumns(header []string) []string {
	if len(header) == 0 {
		return nil
	}
	return header[1:]
}
