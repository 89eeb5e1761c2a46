package aggregator

import (
	"math/rand"
	"strings"

	"vodmesh/models"
	"vodmesh/utils/filter"
)

// categoryPlan is the per-request search strategy: the keyword sent to every
// source and the post-fetch predicate applied to the merged set.
type categoryPlan struct {
	keyword string
	all     bool
	match   func(models.VideoRecord) bool
}

// rotatingKeywords feed the full-catalog mode. Backends only expose free-text
// search, so "everything" is approximated by a generic query picked at random
// per request.
var rotatingKeywords = []string{"热门", "最新", "推荐", "经典", "高分"}

// catchAllLabels are the category labels that select full-catalog mode.
var catchAllLabels = map[string]bool{"": true, "all": true, "全部": true}

// planCategory maps a caller-facing category label to a search keyword and a
// post-filter. Categories are approximated as keyword search plus substring
// matching on class, type and title; records whose metadata never literally
// mentions the label are lost, which is a known limitation.
func planCategory(label string) categoryPlan {
	trimmed := strings.TrimSpace(label)
	if catchAllLabels[strings.ToLower(trimmed)] {
		return categoryPlan{
			keyword: rotatingKeywords[rand.Intn(len(rotatingKeywords))],
			all:     true,
			match:   func(models.VideoRecord) bool { return true },
		}
	}

	terms := filter.CompileTerms([]string{trimmed})
	return categoryPlan{
		keyword: trimmed,
		match: func(rec models.VideoRecord) bool {
			return filter.MatchesAnyField(terms, rec.Class, rec.TypeName, rec.Title)
		},
	}
}
