package search

import (
	"github.com/nullmedium/exek/model"
	"github.com/sahilm/fuzzy"
)

// appField exposes one text field of every application as a fuzzy.Source.
type appField struct {
	apps  []model.Application
	field func(model.Application) string
}

func (s appField) String(i int) string { return s.field(s.apps[i]) }
func (s appField) Len() int            { return len(s.apps) }

// categorySource flattens all category tags, remembering their owner.
type categorySource struct {
	tags  []string
	owner []int
}

func (s categorySource) String(i int) string { return s.tags[i] }
func (s categorySource) Len() int            { return len(s.tags) }

// fieldScores returns one score per app, 0 where the field does not match.
func fieldScores(query string, apps []model.Application, field func(model.Application) string) []int {
	scores := make([]int, len(apps))
	for _, m := range fuzzy.FindFrom(query, appField{apps: apps, field: field}) {
		scores[m.Index] = matchScore(m)
	}
	return scores
}

// categoryScores returns the best tag score per app.
func categoryScores(query string, apps []model.Application) []int {
	var src categorySource
	for i, app := range apps {
		for _, tag := range app.Categories {
			src.tags = append(src.tags, tag)
			src.owner = append(src.owner, i)
		}
	}

	scores := make([]int, len(apps))
	if src.Len() == 0 {
		return scores
	}
	for _, m := range fuzzy.FindFrom(query, src) {
		owner := src.owner[m.Index]
		scores[owner] = max(scores[owner], matchScore(m))
	}
	return scores
}

// matchScore keeps every subsequence match positive. fuzzy subtracts a
// point per unmatched character, which can push long targets to zero or
// below even though they match.
func matchScore(m fuzzy.Match) int {
	return max(m.Score, 1)
}
