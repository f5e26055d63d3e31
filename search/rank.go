package search

import (
	"math"
	"sort"

	"github.com/nullmedium/exek/model"
)

// RecentLimit caps the list shown for an empty query.
const RecentLimit = 20

const (
	nameBoost       = 10
	frecencyCeiling = 100.0
	frecencyDamping = 10
)

// Frecencies is the read side of the usage store.
type Frecencies interface {
	Frecency(key string) float64
}

// Engine ranks a fixed application snapshot against queries.
type Engine struct {
	apps  []model.Application
	usage Frecencies
}

func NewEngine(apps []model.Application, usage Frecencies) *Engine {
	return &Engine{apps: apps, usage: usage}
}

func (e *Engine) Rank(query string) []model.ScoredResult {
	return Rank(query, e.apps, e.usage)
}

// Rank orders apps for query. An empty query lists the most used apps.
// Rank only reads usage.
func Rank(query string, apps []model.Application, usage Frecencies) []model.ScoredResult {
	if query == "" {
		return recent(apps, usage, RecentLimit)
	}

	names := fieldScores(query, apps, func(a model.Application) string { return a.Name })
	execs := fieldScores(query, apps, func(a model.Application) string { return a.ExecName() })
	descs := fieldScores(query, apps, func(a model.Application) string { return a.Description })
	cats := categoryScores(query, apps)

	var results []model.ScoredResult
	for i, app := range apps {
		base := max(names[i], execs[i], descs[i]/2, cats[i]/3)
		if base == 0 {
			continue
		}

		frec := usage.Frecency(app.Key())
		score := base
		if names[i] == base {
			score += nameBoost
		}
		score += int(math.Min(frec, frecencyCeiling)) / frecencyDamping

		results = append(results, model.ScoredResult{
			App:       app,
			Relevance: score,
			Frecency:  frec,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Relevance != b.Relevance {
			return a.Relevance > b.Relevance
		}
		if a.Frecency != b.Frecency {
			return a.Frecency > b.Frecency
		}
		return a.App.Name < b.App.Name
	})
	return results
}

func recent(apps []model.Application, usage Frecencies, limit int) []model.ScoredResult {
	results := make([]model.ScoredResult, 0, len(apps))
	for _, app := range apps {
		frec := usage.Frecency(app.Key())
		results = append(results, model.ScoredResult{
			App:       app,
			Relevance: int(frec),
			Frecency:  frec,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Frecency != results[j].Frecency {
			return results[i].Frecency > results[j].Frecency
		}
		return results[i].App.Name < results[j].App.Name
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
