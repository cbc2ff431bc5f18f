// Package scoring turns a respondent's answer selections into a ranked
// designer-type result.
package scoring

import (
	"math"
	"sort"

	"designer-quiz-service/internal/domain"
)

// Tally accumulates per-category points for the given answers. The map keys
// are question indices, values are option ids. Unknown indices and option ids
// are skipped rather than rejected; callers validate at the boundary.
func Tally(catalog domain.Catalog, answers map[int]string) domain.Scorecard {
	scores := make(domain.Scorecard, len(domain.Categories()))
	for _, c := range domain.Categories() {
		scores[c] = 0
	}

	for questionIdx, optionID := range answers {
		question, ok := catalog.Question(questionIdx)
		if !ok {
			continue
		}
		option, ok := question.Option(optionID)
		if !ok {
			continue
		}
		for category, points := range option.Weights {
			scores[category] += points
		}
	}
	return scores
}

// Score computes the full quiz result: tallies, percentages, and the
// primary/secondary ranking. Pure and deterministic; ties resolve in favor of
// the category appearing earlier in domain.Categories().
func Score(catalog domain.Catalog, answers map[int]string) domain.Result {
	scores := Tally(catalog, answers)
	total := scores.Total()

	ranked := domain.Categories()
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	detailed := make(map[domain.Category]domain.CategoryScore, len(scores))
	for category, score := range scores {
		detailed[category] = domain.CategoryScore{
			Score:      score,
			Percentage: percentage(score, total),
		}
	}

	primary, secondary := ranked[0], ranked[1]
	return domain.Result{
		Primary:       primary,
		PrimaryName:   primary.DisplayName(),
		PrimaryPct:    detailed[primary].Percentage,
		Secondary:     secondary,
		SecondaryName: secondary.DisplayName(),
		SecondaryPct:  detailed[secondary].Percentage,
		Scores:        detailed,
		Total:         total,
	}
}

func percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
