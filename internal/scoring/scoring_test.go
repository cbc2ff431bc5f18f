package scoring_test

import (
	"reflect"
	"testing"

	"designer-quiz-service/internal/domain"
	"designer-quiz-service/internal/scoring"
)

func TestScoreWeightedSum(t *testing.T) {
	catalog := testCatalog()

	result := scoring.Score(catalog, map[int]string{0: "a", 1: "b"})

	if result.Total != 7 {
		t.Fatalf("expected total 7, got %d", result.Total)
	}
	if got := result.Scores[domain.CategoryVizionarius]; got.Score != 5 || got.Percentage != 71 {
		t.Fatalf("expected vizionarius 5 points / 71%%, got %+v", got)
	}
	if got := result.Scores[domain.CategoryStratega]; got.Score != 2 || got.Percentage != 29 {
		t.Fatalf("expected stratega 2 points / 29%%, got %+v", got)
	}
	if result.Primary != domain.CategoryVizionarius || result.Secondary != domain.CategoryStratega {
		t.Fatalf("expected vizionarius/stratega ranking, got %s/%s", result.Primary, result.Secondary)
	}
	if result.PrimaryPct != 71 || result.SecondaryPct != 29 {
		t.Fatalf("expected 71/29, got %d/%d", result.PrimaryPct, result.SecondaryPct)
	}
	for _, c := range domain.Categories() {
		if c == domain.CategoryVizionarius || c == domain.CategoryStratega {
			continue
		}
		if got := result.Scores[c]; got.Score != 0 || got.Percentage != 0 {
			t.Fatalf("expected %s to score zero, got %+v", c, got)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	catalog := testCatalog()
	answers := map[int]string{0: "a", 1: "b", 2: "c"}

	first := scoring.Score(catalog, answers)
	second := scoring.Score(catalog, answers)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestScoreEmptyAnswers(t *testing.T) {
	result := scoring.Score(testCatalog(), nil)

	if result.Total != 0 {
		t.Fatalf("expected zero total, got %d", result.Total)
	}
	for c, cs := range result.Scores {
		if cs.Score != 0 || cs.Percentage != 0 {
			t.Fatalf("expected all-zero scorecard, %s got %+v", c, cs)
		}
	}
	// Primary/secondary still exist; the all-zero tie resolves to the first
	// two categories in canonical order.
	if result.Primary != domain.CategoryKameleon || result.Secondary != domain.CategoryKivitelezo {
		t.Fatalf("expected canonical tie-break, got %s/%s", result.Primary, result.Secondary)
	}
}

func TestScoreSkipsUnknownSelections(t *testing.T) {
	catalog := testCatalog()

	result := scoring.Score(catalog, map[int]string{
		0:  "a",
		1:  "zz", // unknown option
		42: "a",  // unknown question
	})
	if result.Total != 3 {
		t.Fatalf("expected only the known pair to count, total %d", result.Total)
	}
}

func TestScoreTieBreakByCanonicalOrder(t *testing.T) {
	catalog := domain.Catalog{
		Version: "test",
		Questions: []domain.Question{
			{
				Index: 0,
				Text:  "Tie question",
				Options: []domain.Option{
					{ID: "a", Text: "Both", Weights: map[domain.Category]int{
						domain.CategoryStratega: 2,
						domain.CategoryHid:      2,
					}},
				},
			},
		},
	}

	result := scoring.Score(catalog, map[int]string{0: "a"})
	if result.Primary != domain.CategoryHid {
		t.Fatalf("expected hid to win the tie by canonical order, got %s", result.Primary)
	}
	if result.Secondary != domain.CategoryStratega {
		t.Fatalf("expected stratega second, got %s", result.Secondary)
	}
}

func TestScorePercentagesSumNearHundred(t *testing.T) {
	catalog := testCatalog()
	result := scoring.Score(catalog, map[int]string{0: "a", 1: "b", 2: "c"})

	sum := 0
	for _, cs := range result.Scores {
		sum += cs.Percentage
	}
	// Independent rounding can drift by one per nonzero category.
	if sum < 98 || sum > 102 {
		t.Fatalf("expected percentage sum near 100, got %d", sum)
	}
}

func testCatalog() domain.Catalog {
	return domain.Catalog{
		Version: "test",
		Questions: []domain.Question{
			{
				Index: 0,
				Text:  "How do you start a project?",
				Options: []domain.Option{
					{ID: "a", Text: "With a bold vision", Weights: map[domain.Category]int{
						domain.CategoryVizionarius: 3,
					}},
					{ID: "b", Text: "With a checklist", Weights: map[domain.Category]int{
						domain.CategoryRendszerepito: 3,
					}},
				},
			},
			{
				Index: 1,
				Text:  "What drives your decisions?",
				Options: []domain.Option{
					{ID: "a", Text: "Gut feeling", Weights: map[domain.Category]int{
						domain.CategoryKiserletezo: 2,
					}},
					{ID: "b", Text: "The long game", Weights: map[domain.Category]int{
						domain.CategoryVizionarius: 2,
						domain.CategoryStratega:    2,
					}},
				},
			},
			{
				Index: 2,
				Text:  "How do you handle feedback?",
				Options: []domain.Option{
					{ID: "c", Text: "Adapt instantly", Weights: map[domain.Category]int{
						domain.CategoryKameleon: 2,
					}},
				},
			},
		},
	}
}
