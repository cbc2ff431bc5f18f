package domain

import (
	"strings"
	"time"
)

// Category identifies one of the eight designer types a respondent can score into.
type Category string

const (
	CategoryKameleon      Category = "kameleon"
	CategoryKivitelezo    Category = "kivitelezo"
	CategoryVizionarius   Category = "vizionarius"
	CategoryRendszerepito Category = "rendszerepito"
	CategoryKulturakutato Category = "kulturakutato"
	CategoryHid           Category = "hid"
	CategoryKiserletezo   Category = "kiserletezo"
	CategoryStratega      Category = "stratega"
)

// Categories returns all categories in canonical order. Ranking ties are
// broken by this order: the category listed first wins.
func Categories() []Category {
	return []Category{
		CategoryKameleon,
		CategoryKivitelezo,
		CategoryVizionarius,
		CategoryRendszerepito,
		CategoryKulturakutato,
		CategoryHid,
		CategoryKiserletezo,
		CategoryStratega,
	}
}

type categoryInfo struct {
	name  string
	emoji string
}

var categoryInfos = map[Category]categoryInfo{
	CategoryKameleon:      {"Kaméleon", "🦎"},
	CategoryKivitelezo:    {"Kivitelező sztár", "⚡"},
	CategoryVizionarius:   {"Vízionárius", "🚀"},
	CategoryRendszerepito: {"Rendszerépítő", "🔧"},
	CategoryKulturakutato: {"Kultúrakutató", "🔍"},
	CategoryHid:           {"Híd", "🌉"},
	CategoryKiserletezo:   {"Kísérletező", "🧪"},
	CategoryStratega:      {"Stratéga", "🎯"},
}

// DisplayName returns the human-readable name for the category.
func (c Category) DisplayName() string {
	if info, ok := categoryInfos[c]; ok {
		return info.name
	}
	return string(c)
}

// Emoji returns the emoji associated with the category.
func (c Category) Emoji() string {
	if info, ok := categoryInfos[c]; ok {
		return info.emoji
	}
	return "❓"
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	_, ok := categoryInfos[c]
	return ok
}

// Status captures the submission lifecycle.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAnonymous  Status = "anonymous"
	StatusAbandoned  Status = "abandoned"
)

// IsTerminal reports whether the submission can no longer be resumed into.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusAnonymous || s == StatusAbandoned
}

// Device is the coarse device class of the respondent.
type Device string

const (
	DeviceMobile  Device = "mobile"
	DeviceDesktop Device = "desktop"
)

// ClassifyDevice maps a User-Agent string to a device class.
func ClassifyDevice(userAgent string) Device {
	ua := strings.ToLower(userAgent)
	for _, marker := range []string{"iphone", "ipad", "ipod", "android"} {
		if strings.Contains(ua, marker) {
			return DeviceMobile
		}
	}
	return DeviceDesktop
}

// Option is one selectable answer for a question. Weights maps categories to
// positive point values; categories not listed contribute zero.
type Option struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Weights map[Category]int `json:"weights"`
}

// Question is a single quiz question with its ordered options.
type Question struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []Option `json:"options"`
}

// Catalog is a versioned set of quiz questions.
type Catalog struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

// Question returns the question at the given index, if it exists.
func (c Catalog) Question(index int) (Question, bool) {
	for i := range c.Questions {
		if c.Questions[i].Index == index {
			return c.Questions[i], true
		}
	}
	return Question{}, false
}

// Len returns the number of questions in the catalog.
func (c Catalog) Len() int {
	return len(c.Questions)
}

// Option resolves an option id within a question.
func (q Question) Option(optionID string) (Option, bool) {
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return q.Options[i], true
		}
	}
	return Option{}, false
}

// Scorecard holds the accumulated points per category.
type Scorecard map[Category]int

// Total sums the points across all categories.
func (s Scorecard) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// CategoryScore pairs a raw score with its derived percentage.
type CategoryScore struct {
	Score      int `json:"score"`
	Percentage int `json:"percentage"`
}

// Result is the computed outcome of a completed quiz.
type Result struct {
	Primary       Category                   `json:"primary"`
	PrimaryName   string                     `json:"primaryName"`
	PrimaryPct    int                        `json:"primaryPct"`
	Secondary     Category                   `json:"secondary"`
	SecondaryName string                     `json:"secondaryName"`
	SecondaryPct  int                        `json:"secondaryPct"`
	Scores        map[Category]CategoryScore `json:"scores"`
	Total         int                        `json:"total"`
}

// Submission is one respondent's quiz attempt. Records are append-only;
// abandoned attempts are never transitioned explicitly, they are inferred by
// analytics from the absence of a terminal status.
type Submission struct {
	ID                   string                     `json:"id"`
	CreatedAt            time.Time                  `json:"createdAt"`
	UpdatedAt            time.Time                  `json:"updatedAt"`
	Email                *string                    `json:"email"`
	Status               Status                     `json:"status"`
	Device               Device                     `json:"device"`
	LastQuestionAnswered int                        `json:"lastQuestionAnswered"`
	PrimaryType          *Category                  `json:"primaryType"`
	PrimaryTypeName      *string                    `json:"primaryTypeName"`
	PrimaryPercentage    *int                       `json:"primaryPercentage"`
	SecondaryType        *Category                  `json:"secondaryType"`
	SecondaryTypeName    *string                    `json:"secondaryTypeName"`
	SecondaryPercentage  *int                       `json:"secondaryPercentage"`
	AllScores            map[Category]CategoryScore `json:"allScores"`
}

// Answer is the recorded choice for one (submission, question) pair. Question
// and answer text are denormalized so later content edits do not rewrite
// history. At most one answer exists per pair.
type Answer struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"createdAt"`
	SubmissionID  string    `json:"submissionId"`
	QuestionIndex int       `json:"questionIndex"`
	OptionID      string    `json:"optionId"`
	QuestionText  string    `json:"questionText"`
	AnswerText    string    `json:"answerText"`
}

// SubmissionWithAnswers joins a submission with its answers ordered by
// question index.
type SubmissionWithAnswers struct {
	Submission
	Answers []Answer `json:"answers"`
}

// SubmissionFilter narrows submission listings. Zero values mean "all".
type SubmissionFilter struct {
	Status      Status
	Device      Device
	PrimaryType Category
}
