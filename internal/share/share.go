// Package share builds shareable result URLs and social share links.
package share

import (
	"net/url"
	"strconv"

	"designer-quiz-service/internal/domain"
	"github.com/google/uuid"
)

// NewShareID returns a short opaque id distinguishing shared result views
// from organic ones.
func NewShareID() string {
	return uuid.NewString()[:8]
}

// ResultURL builds the shareable result page URL: the primary type in the
// path, the secondary type and both percentages as query parameters, plus the
// share id.
func ResultURL(baseURL string, result domain.Result, shareID string) string {
	values := url.Values{}
	values.Set("alt", string(result.Secondary))
	values.Set("pp", strconv.Itoa(result.PrimaryPct))
	values.Set("sp", strconv.Itoa(result.SecondaryPct))
	if shareID != "" {
		values.Set("s", shareID)
	}
	return baseURL + "/eredmeny/" + url.PathEscape(string(result.Primary)) + "?" + values.Encode()
}

// Links holds per-platform share URLs for a result page.
type Links struct {
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
}

// ShareLinks builds the social share URLs for a result page URL.
func ShareLinks(resultURL, title string) Links {
	encodedURL := url.QueryEscape(resultURL)
	encodedTitle := url.QueryEscape(title)
	return Links{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + encodedURL,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + encodedURL,
		Twitter:  "https://twitter.com/intent/tweet?url=" + encodedURL + "&text=" + encodedTitle,
	}
}
