package tvmaze

import (
	"github.com/oapi-codegen/nullable"
)

// ShowSummary is the view model for one search hit
type ShowSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	// Image is the medium poster URL, nil when the catalog has none
	Image *string `json:"image,omitempty"`
}

// EpisodeSummary is the view model for one episode of a show
type EpisodeSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

type searchResult struct {
	Score float64 `json:"score"`
	Show  show    `json:"show"`
}

type show struct {
	ID      int                      `json:"id"`
	Name    string                   `json:"name"`
	Summary *string                  `json:"summary"`
	Image   nullable.Nullable[image] `json:"image"`
}

type image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type episode struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

func (s show) summary() ShowSummary {
	out := ShowSummary{
		ID:   s.ID,
		Name: s.Name,
	}

	if s.Summary != nil {
		out.Summary = *s.Summary
	}

	if s.Image.IsSpecified() && !s.Image.IsNull() {
		img, err := s.Image.Get()
		if err == nil && img.Medium != "" {
			medium := img.Medium
			out.Image = &medium
		}
	}

	return out
}

func (e episode) summary() EpisodeSummary {
	return EpisodeSummary(e)
}
