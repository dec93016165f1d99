// Package view renders catalog results into document regions.
package view

import (
	"fmt"
	"strconv"

	"github.com/kasuboski/showfinder/pkg/dom"
	"github.com/kasuboski/showfinder/pkg/tvmaze"
)

// EpisodesLabel is the text of the button on every show card
const EpisodesLabel = "Episodes"

// RenderShowList replaces the contents of region with one card per show.
// onEpisodes is called once per card with that card's show id and its result is
// bound to the card's Episodes button.
func RenderShowList(region *dom.Region, shows []tvmaze.ShowSummary, onEpisodes func(showID int) dom.Handler) {
	region.Empty()

	for _, show := range shows {
		region.Append(showCard(region, show, onEpisodes(show.ID)))
	}
}

func showCard(region *dom.Region, show tvmaze.ShowSummary, onEpisodes dom.Handler) *dom.Element {
	id := strconv.Itoa(show.ID)

	body := dom.NewElement("div").AddClass("card-body")
	body.Append(
		dom.NewElement("h5").AddClass("card-title").SetText(show.Name),
		dom.NewElement("div").AddClass("card-text").SetHTML(show.Summary),
	)

	if show.Image != nil {
		body.Append(dom.NewElement("img").AddClass("card-img-top").SetAttr("src", *show.Image))
	}

	button := dom.NewElement("button").
		SetAttr("type", "button").
		SetAttr("id", id).
		AddClass("show-episodes", "btn", "btn-primary").
		SetText(EpisodesLabel)
	region.Bind(button, onEpisodes)
	body.Append(button)

	card := dom.NewElement("div").AddClass("card").SetAttr("data-show-id", id).Append(body)
	return dom.NewElement("div").AddClass("col-md-6", "col-lg-3", "Show").SetAttr("data-show-id", id).Append(card)
}

// RenderEpisodeList replaces the contents of region with one entry per episode
func RenderEpisodeList(region *dom.Region, episodes []tvmaze.EpisodeSummary) {
	region.Empty()

	for _, e := range episodes {
		region.Append(dom.NewElement("li").SetText(EpisodeLine(e)))
	}
}

// EpisodeLine formats an episode the way the episode list shows it
func EpisodeLine(e tvmaze.EpisodeSummary) string {
	return fmt.Sprintf("%s (season %d, number %d)", e.Name, e.Season, e.Number)
}
