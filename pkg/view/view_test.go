package view

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/kasuboski/showfinder/pkg/dom"
	"github.com/kasuboski/showfinder/pkg/tvmaze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><body>
<div id="shows-list" class="row"></div>
<section id="episodes-area" hidden><ul id="episodes-list"></ul></section>
</body></html>`

func ptr[T any](v T) *T {
	return &v
}

func regions(t *testing.T) (*dom.Document, *dom.Region, *dom.Region) {
	t.Helper()
	doc, err := dom.Parse(strings.NewReader(page))
	require.NoError(t, err)
	shows, err := doc.Region("shows-list")
	require.NoError(t, err)
	episodes, err := doc.Region("episodes-list")
	require.NoError(t, err)
	return doc, shows, episodes
}

func noop(int) dom.Handler {
	return func(context.Context) error { return nil }
}

func TestRenderShowList(t *testing.T) {
	t.Run("card with image", func(t *testing.T) {
		_, region, _ := regions(t)

		RenderShowList(region, []tvmaze.ShowSummary{
			{ID: 1, Name: "Batman", Summary: "<p>desc</p>", Image: ptr("http://x/img.png")},
		}, noop)

		cards := region.Find(".Show")
		require.Equal(t, 1, cards.Length())
		id, _ := cards.Attr("data-show-id")
		assert.Equal(t, "1", id)

		assert.Equal(t, "Batman", region.Find(".card-title").Text())
		assert.Equal(t, "desc", region.Find(".card-text > p").Text())

		src, ok := region.Find("img.card-img-top").Attr("src")
		assert.True(t, ok)
		assert.Equal(t, "http://x/img.png", src)

		button := region.Find("button.show-episodes.btn.btn-primary")
		require.Equal(t, 1, button.Length())
		assert.Equal(t, EpisodesLabel, button.Text())
		buttonID, _ := button.Attr("id")
		assert.Equal(t, "1", buttonID)
		_, bound := button.Attr(dom.ClickAttr)
		assert.True(t, bound)
	})

	t.Run("card without image has no img element", func(t *testing.T) {
		_, region, _ := regions(t)

		RenderShowList(region, []tvmaze.ShowSummary{
			{ID: 2, Name: "No Poster", Summary: "<p>none</p>"},
		}, noop)

		assert.Equal(t, 1, region.Find(".card").Length())
		assert.Equal(t, 0, region.Find("img").Length())
	})

	t.Run("order and duplicates preserved", func(t *testing.T) {
		_, region, _ := regions(t)

		RenderShowList(region, []tvmaze.ShowSummary{
			{ID: 3, Name: "C"},
			{ID: 1, Name: "A"},
			{ID: 3, Name: "C"},
		}, noop)

		var names []string
		region.Find(".card-title").Each(func(_ int, s *goquery.Selection) {
			names = append(names, s.Text())
		})
		assert.Equal(t, []string{"C", "A", "C"}, names)
	})

	t.Run("rendering twice replaces content", func(t *testing.T) {
		doc, region, _ := regions(t)
		shows := []tvmaze.ShowSummary{
			{ID: 1, Name: "Batman", Summary: "<p>desc</p>", Image: ptr("http://x/img.png")},
			{ID: 2, Name: "Robin"},
		}

		RenderShowList(region, shows, noop)
		once, err := region.HTML()
		require.NoError(t, err)

		RenderShowList(region, shows, noop)
		twice, err := region.HTML()
		require.NoError(t, err)

		assert.Equal(t, 2, region.Find(".Show").Length())
		assert.Equal(t, 2, doc.Handlers())
		// handles are regenerated per render so compare without them
		strip := func(s string) string {
			d, err := goquery.NewDocumentFromReader(strings.NewReader(s))
			require.NoError(t, err)
			d.Find("[" + dom.ClickAttr + "]").RemoveAttr(dom.ClickAttr)
			out, err := d.Find("body").Html()
			require.NoError(t, err)
			return out
		}
		assert.Equal(t, strip(once), strip(twice))
	})

	t.Run("each button captures its own show id", func(t *testing.T) {
		doc, region, _ := regions(t)

		var clicked []int
		onEpisodes := func(showID int) dom.Handler {
			return func(context.Context) error {
				clicked = append(clicked, showID)
				return nil
			}
		}

		RenderShowList(region, []tvmaze.ShowSummary{{ID: 7}, {ID: 8}}, onEpisodes)

		var handles []string
		region.Find("button").Each(func(_ int, s *goquery.Selection) {
			h, _ := s.Attr(dom.ClickAttr)
			handles = append(handles, h)
		})
		require.Len(t, handles, 2)

		ctx := context.Background()
		require.NoError(t, doc.Dispatch(ctx, handles[1]))
		require.NoError(t, doc.Dispatch(ctx, handles[0]))
		assert.Equal(t, []int{8, 7}, clicked)
	})

	t.Run("empty result clears the list", func(t *testing.T) {
		_, region, _ := regions(t)
		RenderShowList(region, []tvmaze.ShowSummary{{ID: 1}}, noop)
		RenderShowList(region, nil, noop)

		got, err := region.HTML()
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRenderEpisodeList(t *testing.T) {
	_, _, region := regions(t)

	RenderEpisodeList(region, []tvmaze.EpisodeSummary{{ID: 99, Name: "Old", Season: 9, Number: 9}})
	RenderEpisodeList(region, []tvmaze.EpisodeSummary{
		{ID: 10, Name: "Pilot", Season: 1, Number: 1},
		{ID: 11, Name: "Two & Three", Season: 1, Number: 2},
	})

	got, err := region.HTML()
	require.NoError(t, err)
	assert.Equal(t, "<li>Pilot (season 1, number 1)</li><li>Two &amp; Three (season 1, number 2)</li>", got)
}

func TestEpisodeLine(t *testing.T) {
	assert.Equal(t, "Pilot (season 1, number 1)", EpisodeLine(tvmaze.EpisodeSummary{Name: "Pilot", Season: 1, Number: 1}))
}
