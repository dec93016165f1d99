package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/view"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	showID int
)

// episodesCmd lists the episodes of a show
var episodesCmd = &cobra.Command{
	Use:   "episodes",
	Short: "list episodes of a show",
	Long:  `list episodes of a show`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("failed to load configuration", zap.Error(err))
		}

		catalog, err := newCatalog(cfg.TVMaze)
		if err != nil {
			log.Fatalw("failed to create tvmaze client", zap.Error(err))
		}

		episodes, err := catalog.FetchEpisodes(ctx, showID)
		if err != nil {
			log.Fatalw("failed to fetch episodes", zap.Error(err), zap.Int("show_id", showID))
		}

		out := cmd.OutOrStdout()
		for _, e := range episodes {
			fmt.Fprintln(out, view.EpisodeLine(e))
		}
		fmt.Fprintf(out, "%s episodes\n", humanize.Comma(int64(len(episodes))))
	},
}

func init() {
	episodesCmd.Flags().IntVarP(&showID, "id", "i", 0, "tvmaze show id")
	episodesCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(episodesCmd)
}
