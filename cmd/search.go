package cmd

import (
	"context"
	"fmt"

	"github.com/kasuboski/showfinder/pkg/app"
	"github.com/kasuboski/showfinder/pkg/logger"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// searchCmd searches tvmaze for shows matching a keyword
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "search for shows",
	Long:  `search for shows`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()
		ctx := logger.WithCtx(context.Background(), log)

		query := app.NormalizeQuery(args[0])
		if query == "" {
			log.Fatal("query must not be empty")
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("failed to load configuration", zap.Error(err))
		}

		catalog, err := newCatalog(cfg.TVMaze)
		if err != nil {
			log.Fatalw("failed to create tvmaze client", zap.Error(err))
		}

		shows, err := catalog.SearchShows(ctx, query)
		if err != nil {
			log.Fatalw("failed to search shows", zap.Error(err))
		}

		out := cmd.OutOrStdout()
		for _, s := range shows {
			fmt.Fprintf(out, "%d\t%s\n", s.ID, s.Name)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
