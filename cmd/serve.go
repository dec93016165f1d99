package cmd

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kasuboski/showfinder/pkg/logger"
	"github.com/kasuboski/showfinder/pkg/report"
	"github.com/kasuboski/showfinder/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

const flushTimeout = time.Second * 2

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the show finder server",
	Long:  `start the show finder server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("failed to load configuration", zap.Error(err))
		}

		catalog, err := newCatalog(cfg.TVMaze)
		if err != nil {
			log.Fatalw("failed to create tvmaze client", zap.Error(err))
		}

		var reporter report.Reporter = report.Log{}
		if cfg.Sentry.DSN != "" {
			s, err := report.NewSentry(sentry.ClientOptions{
				Dsn:         cfg.Sentry.DSN,
				Environment: cfg.Sentry.Environment,
			})
			if err != nil {
				log.Fatalw("failed to create sentry reporter", zap.Error(err))
			}
			defer s.Flush(flushTimeout)
			reporter = report.Multi{report.Log{}, s}
		}

		srv := server.New(log, catalog,
			server.WithLatestWins(cfg.Session.LatestWins),
			server.WithReporter(reporter),
		)
		if err := srv.Serve(cfg.Server.Port); err != nil {
			log.Errorw("server shutdown failed", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
