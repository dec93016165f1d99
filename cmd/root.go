package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kasuboski/showfinder/pkg/tvmaze"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "showfinder",
	Short: "showfinder cli",
	Long:  `search TVMaze for shows and browse their episodes`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

const (
	defaultTimeout = time.Second * 10
	defaultBackoff = time.Millisecond * 500
)

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("SHOWFINDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("tvmaze.uri", tvmaze.DefaultURI)
	viper.SetDefault("tvmaze.userAgent", "showfinder")
	viper.SetDefault("tvmaze.timeout", defaultTimeout)
	viper.SetDefault("tvmaze.backoff", defaultBackoff)
	viper.SetDefault("tvmaze.maxRetries", 1)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("session.latestWins", true)

	viper.SetDefault("sentry.dsn", "")
	viper.SetDefault("sentry.environment", "")
}
