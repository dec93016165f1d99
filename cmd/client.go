package cmd

import (
	"fmt"
	"net/http"

	"github.com/kasuboski/showfinder/config"
	mhttp "github.com/kasuboski/showfinder/pkg/http"
	"github.com/kasuboski/showfinder/pkg/tvmaze"
	"github.com/spf13/viper"
)

// loadConfig reads and validates the configuration
func loadConfig() (config.Config, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, fmt.Errorf("failed to read configurations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func newCatalog(cfg config.TVMaze) (*tvmaze.Client, error) {
	base := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: mhttp.NewCompressionTransport(http.DefaultTransport),
	}

	httpClient := mhttp.NewRateLimitedClient(
		mhttp.WithHTTPClient(base),
		mhttp.WithMaxRetries(cfg.MaxRetries),
		mhttp.WithBaseBackoff(cfg.BaseBackoff),
		mhttp.WithUserAgent(cfg.UserAgent),
	)

	return tvmaze.New(cfg.URI, tvmaze.WithHTTPClient(httpClient))
}
