package cmd

import (
	"errors"
	"fmt"
	"net/http"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pombredanne/aur2/config"
	"github.com/pombredanne/aur2/internal/aur"
	"github.com/pombredanne/aur2/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose || cfg.Verbose {
			logger.SetLevel(logger.DebugLevel)
		}

		store, err := aur.LoadSeed(cfg.SeedFile)
		if err != nil {
			return err
		}

		site := web.NewSite(store, cfg.Title)
		handlers := web.NewHandlers(site, logger.StandardLogger())

		logger.Infof("Listening on %s", cfg.Listen)
		err = http.ListenAndServe(cfg.Listen, handlers.Router())
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
