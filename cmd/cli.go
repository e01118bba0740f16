package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mzigoego/mzigo/auth"
	"github.com/mzigoego/mzigo/client"
	"github.com/mzigoego/mzigo/config"
	"github.com/mzigoego/mzigo/db"
)

// app bundles the wired-up collaborators the commands work against.
type app struct {
	cfg     config.Config
	store   db.TokenStore
	client  *client.Client
	service *auth.Service
}

func Execute() {
	cfg := config.Load()
	cfg.Validate()

	initializeStorage(cfg)
	defer closeStorage()

	a := newApp(cfg)
	rootCmd := createRootCmd(a)

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		os.Exit(1)
	}
}

func newApp(cfg config.Config) *app {
	store := db.NewTokenStore(db.Db, cfg.StoragePrefix, cfg.AccessTokenKey, cfg.RefreshTokenKey)
	api := client.New(cfg.BaseURL, store, client.WithTimeout(cfg.Timeout))
	service := auth.NewService(api)

	// The session-expired signal is the client's escalation channel; the
	// navigation layer (here: the terminal) subscribes and tells the user
	// where to go.
	api.OnSessionExpired(func() {
		service.SessionExpired()
		fmt.Fprintln(os.Stderr, "Session expired. Please run 'mzigo login' to sign in again.")
	})

	return &app{cfg: cfg, store: store, client: api, service: service}
}

func createRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mzigo",
		Short: "A client for the MzigoEgo delivery service",
	}

	rootCmd.AddCommand(
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		authCmd(a),
		profileCmd(a),
		passwordCmd(a),
		deliveriesCmd(a),
		notificationsCmd(a),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

func initializeStorage(cfg config.Config) {
	if err := db.InitDB(cfg.StoragePath); err != nil {
		log.Error().Err(err).Msg("Failed to initialize local storage")
		os.Exit(1)
	}
}

func closeStorage() {
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close local storage.")
		os.Exit(1)
	}
}
