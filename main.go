package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fcmrelay/appconfig"
)

// Version is injected via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fcmrelay",
		Short:        "Relay push notifications to Firebase Cloud Messaging",
		SilenceUsage: true,
	}

	serve := newServeCmd()
	root.RunE = serve.RunE
	root.AddCommand(serve, newSendCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// startup loads .env, then the server settings and the logger that depend on them.
func startup() (appconfig.ServerConfig, *zap.Logger, error) {
	envErr := appconfig.LoadDotEnv()
	server := appconfig.LoadServer()
	log, err := newLogger(server)
	if err != nil {
		return server, nil, err
	}
	if envErr != nil {
		log.Info(".env file not loaded, relying on system environment variables", zap.Error(envErr))
	}
	return server, log, nil
}

func newLogger(server appconfig.ServerConfig) (*zap.Logger, error) {
	if server.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
