package main

import (
	"time"

	"github.com/spf13/cobra"

	client "github.com/linguahq/lingua-client"
)

type cliOptions struct {
	authKey     string
	serverURL   string
	timeout     time.Duration
	waitTimeout time.Duration
	logLevel    string
	session     string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "lingua",
		Short:         "Lingua translation API CLI helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.authKey, "auth-key", "", "API auth key (or set LINGUA_AUTH_KEY)")
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server-url", "", "Base URL for the translation API (or set LINGUA_SERVER_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "HTTP timeout for API requests")
	cmd.PersistentFlags().DurationVar(&opts.waitTimeout, "wait-timeout", client.DocumentWaitTimeout, "Maximum wait for one document translation")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace|debug|info|warn|error (or set LINGUA_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&opts.session, "session-header", "", "Optional session correlation header value sent with every request")

	cmd.AddCommand(newDocumentCmd(opts))
	cmd.AddCommand(newTextCmd(opts))
	cmd.AddCommand(newUsageCmd(opts))
	cmd.AddCommand(newLanguagesCmd(opts))
	cmd.AddCommand(newGlossaryCmd(opts))

	return cmd
}
