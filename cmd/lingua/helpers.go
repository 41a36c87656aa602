package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	client "github.com/linguahq/lingua-client"
)

const sessionHeader = "x-lingua-session"

type envConfig struct {
	AuthKey   string `envconfig:"AUTH_KEY"`
	ServerURL string `envconfig:"SERVER_URL"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// loadEnv merges a .env file (when present) with LINGUA_* environment
// variables.
func loadEnv() (*envConfig, error) {
	_ = godotenv.Load()

	var cfg envConfig
	if err := envconfig.Process("lingua", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger(), nil
}

// buildClient resolves configuration from flags and environment and
// constructs the API client. Every invocation carries a session
// correlation header so server-side logs can be tied to one run.
func buildClient(opts *cliOptions) (client.Client, zerolog.Logger, error) {
	env, err := loadEnv()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	authKey := opts.authKey
	if authKey == "" {
		authKey = env.AuthKey
	}
	if authKey == "" {
		return nil, zerolog.Nop(), errors.New("auth key is required (flag --auth-key or LINGUA_AUTH_KEY)")
	}

	level := opts.logLevel
	if level == "" {
		level = env.LogLevel
	}
	logger, err := newLogger(level)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	session := opts.session
	if session == "" {
		session = uuid.NewString()
	}

	options := []client.Option{
		client.WithTimeout(opts.timeout),
		client.WithDocumentWaitTimeout(opts.waitTimeout),
		client.WithLogger(logger),
		client.WithHeader(sessionHeader, session),
	}

	serverURL := opts.serverURL
	if serverURL == "" {
		serverURL = env.ServerURL
	}
	if serverURL != "" {
		options = append(options, client.WithServerURL(serverURL))
	}

	return client.NewClient(authKey, options...), logger, nil
}

func printJSON(out io.Writer, data any) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = fmt.Fprintln(out, string(content))
	return err
}

func parseFormality(value string) (client.Formality, error) {
	switch strings.ToLower(value) {
	case "", string(client.FormalityDefault):
		return client.FormalityDefault, nil
	case string(client.FormalityMore):
		return client.FormalityMore, nil
	case string(client.FormalityLess):
		return client.FormalityLess, nil
	case string(client.FormalityPreferMore):
		return client.FormalityPreferMore, nil
	case string(client.FormalityPreferLess):
		return client.FormalityPreferLess, nil
	default:
		return "", fmt.Errorf("unsupported formality: %s", value)
	}
}
