package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind            string
	completionKey   string
	completionModel string
	completionURL   string
	maxPlayers      int
	port            int
	prefix          string
	profile         bool
	queryTimeout    time.Duration
	roundGrace      time.Duration
	searchURL       string
	tlsCert         string
	tlsKey          string
	verbose         bool
	version         bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxPlayers < 1 {
		return fmt.Errorf("invalid max player count: %d", c.maxPlayers)
	}
	if c.queryTimeout <= 0 {
		return fmt.Errorf("invalid query timeout: %s", c.queryTimeout)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "word-oracle",
		Short:         "A multiplayer guessing game where an AI oracle answers questions about a secret word.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: ORACLE_BIND)")
	fs.StringVar(&cfg.completionKey, "completion-key", "", "bearer token for the completion endpoint, if required (env: ORACLE_COMPLETION_KEY)")
	fs.StringVar(&cfg.completionModel, "completion-model", "llama-3.3-70b-versatile", "model name passed to the completion endpoint (env: ORACLE_COMPLETION_MODEL)")
	fs.StringVar(&cfg.completionURL, "completion-url", "http://localhost:8080/v1/chat/completions", "OpenAI-compatible chat completion endpoint (env: ORACLE_COMPLETION_URL)")
	fs.IntVar(&cfg.maxPlayers, "max-players", 8, "maximum number of simultaneous players (env: ORACLE_MAX_PLAYERS)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: ORACLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: ORACLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: ORACLE_PROFILE)")
	fs.DurationVar(&cfg.queryTimeout, "query-timeout", 30*time.Second, "time before an outstanding oracle query is abandoned (env: ORACLE_QUERY_TIMEOUT)")
	fs.DurationVar(&cfg.roundGrace, "round-grace", 3*time.Second, "delay between a winning guess and the next round (env: ORACLE_ROUND_GRACE)")
	fs.StringVar(&cfg.searchURL, "search-url", "https://api.duckduckgo.com/", "instant-answer search endpoint used to ground oracle answers (env: ORACLE_SEARCH_URL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: ORACLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: ORACLE_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: ORACLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: ORACLE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("word-oracle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
