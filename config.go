/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/presidle/games/presidents"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	attempts       int
	bind           string
	classic        bool
	dataURL        string
	failureDelay   time.Duration
	fetchTimeout   time.Duration
	port           int
	prefix         string
	profile        bool
	seed           uint64
	sessionTimeout time.Duration
	successDelay   time.Duration
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.attempts < 1 {
		return fmt.Errorf("invalid attempts (must be at least 1): %d", c.attempts)
	}
	if c.successDelay <= 0 || c.failureDelay <= 0 {
		return errors.New("--success-delay and --failure-delay must be positive")
	}
	if c.fetchTimeout <= 0 {
		return fmt.Errorf("invalid fetch timeout (must be positive): %s", c.fetchTimeout)
	}

	u, err := url.Parse(c.dataURL)
	if err != nil {
		return fmt.Errorf("invalid data url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid data url (must be an absolute http or https url): %q", c.dataURL)
	}

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) gameOptions() presidents.Options {
	opts := presidents.Options{
		Attempts:     c.attempts,
		SuccessDelay: c.successDelay,
		FailureDelay: c.failureDelay,
		Variant:      presidents.VariantBonus,
	}
	if c.classic {
		opts.Variant = presidents.VariantClassic
	}
	return opts
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PRESIDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "presidle",
		Short:         "Guess the president from their portrait, then answer bonus questions about their term.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVar(&cfg.attempts, "attempts", presidents.DefaultAttempts, "name guesses allowed per round (env: PRESIDLE_ATTEMPTS)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: PRESIDLE_BIND)")
	fs.BoolVar(&cfg.classic, "classic", false, "name-only game, without bonus questions (env: PRESIDLE_CLASSIC)")
	fs.StringVar(&cfg.dataURL, "data-url", presidents.DefaultURL, "url returning the list of presidents as json (env: PRESIDLE_DATA_URL)")
	fs.DurationVar(&cfg.failureDelay, "failure-delay", presidents.DefaultFailureDelay, "time before a new round starts after a loss (env: PRESIDLE_FAILURE_DELAY)")
	fs.DurationVar(&cfg.fetchTimeout, "fetch-timeout", 10*time.Second, "timeout for loading president data at startup (env: PRESIDLE_FETCH_TIMEOUT)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: PRESIDLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: PRESIDLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: PRESIDLE_PROFILE)")
	fs.Uint64Var(&cfg.seed, "seed", 0, "fixed seed for record selection and shuffling, 0 for random (env: PRESIDLE_SEED)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 60*time.Minute, "time before idle game sessions are ended (env: PRESIDLE_SESSION_TIMEOUT)")
	fs.DurationVar(&cfg.successDelay, "success-delay", presidents.DefaultSuccessDelay, "time before a new round starts after a win (env: PRESIDLE_SUCCESS_DELAY)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: PRESIDLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: PRESIDLE_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: PRESIDLE_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: PRESIDLE_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("presidle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
