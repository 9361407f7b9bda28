/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Seednode/amongus/internal/assign"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix   = "AMONGUS"
	defaultRoom = "englishclub"
)

type Config struct {
	bind        string
	defaultRoom string
	port        int
	prefix      string
	profile     bool
	stateFile   string
	tlsCert     string
	tlsKey      string
	verbose     bool
	version     bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	c.defaultRoom = assign.Normalize(c.defaultRoom)
	if c.defaultRoom == "" {
		return errors.New("--default-room must not be blank")
	}
	c.prefix = strings.TrimSuffix(c.prefix, "/")
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// room returns the normalized room from a request value, or the default.
func (c *Config) room(s string) string {
	if room := assign.Normalize(s); room != "" {
		return room
	}
	return c.defaultRoom
}

// loadEnvFile reads AMONGUS_ENV_FILE, or ./.env when present, into the
// environment without overriding variables that are already set.
func loadEnvFile() error {
	if path := os.Getenv(envPrefix + "_ENV_FILE"); path != "" {
		return godotenv.Load(path)
	}

	if _, err := os.Stat(".env"); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return godotenv.Load()
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "amongus-state.json"
	}
	return filepath.Join(dir, "amongus", "state.json")
}

// bindFlags lets every flag in fs be set from AMONGUS_<FLAG_NAME>.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "amongus",
		Short:         "Deals secret roles and themed words for the Among Us word game.",
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
	pfs := cmd.PersistentFlags()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: AMONGUS_BIND)")
	pfs.StringVar(&cfg.defaultRoom, "default-room", defaultRoom, "room used when a link names none (env: AMONGUS_DEFAULT_ROOM)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: AMONGUS_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: AMONGUS_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: AMONGUS_PROFILE)")
	pfs.StringVar(&cfg.stateFile, "state-file", defaultStateFile(), "device state used by the player command (env: AMONGUS_STATE_FILE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: AMONGUS_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: AMONGUS_TLS_KEY)")
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: AMONGUS_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: AMONGUS_VERSION)")

	bindFlags(v, fs)
	bindFlags(v, pfs)

	cmd.AddCommand(
		newAssignCmd(cfg, v),
		newLinkCmd(cfg, v),
		newPlayerCmd(cfg, v),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("amongus v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
