package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnoccur/internal/iofs"
	"github.com/gnames/gnoccur/internal/iologger"
	"github.com/gnames/gnoccur/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gnoccur",
		Short: "GNoccur resolves taxon names and retrieves occurrences",
		Long: `GNoccur is a client for a GBIF-style biodiversity web service.
It resolves free-text taxon names against the backbone taxonomy,
searches and counts species occurrence records, and manages
asynchronous bulk download jobs with citable DOIs.

Typical session:
  gnoccur suggest "Puma"
  gnoccur lookup "Puma concolor" --rank SPECIES
  gnoccur count --taxon-key 2435099 --country US
  gnoccur search --taxon-key 2435099 --limit 50
  gnoccur download submit --taxon-key 2435099
  gnoccur download fetch <key>

Configuration precedence (highest to lowest):
  1. Environment variables (GNOCCUR_*)
  2. Config file (~/.config/gnoccur/config.yaml)
  3. Built-in defaults

Environment Variables:
  Nested fields use underscores (api.base_url → GNOCCUR_API_BASE_URL).

    GNOCCUR_API_BASE_URL       Root URL of the web service
    GNOCCUR_DOWNLOAD_USER      Account for bulk downloads
    GNOCCUR_DOWNLOAD_PASSWORD  Account secret
    GNOCCUR_DOWNLOAD_EMAIL     Notification address
    GNOCCUR_LOG_LEVEL          Log level (debug/info/warn/error)
    GNOCCUR_JOBS_NUMBER        Concurrent search workers`,
		Version:           Version,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnoccur version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnoccur")

	rootCmd.AddCommand(getSuggestCmd())
	rootCmd.AddCommand(getLookupCmd())
	rootCmd.AddCommand(getCountCmd())
	rootCmd.AddCommand(getSearchCmd())
	rootCmd.AddCommand(getDownloadCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are
	// allowed. These match the fields included in config.ToOptions().
	v.SetEnvPrefix("GNOCCUR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Web service configuration
	v.BindEnv("api.base_url", "API_BASE_URL")
	v.BindEnv("api.timeout", "API_TIMEOUT")
	v.BindEnv("api.cache_ttl", "API_CACHE_TTL")
	v.BindEnv("api.user_agent", "API_USER_AGENT")

	// Download credentials
	v.BindEnv("download.user", "DOWNLOAD_USER")
	v.BindEnv("download.password", "DOWNLOAD_PASSWORD")
	v.BindEnv("download.email", "DOWNLOAD_EMAIL")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}

// printJSON writes v to stdout as formatted JSON.
func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
