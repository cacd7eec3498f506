package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	domainInput string
	configDir   string
	quiet       bool
	rawOutput   bool
	asJSON      bool
	concurrency int
	rateLimit   int

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "validpoint",
	Short: "Check the health of a domain and the website behind it",
	Long: `validpoint runs connectivity, DNS, website and domain-registration
checks against one or more domains and reports what, if anything, the site
owner should do about the findings.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".validpoint")
			viper.SetConfigType("yaml")
		}
		_ = viper.ReadInConfig()

		if !cmd.Flags().Changed("concurrency") {
			if v := viper.GetInt("concurrency"); v > 0 {
				concurrency = v
			}
		}
		if !cmd.Flags().Changed("rate-limit") {
			if v := viper.GetInt("rate_limit"); v > 0 {
				rateLimit = v
			}
		}
		if configDir == "" {
			configDir = viper.GetString("config_dir")
		}

		// init logger
		var (
			l   *zap.Logger
			err error
		)
		if quiet {
			l = zap.NewNop()
		} else {
			l, err = zap.NewProduction()
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Accept underscore flag spellings for anything configured in snake_case.
	rootCmd.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.validpoint.yaml)")
	rootCmd.PersistentFlags().StringVarP(&domainInput, "domain", "d", "", "domain to test, or a comma-separated list")
	rootCmd.PersistentFlags().StringVarP(&configDir, "config-dir", "f", "", "directory holding per-domain <domain>.json overrides")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&rawOutput, "raw", "r", false, "keep per-check results in the report")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print reports as JSON")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 4, "maximum domains tested at once")
	rootCmd.PersistentFlags().IntVar(&rateLimit, "rate-limit", 4, "domains started per second")

	addCheckCommands(rootCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
