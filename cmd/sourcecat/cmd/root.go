// Package cmd implements the sourcecat command line interface.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/astrokit/sourcecat/pkg/logging"
)

var (
	configFile string
	verbose    bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sourcecat",
	Short: "Astronomical source catalog consolidation",
	Long: `Sourcecat merges source catalogs extracted independently from multiple
observations into one consolidated catalog, resolving duplicate detections
of the same physical source by greedy nearest-neighbor matching.

Matched sources have their centers averaged, their footprint ellipses
replaced by the smallest common enclosing ellipse, and missing fields
filled from the matched partner. Rejected sources pass through unchanged.`,
	PersistentPreRun: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.sourcecat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "report match progress to the console")

	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sourcecat")
	}

	// Load .env files before Viper env binding
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SOURCECAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// A missing config file is fine; defaults apply
	_ = viper.ReadInConfig()
}

func setupLogging(cmd *cobra.Command, args []string) {
	if viper.GetBool("verbose") {
		logging.SetDefault(logging.NewConsole().Level(zerolog.DebugLevel))
	}
}
