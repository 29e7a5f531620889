package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"season-service/internal/seasontable"
)

// Log is the CLI logger; subcommands share it.
var Log = logrus.New()

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "seasonctl",
	Short: "Inspect and manage sports season schedules.",
	Long: `seasonctl resolves season phases, forecasts future seasons, and edits the
season table used by the season service.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.seasonctl.yaml)")
	rootCmd.PersistentFlags().StringP("seasons-file", "f", "", "season table JSON file (default seasons_config.json)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".seasonctl")
			viper.SetConfigType("yaml")
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("seasons_file", "seasons_config.json")
	viper.SetDefault("webhook_url", "")
	viper.SetDefault("slack_webhook_url", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	setLogLevel(levelString)
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "info":
		Log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		Log.SetLevel(logrus.FatalLevel)
	default:
		Log.Fatal("Bad error level string")
	}
}

// seasonsFilePath resolves the table location from flag, then config/env.
func seasonsFilePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("seasons-file"); path != "" {
		return path
	}
	return viper.GetString("seasons_file")
}

func openTable(cmd *cobra.Command) *seasontable.Table {
	path := seasonsFilePath(cmd)
	Log.Debugf("loading season table from %s", path)
	return seasontable.Open(seasontable.NewFileStore(path), nil)
}
