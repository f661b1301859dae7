package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alex-pricope/roomvote/config"
	"github.com/alex-pricope/roomvote/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "roomvote",
	Short: "Vote on restaurants with your group from the terminal",
	Long: `roomvote joins a group restaurant vote, walks you through the candidates
one at a time, and keeps an eye on who else is done until the host ends
the vote.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// conf is filled in by loadConfig before any subcommand runs.
var conf *config.Config

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/roomvote/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "session service base URL")
	rootCmd.PersistentFlags().String("user", "", "your account id, used to recognise the room host")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("server.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("user.id", rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(voteCmd, joinCmd, statusCmd, endCmd)
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.Dir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ROOMVOTE")
	// ROOMVOTE_SERVER_BASE_URL for server.base_url
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Debugf("no config file loaded: %v", err)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c := config.ReadConfig()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.BootstrapLogger(c.Level)
	conf = c
	return nil
}

// defaultLogFile keeps log lines off the terminal while the full screen
// view is up.
func defaultLogFile(c *config.Config) string {
	if c.LogConfig.File != "" {
		return c.LogConfig.File
	}
	return filepath.Join(config.Dir(), "roomvote.log")
}
