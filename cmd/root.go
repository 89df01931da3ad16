/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/josephgoksu/taskvoice/internal/config"
	"github.com/josephgoksu/taskvoice/internal/logger"
	"github.com/josephgoksu/taskvoice/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version, overridden at build time.
	version = "0.1.0"

	// appConfig is loaded before any subcommand runs.
	appConfig *types.AppConfig
	// appLog writes diagnostics to stderr.
	appLog = logger.Discard()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskvoice",
	Short: "taskvoice keeps a to-do list that voice and chat agents can manage.",
	Long: `taskvoice is a small task list with three actions (add_task, list_tasks,
complete_task) that conversational agents call as tools over MCP or HTTP.
The same list can be managed directly from the command line.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadAppConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.taskvoice/.taskvoice.yaml, then $HOME/.taskvoice.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Version = version
}

// loadAppConfig resolves configuration and sets up logging and crash context.
func loadAppConfig(cmd *cobra.Command, _ []string) error {
	v := viper.New()
	if err := v.BindPFlag("verbose", cmd.Root().PersistentFlags().Lookup("verbose")); err != nil {
		return fmt.Errorf("bind verbose flag: %w", err)
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	appConfig = cfg
	appLog = logger.New(cmd.ErrOrStderr(), cfg.Verbose)
	if cfg.Config != "" {
		appLog.Debug("using config file", "path", cfg.Config)
	}

	logger.SetRootDir(cfg.Project.RootDir)
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())
	return nil
}

// GetVersion returns the build version.
func GetVersion() string {
	return version
}

func appLogger() *log.Logger {
	return appLog
}
