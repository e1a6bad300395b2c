package main

import (
	"fmt"
	"os"

	"github.com/fenilsonani/dupsweep/internal/app"
	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/internal/ui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath     string
	verbose        bool
	source         string
	recursive      bool
	dryRun         bool
	keepRule       string
	algorithm      string
	skipUnreadable bool
	outputFmt      string
	reportFile     string
	manifestFile   string
	useTUI         bool
	initConfig     bool
)

func main() {
	os.Exit(execute())
}

func execute() int {
	summary, err := runRoot()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return app.ExitCode(summary, err)
}

// runRoot executes the command tree and hands back the sweep summary when the root command ran
func runRoot() (*app.Summary, error) {
	var summary *app.Summary
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		var err error
		summary, err = sweep(cmd)
		return err
	}

	err := rootCmd.Execute()
	return summary, err
}

var rootCmd = &cobra.Command{
	Use:   "dupsweep",
	Short: "Find and remove duplicate files",
	Long: `dupsweep hashes every file in a folder, groups files with identical content,
asks which copy of each group to keep and removes the others after confirmation.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or create the configuration file",
	Long:  `Shows the configuration file in use, or writes the default one with --init.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if initConfig && configPath == "" {
			cfgPath, err := config.EnsureConfigExists()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Printf("Config file: %s\n", cfgPath)
			return nil
		}

		cfgPath := configPath
		if cfgPath == "" {
			var err error
			cfgPath, err = config.GetConfigPath()
			if err != nil {
				return err
			}
		}

		fmt.Printf("Config file: %s\n", cfgPath)

		if initConfig {
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				if err := os.WriteFile(cfgPath, []byte(config.GetExampleConfig()), 0644); err != nil {
					return fmt.Errorf("failed to create config: %w", err)
				}
			}
			return nil
		}

		// Check if config exists
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			fmt.Println("Config file does not exist. Using default configuration.")
			fmt.Println("\nTo create a config file:")
			fmt.Println("  dupsweep config --init")
		}

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Sweep flags
	flags := rootCmd.Flags()
	flags.StringVarP(&source, "source", "s", "", "folder to scan (default: current directory)")
	flags.BoolVarP(&recursive, "recursive", "r", false, "scan subfolders too")
	flags.BoolVar(&dryRun, "dryrun", false, "show what would be removed without removing anything")
	flags.BoolVar(&dryRun, "dry-run", false, "alias for --dryrun")
	flags.StringVar(&keepRule, "keep", "", "how to pick the file to keep (ask, first, newest, oldest, shortest-name)")
	flags.StringVar(&algorithm, "algorithm", "", "checksum algorithm (md5, sha256, blake2b)")
	flags.BoolVar(&skipUnreadable, "skip-unreadable", false, "warn about unreadable files instead of aborting")
	flags.StringVar(&outputFmt, "output", "", "report format (summary, table, json, yaml)")
	flags.StringVar(&reportFile, "report", "", "save the report to a file")
	flags.StringVar(&manifestFile, "manifest", "", "save the list of removed files to a file")
	flags.BoolVar(&useTUI, "tui", false, "pick files to keep in a full-screen selector")

	// Config command flags
	configCmd.Flags().BoolVar(&initConfig, "init", false, "write the default config file if it does not exist")

	rootCmd.AddCommand(configCmd)
}

// sweep builds the configuration from file, environment and flags, then runs the sweep
func sweep(cmd *cobra.Command) (*app.Summary, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	log := newLogger(cfg.Verbose)

	return app.Run(app.Options{
		Config:       cfg,
		In:           os.Stdin,
		Out:          os.Stdout,
		Err:          os.Stderr,
		Log:          log,
		ReportPath:   reportFile,
		ManifestPath: manifestFile,
		ShowProgress: ui.IsTerminal(os.Stderr),
	})
}

// applyFlags overrides config values with flags the user actually set
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("source") {
		cfg.Source = source
	}
	if flags.Changed("recursive") {
		cfg.Recursive = recursive
	}
	if flags.Changed("dryrun") || flags.Changed("dry-run") {
		cfg.DryRun = dryRun
	}
	if flags.Changed("keep") {
		cfg.KeepRule = keepRule
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("skip-unreadable") {
		cfg.SkipUnreadable = skipUnreadable
	}
	if flags.Changed("output") {
		cfg.Output = outputFmt
	}
	if flags.Changed("tui") {
		cfg.TUI = useTUI
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
}

func newLogger(verbose bool) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logrus.NewEntry(logger)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	return config.Load(cfgPath)
}
