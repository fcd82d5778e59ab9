// Package main provides the matchedge command line tool.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/engine"
	applogger "github.com/yourusername/matchedge/internal/logger"
	"github.com/yourusername/matchedge/internal/metrics"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile   string
	profileFile  string
	inputFile    string
	batchDir     string
	validateFile string
	logger       *logrus.Logger
	cfg          *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&profileFile, "profile", "p", "", "Path to profile file (overrides engine.profile_path)")

	evaluateCmd.Flags().StringVarP(&inputFile, "input", "i", "-", "Match input JSON file, - for stdin")
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of match input JSON files")
	_ = batchCmd.MarkFlagRequired("dir")
	profileValidateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "Profile file to validate")
	_ = profileValidateCmd.MarkFlagRequired("file")

	profileCmd.AddCommand(profileValidateCmd, profileShowCmd)
	rootCmd.AddCommand(evaluateCmd, batchCmd, watchCmd, profileCmd)
}

var rootCmd = &cobra.Command{
	Use:           "matchedge",
	Short:         "Tennis match win probability and staking engine",
	Long:          `Evaluate tennis matches against market prices and recommend stakes.`,
	Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger = applogger.NewLogger(cfg.App.LogLevel)
		metrics.InitRegistry()
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// activeProfilePath returns the --profile flag or the configured profile path
func activeProfilePath() string {
	if profileFile != "" {
		return profileFile
	}
	return cfg.Engine.ProfilePath
}

// newEvaluationService wires the engine, profile store and memo
func newEvaluationService() (*service.EvaluationService, error) {
	profile, err := config.LoadAndValidateProfile(activeProfilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	store, err := engine.NewProfileStore(profile)
	if err != nil {
		return nil, err
	}
	metrics.SetActiveProfile(profile.Name, profile.Version)

	logger.WithFields(logrus.Fields{
		"profile": profile.Name,
		"version": profile.Version,
		"workers": cfg.Engine.FactorWorkers,
	}).Debug("Evaluation service ready")

	memo := service.NewEvaluationMemo(cfg.MemoTTL(), cfg.Engine.MemoMaxEntries)
	return service.NewEvaluationService(engine.New(cfg.Engine.FactorWorkers, logger), store, memo, logger), nil
}

func readInput(path string, stdin io.Reader) (*models.MatchInput, error) {
	if path == "-" {
		return service.DecodeInput(stdin)
	}
	return service.ReadInputFile(path)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
