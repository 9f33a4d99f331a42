package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/yumeworks/talent-match/internal/ai"
	"github.com/yumeworks/talent-match/internal/ai/gemini"
	"github.com/yumeworks/talent-match/internal/logger"
	"github.com/yumeworks/talent-match/internal/matching"
	"github.com/yumeworks/talent-match/internal/platform"
	"github.com/yumeworks/talent-match/internal/secrets"
)

const (
	PromptShowReasons = "Show match reasons"
	PromptDumpToFile  = "Dump results to file"
	PromptAISummary   = "Generate AI summary"
	PromptExit        = "Exit"
)

var errExit = errors.New("exit requested")

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank published listings for a talent",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("user", "u", "", "id of the talent to match")
	matchCmd.Flags().IntP("limit", "l", 0, "maximum number of results (negative for all)")
	matchCmd.Flags().BoolP("static-weights", "s", false, "skip behavioral weight adjustment")
	matchCmd.Flags().BoolP("include-applied", "f", false, "do not exclude listings if already applied")
	matchCmd.Flags().BoolP("no-prompt", "y", false, "print the ranked list and exit without the action prompt")
	matchCmd.Flags().String("fixtures", "", "JSON fixture file to use instead of the database")

	viper.BindPFlag("user", matchCmd.Flags().Lookup("user"))
	viper.BindPFlag("fixtures", matchCmd.Flags().Lookup("fixtures"))
}

// runMatch is the main command for the cli.
func runMatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting talent-match", zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	userID := strings.TrimSpace(viper.GetString("user"))
	if userID == "" {
		userID = strings.TrimSpace(config.User)
	}
	if userID == "" {
		logger.Fatal("user id is required",
			zap.String("hint", "pass --user or set the 'user' key in the configuration file"),
		)
	}

	users, listings, history, cleanup, err := buildSources(config)
	if err != nil {
		logger.Fatal("preparing data sources", zap.Error(err))
	}
	defer cleanup()

	overrides, err := weightOverrides()
	if err != nil {
		logger.Fatal("decoding weight overrides", zap.Error(err))
	}

	limit := config.Limit
	if cmd.Flags().Changed("limit") {
		limit, _ = cmd.Flags().GetInt("limit")
	}

	excludeApplied := config.ExcludeApplied
	if flagTrue(cmd, "include-applied") {
		excludeApplied = false
	}

	engine, err := matching.New(&matching.Config{
		Weights:        overrides,
		DefaultLimit:   limit,
		DataTimeout:    config.DataTimeout,
		ExcludeApplied: excludeApplied,
	}, users, listings, history, logger)
	if err != nil {
		logger.Fatal("building the matching engine", zap.Error(err))
	}

	opts := &matching.Options{
		StaticWeights: !config.Behavioral || flagTrue(cmd, "static-weights"),
	}

	results, err := engine.ComputeMatches(ctx, userID, opts)
	if errors.Is(err, matching.ErrProfileNotFound) {
		logger.Info("exiting", zap.String("reason", "no talent profile registered for this user"))
		return
	}
	if err != nil {
		logger.Fatal("matching failed", zap.Error(err))
	}

	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings matched"))
		return
	}

	printResults(results)

	if flagTrue(cmd, "no-prompt") {
		return
	}

	prompt := promptui.Select{
		Label: "What next?",
		Items: []string{PromptShowReasons, PromptDumpToFile, PromptAISummary, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, engine, config, logger, userID, results); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, engine *matching.Engine, config *Config, logger *zap.Logger, userID string, results *matching.MatchResults) error {
	switch action {
	case PromptShowReasons:
		printReasons(results)
		return nil
	case PromptDumpToFile:
		filename, err := results.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping results to file", zap.String("filename", filename))
		return nil
	case PromptAISummary:
		return printAISummary(ctx, engine, config, logger, userID, results)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printResults(results *matching.MatchResults) {
	for i, r := range results.Items {
		name := r.StoreName
		if name == "" {
			name = r.ListingID
		}
		fmt.Printf("%3d. [%3d] %s (%s)\n", i+1, r.Score, name, r.ListingID)
	}
}

func printReasons(results *matching.MatchResults) {
	for _, r := range results.Items {
		fmt.Printf("%s (score %d)\n", r.ListingID, r.Score)
		if len(r.Reasons) == 0 {
			fmt.Println("  - no standout dimensions")
			continue
		}
		for _, reason := range r.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
	}
}

func printAISummary(ctx context.Context, engine *matching.Engine, config *Config, logger *zap.Logger, userID string, results *matching.MatchResults) error {
	if config.AI == nil || !config.AI.Enabled {
		logger.Info("ai summary is disabled",
			zap.String("hint", "enable it under the 'ai' section in the configuration file"),
		)
		return nil
	}

	advisor, err := newAdvisor(ctx, config.AI, logger)
	if err != nil {
		return fmt.Errorf("building ai advisor: %w", err)
	}

	features, err := engine.TalentFeatures(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading talent features: %w", err)
	}

	summary, err := advisor.Summarize(ctx, features, results)
	if err != nil {
		// The summary is an enhancement; do not kill an otherwise good run.
		logger.Warn("ai summary failed", zap.Error(err))
		return nil
	}

	fmt.Println(summary.Summary)
	for _, h := range summary.Highlights {
		fmt.Printf("  * %s\n", h)
	}
	return nil
}

func newAdvisor(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai summary is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	advisorLogger := logger.WithAdvisorFields(log, "gemini", cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, advisorLogger)
	if err != nil {
		return nil, err
	}

	return gemini.NewAdvisor(generator, advisorLogger, cfg.Gemini.MaxLogLength), nil
}

// buildSources resolves the repository implementations from the config:
// a JSON fixture file when configured, the platform database otherwise.
func buildSources(config *Config) (platform.UserSource, platform.ListingSource, platform.HistorySource, func(), error) {
	noop := func() {}

	if path := strings.TrimSpace(viper.GetString("fixtures")); path != "" {
		store, err := platform.LoadFixture(path)
		if err != nil {
			return nil, nil, nil, noop, err
		}
		return store, store, store, noop, nil
	}

	if config.Database == nil {
		return nil, nil, nil, noop, fmt.Errorf("either 'fixtures' or 'database' must be configured")
	}

	dsn, err := secrets.Load(secrets.Source{
		Name: "database dsn",
		File: config.Database.DSNFile,
		Env:  "TALENT_MATCH_DSN",
	})
	if err != nil {
		return nil, nil, nil, noop, err
	}

	db, err := platform.OpenPostgres(dsn)
	if err != nil {
		return nil, nil, nil, noop, err
	}

	store := platform.NewPostgresStore(db)
	return store, store, store, func() { db.Close() }, nil
}

func flagTrue(cmd *cobra.Command, name string) bool {
	flag := cmd.Flag(name)
	return flag != nil && strings.EqualFold(flag.Value.String(), "true")
}
