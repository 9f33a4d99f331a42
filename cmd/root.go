package cmd

import (
	"log"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yumeworks/talent-match/internal/matching"
)

const (
	app = "talent-match"
)

type Config struct {
	User           string          `mapstructure:"user"`
	Limit          int             `mapstructure:"limit"`
	Behavioral     bool            `mapstructure:"behavioral"`
	ExcludeApplied bool            `mapstructure:"exclude-applied"`
	DataTimeout    time.Duration   `mapstructure:"data-timeout"`
	Fixtures       string          `mapstructure:"fixtures"`
	Database       *DatabaseConfig `mapstructure:"database"`
	AI             *AIConfig       `mapstructure:"ai"`
}

type DatabaseConfig struct {
	DSNFile string `mapstructure:"dsn-file"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-match ranks published store listings for a talent profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("database.dsn-file", "TALENT_MATCH_DSN_FILE"); err != nil {
		log.Fatalf("binding TALENT_MATCH_DSN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("behavioral", true)
	viper.SetDefault("exclude-applied", true)
}

func initConfig() {
	// Config needed only for the match command. If there is no config, we can skip initialization
	if matchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

// weightOverrides decodes the optional weights section into typed dimension
// keys. Validation of the values happens in the engine constructor.
func weightOverrides() (map[matching.Dimension]float64, error) {
	raw := viper.GetStringMap("weights")
	if len(raw) == 0 {
		return nil, nil
	}

	var overrides map[matching.Dimension]float64
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &overrides,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}

	return overrides, nil
}
