package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/report"
	"github.com/spigell/skillmatch/internal/skills"
)

const (
	app = "skillmatch"

	defaultChartPath = "skill-comparison.png"
)

type Config struct {
	// Companies matched against, in any order. Catalogue order decides ties.
	SelectedCompanies []string       `mapstructure:"selected-companies" validate:"dive,required"`
	Categories        []string       `mapstructure:"categories" validate:"omitempty,unique,dive,required"`
	Student           *StudentConfig `mapstructure:"student"`
	Report            *ReportConfig  `mapstructure:"report" validate:"required"`
	Chart             *ChartConfig   `mapstructure:"chart" validate:"required"`
	AI                *AIConfig      `mapstructure:"ai"`
}

type StudentConfig struct {
	// Skills is a comma separated list of levels in category order.
	Skills string `mapstructure:"skills"`
}

type ReportConfig struct {
	Top  int  `mapstructure:"top" validate:"gte=1"`
	Dump bool `mapstructure:"dump"`
}

type ChartConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini" validate:"required_if=Enabled true"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0,lte=10"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New()

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "skillmatch ranks company roles by how close they are to your skill profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("chart.path", "SKILLMATCH_CHART"); err != nil {
		log.Fatalf("binding SKILLMATCH_CHART environment variable: %v", err)
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is skillmatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	viper.SetDefault("selected-companies", skills.DefaultSelectedCompanies())
	viper.SetDefault("report.top", report.DefaultTop)
	viper.SetDefault("report.dump", false)
	viper.SetDefault("chart.enabled", true)
	viper.SetDefault("chart.path", defaultChartPath)
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)
}

func initConfig() {
	// Only commands working with the catalogue need a config.
	if matchCmd.CalledAs() == "" && catalogueCmd.CalledAs() == "" {
		return
	}

	// .env is optional; it only feeds environment bindings.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// Without an explicit file the built-in catalogue is used.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config == nil {
		return nil, errors.New("config is required")
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// matcherConfig resolves categories, thresholds and catalogue, falling back
// to the built-in ones for whatever the config file leaves out.
func matcherConfig(config *Config) (*matcher.Config, error) {
	categories := skills.DefaultCategories()
	if len(config.Categories) > 0 {
		categories = skills.Categories(config.Categories)
	}

	thresholds := skills.DefaultThresholds()
	if viper.IsSet("thresholds") {
		decoded, err := skills.DecodeThresholds(viper.Get("thresholds"))
		if err != nil {
			return nil, err
		}
		thresholds = decoded
	}

	catalogue := skills.DefaultCatalogue()
	if viper.IsSet("catalogue") {
		decoded, err := skills.DecodeCatalogue(viper.Get("catalogue"))
		if err != nil {
			return nil, err
		}
		catalogue = decoded
	}

	cfg := &matcher.Config{
		Categories:        categories,
		Thresholds:        thresholds,
		Catalogue:         catalogue,
		SelectedCompanies: config.SelectedCompanies,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
