package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/ai/gemini"
	"github.com/spigell/skillmatch/internal/chart"
	"github.com/spigell/skillmatch/internal/input"
	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/report"
	"github.com/spigell/skillmatch/internal/secrets"
	"github.com/spigell/skillmatch/internal/skills"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Ask for your skill levels and rank the matching company roles",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("skills", "s", "", "comma separated skill levels in category order. Prompts when unset.")
	matchCmd.Flags().StringSliceP("company", "c", nil, "company to match against, can be repeated. Default is TCS and Infosys.")
	matchCmd.Flags().IntP("top", "t", 0, "how many ranked matches to print")
	matchCmd.Flags().String("chart", "", "where to save the comparison chart")
	matchCmd.Flags().Bool("no-chart", false, "do not render the comparison chart")
	matchCmd.Flags().Bool("dump", false, "dump the full result with distances to a temporary json file")
	matchCmd.Flags().Bool("advise", false, "ask the AI provider for an improvement plan")

	viper.BindPFlag("student.skills", matchCmd.Flags().Lookup("skills"))
	viper.BindPFlag("selected-companies", matchCmd.Flags().Lookup("company"))
	viper.BindPFlag("report.top", matchCmd.Flags().Lookup("top"))
	viper.BindPFlag("report.dump", matchCmd.Flags().Lookup("dump"))
	viper.BindPFlag("chart.path", matchCmd.Flags().Lookup("chart"))
	viper.BindPFlag("ai.enabled", matchCmd.Flags().Lookup("advise"))
}

// session carries the collaborators of a match run. Nil sink and advisor
// disable the chart and the advice.
type session struct {
	logger   *zap.Logger
	prompter input.Prompter
	out      io.Writer
	sink     chart.Sink
	advisor  ai.Advisor
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	l = logger.WithRun(l, uuid.NewString(), cmd.Name())

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	if flag := cmd.Flag("no-chart"); flag != nil && flag.Value.String() == "true" {
		config.Chart.Enabled = false
	}

	l.Info("starting the skillmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	l.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	mcfg, err := matcherConfig(config)
	if err != nil {
		l.Fatal("preparing the catalogue", zap.Error(err))
	}

	s := &session{
		logger:   l,
		prompter: input.NewPrompter(os.Stdin, cmd.OutOrStdout()),
		out:      cmd.OutOrStdout(),
	}

	if config.Chart.Enabled {
		s.sink = chart.NewPlotSink(config.Chart.Path)
	}

	if config.AI != nil && config.AI.Enabled {
		advisor, err := newAdvisor(ctx, config.AI, l)
		if err != nil {
			l.Warn("skipping AI advice", zap.Error(err))
		} else {
			s.advisor = advisor
		}
	}

	if err := runMatch(ctx, config, mcfg, s); err != nil {
		if input.IsParseError(err) {
			l.Fatal("reading skill levels", zap.Error(err),
				zap.String("hint", "every skill level must be a whole number, e.g. 7"),
			)
		}
		l.Fatal("matching failed", zap.Error(err))
	}
}

// runMatch collects the student, matches, reports and renders the chart.
func runMatch(ctx context.Context, config *Config, mcfg *matcher.Config, s *session) error {
	m, err := matcher.New(mcfg, s.logger)
	if err != nil {
		return err
	}

	student, err := collectStudent(config, mcfg.Categories, s.prompter)
	if err != nil {
		return err
	}

	s.logger.Debug("collected skill levels", zap.Ints("student", student))

	result, err := m.Match(ctx, student)
	if err != nil {
		return err
	}

	for _, ranking := range result.Rankings {
		s.logger.Debug("eligible role",
			zap.String("company", ranking.Company),
			zap.String("role", ranking.Role),
			zap.Float64("distance", ranking.Distance),
		)
	}

	w := report.New(s.out, config.Report.Top)
	if err := w.Write(result); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if s.advisor != nil {
		advise(ctx, s, w, m, mcfg.Thresholds, result)
	}

	if config.Report.Dump {
		filename, err := report.DumpToTmpFile(result)
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
	}

	top, ok := result.Top()
	if !ok {
		return w.NoMatches()
	}

	if s.sink == nil {
		s.logger.Debug("chart disabled")
		return nil
	}

	requirements, err := m.Requirements(top)
	if err != nil {
		return err
	}

	comparison, err := chart.NewComparison(m.Categories(), result.Student, requirements, top.Company, top.Role)
	if err != nil {
		return err
	}

	if err := s.sink.Render(comparison); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	s.logger.Info("chart saved",
		zap.String("path", config.Chart.Path),
		zap.String("company", top.Company),
		zap.String("role", top.Role),
	)

	return nil
}

func collectStudent(config *Config, categories skills.Categories, prompter input.Prompter) (skills.Vector, error) {
	if config.Student != nil && strings.TrimSpace(config.Student.Skills) != "" {
		return input.Parse(categories, config.Student.Skills)
	}
	return input.Collect(prompter, categories)
}

// advise prints the improvement plan. Failures are logged only: the advice
// is an extra on top of the report.
func advise(ctx context.Context, s *session, w *report.Writer, m *matcher.Matcher, thresholds skills.Thresholds, result *matcher.Result) {
	req, err := ai.NewRequest(m, thresholds, result)
	if err != nil {
		s.logger.Warn("preparing AI advice", zap.Error(err))
		return
	}

	advice, err := s.advisor.Advise(ctx, req)
	if err != nil {
		s.logger.Warn("AI advice failed", zap.Error(err))
		return
	}

	if err := w.Advice(advice.Summary, advice.Steps); err != nil {
		s.logger.Warn("writing AI advice", zap.Error(err))
	}
}

func newAdvisor(ctx context.Context, cfg *AIConfig, l *zap.Logger) (ai.Advisor, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai advice is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, l)
	if err != nil {
		return nil, err
	}

	advisorLogger := logger.WithCommonFields(l, "gemini", generator.Model())

	return gemini.NewAdvisor(generator, cfg.Gemini.MaxLogLength, advisorLogger), nil
}
