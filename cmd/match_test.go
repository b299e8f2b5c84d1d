package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillmatch/internal/ai"
	"github.com/spigell/skillmatch/internal/chart"
	"github.com/spigell/skillmatch/internal/input"
	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/skills"
)

type recordingSink struct {
	rendered []*chart.Comparison
}

func (s *recordingSink) Render(c *chart.Comparison) error {
	s.rendered = append(s.rendered, c)
	return nil
}

type stubAdvisor struct {
	advice *ai.Advice
	err    error
	req    *ai.Request
}

func (s *stubAdvisor) Advise(_ context.Context, req *ai.Request) (*ai.Advice, error) {
	s.req = req
	return s.advice, s.err
}

func testConfig(studentSkills string) *Config {
	return &Config{
		SelectedCompanies: skills.DefaultSelectedCompanies(),
		Student:           &StudentConfig{Skills: studentSkills},
		Report:            &ReportConfig{Top: 3},
		Chart:             &ChartConfig{Enabled: true, Path: "chart.png"},
	}
}

func testMatcherConfig(selected []string) *matcher.Config {
	return &matcher.Config{
		Categories:        skills.DefaultCategories(),
		Thresholds:        skills.DefaultThresholds(),
		Catalogue:         skills.DefaultCatalogue(),
		SelectedCompanies: selected,
	}
}

func lines(in ...string) input.Prompter {
	return input.NewLinePrompter(strings.NewReader(strings.Join(in, "\n")+"\n"), io.Discard)
}

func TestRunMatchEligible(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{}
	config := testConfig("10,6,7,7,9,5,8,6,6,7")

	s := &session{logger: zap.NewNop(), out: &out, sink: sink}
	err := runMatch(context.Background(), config, testMatcherConfig(config.SelectedCompanies), s)
	require.NoError(t, err)

	assert.Equal(t, "\n"+
		"Eligible Matches:\n"+
		"Rank 1: Tata Consultancy Services (TCS) - Software Engineer\n"+
		"Rank 2: Infosys - Software Developer\n"+
		"Rank 3: Infosys - Systems Engineer\n"+
		"\n"+
		"Eligibility Feedback for Non-Eligible Companies and Roles:\n", out.String())

	require.Len(t, sink.rendered, 1)
	rendered := sink.rendered[0]
	assert.Equal(t, "Skill Profile Comparison: Student vs. Tata Consultancy Services (TCS) - Software Engineer", rendered.Title)
	assert.Equal(t, rendered.Student.Values, rendered.Target.Values)
}

func TestRunMatchIneligibleFromPrompts(t *testing.T) {
	var out bytes.Buffer
	sink := &recordingSink{}
	config := testConfig("")

	s := &session{
		logger:   zap.NewNop(),
		prompter: lines("3", "5", "6", "6", "7", "5", "6", "6", "5", "5"),
		out:      &out,
		sink:     sink,
	}
	err := runMatch(context.Background(), config, testMatcherConfig(config.SelectedCompanies), s)
	require.NoError(t, err)

	assert.Equal(t, "No eligible matches found based on your skills.\n"+
		"\n"+
		"Eligibility Feedback for Non-Eligible Companies and Roles:\n"+
		"Tata Consultancy Services (TCS) - Software Engineer: Suggest improving: Technical Proficiency\n"+
		"Tata Consultancy Services (TCS) - IT Analyst: Suggest improving: Technical Proficiency\n"+
		"Infosys - Software Developer: Suggest improving: Technical Proficiency\n"+
		"Infosys - Systems Engineer: Suggest improving: Technical Proficiency\n"+
		"No eligible matches.\n", out.String())
	assert.Empty(t, sink.rendered)
}

func TestRunMatchMalformedInput(t *testing.T) {
	var out bytes.Buffer
	config := testConfig("")

	s := &session{logger: zap.NewNop(), prompter: lines("7", "five"), out: &out}
	err := runMatch(context.Background(), config, testMatcherConfig(config.SelectedCompanies), s)

	require.Error(t, err)
	assert.True(t, input.IsParseError(err))
	assert.Empty(t, out.String(), "nothing is reported after a malformed answer")
}

func TestRunMatchUnknownCompany(t *testing.T) {
	config := testConfig("10,6,7,7,9,5,8,6,6,7")
	config.SelectedCompanies = []string{"Globex"}

	s := &session{logger: zap.NewNop(), out: io.Discard}
	err := runMatch(context.Background(), config, testMatcherConfig(config.SelectedCompanies), s)

	assert.True(t, errors.Is(err, skills.ErrCompanyNotFound))
}

func TestRunMatchAdviceAndDump(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	var out bytes.Buffer
	advisor := &stubAdvisor{advice: &ai.Advice{Summary: "Keep going.", Steps: []string{"Lead a project"}}}
	config := testConfig("10,6,7,7,9,5,8,6,6,7")
	config.Report.Top = 1
	config.Report.Dump = true

	s := &session{logger: zap.New(core), out: &out, advisor: advisor}
	err := runMatch(context.Background(), config, testMatcherConfig([]string{skills.TCS}), s)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Rank 1: Tata Consultancy Services (TCS) - Software Engineer\n")
	assert.NotContains(t, out.String(), "Rank 2")
	assert.Contains(t, out.String(), "\nImprovement Plan:\nKeep going.\n1. Lead a project\n")

	require.NotNil(t, advisor.req.Top)
	assert.Equal(t, "Software Engineer", advisor.req.Top.Role)
	assert.Empty(t, advisor.req.Suggestions)

	dumps := observed.FilterMessage("dumping result to file").All()
	require.Len(t, dumps, 1)
	filename, ok := dumps[0].ContextMap()["filename"].(string)
	require.True(t, ok)
	t.Cleanup(func() { os.Remove(filename) })
	_, err = os.Stat(filename)
	assert.NoError(t, err)
}

func TestRunMatchAdviceFailureIsNotFatal(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	var out bytes.Buffer
	advisor := &stubAdvisor{err: errors.New("quota exceeded")}
	config := testConfig("3,5,6,6,7,5,6,6,5,5")

	s := &session{logger: zap.New(core), out: &out, advisor: advisor}
	err := runMatch(context.Background(), config, testMatcherConfig(config.SelectedCompanies), s)
	require.NoError(t, err)

	assert.Equal(t, 1, observed.FilterMessage("AI advice failed").Len())
	assert.Equal(t, []string{skills.TechnicalProficiency}, advisor.req.Suggestions)
	assert.Nil(t, advisor.req.Top)
	assert.NotContains(t, out.String(), "Improvement Plan")
}

func TestNewAdvisorRejectsUnknownProvider(t *testing.T) {
	_, err := newAdvisor(context.Background(), &AIConfig{Enabled: true, Provider: "openai", Gemini: &GeminiConfig{}}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported ai provider")

	t.Setenv("GEMINI_API_KEY", "")
	_, err = newAdvisor(context.Background(), &AIConfig{Enabled: true, Gemini: &GeminiConfig{}}, zap.NewNop())
	assert.ErrorContains(t, err, "gemini api key is not configured")
}
