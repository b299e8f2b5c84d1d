package report

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/skills"
)

func TestWriteRankingsLimitedToTop(t *testing.T) {
	var buf bytes.Buffer
	result := &matcher.Result{Rankings: []matcher.Ranking{
		{Company: "A", Role: "One", Distance: 0},
		{Company: "A", Role: "Two", Distance: 1},
		{Company: "B", Role: "Three", Distance: 2},
		{Company: "B", Role: "Four", Distance: 3},
	}}

	require.NoError(t, New(&buf, 0).Write(result))

	assert.Equal(t, "\n"+
		"Eligible Matches:\n"+
		"Rank 1: A - One\n"+
		"Rank 2: A - Two\n"+
		"Rank 3: B - Three\n"+
		"\n"+
		"Eligibility Feedback for Non-Eligible Companies and Roles:\n", buf.String())
}

func TestWriteFeedback(t *testing.T) {
	var buf bytes.Buffer
	result := &matcher.Result{Feedback: []matcher.Feedback{
		{Company: skills.TCS, Role: "Software Engineer", Suggestions: []string{skills.DataAnalysis, skills.ProblemSolving}},
		{Company: skills.Infosys, Role: "Systems Engineer", Suggestions: []string{skills.DataAnalysis}},
	}}

	w := New(&buf, 3)
	require.NoError(t, w.Write(result))
	require.NoError(t, w.NoMatches())

	assert.Equal(t, "No eligible matches found based on your skills.\n"+
		"\n"+
		"Eligibility Feedback for Non-Eligible Companies and Roles:\n"+
		"Tata Consultancy Services (TCS) - Software Engineer: Suggest improving: Data Analysis, Problem-Solving\n"+
		"Infosys - Systems Engineer: Suggest improving: Data Analysis\n"+
		"No eligible matches.\n", buf.String())
}

func TestWriteAdvice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, 1).Advice("Focus on data.", []string{"Take a course", "Build a project"}))
	assert.Equal(t, "\nImprovement Plan:\nFocus on data.\n1. Take a course\n2. Build a project\n", buf.String())
}

func TestDumpToTmpFile(t *testing.T) {
	result := &matcher.Result{
		Student:  skills.Vector{1, 2},
		Rankings: []matcher.Ranking{{Company: "A", Role: "One", Distance: 1.5}},
	}

	path, err := DumpToTmpFile(result)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded matcher.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1.5, decoded.Rankings[0].Distance)
	assert.Equal(t, skills.Vector{1, 2}, decoded.Student)
}
