package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveCmd_WritesReports(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "out", "loads.csv")
	jsonPath := filepath.Join(dir, "out", "loads.json")
	htmlPath := filepath.Join(dir, "out", "report.html")

	cmd := newSolveCmd()
	cmd.SetArgs([]string{
		"--sigma", "200,50,100",
		"--csv", csvPath, "--json", jsonPath, "--html", htmlPath,
	})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 25)
	assert.Equal(t, []string{"hour", "baseline_kw", "sigma_50_kw", "sigma_100_kw", "sigma_200_kw"}, rows[0])

	// stored results carry no display offset: σ=100 settles at a third of the baseline
	peak, err := strconv.ParseFloat(rows[20][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 6000.0, peak, 0.01)

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var results []jsonResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 3)
	for i, want := range []float64{50, 100, 200} {
		assert.Equal(t, want, results[i].Sigma)
		assert.True(t, results[i].Converged)
		assert.Equal(t, "fixed-ascent", results[i].Variant)
		assert.Len(t, results[i].Load, 24)
	}

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Load Shaping Report")
	assert.Contains(t, string(html), "4500 kW for display")
	assert.Contains(t, string(html), "&#43;4500 kW")
}

func TestSolveCmd_InvalidSigma(t *testing.T) {
	cmd := newSolveCmd()
	cmd.SetArgs([]string{"--sigma", "0"})
	assert.Error(t, cmd.Execute())
}

func TestSolveCmd_ScenarioFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("variant: incremental-decreasing\nsigmas: [1]\nsolver: {max_iterations: 10}\n"), 0o644))
	jsonPath := filepath.Join(dir, "out.json")

	cmd := newSolveCmd()
	cmd.SetArgs([]string{"--config", cfg, "--json", jsonPath, "--pretty=false"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var results []jsonResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "incremental-decreasing", results[0].Variant)
	assert.Equal(t, 10, results[0].Iterations)
	assert.False(t, results[0].Converged)
}

func TestRankCmd(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "vehicles.csv")
	require.NoError(t, os.WriteFile(data, []byte(
		"Vehicle_ID,Plug_in_Time,Estimated_plug_out_Time,Battry_Capacity_kWh,Present_SOC\n"+
			"A,40,70,60,0.2\nB,50,60,40,0.5\nC,30,90,80,0.9\n"), 0o644))
	out := filepath.Join(dir, "schedule.csv")

	cmd := newRankCmd()
	cmd.SetArgs([]string{"--data", data, "--slot", "54", "--budget", "100", "--csv", out})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "C", rows[2][1])
}

func TestRankCmd_MissingFile(t *testing.T) {
	cmd := newRankCmd()
	cmd.SetArgs([]string{"--data", filepath.Join(t.TempDir(), "nope.csv")})
	assert.Error(t, cmd.Execute())
}
