package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ja7ad/loadshape/pkg/profile"
	"github.com/ja7ad/loadshape/pkg/types"
	"github.com/ja7ad/loadshape/pkg/util"
)

// writeFile creates path (and its parent directories) and hands it to fn.
func writeFile(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printSummaryTable(r *run) {
	base := profile.Summarize(r.Baseline)
	fmt.Printf(_console, r.Variant, base.Peak, base.Trough, base.Range, types.Power(base.EnergyKWh).Humanized())

	tw := newTable()
	fmt.Fprintln(tw, "SIGMA\tITER\tCONVERGED\tRESIDUAL\tPEAK (kW)\tTROUGH (kW)\tRANGE (kW)\tRANGE RATIO\tLOAD FACTOR")
	fmt.Fprintln(tw, "-----\t----\t---------\t--------\t---------\t-----------\t----------\t-----------\t-----------")
	for _, s := range r.Sigmas {
		res := r.Results[s]
		cmp := profile.Compare(r.Baseline, res.Load)
		fmt.Fprintf(tw, "%g\t%d\t%t\t%.3g\t%.1f\t%.1f\t%.1f\t%.3f\t%.3f\n",
			s, res.Iterations, res.Converged, res.Residual,
			cmp.Shaped.Peak, cmp.Shaped.Trough, cmp.Shaped.Range, cmp.RangeRatio, cmp.Shaped.LoadFactor,
		)
	}
	tw.Flush()
	fmt.Println()
}

func printHourlyTable(r *run) {
	tw := newTable()
	head := []string{"HOUR", "BASELINE"}
	rule := []string{"----", "--------"}
	for _, s := range r.Sigmas {
		col := "σ=" + strconv.FormatFloat(s, 'g', -1, 64)
		head = append(head, col)
		rule = append(rule, strings.Repeat("-", len([]rune(col))))
	}
	fmt.Fprintln(tw, strings.Join(head, "\t"))
	fmt.Fprintln(tw, strings.Join(rule, "\t"))

	shifted := displayLoads(r)
	for h, d := range r.Baseline {
		row := []string{fmt.Sprintf("%02d:00", h), types.Power(d).Thousands()}
		for i := range r.Sigmas {
			row = append(row, types.Power(shifted[i][h]).Thousands())
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
	if r.Offset != 0 {
		fmt.Printf("\n(shaped loads shifted by %+.0f kW for display)\n", r.Offset)
	}
	fmt.Println()
}

func printCsvLike(r *run) {
	fmt.Println("# sigma, iterations, converged, residual, peak_kw, trough_kw, range_kw")
	for _, s := range r.Sigmas {
		res := r.Results[s]
		st := profile.Summarize(res.Load)
		fmt.Printf("%g, %d, %t, %.3g, %.3f, %.3f, %.3f\n",
			s, res.Iterations, res.Converged, res.Residual, st.Peak, st.Trough, st.Range)
	}
}

// displayLoads applies the presentation offset to copies of the results,
// in r.Sigmas order.
func displayLoads(r *run) []profile.Profile {
	out := make([]profile.Profile, 0, len(r.Sigmas))
	for _, s := range r.Sigmas {
		out = append(out, profile.Offset(r.Results[s].Load, r.Offset))
	}
	return out
}

// writeLoadsCSV writes unshifted hourly loads, one column per sigma.
func writeLoadsCSV(w io.Writer, r *run) error {
	cw := csv.NewWriter(w)
	head := []string{"hour", "baseline_kw"}
	for _, s := range r.Sigmas {
		head = append(head, "sigma_"+strconv.FormatFloat(s, 'g', -1, 64)+"_kw")
	}
	_ = cw.Write(head)
	for h, d := range r.Baseline {
		row := []string{strconv.Itoa(h), util.FmtFloat(d)}
		for _, s := range r.Sigmas {
			row = append(row, util.FmtFloat(r.Results[s].Load[h]))
		}
		_ = cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

type jsonResult struct {
	Sigma      float64   `json:"sigma"`
	Variant    string    `json:"variant"`
	Iterations int       `json:"iterations"`
	Converged  bool      `json:"converged"`
	Residual   float64   `json:"residual"`
	Load       []float64 `json:"load_kw"`
	Lambda     []float64 `json:"lambda"`
	PeakKW     float64   `json:"peak_kw"`
	TroughKW   float64   `json:"trough_kw"`
	RangeRatio float64   `json:"range_ratio"`
}

// writeJSON writes unshifted results as an array ordered by sigma.
func writeJSON(w io.Writer, r *run) error {
	out := make([]jsonResult, 0, len(r.Sigmas))
	for _, s := range r.Sigmas {
		res := r.Results[s]
		cmp := profile.Compare(r.Baseline, res.Load)
		out = append(out, jsonResult{
			Sigma:      s,
			Variant:    res.Variant.String(),
			Iterations: res.Iterations,
			Converged:  res.Converged,
			Residual:   res.Residual,
			Load:       res.Load,
			Lambda:     res.Lambda,
			PeakKW:     cmp.Shaped.Peak,
			TroughKW:   cmp.Shaped.Trough,
			RangeRatio: cmp.RangeRatio,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeHTML(w io.Writer, r *run) error {
	type sigmaRow struct {
		Sigma      float64
		Iterations int
		Converged  bool
		Residual   float64
		Stats      profile.Stats
		RangeRatio float64
	}
	type hourRow struct {
		Hour     int
		Baseline float64
		Loads    []float64
	}
	type view struct {
		Variant  string
		Baseline profile.Stats
		Offset   float64
		Elapsed  string
		Sigmas   []sigmaRow
		Hours    []hourRow
	}

	data := view{
		Variant:  r.Variant.String(),
		Baseline: profile.Summarize(r.Baseline),
		Offset:   r.Offset,
		Elapsed:  r.Elapsed.String(),
	}
	for _, s := range r.Sigmas {
		res := r.Results[s]
		cmp := profile.Compare(r.Baseline, res.Load)
		data.Sigmas = append(data.Sigmas, sigmaRow{
			Sigma:      s,
			Iterations: res.Iterations,
			Converged:  res.Converged,
			Residual:   res.Residual,
			Stats:      cmp.Shaped,
			RangeRatio: cmp.RangeRatio,
		})
	}
	shifted := displayLoads(r)
	for h, d := range r.Baseline {
		row := hourRow{Hour: h, Baseline: d}
		for i := range r.Sigmas {
			row.Loads = append(row.Loads, shifted[i][h])
		}
		data.Hours = append(data.Hours, row)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Load Shaping Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
table{border-collapse:collapse;width:100%;font-size:14px;margin-bottom:16px}
th,td{border:1px solid #ddd;padding:6px 8px;text-align:right}
th:first-child,td:first-child{text-align:left}
.small{color:#555}
.capped{color:#b35900}
</style>

<h1><a href="https://github.com/ja7ad/loadshape" target="_blank" rel="noopener noreferrer" style="color:inherit;text-decoration:none;">Load Shaping Report</a></h1>

<p class="small">
Variant: {{.Variant}} &nbsp;|&nbsp;
Baseline peak: {{printf "%.0f" .Baseline.Peak}} kW &nbsp;|&nbsp;
trough: {{printf "%.0f" .Baseline.Trough}} kW &nbsp;|&nbsp;
range: {{printf "%.0f" .Baseline.Range}} kW &nbsp;|&nbsp;
solved in {{.Elapsed}}
</p>

<h2>Summary</h2>
<table>
<thead>
<tr><th>σ</th><th>iterations</th><th>converged</th><th>residual</th><th>peak (kW)</th><th>trough (kW)</th><th>range (kW)</th><th>range ratio</th><th>load factor</th></tr>
</thead>
<tbody>
{{range .Sigmas}}
<tr{{if not .Converged}} class="capped"{{end}}>
<td>{{.Sigma}}</td>
<td>{{.Iterations}}</td>
<td>{{.Converged}}</td>
<td>{{printf "%.3g" .Residual}}</td>
<td>{{printf "%.1f" .Stats.Peak}}</td>
<td>{{printf "%.1f" .Stats.Trough}}</td>
<td>{{printf "%.1f" .Stats.Range}}</td>
<td>{{printf "%.3f" .RangeRatio}}</td>
<td>{{printf "%.3f" .Stats.LoadFactor}}</td>
</tr>
{{end}}
</tbody>
</table>

<h2>Hourly load (kW)</h2>
{{if .Offset}}<p class="small">Shaped loads shifted by {{printf "%+.0f" .Offset}} kW for display.</p>{{end}}
<table>
<thead>
<tr><th>hour</th><th>baseline</th>{{range .Sigmas}}<th>σ={{.Sigma}}</th>{{end}}</tr>
</thead>
<tbody>
{{range .Hours}}
<tr>
<td>{{printf "%02d:00" .Hour}}</td>
<td>{{printf "%.1f" .Baseline}}</td>
{{range .Loads}}<td>{{printf "%.1f" .}}</td>{{end}}
</tr>
{{end}}
</tbody>
</table>
</html>`))

const _console = `Loadshape - Duck Curve Flattening
* GitHub: https://github.com/ja7ad/loadshape

       Variant: %s
       Baseline peak: %.0f kW
       Baseline trough: %.0f kW
       Baseline range: %.0f kW
       Daily energy: %s h

`
