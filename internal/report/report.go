// Package report renders analysis results as text tables, JSON or YAML.
//
// Non-finite numbers (failed fits, +Inf AICc) are omitted from the encoded
// forms since JSON cannot carry them.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-relax/relax/analysis"
	"github.com/cwbudde/algo-relax/relax/kinetics"
	"github.com/cwbudde/algo-relax/relax/quality"
	"github.com/cwbudde/algo-relax/relax/spectrum"
	"github.com/cwbudde/algo-relax/relax/tts"
)

// Summary is the serialisable digest of one analysis run.
type Summary struct {
	Source       string           `json:"source" yaml:"source"`
	Temperatures []TemperatureRow `json:"temperatures" yaml:"temperatures"`
	Kinetics     []KineticsRow    `json:"kinetics,omitempty" yaml:"kinetics,omitempty"`
	Mastercurve  *MastercurveRow  `json:"mastercurve,omitempty" yaml:"mastercurve,omitempty"`
	Spectrum     *SpectrumRow     `json:"spectrum,omitempty" yaml:"spectrum,omitempty"`
	Comparisons  []ComparisonRow  `json:"comparisons,omitempty" yaml:"comparisons,omitempty"`
}

// TemperatureRow summarises one per-temperature result.
type TemperatureRow struct {
	Temperature   float64            `json:"temperature" yaml:"temperature"`
	Valid         bool               `json:"valid" yaml:"valid"`
	Status        string             `json:"status" yaml:"status"`
	Reason        string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	BestModel     string             `json:"best_model,omitempty" yaml:"best_model,omitempty"`
	Tau           *float64           `json:"tau,omitempty" yaml:"tau,omitempty"`
	R2            *float64           `json:"r2,omitempty" yaml:"r2,omitempty"`
	AICc          *float64           `json:"aicc,omitempty" yaml:"aicc,omitempty"`
	Quality       float64            `json:"quality" yaml:"quality"`
	Tier          string             `json:"tier,omitempty" yaml:"tier,omitempty"`
	LowConfidence bool               `json:"low_confidence,omitempty" yaml:"low_confidence,omitempty"`
	Params        map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
	Assessment    string             `json:"assessment,omitempty" yaml:"assessment,omitempty"`
}

// KineticsRow summarises one kinetics fit.
type KineticsRow struct {
	Type    string             `json:"type" yaml:"type"`
	Ea      *float64           `json:"ea_kj_mol,omitempty" yaml:"ea_kj_mol,omitempty"`
	Tv      *float64           `json:"tv_c,omitempty" yaml:"tv_c,omitempty"`
	Warning string             `json:"warning,omitempty" yaml:"warning,omitempty"`
	R2      *float64           `json:"r2,omitempty" yaml:"r2,omitempty"`
	Params  map[string]float64 `json:"params" yaml:"params"`
}

// ComparisonRow is one sample of a multi-sample Arrhenius comparison.
type ComparisonRow struct {
	Name     string   `json:"name" yaml:"name"`
	Tg       float64  `json:"tg" yaml:"tg"`
	GPlateau float64  `json:"g_plateau_mpa" yaml:"g_plateau_mpa"`
	Points   int      `json:"points" yaml:"points"`
	Ea       *float64 `json:"ea_kj_mol,omitempty" yaml:"ea_kj_mol,omitempty"`
	Tv       *float64 `json:"tv_c,omitempty" yaml:"tv_c,omitempty"`
	R2       *float64 `json:"r2,omitempty" yaml:"r2,omitempty"`
	Warning  string   `json:"warning,omitempty" yaml:"warning,omitempty"`
	Error    string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// ShiftRow is one mastercurve shift factor.
type ShiftRow struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Factor      float64 `json:"a_t" yaml:"a_t"`
}

// MastercurveRow summarises a mastercurve.
type MastercurveRow struct {
	Reference float64    `json:"reference" yaml:"reference"`
	Shifts    []ShiftRow `json:"shifts" yaml:"shifts"`
	Points    int        `json:"points" yaml:"points"`
}

// SpectrumRow summarises a relaxation spectrum.
type SpectrumRow struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Modes       int     `json:"modes" yaml:"modes"`
	DominantTau float64 `json:"dominant_tau" yaml:"dominant_tau"`
	Residual    float64 `json:"residual" yaml:"residual"`
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func finiteMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NewSummary digests per-temperature results.
func NewSummary(source string, results []analysis.Result) *Summary {
	s := &Summary{Source: source, Temperatures: make([]TemperatureRow, 0, len(results))}
	for _, r := range results {
		row := TemperatureRow{
			Temperature: r.Temperature,
			Valid:       r.Valid,
			Status:      r.Status.String(),
			Reason:      r.Reason,
			Quality:     r.Quality,
			Assessment:  r.Assessment,
		}
		if r.Valid {
			row.BestModel = r.Best
			row.Tier = quality.Tier(r.Quality).String()
			row.LowConfidence = r.LowConfidence
			if fit, ok := r.BestFit(); ok {
				row.R2 = finite(fit.R2)
				row.AICc = finite(fit.AICc)
				row.Params = finiteMap(fit.Params)
			}
			if tau, ok := r.CharacteristicTime(); ok {
				row.Tau = finite(tau)
			}
		}
		s.Temperatures = append(s.Temperatures, row)
	}
	return s
}

// AddKinetics appends a kinetics fit. Arrhenius rows also carry the Ea
// warning and, when gPlateauMPa is positive, the topology freezing
// temperature.
func (s *Summary) AddKinetics(fit kinetics.Fit, gPlateauMPa float64) {
	row := KineticsRow{Type: string(fit.Type), R2: finite(fit.R2), Params: finiteMap(fit.Params)}
	if fit.Type == kinetics.TypeArrhenius {
		row.Ea = finite(fit.Ea)
		row.Warning = fit.EaCheck.Warning(fit.Ea)
		if gPlateauMPa > 0 {
			if tv, err := kinetics.Tv(fit, gPlateauMPa); err == nil {
				row.Tv = finite(tv)
			}
		}
	}
	s.Kinetics = append(s.Kinetics, row)
}

// AddComparisons appends multi-sample Arrhenius summaries.
func (s *Summary) AddComparisons(cs []kinetics.Comparison) {
	for _, c := range cs {
		row := ComparisonRow{Name: c.Name, Tg: c.Tg, GPlateau: c.GPlateauMPa, Points: c.Used}
		if c.Err != nil {
			row.Error = c.Err.Error()
			s.Comparisons = append(s.Comparisons, row)
			continue
		}
		row.Ea = finite(c.Fit.Ea)
		row.R2 = finite(c.Fit.R2)
		row.Warning = c.Fit.EaCheck.Warning(c.Fit.Ea)
		if c.HasTv {
			row.Tv = finite(c.Tv)
		}
		s.Comparisons = append(s.Comparisons, row)
	}
}

// SetMastercurve records the mastercurve shifts.
func (s *Summary) SetMastercurve(mc tts.Mastercurve) {
	row := &MastercurveRow{Reference: mc.Reference, Points: len(mc.Time)}
	for _, sh := range mc.Shifts {
		row.Shifts = append(row.Shifts, ShiftRow{Temperature: sh.Temperature, Factor: sh.Factor})
	}
	s.Mastercurve = row
}

// SetSpectrum records a spectrum inverted from the curve at temp.
func (s *Summary) SetSpectrum(temp float64, sp spectrum.Spectrum, residual float64) {
	s.Spectrum = &SpectrumRow{
		Temperature: temp,
		Modes:       len(sp.H),
		DominantTau: sp.WeightedLogMeanTau(),
		Residual:    residual,
	}
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML writes the summary as YAML.
func WriteYAML(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

// WriteText writes aligned tables for people.
func WriteText(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Source: %s\n\n", s.Source)
	if len(s.Temperatures) > 0 {
		fmt.Fprintf(tw, "T (°C)\tStatus\tModel\ttau (s)\tR²\tAICc\tQuality\n")
		fmt.Fprintf(tw, "------\t------\t-----\t-------\t--\t----\t-------\n")
		for _, r := range s.Temperatures {
			model := r.BestModel
			if r.LowConfidence {
				model += "*"
			}
			if !r.Valid {
				model = r.Reason
			}
			fmt.Fprintf(tw, "%g\t%s\t%s\t%s\t%s\t%s\t%.0f%%\n",
				r.Temperature, r.Status, model, fmtPtr(r.Tau, "%.4g"), fmtPtr(r.R2, "%.4f"), fmtPtr(r.AICc, "%.1f"), r.Quality*100)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Kinetics) > 0 {
		fmt.Fprintln(w)
		for _, k := range s.Kinetics {
			fmt.Fprintf(w, "%s: R²=%s", k.Type, fmtPtr(k.R2, "%.4f"))
			if k.Ea != nil {
				fmt.Fprintf(w, " Ea=%.1f kJ/mol", *k.Ea)
			}
			if k.Tv != nil {
				fmt.Fprintf(w, " Tv=%.1f°C", *k.Tv)
			}
			keys := make([]string, 0, len(k.Params))
			for key := range k.Params {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(w, " %s=%.4g", key, k.Params[key])
			}
			fmt.Fprintln(w)
			if k.Warning != "" {
				fmt.Fprintf(w, "  warning: %s\n", k.Warning)
			}
		}
	}
	if mc := s.Mastercurve; mc != nil {
		fmt.Fprintf(w, "\nMastercurve at %g°C (%d points):", mc.Reference, mc.Points)
		for _, sh := range mc.Shifts {
			fmt.Fprintf(w, " aT(%g)=%.4g", sh.Temperature, sh.Factor)
		}
		fmt.Fprintln(w)
	}
	if sp := s.Spectrum; sp != nil {
		fmt.Fprintf(w, "\nSpectrum at %g°C: %d modes, dominant tau %.4g s, RMS residual %.3g\n",
			sp.Temperature, sp.Modes, sp.DominantTau, sp.Residual)
	}
	if len(s.Comparisons) > 0 {
		return writeComparisons(w, s.Comparisons)
	}
	return nil
}

func writeComparisons(w io.Writer, rows []ComparisonRow) error {
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Sample\tTg (°C)\tG' (MPa)\tPoints\tEa (kJ/mol)\tTv (°C)\tR²\tNote\n")
	fmt.Fprintf(tw, "------\t-------\t--------\t------\t-----------\t-------\t--\t----\n")
	for _, r := range rows {
		note := r.Warning
		if r.Error != "" {
			note = r.Error
		}
		fmt.Fprintf(tw, "%s\t%g\t%g\t%d\t%s\t%s\t%s\t%s\n",
			r.Name, r.Tg, r.GPlateau, r.Points, fmtPtr(r.Ea, "%.1f"), fmtPtr(r.Tv, "%.1f"), fmtPtr(r.R2, "%.4f"), note)
	}
	return tw.Flush()
}

func fmtPtr(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}
