// Package config loads and saves the RunConfig YAML document that seeds a
// TimeDriver run: the well-known ParXChange date/logging keys plus report
// formatting knobs. Mirrors the teacher's cmd/default_config.go /
// cmd/coefficients_config.go grouping of CLI-adjacent config into one
// struct per concern, strict-decoded with gopkg.in/yaml.v3.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robknapen/WISS-Framework/sim/parx"
	"github.com/robknapen/WISS-Framework/sim/simx"
	"github.com/robknapen/WISS-Framework/sim/unit"
)

const dateLayout = "2006-01-02"

// RunConfig groups the well-known ParXChange keys the driver reads
// (StartDate, EndDate, PauseDate, TraceLogging) with the report writer's
// formatting parameters.
type RunConfig struct {
	RunID     string `yaml:"run_id"`
	StartDate string `yaml:"start_date"` // YYYY-MM-DD
	EndDate   string `yaml:"end_date"`   // YYYY-MM-DD
	PauseDate string `yaml:"pause_date,omitempty"`

	TraceLogging bool `yaml:"trace_logging"`

	ReportPath    string `yaml:"report_path"`
	Separator     string `yaml:"separator"`
	CommentPrefix string `yaml:"comment_prefix"`
	EmptyValue    string `yaml:"empty_value"`
}

// Default returns a RunConfig with the conventional report formatting
// defaults and a one-year placeholder date period; callers are expected to
// override StartDate/EndDate/RunID before use.
func Default() RunConfig {
	return RunConfig{
		RunID:         "run-001",
		StartDate:     "2020-01-01",
		EndDate:       "2020-12-31",
		TraceLogging:  false,
		ReportPath:    "report.txt",
		Separator:     "\t",
		CommentPrefix: "#",
		EmptyValue:    "-",
	}
}

// Load strict-decodes path into a RunConfig (unknown fields are a load
// error, matching the teacher's defaults.yaml loader).
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config.Load : reading %s : %w", path, err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config.Load : parsing %s : %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, fmt.Errorf("config.Load : %s : %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating or truncating the file.
func Save(path string, cfg RunConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config.Save : marshalling : %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config.Save : writing %s : %w", path, err)
	}
	return nil
}

// Validate checks the required fields parse and the date period is sane.
func (c RunConfig) Validate() error {
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return fmt.Errorf("start_date %q : %w", c.StartDate, err)
	}
	end, err := time.Parse(dateLayout, c.EndDate)
	if err != nil {
		return fmt.Errorf("end_date %q : %w", c.EndDate, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end_date %s precedes start_date %s", c.EndDate, c.StartDate)
	}
	if c.PauseDate != "" {
		if _, err := time.Parse(dateLayout, c.PauseDate); err != nil {
			return fmt.Errorf("pause_date %q : %w", c.PauseDate, err)
		}
	}
	return nil
}

// ToParXChange builds a ParXChange preloaded with the well-known
// STARTDATE/ENDDATE/PAUSEDATE/TRACELOGGING keys the TimeDriver reads.
func (c RunConfig) ToParXChange() *parx.ParXChange {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config.RunConfig.ToParXChange : %v", err))
	}
	p := parx.New()

	start, _ := time.Parse(dateLayout, c.StartDate)
	end, _ := time.Parse(dateLayout, c.EndDate)
	p.Set("STARTDATE", parx.TypeDate, start, unit.DATE, false)
	p.Set("ENDDATE", parx.TypeDate, end, unit.DATE, false)
	if c.PauseDate != "" {
		pause, _ := time.Parse(dateLayout, c.PauseDate)
		p.Set("PAUSEDATE", parx.TypeDate, pause, unit.DATE, false)
	}
	p.Set("TRACELOGGING", parx.TypeBool, c.TraceLogging, unit.NA, false)
	return p
}

// ReportConfig builds the simx.ReportConfig this RunConfig describes. The
// caller supplies runDate (normally the actual run's start time) so the
// report header stays reproducible rather than depending on wall-clock time.
func (c RunConfig) ReportConfig(runDate time.Time) simx.ReportConfig {
	rc := simx.DefaultReportConfig(c.RunID)
	if c.Separator != "" {
		rc.Separator = c.Separator
	}
	if c.CommentPrefix != "" {
		rc.CommentPrefix = c.CommentPrefix
	}
	if c.EmptyValue != "" {
		rc.EmptyValue = c.EmptyValue
	}
	rc.RunDate = runDate
	return rc
}
