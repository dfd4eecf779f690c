package export

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Report collects the profiles of one run.
type Report struct {
	Version  string    `yaml:"version"`
	RunID    string    `yaml:"run_id"`
	Created  time.Time `yaml:"created"`
	Profiles []Profile `yaml:"profiles"`
}

// Profile is the projection of a single frame or page.
type Profile struct {
	Source      string    `yaml:"source"`
	Page        int       `yaml:"page"`
	Orientation string    `yaml:"orientation"` // "x" = per column, "y" = per row
	Region      string    `yaml:"region,omitempty"`
	Width       int       `yaml:"width"`
	Height      int       `yaml:"height"`
	Total       float64   `yaml:"total"`
	PeakIndex   int       `yaml:"peak_index"`
	PeakValue   float64   `yaml:"peak_value"`
	Sums        []float64 `yaml:"sums,flow"`
	Normalized  []float64 `yaml:"normalized,flow"`
}

// WriteReport writes a report to a YAML file
func WriteReport(report *Report, path string) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadReport reads a report from a YAML file
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
