package model

import "time"

// Metric is a single KPI compared against its benchmark.
type Metric struct {
    Name      string  `json:"metric" yaml:"metric"`
    Value     float64 `json:"value" yaml:"value"`
    Benchmark float64 `json:"benchmark,omitempty" yaml:"benchmark"`
    Status    string  `json:"status,omitempty" yaml:"status"`
    Context   string  `json:"context,omitempty" yaml:"context"`
}

// Analysis is post-launch performance for a brief. The zero value is the empty form.
type Analysis struct {
    BriefID       string     `json:"brief_id,omitempty" yaml:"brief_id"`
    Metrics       []Metric   `json:"performance_metrics,omitempty" yaml:"performance_metrics"`
    KeyFindings   []string   `json:"key_findings,omitempty" yaml:"key_findings"`
    NextIteration []string   `json:"next_iteration,omitempty" yaml:"next_iteration"`
    AnalyzedAt    *time.Time `json:"analyzed_at,omitempty" yaml:"analyzed_at"`
    Found         bool       `json:"has_data" yaml:"-"`
}

func (a Analysis) HasData() bool { return a.Found }
