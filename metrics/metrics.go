// Package metrics computes rolling success-rate and response-time figures
// from recent execution records. Agent and team paths share it so both kinds
// of metrics stay directly comparable.
package metrics

import (
	"math"
	"time"

	"github.com/hupe1980/agenthub/core"
)

// Window caps how many recent executions feed the rolling metrics. Keeping
// the window small bounds query cost and keeps the figures responsive to
// recent behavior instead of the full history.
const Window = 100

// Sample is the slice of an execution record the aggregator needs.
type Sample struct {
	Status   core.ExecutionStatus
	Duration time.Duration
}

// Metrics holds the rolling figures stored back on an agent or team.
type Metrics struct {
	SuccessRate     float64 // percentage, one decimal
	AvgResponseTime float64 // whole milliseconds
}

// Compute derives rolling metrics from the supplied samples. Failed
// executions count against the success rate; the average response time is
// taken over completed executions that recorded a positive duration.
func Compute(samples []Sample) Metrics {
	if len(samples) == 0 {
		return Metrics{}
	}
	if len(samples) > Window {
		samples = samples[:Window]
	}

	var completed, timed int
	var totalMillis float64
	for _, s := range samples {
		if s.Status != core.StatusCompleted {
			continue
		}
		completed++
		if s.Duration > 0 {
			timed++
			totalMillis += float64(s.Duration.Milliseconds())
		}
	}

	rate := float64(completed) / float64(len(samples)) * 100

	var avg float64
	if timed > 0 {
		avg = math.Round(totalMillis / float64(timed))
	}

	return Metrics{
		SuccessRate:     math.Round(rate*10) / 10,
		AvgResponseTime: avg,
	}
}

// AgentSamples projects agent execution records into metric samples.
func AgentSamples(execs []core.AgentExecution) []Sample {
	samples := make([]Sample, len(execs))
	for i, e := range execs {
		samples[i] = Sample{Status: e.Status, Duration: e.Duration}
	}
	return samples
}

// TeamSamples projects team execution records into metric samples.
func TeamSamples(execs []core.TeamExecution) []Sample {
	samples := make([]Sample, len(execs))
	for i, e := range execs {
		samples[i] = Sample{Status: e.Status, Duration: e.Duration}
	}
	return samples
}
