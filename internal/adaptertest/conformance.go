// Package adaptertest provides a conformance suite every shell adapter must
// pass: zero exit on success, non-zero exit with stderr on failure, and a
// bounded, non-zero result when the context ends while the shell hangs.
package adaptertest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/wake/snikket-web-portal/internal/adapter"
)

// Script names commands with known behavior for the adapter under test.
type Script struct {
	// SuccessCommand exits 0 and writes SuccessStdout.
	SuccessCommand string
	SuccessStdout  string
	// FailureCommand exits non-zero and writes to stderr.
	FailureCommand string
	// HangingCommand does not exit on its own.
	HangingCommand string
	// MaxCancelLatency bounds how long Run may take after ctx ends.
	MaxCancelLatency time.Duration
}

// ConformanceResult represents the result of a conformance test.
type ConformanceResult struct {
	TestName string
	Passed   bool
	Error    string
	Duration time.Duration
	Details  map[string]interface{}
}

// ConformanceReport represents the complete conformance test report.
type ConformanceReport struct {
	AdapterName   string
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Results       []ConformanceResult
	OverallPassed bool
	Duration      time.Duration
}

// RunConformance runs the complete conformance suite for an adapter.
func RunConformance(t *testing.T, newAdapter func() adapter.IShellAdapter, script Script) {
	t.Helper()
	startTime := time.Now()

	report := &ConformanceReport{
		AdapterName:   newAdapter().Name(),
		Results:       []ConformanceResult{},
		OverallPassed: true,
	}

	runSuccessTests(newAdapter, script, report)
	runFailureTests(newAdapter, script, report)
	runIdempotencyTests(newAdapter, script, report)
	runCancellationTests(newAdapter, script, report)

	report.Duration = time.Since(startTime)
	printConformanceReport(t, report)

	if !report.OverallPassed {
		t.Fatalf("Adapter conformance test failed: %d/%d tests passed", report.PassedTests, report.TotalTests)
	}
}

func runSuccessTests(newAdapter func() adapter.IShellAdapter, script Script, report *ConformanceReport) {
	result := ConformanceResult{TestName: "Run_Success", Details: map[string]interface{}{}}
	start := time.Now()

	r := newAdapter().Run(context.Background(), script.SuccessCommand)
	result.Duration = time.Since(start)

	switch {
	case r.ExitStatus != 0:
		result.Error = fmt.Sprintf("exit status %d, stderr %q", r.ExitStatus, r.Stderr)
	case r.Err != nil:
		result.Error = fmt.Sprintf("unexpected error: %v", r.Err)
	case r.Stdout != script.SuccessStdout:
		result.Error = fmt.Sprintf("stdout %q, want %q", r.Stdout, script.SuccessStdout)
	default:
		result.Passed = true
		result.Details["stdoutBytes"] = len(r.Stdout)
	}

	report.addResult(result)
}

func runFailureTests(newAdapter func() adapter.IShellAdapter, script Script, report *ConformanceReport) {
	result := ConformanceResult{TestName: "Run_Failure", Details: map[string]interface{}{}}
	start := time.Now()

	r := newAdapter().Run(context.Background(), script.FailureCommand)
	result.Duration = time.Since(start)

	switch {
	case r.ExitStatus == 0:
		result.Error = "failure command exited 0"
	case strings.TrimSpace(r.Stderr) == "":
		result.Error = "failure command left stderr empty"
	default:
		result.Passed = true
		result.Details["exitStatus"] = r.ExitStatus
		result.Details["class"] = fmt.Sprint(adapter.Classify(r))
	}

	report.addResult(result)
}

func runIdempotencyTests(newAdapter func() adapter.IShellAdapter, script Script, report *ConformanceReport) {
	result := ConformanceResult{TestName: "Run_Repeatable", Details: map[string]interface{}{}}
	start := time.Now()

	a := newAdapter()
	first := a.Run(context.Background(), script.SuccessCommand)
	second := a.Run(context.Background(), script.SuccessCommand)
	result.Duration = time.Since(start)

	if first.ExitStatus != second.ExitStatus || first.Stdout != second.Stdout {
		result.Error = fmt.Sprintf("results differ: %+v vs %+v", first, second)
	} else {
		result.Passed = true
	}

	report.addResult(result)
}

func runCancellationTests(newAdapter func() adapter.IShellAdapter, script Script, report *ConformanceReport) {
	maxLatency := script.MaxCancelLatency
	if maxLatency == 0 {
		maxLatency = 5 * time.Second
	}

	for _, tc := range []struct {
		name string
		want error
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"Run_Timeout", adapter.ErrTimeout, func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 100*time.Millisecond)
		}},
		{"Run_Canceled", adapter.ErrCanceled, func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			time.AfterFunc(100*time.Millisecond, cancel)
			return ctx, cancel
		}},
	} {
		result := ConformanceResult{TestName: tc.name, Details: map[string]interface{}{}}
		ctx, cancel := tc.ctx()
		start := time.Now()

		r := newAdapter().Run(ctx, script.HangingCommand)
		result.Duration = time.Since(start)
		cancel()

		switch {
		case r.ExitStatus == 0:
			result.Error = "hanging command reported success"
		case !errors.Is(r.Err, tc.want):
			result.Error = fmt.Sprintf("error %v, want %v", r.Err, tc.want)
		case result.Duration > maxLatency:
			result.Error = fmt.Sprintf("run took %v after cancellation, limit %v", result.Duration, maxLatency)
		default:
			result.Passed = true
			result.Details["exitStatus"] = r.ExitStatus
		}

		report.addResult(result)
	}
}

func (r *ConformanceReport) addResult(result ConformanceResult) {
	r.TotalTests++
	if result.Passed {
		r.PassedTests++
	} else {
		r.FailedTests++
		r.OverallPassed = false
	}
	r.Results = append(r.Results, result)
}

func printConformanceReport(t *testing.T, report *ConformanceReport) {
	t.Logf("\n%s", strings.Repeat("=", 80))
	t.Logf("SHELL ADAPTER CONFORMANCE REPORT")
	t.Logf("%s", strings.Repeat("=", 80))
	t.Logf("Adapter: %s", report.AdapterName)
	t.Logf("Total Tests: %d", report.TotalTests)
	t.Logf("Passed: %d", report.PassedTests)
	t.Logf("Failed: %d", report.FailedTests)
	t.Logf("Overall: %s", map[bool]string{true: "PASS", false: "FAIL"}[report.OverallPassed])
	t.Logf("Duration: %v", report.Duration)
	t.Logf("%s", strings.Repeat("-", 80))

	t.Logf("%-30s %-8s %-12s %-s", "TEST NAME", "RESULT", "DURATION", "DETAILS")
	t.Logf("%s", strings.Repeat("-", 80))

	for _, result := range report.Results {
		status := "PASS"
		if !result.Passed {
			status = "FAIL"
		}

		details := result.Error
		if details == "" && len(result.Details) > 0 {
			var detailParts []string
			for k, v := range result.Details {
				detailParts = append(detailParts, fmt.Sprintf("%s=%v", k, v))
			}
			details = strings.Join(detailParts, ", ")
		}

		t.Logf("%-30s %-8s %-12s %-s", result.TestName, status, result.Duration.String(), details)
	}

	t.Logf("%s", strings.Repeat("=", 80))
}
