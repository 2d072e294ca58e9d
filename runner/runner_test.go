package runner

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"microtest/assert"
	"microtest/internal/ctxlog"
	"microtest/internal/domain"
	"microtest/registry"
	"microtest/report"
)

type outcome struct {
	Name    string
	Outcome domain.Outcome
	Detail  string
}

func outcomes(rec *report.Recorder) []outcome {
	var out []outcome
	for _, r := range rec.Results() {
		out = append(out, outcome{Name: r.Name, Outcome: r.Outcome, Detail: r.Detail})
	}
	return out
}

func run(t *testing.T, reg *registry.Registry, opts ...Option) (domain.Summary, *report.Recorder) {
	t.Helper()
	rec := &report.Recorder{}
	summary := New(reg, rec, opts...).Run(context.Background())
	return summary, rec
}

func TestRun_ScenarioA(t *testing.T) {
	reg := registry.New()
	reg.Register("T1", func() { assert.True(1 == 1) })
	reg.Register("T2", func() { assert.True(1 == 2) })

	var out, errOut bytes.Buffer
	summary := New(reg, report.NewConsole(&out, &errOut, true)).Run(context.Background())

	require.Equal(t, 2, summary.Total)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, report.ExitTestsFailed, report.ExitCode(summary))
	require.Equal(t, "{ running} T1\n{      ok} T1\n{ running} T2\n{  failed} T2\n\tAssertion failed: 1 == 2\n", out.String())
	require.Equal(t, "{ summary} 1 tests failed (50.00%)\n", errOut.String())
}

func TestRun_ScenarioB(t *testing.T) {
	reg := registry.New()
	reg.Register("no assertions", func() {})

	summary, _ := run(t, reg)
	require.Equal(t, domain.Summary{Total: 1, Passed: 1}, summary)
	require.Equal(t, report.ExitOK, report.ExitCode(summary))
}

func TestRun_ScenarioC(t *testing.T) {
	reg := registry.New()
	reg.Register("same", func() { assert.StringEqual("abc", "abc") })
	reg.Register("different", func() { assert.StringEqual("abc", "abd") })

	summary, rec := run(t, reg)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, []outcome{
		{Name: "same", Outcome: domain.Passed},
		{Name: "different", Outcome: domain.Failed, Detail: `"abc" == "abd"`},
	}, outcomes(rec))
}

func TestRun_Empty(t *testing.T) {
	var out, errOut bytes.Buffer
	summary := New(registry.New(), report.NewConsole(&out, &errOut, true)).Run(context.Background())

	require.Equal(t, 0, summary.Total)
	require.Equal(t, 0, summary.Failed)
	require.Equal(t, report.ExitOK, report.ExitCode(summary))
	require.Equal(t, "{ summary} All tests succeeded!\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRun_OrderAndIsolation(t *testing.T) {
	reg := registry.New()
	var ran []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		name := name
		reg.Register(name, func() {
			ran = append(ran, name)
			assert.False(name == "b" || name == "d")
		})
	}

	summary, rec := run(t, reg)
	require.Equal(t, []string{"a", "b", "c", "d", "e"}, ran)
	require.Equal(t, 5, summary.Total)
	require.Equal(t, 2, summary.Failed)
	require.Equal(t, 3, summary.Passed)

	failed := 0
	for _, r := range rec.Results() {
		if r.Outcome == domain.Failed {
			failed++
		}
	}
	require.Equal(t, failed, summary.Failed)
}

func TestRun_AssertionStopsOnlyItsBody(t *testing.T) {
	reg := registry.New()
	afterFailure := false
	nextRan := false
	reg.Register("fails", func() {
		assert.Equal(1, 2)
		afterFailure = true
	})
	reg.Register("next", func() { nextRan = true })

	_, rec := run(t, reg)
	require.False(t, afterFailure)
	require.True(t, nextRan)
	require.Equal(t, "Actual values: 1 != 2", rec.Results()[0].Extra)
}

func TestRun_NonAssertionFaults(t *testing.T) {
	reg := registry.New()
	zero := 0
	reg.Register("divides", func() { _ = 1 / zero })
	reg.Register("panics", func() { panic("boom") })
	reg.Register("exits", func() { runtime.Goexit() })
	reg.Register("nil body", nil)
	reg.Register("still runs", func() {})

	summary, rec := run(t, reg)
	require.Equal(t, domain.Summary{Total: 5, Passed: 1, Errored: 4}, summary)

	results := rec.Results()
	require.Equal(t, "runtime error: integer divide by zero", results[0].Detail)
	require.Empty(t, results[0].Extra)
	require.Equal(t, "boom", results[1].Detail)
	require.Equal(t, "test body called runtime.Goexit", results[2].Detail)
	require.Equal(t, domain.Errored, results[3].Outcome)
	require.Equal(t, domain.Passed, results[4].Outcome)
	require.Equal(t, report.ExitTestsFailed, report.ExitCode(summary))
}

func TestRun_PanicStackOnlyAtDebugLevel(t *testing.T) {
	newRegistry := func() *registry.Registry {
		reg := registry.New()
		reg.Register("panics", func() { panic("boom") })
		return reg
	}

	t.Run("default level", func(t *testing.T) {
		var out, errOut, logs bytes.Buffer
		ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("warn", "text", &logs))
		New(newRegistry(), report.NewConsole(&out, &errOut, true)).Run(ctx)

		require.Equal(t, "{ running} panics\n{ errored} panics\n\tPanic: boom\n", out.String())
		require.NotContains(t, out.String(), "goroutine")
		require.NotContains(t, logs.String(), "goroutine")
	})

	t.Run("debug level", func(t *testing.T) {
		var out, errOut, logs bytes.Buffer
		ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("debug", "text", &logs))
		New(newRegistry(), report.NewConsole(&out, &errOut, true)).Run(ctx)

		require.NotContains(t, out.String(), "goroutine")
		require.Contains(t, logs.String(), "test panicked")
		require.Contains(t, logs.String(), "goroutine")
	})
}

func TestRun_DuplicateNamesBothRun(t *testing.T) {
	reg := registry.New()
	count := 0
	reg.Register("dup", func() { count++ })
	reg.Register("dup", func() { count++ })

	var logs bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("warn", "text", &logs))
	summary := New(reg, &report.Recorder{}).Run(ctx)

	require.Equal(t, 2, count)
	require.Equal(t, 2, summary.Total)
	require.Contains(t, logs.String(), "duplicate test name")
	require.Contains(t, logs.String(), "name=dup")
}

func TestRun_FailFast(t *testing.T) {
	reg := registry.New()
	reg.Register("passes", func() {})
	reg.Register("fails", func() { assert.Fail("stop here") })
	reg.Register("skipped", func() { t.Error("should not run") })

	summary, rec := run(t, reg, WithFailFast())
	require.Equal(t, domain.Summary{Total: 2, Passed: 1, Failed: 1}, summary)
	require.Len(t, rec.Results(), 2)
}

func TestRun_CancelledContext(t *testing.T) {
	reg := registry.New()
	ctx, cancel := context.WithCancel(context.Background())
	reg.Register("cancels", func() { cancel() })
	reg.Register("not run", func() { t.Error("should not run") })

	rec := &report.Recorder{}
	summary := New(reg, rec).Run(ctx)
	require.Equal(t, domain.Summary{Total: 1, Passed: 1}, summary)
}

func TestRun_SealsRegistry(t *testing.T) {
	reg := registry.New()
	reg.Register("registers late", func() {
		reg.Register("late", func() {})
	})

	summary, rec := run(t, reg)
	require.True(t, reg.Sealed())
	require.Equal(t, 1, summary.Errored)
	require.Equal(t, registry.ErrSealed.Error(), rec.Results()[0].Detail)
}

func TestRun_Durations(t *testing.T) {
	reg := registry.New()
	reg.Register("a", func() {})
	reg.Register("b", func() {})

	base := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	summary, rec := run(t, reg, WithClock(clock))
	// run start, a start, a end, b start, b end, run end
	require.Equal(t, 5*time.Second, summary.Duration)
	for _, r := range rec.Results() {
		require.Equal(t, time.Second, r.Duration)
	}

	s, done := rec.RunSummary()
	require.True(t, done)
	require.Empty(t, cmp.Diff(summary, s))
}
