package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("lex")
	tm.End(idx, "12 tokens")
	tm.Time("parse", func() { time.Sleep(time.Millisecond) })

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[1].Name != "parse" || report.Phases[1].DurationMS < 1 {
		t.Errorf("unexpected parse phase: %+v", report.Phases[1])
	}
	if report.TotalMS < report.Phases[1].DurationMS {
		t.Errorf("total %.3f below a single phase", report.TotalMS)
	}

	summary := tm.Summary()
	if !strings.Contains(summary, "// 12 tokens") || !strings.Contains(summary, "total") {
		t.Errorf("unexpected summary:\n%s", summary)
	}
}

func TestTimerMerge(t *testing.T) {
	total := NewTimer()
	for range 3 {
		one := NewTimer()
		one.End(one.Begin("parse"), "")
		one.End(one.Begin("eval"), "")
		total.Merge(one)
	}

	report := total.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected phases merged by name, got %+v", report.Phases)
	}
	for _, p := range report.Phases {
		if p.Count != 3 {
			t.Errorf("phase %s count = %d, want 3", p.Name, p.Count)
		}
	}
	if !strings.Contains(total.Summary(), "x3") {
		t.Errorf("summary lacks run count:\n%s", total.Summary())
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("End on a missing index created a phase")
	}
}
