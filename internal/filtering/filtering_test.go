package filtering

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/skillmatch/internal/records"
)

func pool() *records.Candidates {
	return &records.Candidates{Items: []*records.Candidate{
		{ID: "1", Skills: []string{"Go", "Docker"}, ExperienceYears: 1, CPDLevel: 1},
		{ID: "2", Skills: []string{"Python"}, ExperienceYears: 4, CPDLevel: 3},
		{ID: "3", Skills: []string{"the", "and"}, ExperienceYears: 10, CPDLevel: 5},
		{ID: "4", Skills: nil, ExperienceYears: 15, CPDLevel: 6},
	}}
}

func TestExperienceRange(t *testing.T) {
	tests := []struct {
		r    string
		want []string
	}{
		{r: "", want: []string{"1", "2", "3", "4"}},
		{r: "any", want: []string{"1", "2", "3", "4"}},
		{r: "0-2", want: []string{"1"}},
		{r: "3-5", want: []string{"2"}},
		{r: "6-10", want: []string{"3"}},
		{r: "10+", want: []string{"3", "4"}},
	}

	for _, tt := range tests {
		f := NewExperienceRange(tt.r)
		if err := f.Validate(); err != nil {
			t.Fatalf("range %q: unexpected validation error: %v", tt.r, err)
		}

		got, info, err := f.Apply(context.Background(), pool())
		if err != nil {
			t.Fatalf("range %q: %v", tt.r, err)
		}
		if !reflect.DeepEqual(got.IDs(), tt.want) {
			t.Fatalf("range %q: expected %v, got %v", tt.r, tt.want, got.IDs())
		}
		if info.Initial != 4 || info.Left != len(tt.want) || info.Dropped != 4-len(tt.want) {
			t.Fatalf("range %q: unexpected step %+v", tt.r, info)
		}
	}
}

func TestExperienceRangeUnknown(t *testing.T) {
	if err := NewExperienceRange("2-4").Validate(); err == nil {
		t.Fatalf("expected validation error for unknown range")
	}
}

func TestCPDLevel(t *testing.T) {
	got, info, err := NewCPDLevel(3).Apply(context.Background(), pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.IDs(), []string{"2"}) {
		t.Fatalf("unexpected candidates: %v", got.IDs())
	}
	if !reflect.DeepEqual(info.Excluded, []string{"1", "3", "4"}) {
		t.Fatalf("unexpected excluded: %v", info.Excluded)
	}

	got, _, err = NewCPDLevel(0).Apply(context.Background(), pool())
	if err != nil || got.Len() != 4 {
		t.Fatalf("level 0 should keep everyone, got %d (%v)", got.Len(), err)
	}

	if err := NewCPDLevel(7).Validate(); err == nil {
		t.Fatalf("expected validation error for level 7")
	}
}

func TestRequireSkills(t *testing.T) {
	f := NewRequireSkills(true)
	got, _, err := f.Apply(context.Background(), pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.IDs(), []string{"1", "2"}) {
		t.Fatalf("unexpected candidates: %v", got.IDs())
	}

	if NewRequireSkills(false).IsEnabled() {
		t.Fatalf("expected filter to be disabled")
	}
}

func TestExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	excluded := &records.ExcludedCandidates{Items: []*records.ExcludedCandidate{{ID: "2"}, {ID: "4"}}}
	if err := excluded.ToFile(path); err != nil {
		t.Fatalf("writing exclude file: %v", err)
	}

	got, info, err := NewExcludeFile(path).Apply(context.Background(), pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.IDs(), []string{"1", "3"}) {
		t.Fatalf("unexpected candidates: %v", got.IDs())
	}
	if info.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", info.Dropped)
	}

	got, _, err = NewExcludeFile("  ").Apply(context.Background(), pool())
	if err != nil || got.Len() != 4 {
		t.Fatalf("empty path should keep everyone, got %d (%v)", got.Len(), err)
	}
}

func TestExcludeFileBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "excluded.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, _, err := NewExcludeFile(path).Apply(context.Background(), pool()); err == nil {
		t.Fatalf("expected error for broken exclude file")
	}
}

func TestRunLogsSteps(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	f := New([]Filter{
		NewExperienceRange("0-2"),
		NewRequireSkills(false),
		NewCPDLevel(0),
	}, zap.New(core))

	got, err := f.Run(context.Background(), pool())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got.IDs(), []string{"1"}) {
		t.Fatalf("unexpected candidates: %v", got.IDs())
	}

	entries := observed.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	first := entries[0].ContextMap()
	if entries[0].Message != "filter step" || first["name"] != "experience" || first["dropped"] != int64(3) {
		t.Fatalf("unexpected first entry: %s %v", entries[0].Message, first)
	}
	if entries[1].Message != "filter disabled" || entries[1].ContextMap()["name"] != "require_skills" {
		t.Fatalf("unexpected second entry: %s %v", entries[1].Message, entries[1].ContextMap())
	}
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	f := New([]Filter{NewCPDLevel(3), NewExperienceRange("forever")}, zap.New(core))
	if _, err := f.Run(context.Background(), pool()); err == nil {
		t.Fatalf("expected validation error")
	}
	if observed.Len() != 0 {
		t.Fatalf("expected no applied steps, got %d log entries", observed.Len())
	}

	f.DisableByName("experience", "off for test")
	got, err := f.Run(context.Background(), pool())
	if err != nil {
		t.Fatalf("unexpected error after disabling: %v", err)
	}
	if got.Len() != 1 {
		t.Fatalf("expected 1 candidate, got %d", got.Len())
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New([]Filter{NewCPDLevel(1)}, nil).Run(ctx, pool())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	f := New([]Filter{NewExperienceRange("3-5"), NewRequireSkills(false), NewExcludeFile("/tmp/x.json")}, nil)

	statuses := f.Describe()
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if statuses[0].Details["range"] != "3-5" || !statuses[0].Enabled {
		t.Fatalf("unexpected experience status: %+v", statuses[0])
	}
	if statuses[1].Enabled || statuses[1].Reason != "not requested" {
		t.Fatalf("unexpected require_skills status: %+v", statuses[1])
	}
	if statuses[2].Details["path"] != "/tmp/x.json" {
		t.Fatalf("unexpected exclude_file status: %+v", statuses[2])
	}
}
