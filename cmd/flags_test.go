package cmd

import (
	"reflect"
	"testing"
	"time"

	"github.com/Tiliavir/healthsync/internal/model"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"sleep", []string{"sleep"}},
		{"sleep, work ,,run", []string{"sleep", "work", "run"}},
	}
	for _, tt := range tests {
		got := splitTags(tt.input)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitTags(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDateOrToday(t *testing.T) {
	got, err := dateOrToday("2024-03-01")
	if err != nil || got != "2024-03-01" {
		t.Fatalf("dateOrToday(2024-03-01) = %q, %v", got, err)
	}
	if _, err := dateOrToday("01.03.2024"); err == nil {
		t.Error("expected error for malformed date")
	}
	got, err = dateOrToday("")
	if err != nil || len(got) != len("2006-01-02") {
		t.Errorf("dateOrToday(\"\") = %q, %v", got, err)
	}
}

func TestBuildReading(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	r, err := buildReading("bloodPressure", "120/80", "mmHg", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bp, ok := r.Value.Pair()
	if !ok || bp.Systolic != 120 || bp.Diastolic != 80 {
		t.Errorf("value = %v, want 120/80", r.Value)
	}
	if r.Timestamp == nil || !r.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, now)
	}

	r, err = buildReading("glucose", "95.5", "mg/dL", "fasting", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := r.Value.Scalar(); !ok || v != 95.5 {
		t.Errorf("value = %v, want 95.5", r.Value)
	}

	bad := []struct{ typ, value string }{
		{"cholesterol", "180"},
		{"glucose", "abc"},
		{"glucose", "120/80"},
		{"bloodPressure", "120"},
	}
	for _, b := range bad {
		if _, err := buildReading(b.typ, b.value, "", "", now); err == nil {
			t.Errorf("buildReading(%q, %q): expected error", b.typ, b.value)
		}
	}
}

func TestFilterDated(t *testing.T) {
	entries := []model.DiaryEntry{
		{ID: "a", Date: "2024-02-25T00:00:00.000Z"},
		{ID: "b", Date: "2024-02-26"},
		{ID: "c", Date: "2024-03-03T00:00:00.000Z"},
		{ID: "d", Date: "2024-03-04"},
	}
	got := filterDated(entries, "2024-02-26", "2024-03-03")
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "c" {
		t.Errorf("filterDated = %+v, want entries b and c", got)
	}
}
