package config

import (
	"testing"
	"time"
)

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestDurationEnvOrDefault(t *testing.T) {
	t.Setenv("DUR_TEST", "30m")
	if got := durationEnvOrDefault("DUR_TEST", time.Hour); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %v", got)
	}

	t.Setenv("DUR_TEST", "not-a-duration")
	if got := durationEnvOrDefault("DUR_TEST", time.Hour); got != time.Hour {
		t.Fatalf("expected default on parse failure, got %v", got)
	}

	t.Setenv("DUR_TEST", "-5m")
	if got := durationEnvOrDefault("DUR_TEST", time.Hour); got != time.Hour {
		t.Fatalf("expected default on non-positive duration, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "45")
	if got := intEnvOrDefault("INT_TEST", 90); got != 45 {
		t.Fatalf("expected 45, got %d", got)
	}

	t.Setenv("INT_TEST", "0")
	if got := intEnvOrDefault("INT_TEST", 90); got != 90 {
		t.Fatalf("expected default on non-positive value, got %d", got)
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", "NBA, wnba ,nhl,")
	got := listEnvOrDefault("LIST_TEST", nil)
	want := []string{"nba", "wnba", "nhl"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	t.Setenv("LIST_TEST", " , ")
	if got := listEnvOrDefault("LIST_TEST", nil); got != nil {
		t.Fatalf("expected nil for blank list, got %v", got)
	}
}
