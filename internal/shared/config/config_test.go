package config

import (
	"testing"
	"time"
)

func TestNormalizeEnv(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "prod", want: "production"},
		{in: "PRODUCTION", want: "production"},
		{in: "staging", want: "staging"},
		{in: "local", want: "local"},
		{in: "dev", want: "dev"},
		{in: "nonsense", want: "dev"},
		{in: "", want: "dev"},
	}
	for _, tt := range tests {
		if got := normalizeEnv(tt.in); got != tt.want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "45s")
	if got := getDuration("TEST_DURATION", time.Second); got != 45*time.Second {
		t.Fatalf("expected 45s, got %s", got)
	}

	t.Setenv("TEST_DURATION", "garbage")
	if got := getDuration("TEST_DURATION", 7*time.Second); got != 7*time.Second {
		t.Fatalf("expected default on invalid value, got %s", got)
	}

	t.Setenv("TEST_DURATION", "-3s")
	if got := getDuration("TEST_DURATION", 7*time.Second); got != 7*time.Second {
		t.Fatalf("expected default on negative value, got %s", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" a.example.com , b.example.com ,, ")
	if len(got) != 2 || got[0] != "a.example.com" || got[1] != "b.example.com" {
		t.Fatalf("unexpected result: %v", got)
	}
}
