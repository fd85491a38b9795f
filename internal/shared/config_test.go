package shared_test

import (
	"testing"
	"time"

	"room_balancer/internal/shared"
)

func TestLoad_RequestTimeoutExceedsAdvisorTimeout(t *testing.T) {
	cases := []struct {
		name          string
		http, advisor string
		want          time.Duration
	}{
		{"defaults", "", "", 30 * time.Second},
		{"explicit", "45", "20", 45 * time.Second},
		{"too short", "15", "20", 25 * time.Second},
		{"equal", "20", "20", 25 * time.Second},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HTTP_TIMEOUT_SECONDS", tc.http)
			t.Setenv("ADVISOR_TIMEOUT_SECONDS", tc.advisor)
			cfg := shared.Load()
			if cfg.HTTPTimeout != tc.want {
				t.Fatalf("http timeout: got %v want %v", cfg.HTTPTimeout, tc.want)
			}
			if cfg.HTTPTimeout <= cfg.AdvisorTimeout {
				t.Fatalf("http timeout %v must exceed advisor timeout %v", cfg.HTTPTimeout, cfg.AdvisorTimeout)
			}
		})
	}
}
