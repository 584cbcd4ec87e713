package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPoolStatsPayload(t *testing.T) {
	b, err := json.Marshal(PoolStats{
		TotalConns:   3,
		IdleConns:    2,
		MaxConns:     10,
		WaitDuration: "1.5ms",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	for _, key := range []string{"total_conns", "idle_conns", "acquired_conns", "max_conns", "acquire_count", "wait_duration"} {
		if !strings.Contains(body, `"`+key+`"`) {
			t.Errorf("expected %s in stats payload, got %s", key, body)
		}
	}
}
