package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/dashboard", "GET", 200)
	m.RecordRequest("/dashboard", "GET", 200)
	m.RecordError("/login", "POST", "BACKEND_ERROR")
	m.RecordBackendCall("login", 401, 10*time.Millisecond)
	m.RecordBackendCall("login", 401, 30*time.Millisecond)

	snap := m.Snapshot()
	if got := snap.Requests["/dashboard|GET|200"]; got != 2 {
		t.Fatalf("Snapshot: requests want=2 got=%d", got)
	}
	if got := snap.Errors["/login|POST|BACKEND_ERROR"]; got != 1 {
		t.Fatalf("Snapshot: errors want=1 got=%d", got)
	}
	if got := snap.BackendCalls["login|401"]; got != 2 {
		t.Fatalf("Snapshot: backend calls want=2 got=%d", got)
	}
	if got := snap.BackendAvgMilli["login|401"]; got != 20 {
		t.Fatalf("Snapshot: backend avg want=20 got=%d", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200)
	m.RecordBackendCall("x", 200, time.Millisecond)
	if snap := m.Snapshot(); len(snap.Requests) != 0 {
		t.Fatalf("Snapshot: expected empty snapshot from nil metrics")
	}
}
