package consts

import (
	"sync"
	"testing"
	"time"
)

func TestServiceName(t *testing.T) {
	if ServiceName != "shiori" {
		t.Errorf("ServiceName = %q, want %q", ServiceName, "shiori")
	}
}

func TestProjectInfo(t *testing.T) {
	if ProjectName != "Shiori" {
		t.Errorf("ProjectName = %q, want %q", ProjectName, "Shiori")
	}
	if ProjectURL == "" {
		t.Error("ProjectURL should not be empty")
	}
}

func TestSetStartedAt(t *testing.T) {
	startedAt = time.Time{}
	startedOnce = sync.Once{}

	now := time.Now()
	SetStartedAt(now)

	if !GetStartedAt().Equal(now) {
		t.Errorf("GetStartedAt() = %v, want %v", GetStartedAt(), now)
	}

	// Second call is ignored
	SetStartedAt(now.Add(time.Hour))
	if !GetStartedAt().Equal(now) {
		t.Errorf("GetStartedAt() changed after second SetStartedAt call")
	}
}

func TestGetUptime(t *testing.T) {
	startedAt = time.Time{}
	startedOnce = sync.Once{}

	if got := GetUptime(); got != 0 {
		t.Errorf("GetUptime() before start = %v, want 0", got)
	}

	SetStartedAt(time.Now().Add(-time.Minute))
	if got := GetUptime(); got < time.Minute {
		t.Errorf("GetUptime() = %v, want >= 1m", got)
	}
}
