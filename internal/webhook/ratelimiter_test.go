package webhook

import (
	"testing"
	"time"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, 0.001)

	for i := 0; i < 3; i++ {
		if !rl.Allow() {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.Allow() {
		t.Error("request beyond burst allowed, want denied")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := NewRateLimiter(1, 50) // refills fast enough for the test

	if !rl.Allow() {
		t.Fatal("first request denied")
	}
	if rl.Allow() {
		t.Fatal("second immediate request allowed, want denied")
	}

	time.Sleep(50 * time.Millisecond)
	if !rl.Allow() {
		t.Error("request after refill denied, want allowed")
	}
}

func TestRateLimiter_AvailableTokens(t *testing.T) {
	rl := NewRateLimiter(5, 0.001)

	if got := rl.AvailableTokens(); got < 4.9 {
		t.Errorf("AvailableTokens() = %v, want ~5", got)
	}

	rl.Allow()
	if got := rl.AvailableTokens(); got > 4.1 {
		t.Errorf("AvailableTokens() after one request = %v, want ~4", got)
	}
}

func TestConversationRateLimiter_IsolatesConversations(t *testing.T) {
	crl := NewConversationRateLimiter(time.Hour, nil)
	defer crl.Stop()

	if !crl.Allow("conv-a", 1, 0.001) {
		t.Fatal("first request for conv-a denied")
	}
	if crl.Allow("conv-a", 1, 0.001) {
		t.Error("second request for conv-a allowed, want denied")
	}

	// A different conversation has its own bucket
	if !crl.Allow("conv-b", 1, 0.001) {
		t.Error("first request for conv-b denied")
	}
}
