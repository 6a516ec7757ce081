package app

import (
	"strings"
	"testing"
	"time"
)

func TestSeatTokenRoundTrip(t *testing.T) {
	svc := NewSeatTokenService("test-secret", time.Hour)

	token, err := svc.Issue("room-1", "p0")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	playerID, err := svc.Verify(token, "room-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if playerID != "p0" {
		t.Errorf("playerID = %q, want p0", playerID)
	}
}

func TestSeatTokenWrongRoom(t *testing.T) {
	svc := NewSeatTokenService("test-secret", time.Hour)
	token, err := svc.Issue("room-1", "p0")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(token, "room-2"); err == nil {
		t.Error("token for another room must not verify")
	}
}

func TestSeatTokenTamperedSignature(t *testing.T) {
	issuer := NewSeatTokenService("secret-a", time.Hour)
	verifier := NewSeatTokenService("secret-b", time.Hour)
	token, err := issuer.Issue("room-1", "p0")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Verify(token, "room-1"); err == nil {
		t.Error("token signed with another key must not verify")
	}
}

func TestSeatTokenExpired(t *testing.T) {
	svc := NewSeatTokenService("test-secret", time.Minute)
	svc.SetClock(func() time.Time { return time.Now().Add(-2 * time.Minute) })
	token, err := svc.Issue("room-1", "p0")
	if err != nil {
		t.Fatal(err)
	}
	svc.SetClock(time.Now)
	if _, err := svc.Verify(token, "room-1"); err == nil {
		t.Error("expired token must not verify")
	}
}

func TestSeatTokenRequiresConfig(t *testing.T) {
	svc := NewSeatTokenService("", time.Hour)
	if _, err := svc.Issue("room-1", "p0"); err == nil || !strings.Contains(err.Error(), "configured") {
		t.Errorf("unconfigured Issue = %v", err)
	}
}
