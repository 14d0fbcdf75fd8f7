package services

import (
	"testing"
	"time"

	"github.com/autolane-tms/autolane_api/dto"
)

func newTestJWTService() *JWTService {
	return &JWTService{
		SessionDuration: 30 * 24 * time.Hour,
		RenewAfter:      24 * time.Hour,
		jwtSecretKey:    "test-secret",
	}
}

func testSession() dto.Session {
	return dto.Session{
		UserID: "usr_1",
		Email:  "jane@acme.test",
		Name:   "Jane Dealer",
		Role:   "DEALER",
		Status: "ACTIVE",
	}
}

func TestJWTRoundTrip(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ToJWT(testSession())
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	session, shouldRenew, err := svc.VerifyJWTToken(token)
	if err != nil {
		t.Fatalf("VerifyJWTToken error: %v", err)
	}
	if shouldRenew {
		t.Fatalf("fresh token should not need renewal")
	}

	want := testSession()
	if *session != want {
		t.Fatalf("session mismatch: got %+v want %+v", *session, want)
	}
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ToJWT(testSession())
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, _, err := svc.VerifyJWTToken(tampered); err == nil {
		t.Fatalf("expected tampered token rejected")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.ToJWT(testSession())
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	other := newTestJWTService()
	other.jwtSecretKey = "different-secret"

	if _, _, err := other.VerifyJWTToken(token); err == nil {
		t.Fatalf("expected token signed with another secret rejected")
	}
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService()
	svc.SessionDuration = -time.Hour // issued already expired

	token, err := svc.ToJWT(testSession())
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	if _, _, err := svc.VerifyJWTToken(token); err == nil {
		t.Fatalf("expected expired token rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	svc := newTestJWTService()
	if _, _, err := svc.VerifyJWTToken("not-a-token"); err == nil {
		t.Fatalf("expected garbage rejected")
	}
}

func TestJWTRenewalHint(t *testing.T) {
	svc := newTestJWTService()
	svc.RenewAfter = 0 // any age counts as stale

	token, err := svc.ToJWT(testSession())
	if err != nil {
		t.Fatalf("ToJWT error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	_, shouldRenew, err := svc.VerifyJWTToken(token)
	if err != nil {
		t.Fatalf("VerifyJWTToken error: %v", err)
	}
	if !shouldRenew {
		t.Fatalf("expected renewal hint for stale token")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.ExtractTokenFromHeader("Bearer abc123")
	if err != nil || token != "abc123" {
		t.Fatalf("expected abc123, got %q (err=%v)", token, err)
	}

	if _, err := svc.ExtractTokenFromHeader(""); err == nil {
		t.Fatalf("expected error for empty header")
	}
	if _, err := svc.ExtractTokenFromHeader("Basic abc123"); err == nil {
		t.Fatalf("expected error for non-bearer header")
	}
}
