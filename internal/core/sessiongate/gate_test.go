package sessiongate

import (
	"testing"
	"time"
)

func TestResolveNoCredential(t *testing.T) {
	s := Resolve(nil, nil, time.Now())
	if s.Status != StatusAnonymous {
		t.Fatalf("missing credential must resolve anonymous, got %v", s.Status)
	}
}

func TestResolveExpiredCredential(t *testing.T) {
	now := time.Now()
	cred := &Credential{ExpiresAt: now.Add(-time.Minute)}
	u := &User{ID: 1, Email: "admin@autopro.ru", Role: RoleAdmin}
	s := Resolve(cred, u, now)
	if s.Status != StatusAnonymous {
		t.Fatalf("expired credential must resolve anonymous, got %v", s.Status)
	}
}

func TestResolveExactExpiryIsExpired(t *testing.T) {
	now := time.Now()
	cred := &Credential{ExpiresAt: now}
	if !cred.Expired(now) {
		t.Fatalf("credential at its expiry instant must count as expired")
	}
}

func TestResolveLiveCredential(t *testing.T) {
	now := time.Now()
	cred := &Credential{ExpiresAt: now.Add(24 * time.Hour)}
	u := &User{ID: 1, Email: "admin@autopro.ru", Role: RoleAdmin}
	s := Resolve(cred, u, now)
	if s.Status != StatusAuthenticated {
		t.Fatalf("live credential must authenticate, got %v", s.Status)
	}
	if s.User == nil || s.User.Email != "admin@autopro.ru" {
		t.Fatalf("resolved state must carry the user")
	}
}

func TestResolveLiveCredentialWithoutUser(t *testing.T) {
	now := time.Now()
	cred := &Credential{ExpiresAt: now.Add(time.Hour)}
	s := Resolve(cred, nil, now)
	if s.Status != StatusAnonymous {
		t.Fatalf("unmatchable credential must degrade to anonymous, got %v", s.Status)
	}
}

func TestDecideMatrix(t *testing.T) {
	admin := Authenticated(User{ID: 1, Role: RoleAdmin})
	customer := Authenticated(User{ID: 2, Role: RoleCustomer})

	cases := []struct {
		name     string
		state    State
		required []Role
		want     Decision
	}{
		{"unknown waits", Unknown(), nil, DecisionWait},
		{"unknown waits even with role", Unknown(), []Role{RoleAdmin}, DecisionWait},
		{"anonymous goes to login", Anonymous(), nil, DecisionLogin},
		{"anonymous with role goes to login", Anonymous(), []Role{RoleAdmin}, DecisionLogin},
		{"authenticated no role required", customer, nil, DecisionAllow},
		{"matching role allowed", admin, []Role{RoleAdmin}, DecisionAllow},
		{"any of several roles", admin, []Role{RoleManager, RoleAdmin}, DecisionAllow},
		{"mismatched role unauthorized", customer, []Role{RoleAdmin}, DecisionUnauthorized},
	}
	for _, tc := range cases {
		if got := Decide(tc.state, tc.required...); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleManager, RoleCustomer} {
		if !ValidRole(r) {
			t.Fatalf("%s must be valid", r)
		}
	}
	if ValidRole("superuser") {
		t.Fatalf("unknown role must be invalid")
	}
}
