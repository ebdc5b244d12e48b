package model

import (
	"errors"
	"testing"
)

func TestClientInfoValidate(t *testing.T) {
	ok := ClientInfo{Name: "Dana Reyes", Email: "dana@example.com"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid info rejected: %v", err)
	}

	if err := (ClientInfo{Email: "dana@example.com"}).Validate(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("missing name: %v", err)
	}
	if err := (ClientInfo{Name: "   ", Email: "dana@example.com"}).Validate(); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("blank name: %v", err)
	}
	if err := (ClientInfo{Name: "Dana"}).Validate(); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("missing email: %v", err)
	}

	for _, email := range []string{"dana", "dana@", "@example.com", "dana@example", "dana @example.com", "dana@exa mple.com"} {
		if err := (ClientInfo{Name: "Dana", Email: email}).Validate(); !errors.Is(err, ErrEmailInvalid) {
			t.Fatalf("expected ErrEmailInvalid for %q, got %v", email, err)
		}
	}

	// Phone and notes are free-form.
	loose := ClientInfo{Name: "Dana", Email: "dana@example.com", Phone: "n/a", Notes: "first visit"}
	if err := loose.Validate(); err != nil {
		t.Fatalf("phone/notes should not be validated: %v", err)
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2026-03-02") {
		t.Fatal("valid date rejected")
	}
	for _, d := range []string{"", "2026-3-2", "03/02/2026", "2026-13-01", "2026-02-30"} {
		if ValidDate(d) {
			t.Fatalf("invalid date accepted: %q", d)
		}
	}
}
