package contact

import (
	"errors"
	"testing"

	"propdesk/internal/crm"
)

func TestPhonePriorityChain(t *testing.T) {
	deal := crm.Deal{
		Owner:      crm.Ref{ID: "u1", Mobile: "8000000000"},
		ContactRef: crm.Ref{ID: "c9", Mobile: "7000000000"},
	}
	phone, err := Phone(deal)
	if err != nil {
		t.Fatalf("phone: %v", err)
	}
	if phone != "8000000000" {
		t.Fatalf("expected owner before legacy alias, got %q", phone)
	}

	deal.Contact = crm.Ref{ID: "c1", Mobile: "9876543210"}
	phone, err = Phone(deal)
	if err != nil {
		t.Fatalf("phone: %v", err)
	}
	if phone != "9876543210" {
		t.Fatalf("expected primary contact first, got %q", phone)
	}
}

func TestPhoneMissingEverywhere(t *testing.T) {
	_, err := Phone(crm.Deal{Contact: crm.Ref{Name: "no number"}})
	if !errors.Is(err, ErrNoPhone) {
		t.Fatalf("expected ErrNoPhone, got %v", err)
	}
}

func TestWhatsAppNumberNormalization(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"9876543210", "919876543210"},
		{"+91 98765 43210", "919876543210"},
		{"98765-43210", "919876543210"},
		{"919876543210", "919876543210"},
		{"043210", "043210"},
	}
	for _, tc := range cases {
		if got := WhatsAppNumber(tc.raw, "91"); got != tc.want {
			t.Errorf("WhatsAppNumber(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("9876543210", "91")
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if link != "whatsapp://send?phone=919876543210" {
		t.Fatalf("unexpected link %q", link)
	}
	if _, err := WhatsAppLink("call me", "91"); err == nil {
		t.Fatalf("expected error for digitless value")
	}
}

func TestIntentLinks(t *testing.T) {
	if got := CallLink(" 9876543210 "); got != "tel:9876543210" {
		t.Fatalf("call link: %q", got)
	}
	if got := SMSLink("9876543210"); got != "sms:9876543210" {
		t.Fatalf("sms link: %q", got)
	}
	if got := MailLink("anita@example.in"); got != "mailto:anita@example.in" {
		t.Fatalf("mail link: %q", got)
	}
}

func TestEmailResolution(t *testing.T) {
	booking := crm.Booking{
		Customer: crm.Ref{Name: "Anita"},
		Owner:    crm.Ref{Email: "owner@example.in"},
	}
	email, err := Email(booking)
	if err != nil {
		t.Fatalf("email: %v", err)
	}
	if email != "owner@example.in" {
		t.Fatalf("expected owner email, got %q", email)
	}
	if _, err := Email(crm.Unit{}); !errors.Is(err, ErrNoEmail) {
		t.Fatalf("expected ErrNoEmail, got %v", err)
	}
}
