package crm

import (
	"encoding/json"
	"testing"
)

func TestLookupUnmarshalScalar(t *testing.T) {
	var l Lookup
	if err := json.Unmarshal([]byte(`"Negotiation"`), &l); err != nil {
		t.Fatalf("unmarshal scalar: %v", err)
	}
	if l.Value != "Negotiation" || l.ID != "" {
		t.Fatalf("unexpected lookup: %+v", l)
	}
}

func TestLookupUnmarshalWrapper(t *testing.T) {
	var l Lookup
	if err := json.Unmarshal([]byte(`{"_id":"64ab","lookup_value":"Site Visit"}`), &l); err != nil {
		t.Fatalf("unmarshal wrapper: %v", err)
	}
	if l.Value != "Site Visit" {
		t.Fatalf("expected lookup_value, got %q", l.Value)
	}
	if l.ID != "64ab" {
		t.Fatalf("expected id to survive, got %q", l.ID)
	}
}

func TestLookupUnmarshalReference(t *testing.T) {
	var l Lookup
	if err := json.Unmarshal([]byte(`{"_id":"u1","name":"Ravi"}`), &l); err != nil {
		t.Fatalf("unmarshal reference: %v", err)
	}
	if l.Value != "Ravi" {
		t.Fatalf("expected name fallback, got %q", l.Value)
	}
}

func TestLookupUnmarshalNull(t *testing.T) {
	l := Lookup{Value: "stale"}
	if err := json.Unmarshal([]byte(`null`), &l); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !l.IsZero() {
		t.Fatalf("null must clear the lookup, got %+v", l)
	}
}

func TestLookupMarshalScalar(t *testing.T) {
	data, err := json.Marshal(Lookup{Value: "Closed Won", ID: "ignored"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Closed Won"` {
		t.Fatalf("expected scalar value, got %s", data)
	}
}

func TestDealDecodesMixedShapes(t *testing.T) {
	payload := []byte(`{
		"_id": "d1",
		"name": "3BHK Sector 45",
		"stage": {"_id": "s2", "lookup_value": "Negotiation"},
		"amount": 12500000,
		"contact": {"_id": "c1", "name": "Anita", "mobile": "9876543210"},
		"assignedTo": "Rahul",
		"tags": ["hot", "broker"]
	}`)
	var deal Deal
	if err := json.Unmarshal(payload, &deal); err != nil {
		t.Fatalf("unmarshal deal: %v", err)
	}
	if deal.RecordID() != "d1" {
		t.Fatalf("record id: %q", deal.RecordID())
	}
	if deal.StageName() != "Negotiation" {
		t.Fatalf("stage: %q", deal.StageName())
	}
	if deal.DisplayTitle() != "3BHK Sector 45" {
		t.Fatalf("title: %q", deal.DisplayTitle())
	}
	if deal.Contact.Mobile != "9876543210" {
		t.Fatalf("contact mobile: %q", deal.Contact.Mobile)
	}
	if deal.AssignedTo.Value != "Rahul" {
		t.Fatalf("assignedTo: %+v", deal.AssignedTo)
	}
}

func TestDisplayTitleFallsBackToID(t *testing.T) {
	deal := Deal{ID: "d9"}
	if deal.DisplayTitle() != "d9" {
		t.Fatalf("expected id fallback, got %q", deal.DisplayTitle())
	}
	unit := Unit{ID: "u7", UnitNo: "101"}
	if unit.DisplayTitle() != "101" {
		t.Fatalf("expected unit number, got %q", unit.DisplayTitle())
	}
	booking := Booking{ID: "b3", Project: Lookup{Value: "Emerald Heights"}, UnitNo: "A-12"}
	if booking.DisplayTitle() != "Emerald Heights · A-12" {
		t.Fatalf("booking title: %q", booking.DisplayTitle())
	}
}

func TestUserLabel(t *testing.T) {
	if got := (User{Name: "Ravi", FullName: "Ravi Sharma"}).Label(); got != "Ravi" {
		t.Fatalf("expected short name, got %q", got)
	}
	if got := (User{FullName: "Ravi Sharma"}).Label(); got != "Ravi Sharma" {
		t.Fatalf("expected full name fallback, got %q", got)
	}
	if got := (User{ID: "u1"}).Label(); got != "u1" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}
