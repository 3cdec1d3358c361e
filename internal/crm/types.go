// internal/crm/types.go
//
// Wire types for the CRM backend. The backend is lenient about field
// shapes: a "value" may arrive as a plain string, as a lookup wrapper
// ({"lookup_value": "..."}) or as a populated reference object
// ({"_id": "...", "name": "..."}). The types here absorb all three so
// the rest of the client can treat records as flat structs.

package crm

import (
	"encoding/json"
	"strings"
)

// Lookup is a backend field that may be a bare scalar, a lookup-wrapper
// object or a populated reference. It always unmarshals to the display
// string and remembers the referenced ID when one was present.
type Lookup struct {
	Value string
	ID    string
}

// lookupWire mirrors the two object shapes the backend emits.
type lookupWire struct {
	ID          string `json:"_id"`
	LookupValue string `json:"lookup_value"`
	Name        string `json:"name"`
}

// UnmarshalJSON accepts a string, null, or an object carrying
// lookup_value or name.
func (l *Lookup) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = Lookup{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Lookup{Value: s}
		return nil
	}
	var wire lookupWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	value := wire.LookupValue
	if value == "" {
		value = wire.Name
	}
	*l = Lookup{Value: value, ID: wire.ID}
	return nil
}

// MarshalJSON emits the display value as a scalar. Partial update
// payloads send plain strings; the backend resolves them server-side.
func (l Lookup) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Value)
}

func (l Lookup) String() string { return l.Value }

// IsZero reports whether the field was absent or empty.
func (l Lookup) IsZero() bool { return l.Value == "" && l.ID == "" }

// Ref is a populated reference to another entity (a contact, a user).
// Unlike Lookup it keeps the contact fields the communication actions
// need.
type Ref struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
}

// IsZero reports whether the reference was absent.
func (r Ref) IsZero() bool { return r == (Ref{}) }

// Record is the common surface of the three list-screen entities.
type Record interface {
	// RecordID returns the stable backend identifier.
	RecordID() string
	// DisplayTitle returns the human title the search filter matches
	// against. Never empty; falls back to the identifier.
	DisplayTitle() string
	// StageName returns the current stage or status enumerand.
	StageName() string
}

// Deal is one row of the deals screen.
type Deal struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Stage      Lookup   `json:"stage"`
	Amount     float64  `json:"amount"`
	Contact    Ref      `json:"contact"`
	Owner      Ref      `json:"owner"`
	ContactRef Ref      `json:"contact_id"` // legacy alias still emitted by old records
	AssignedTo Lookup   `json:"assignedTo"`
	Project    Lookup   `json:"project"`
	Tags       []string `json:"tags"`
	Dormant    bool     `json:"dormant"`
}

func (d Deal) RecordID() string { return d.ID }

func (d Deal) DisplayTitle() string {
	if d.Name != "" {
		return d.Name
	}
	if d.Contact.Name != "" {
		return d.Contact.Name
	}
	return d.ID
}

func (d Deal) StageName() string { return d.Stage.Value }

// ContactRefs returns the communication candidates in priority order:
// primary contact, then owner, then the legacy contact alias.
func (d Deal) ContactRefs() []Ref { return []Ref{d.Contact, d.Owner, d.ContactRef} }

// Booking is one row of the bookings screen.
type Booking struct {
	ID         string  `json:"_id"`
	UnitNo     string  `json:"unitNo"`
	Project    Lookup  `json:"project"`
	Status     Lookup  `json:"status"`
	Amount     float64 `json:"amount"`
	Customer   Ref     `json:"customer"`
	Owner      Ref     `json:"owner"`
	AssignedTo Lookup  `json:"assignedTo"`
	BookedOn   string  `json:"bookedOn"`
}

func (b Booking) RecordID() string { return b.ID }

func (b Booking) DisplayTitle() string {
	switch {
	case b.Project.Value != "" && b.UnitNo != "":
		return b.Project.Value + " · " + b.UnitNo
	case b.Project.Value != "":
		return b.Project.Value
	case b.Customer.Name != "":
		return b.Customer.Name
	}
	return b.ID
}

func (b Booking) StageName() string { return b.Status.Value }

// ContactRefs returns the customer before the owner; bookings have no
// legacy alias field.
func (b Booking) ContactRefs() []Ref { return []Ref{b.Customer, b.Owner} }

// Unit is one row of the inventory screen.
type Unit struct {
	ID          string  `json:"_id"`
	UnitNo      string  `json:"unitNo"`
	Project     Lookup  `json:"projectName"`
	Block       string  `json:"block"`
	Category    Lookup  `json:"category"`
	SubCategory Lookup  `json:"subCategory"`
	Status      Lookup  `json:"status"`
	Intent      Lookup  `json:"intent"`
	Size        string  `json:"size"`
	Price       float64 `json:"price"`
	Owner       Ref     `json:"owner"`
	Facing      Lookup  `json:"facing"`
}

func (u Unit) RecordID() string { return u.ID }

func (u Unit) DisplayTitle() string {
	switch {
	case u.Project.Value != "" && u.UnitNo != "":
		return u.Project.Value + " · " + u.UnitNo
	case u.Project.Value != "":
		return u.Project.Value
	case u.UnitNo != "":
		return u.UnitNo
	}
	return u.ID
}

func (u Unit) StageName() string { return u.Status.Value }

// ContactRefs returns the unit owner, the only contact inventory rows
// carry.
func (u Unit) ContactRefs() []Ref { return []Ref{u.Owner} }

// User is one row of the reassignment picker.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`
	Team     Lookup `json:"team"`
	Mobile   string `json:"mobile"`
}

// Label returns the picker display name, preferring the short name the
// way the original screens did.
func (u User) Label() string {
	if u.Name != "" {
		return u.Name
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.ID
}
