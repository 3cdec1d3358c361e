package actionhub

import (
	"testing"

	"propdesk/internal/crm"
)

func TestZeroValueIsClosed(t *testing.T) {
	var hub Hub
	if hub.IsOpen() {
		t.Fatalf("zero hub must be closed")
	}
	if hub.Record() != nil {
		t.Fatalf("closed hub must have no selection")
	}
	if hub.ActivePanel() != PanelNone {
		t.Fatalf("closed hub panel = %v", hub.ActivePanel())
	}
}

func TestOpenStartsWithNoPanel(t *testing.T) {
	var hub Hub
	hub.Open(crm.Deal{ID: "d1"})
	if !hub.IsOpen() {
		t.Fatalf("hub must be open")
	}
	if hub.ActivePanel() != PanelNone {
		t.Fatalf("fresh hub panel = %v", hub.ActivePanel())
	}
	if hub.Record().RecordID() != "d1" {
		t.Fatalf("selection = %q", hub.Record().RecordID())
	}
}

func TestToggleSemantics(t *testing.T) {
	var hub Hub
	hub.Open(crm.Deal{ID: "d1"})

	hub.Toggle(PanelStage)
	if hub.ActivePanel() != PanelStage {
		t.Fatalf("expected stage panel, got %v", hub.ActivePanel())
	}
	// Same button again collapses.
	hub.Toggle(PanelStage)
	if hub.ActivePanel() != PanelNone {
		t.Fatalf("toggle must collapse, got %v", hub.ActivePanel())
	}
	// Different button switches directly, no intermediate none.
	hub.Toggle(PanelReassign)
	hub.Toggle(PanelTags)
	if hub.ActivePanel() != PanelTags {
		t.Fatalf("switch must replace panel, got %v", hub.ActivePanel())
	}
}

func TestToggleIgnoredWhileClosed(t *testing.T) {
	var hub Hub
	hub.Toggle(PanelStage)
	if hub.IsOpen() || hub.ActivePanel() != PanelNone {
		t.Fatalf("toggle on closed hub must be a no-op")
	}
}

func TestReopenReplacesSelection(t *testing.T) {
	var hub Hub
	hub.Open(crm.Deal{ID: "A"})
	hub.Toggle(PanelStage)
	// Long-press on another record without closing first.
	hub.Open(crm.Deal{ID: "B"})
	if hub.Record().RecordID() != "B" {
		t.Fatalf("selection must be replaced, got %q", hub.Record().RecordID())
	}
	if hub.ActivePanel() != PanelNone {
		t.Fatalf("reopen must reset the panel, got %v", hub.ActivePanel())
	}
}

func TestCloseClearsEverything(t *testing.T) {
	var hub Hub
	hub.Open(crm.Deal{ID: "d1"})
	hub.Toggle(PanelTags)
	hub.Close()
	if hub.IsOpen() || hub.Record() != nil || hub.ActivePanel() != PanelNone {
		t.Fatalf("close must clear selection and panel")
	}
}

func TestRefreshSelectionMatchesByID(t *testing.T) {
	var hub Hub
	hub.Open(crm.Deal{ID: "d1", Stage: crm.Lookup{Value: "New"}})
	hub.RefreshSelection(crm.Deal{ID: "d1", Stage: crm.Lookup{Value: "Negotiation"}})
	if hub.Record().StageName() != "Negotiation" {
		t.Fatalf("refresh must re-point at the patched record")
	}
	hub.RefreshSelection(crm.Deal{ID: "other", Stage: crm.Lookup{Value: "Closed"}})
	if hub.Record().RecordID() != "d1" {
		t.Fatalf("refresh must ignore foreign identifiers")
	}
}

func TestPanelString(t *testing.T) {
	names := map[Panel]string{
		PanelNone:     "none",
		PanelStage:    "stage",
		PanelReassign: "reassign",
		PanelTags:     "tags",
	}
	for panel, want := range names {
		if got := panel.String(); got != want {
			t.Errorf("Panel(%d).String() = %q, want %q", panel, got, want)
		}
	}
}
