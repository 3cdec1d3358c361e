// internal/actionhub/hub.go
//
// The action hub is the transient per-record state machine behind the
// bottom-sheet action overlay: at most one record selected, at most
// one inline panel visible. The TUI renders whatever state the hub is
// in; all transition rules live here.

package actionhub

import "propdesk/internal/crm"

// Panel identifies which inline editor is visible inside an open hub.
type Panel int

const (
	PanelNone Panel = iota
	PanelStage
	PanelReassign
	PanelTags
)

func (p Panel) String() string {
	switch p {
	case PanelStage:
		return "stage"
	case PanelReassign:
		return "reassign"
	case PanelTags:
		return "tags"
	}
	return "none"
}

// Hub is the action overlay state machine. The zero value is closed.
type Hub struct {
	record crm.Record
	panel  Panel
	open   bool
}

// IsOpen reports whether the hub is showing.
func (h *Hub) IsOpen() bool { return h.open }

// Record returns the selected record, or nil when closed.
func (h *Hub) Record() crm.Record {
	if !h.open {
		return nil
	}
	return h.record
}

// ActivePanel returns the visible panel; PanelNone when closed or no
// panel is expanded.
func (h *Hub) ActivePanel() Panel {
	if !h.open {
		return PanelNone
	}
	return h.panel
}

// Open selects a record and shows the hub with no panel expanded.
// Opening while already open replaces the selection outright — the
// previous record and panel are discarded, never stacked.
func (h *Hub) Open(record crm.Record) {
	h.record = record
	h.panel = PanelNone
	h.open = true
}

// Toggle switches the visible panel. Pressing the active panel's
// button collapses it back to none; pressing a different panel's
// button switches directly, implicitly closing the previous one.
// Ignored while closed.
func (h *Hub) Toggle(panel Panel) {
	if !h.open || panel == PanelNone {
		return
	}
	if h.panel == panel {
		h.panel = PanelNone
		return
	}
	h.panel = panel
}

// Close dismisses the hub and clears the selection. Used for
// background taps and explicit dismissal.
func (h *Hub) Close() {
	h.record = nil
	h.panel = PanelNone
	h.open = false
}

// RefreshSelection re-points the hub at an updated copy of the
// selected record so the overlay shows post-mutation data. Ignored
// when closed or when the identifier differs.
func (h *Hub) RefreshSelection(record crm.Record) {
	if !h.open || h.record == nil {
		return
	}
	if record.RecordID() != h.record.RecordID() {
		return
	}
	h.record = record
}
