package records

import (
	"context"
	"errors"
	"testing"

	"propdesk/internal/crm"
)

// fakeUpdater records update calls and can be told to fail.
type fakeUpdater struct {
	calls []map[string]any
	err   error
}

func (f *fakeUpdater) UpdateDeal(_ context.Context, _ string, fields map[string]any) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, fields)
	return nil
}

func newMutatorFixture(deals ...crm.Deal) (*fakeUpdater, *Controller[crm.Deal], *DealMutator) {
	updater := &fakeUpdater{}
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, deals, false)
	return updater, ctl, NewDealMutator(updater, ctl)
}

func TestSetStagePatchesOnlyTarget(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(
		crm.Deal{ID: "d1", Stage: crm.Lookup{Value: "New"}},
		crm.Deal{ID: "d2", Stage: crm.Lookup{Value: "New"}},
	)
	if err := mutator.SetStage(context.Background(), "d1", "Negotiation"); err != nil {
		t.Fatalf("set stage: %v", err)
	}
	if len(updater.calls) != 1 {
		t.Fatalf("expected one update call, got %d", len(updater.calls))
	}
	if got := updater.calls[0]; len(got) != 1 || got["stage"] != "Negotiation" {
		t.Fatalf("payload must be partial, got %+v", got)
	}
	d1, _ := ctl.Get("d1")
	d2, _ := ctl.Get("d2")
	if d1.StageName() != "Negotiation" {
		t.Fatalf("d1 stage = %q", d1.StageName())
	}
	if d2.StageName() != "New" {
		t.Fatalf("d2 must be untouched, stage = %q", d2.StageName())
	}
}

func TestSetStageFailureLeavesRecordUnchanged(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1", Stage: crm.Lookup{Value: "New"}})
	updater.err = errors.New("network down")
	if err := mutator.SetStage(context.Background(), "d1", "Negotiation"); err == nil {
		t.Fatalf("expected error")
	}
	deal, _ := ctl.Get("d1")
	if deal.StageName() != "New" {
		t.Fatalf("failed mutation must not patch, stage = %q", deal.StageName())
	}
}

func TestReassignPatchesAssignee(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1"})
	user := crm.User{ID: "u7", Name: "Ravi"}
	if err := mutator.Reassign(context.Background(), "d1", user); err != nil {
		t.Fatalf("reassign: %v", err)
	}
	if got := updater.calls[0]; got["assignedTo"] != "u7" {
		t.Fatalf("payload assignedTo = %v", got["assignedTo"])
	}
	deal, _ := ctl.Get("d1")
	if deal.AssignedTo.Value != "Ravi" || deal.AssignedTo.ID != "u7" {
		t.Fatalf("assignee not patched: %+v", deal.AssignedTo)
	}
}

func TestSetDormant(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1"})
	if err := mutator.SetDormant(context.Background(), "d1", true); err != nil {
		t.Fatalf("set dormant: %v", err)
	}
	if got := updater.calls[0]; got["dormant"] != true {
		t.Fatalf("payload dormant = %v", got["dormant"])
	}
	deal, _ := ctl.Get("d1")
	if !deal.Dormant {
		t.Fatalf("dormant not patched")
	}
}

func TestAddTagBlankIsNoOp(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1", Tags: []string{"hot"}})
	if err := mutator.AddTag(context.Background(), "d1", ""); err != nil {
		t.Fatalf("add blank tag: %v", err)
	}
	if err := mutator.AddTag(context.Background(), "d1", "   "); err != nil {
		t.Fatalf("add whitespace tag: %v", err)
	}
	if len(updater.calls) != 0 {
		t.Fatalf("blank tag must not hit the backend")
	}
	deal, _ := ctl.Get("d1")
	if len(deal.Tags) != 1 {
		t.Fatalf("tags changed: %v", deal.Tags)
	}
}

func TestAddTagAppendsWithoutDedup(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1", Tags: []string{"hot"}})
	if err := mutator.AddTag(context.Background(), "d1", "hot"); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	deal, _ := ctl.Get("d1")
	if len(deal.Tags) != 2 || deal.Tags[0] != "hot" || deal.Tags[1] != "hot" {
		t.Fatalf("duplicate append expected, got %v", deal.Tags)
	}
	if got := updater.calls[0]["tags"].([]string); len(got) != 2 {
		t.Fatalf("payload tags = %v", got)
	}
}

func TestRemoveTagIdempotent(t *testing.T) {
	updater, ctl, mutator := newMutatorFixture(crm.Deal{ID: "d1", Tags: []string{"hot", "broker", "hot"}})
	if err := mutator.RemoveTag(context.Background(), "d1", "hot"); err != nil {
		t.Fatalf("remove tag: %v", err)
	}
	deal, _ := ctl.Get("d1")
	if len(deal.Tags) != 1 || deal.Tags[0] != "broker" {
		t.Fatalf("remove must drop every match, got %v", deal.Tags)
	}
	// Second removal finds nothing and must not call the backend again.
	if err := mutator.RemoveTag(context.Background(), "d1", "hot"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if len(updater.calls) != 1 {
		t.Fatalf("idempotent remove must skip the backend, calls = %d", len(updater.calls))
	}
}

func TestOpRefetchAndAutoCloseRules(t *testing.T) {
	refetch := map[Op]bool{
		OpStage:     true,
		OpReassign:  true,
		OpDormant:   true,
		OpAddTag:    false,
		OpRemoveTag: false,
	}
	for op, want := range refetch {
		if got := op.TriggersRefetch(); got != want {
			t.Errorf("op %d TriggersRefetch = %v, want %v", op, got, want)
		}
	}
	autoClose := map[Op]bool{
		OpStage:     true,
		OpReassign:  true,
		OpDormant:   true,
		OpAddTag:    false,
		OpRemoveTag: false,
	}
	for op, want := range autoClose {
		if got := op.AutoClosesHub(); got != want {
			t.Errorf("op %d AutoClosesHub = %v, want %v", op, got, want)
		}
	}
}
