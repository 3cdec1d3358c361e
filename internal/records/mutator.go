// internal/records/mutator.go
//
// Mutation dispatch for the action hub. Every operation sends exactly
// the partial payload for the changed fields, and on success patches
// the matching record in the collection by identifier. Stage,
// reassignment and dormant changes additionally warrant a background
// refetch to re-sync derived fields the backend computes; tag edits
// are optimistic-only.

package records

import (
	"context"
	"strings"

	"propdesk/internal/crm"
)

// Op identifies an action hub mutation.
type Op int

const (
	OpStage Op = iota
	OpReassign
	OpDormant
	OpAddTag
	OpRemoveTag
)

// TriggersRefetch reports whether a successful mutation should kick
// off a background collection refetch.
func (op Op) TriggersRefetch() bool {
	switch op {
	case OpStage, OpReassign, OpDormant:
		return true
	}
	return false
}

// AutoClosesHub reports whether a successful mutation closes the
// action hub. Tag edits keep it open so several tags can be edited in
// one session.
func (op Op) AutoClosesHub() bool {
	return op != OpAddTag && op != OpRemoveTag
}

// DealUpdater is the backend surface the deal mutator needs.
type DealUpdater interface {
	UpdateDeal(ctx context.Context, id string, fields map[string]any) error
}

// DealMutator dispatches deal mutations and keeps the collection
// consistent with what the backend accepted.
type DealMutator struct {
	updater DealUpdater
	ctl     *Controller[crm.Deal]
}

// NewDealMutator wires a mutator to its backend and collection.
func NewDealMutator(updater DealUpdater, ctl *Controller[crm.Deal]) *DealMutator {
	return &DealMutator{updater: updater, ctl: ctl}
}

// SetStage moves a deal to a new stage.
func (m *DealMutator) SetStage(ctx context.Context, id, stage string) error {
	if err := m.updater.UpdateDeal(ctx, id, map[string]any{"stage": stage}); err != nil {
		return err
	}
	m.patch(id, func(deal *crm.Deal) {
		deal.Stage = crm.Lookup{Value: stage}
	})
	return nil
}

// Reassign hands a deal to another user.
func (m *DealMutator) Reassign(ctx context.Context, id string, user crm.User) error {
	if err := m.updater.UpdateDeal(ctx, id, map[string]any{"assignedTo": user.ID}); err != nil {
		return err
	}
	m.patch(id, func(deal *crm.Deal) {
		deal.AssignedTo = crm.Lookup{Value: user.Label(), ID: user.ID}
	})
	return nil
}

// SetDormant marks or unmarks a deal dormant.
func (m *DealMutator) SetDormant(ctx context.Context, id string, dormant bool) error {
	if err := m.updater.UpdateDeal(ctx, id, map[string]any{"dormant": dormant}); err != nil {
		return err
	}
	m.patch(id, func(deal *crm.Deal) {
		deal.Dormant = dormant
	})
	return nil
}

// AddTag appends a tag. Blank input is a no-op. Tags are appended as
// given, duplicates included; the backend enforces no uniqueness and
// neither does the client.
func (m *DealMutator) AddTag(ctx context.Context, id, tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	deal, ok := m.ctl.Get(id)
	if !ok {
		return nil
	}
	tags := append(append([]string(nil), deal.Tags...), tag)
	if err := m.updater.UpdateDeal(ctx, id, map[string]any{"tags": tags}); err != nil {
		return err
	}
	m.patch(id, func(deal *crm.Deal) {
		deal.Tags = tags
	})
	return nil
}

// RemoveTag removes every entry equal to the tag. Removing an absent
// tag is a no-op.
func (m *DealMutator) RemoveTag(ctx context.Context, id, tag string) error {
	deal, ok := m.ctl.Get(id)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(deal.Tags))
	removed := false
	for _, existing := range deal.Tags {
		if existing == tag {
			removed = true
			continue
		}
		tags = append(tags, existing)
	}
	if !removed {
		return nil
	}
	if err := m.updater.UpdateDeal(ctx, id, map[string]any{"tags": tags}); err != nil {
		return err
	}
	m.patch(id, func(deal *crm.Deal) {
		deal.Tags = tags
	})
	return nil
}

func (m *DealMutator) patch(id string, mutate func(*crm.Deal)) {
	deal, ok := m.ctl.Get(id)
	if !ok {
		return
	}
	mutate(&deal)
	m.ctl.PatchByID(id, deal)
}
