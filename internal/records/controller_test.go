package records

import (
	"testing"

	"propdesk/internal/crm"
)

func makeDeals(ids ...string) []crm.Deal {
	deals := make([]crm.Deal, 0, len(ids))
	for _, id := range ids {
		deals = append(deals, crm.Deal{ID: id, Name: "Deal " + id})
	}
	return deals
}

func makePage(n int) []crm.Deal {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, string(rune('a'+i%26))+string(rune('0'+i/26)))
	}
	return makeDeals(ids...)
}

func TestApplyReplaceAndAppend(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, makeDeals("d1", "d2"), false)
	if ctl.Len() != 2 {
		t.Fatalf("len after replace = %d", ctl.Len())
	}
	ctl.Apply(2, makeDeals("d3"), true)
	if ctl.Len() != 3 {
		t.Fatalf("len after append = %d", ctl.Len())
	}
	if ctl.Records()[2].ID != "d3" {
		t.Fatalf("append must preserve fetch order")
	}
	ctl.Apply(1, makeDeals("d9"), false)
	if ctl.Len() != 1 || ctl.Records()[0].ID != "d9" {
		t.Fatalf("replace must discard prior pages, got %+v", ctl.Records())
	}
}

func TestHasMoreHeuristic(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, makePage(50), false)
	if !ctl.HasMore() {
		t.Fatalf("full page must predict more")
	}
	ctl.Apply(2, makePage(37), true)
	if ctl.HasMore() {
		t.Fatalf("short page must clear the flag")
	}
	// Exact-multiple totals mispredict: a trailing empty page clears it.
	ctl.Apply(3, nil, true)
	if ctl.HasMore() {
		t.Fatalf("empty page must clear the flag")
	}
}

func TestNextPageTracksAppliedPage(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	if ctl.NextPage() != 2 {
		t.Fatalf("fresh controller next page = %d", ctl.NextPage())
	}
	ctl.Apply(1, makePage(50), false)
	ctl.Apply(2, makePage(50), true)
	if ctl.NextPage() != 3 {
		t.Fatalf("next page = %d, want 3", ctl.NextPage())
	}
	ctl.Apply(1, makePage(10), false)
	if ctl.NextPage() != 2 {
		t.Fatalf("refresh must rewind pagination, next = %d", ctl.NextPage())
	}
}

func TestFilterIsOrderPreservingSubsequence(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, []crm.Deal{
		{ID: "1", Name: "Emerald Heights 101"},
		{ID: "2", Name: "Sunrise Tower"},
		{ID: "3", Name: "emerald plaza"},
		{ID: "4", Name: "Green Meadows"},
	}, false)

	view := ctl.Filter("EMERALD")
	if len(view) != 2 || view[0].ID != "1" || view[1].ID != "3" {
		t.Fatalf("case-insensitive subsequence broken: %+v", view)
	}
	if len(ctl.Records()) != 4 {
		t.Fatalf("filter must not mutate the collection")
	}
}

func TestFilterEmptyQueryIsIdentity(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, makeDeals("d1", "d2", "d3"), false)
	view := ctl.Filter("")
	if len(view) != 3 {
		t.Fatalf("empty query must return everything, got %d", len(view))
	}
	for i, item := range view {
		if item.ID != ctl.Records()[i].ID {
			t.Fatalf("identity filter reordered records")
		}
	}
}

func TestPatchByIDReplacesExactlyOne(t *testing.T) {
	ctl := NewController[crm.Deal](50)
	ctl.Apply(1, makeDeals("d1", "d2", "d3"), false)
	updated := crm.Deal{ID: "d2", Name: "Deal d2", Stage: crm.Lookup{Value: "Closed Won"}}
	if !ctl.PatchByID("d2", updated) {
		t.Fatalf("patch reported miss")
	}
	for _, deal := range ctl.Records() {
		switch deal.ID {
		case "d2":
			if deal.StageName() != "Closed Won" {
				t.Fatalf("patched record missing update")
			}
		default:
			if deal.StageName() != "" {
				t.Fatalf("unrelated record %s mutated", deal.ID)
			}
		}
	}
	if ctl.PatchByID("missing", updated) {
		t.Fatalf("patch of absent id must report false")
	}
}
