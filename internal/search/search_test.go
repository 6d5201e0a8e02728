package search

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/emphub/internal/model"
)

func sampleLeaves() []model.Leave {
	return []model.Leave{
		{ID: 1, Type: "Sick Leave", Status: model.StatusApproved},
		{ID: 2, Type: "Annual Leave", Status: model.StatusPending},
		{ID: 3, Type: "Casual Leave", Status: model.StatusRejected},
		{ID: 4, Type: "Sick Leave", Status: model.StatusPending, Reason: "annual checkup"},
	}
}

func ids(leaves []model.Leave) []int64 {
	out := make([]int64, len(leaves))
	for i, l := range leaves {
		out[i] = l.ID
	}
	return out
}

func TestFilter_EmptyQueryIsIdentity(t *testing.T) {
	items := sampleLeaves()
	got := Filter(items, model.LeaveSearchFields, "")
	if diff := cmp.Diff(items, got); diff != "" {
		t.Fatalf("Filter with empty query mismatch (-want +got):\n%s", diff)
	}
	got[0].ID = 99
	if items[0].ID != 1 {
		t.Fatal("Filter returned a slice aliasing its input")
	}
}

func TestFilter_CaseInsensitiveAnyField(t *testing.T) {
	items := sampleLeaves()
	cases := []struct {
		query string
		want  []int64
	}{
		{"SICK", []int64{1, 4}},
		{"pend", []int64{2, 4}},
		{"leave", []int64{1, 2, 3, 4}},
		{"annual", []int64{2}}, // reason is not a declared field
		{"zzz", []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			got := ids(Filter(items, model.LeaveSearchFields, tc.query))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Filter(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestFilter_MembershipMatchesSubstringRule(t *testing.T) {
	var items []model.Timesheet
	projects := []string{"Alpha", "beta", "GAMMA", "alphabet", "Delta"}
	statuses := []string{"Pending", "Approved"}
	for i := 0; i < 40; i++ {
		items = append(items, model.Timesheet{
			ID:      int64(i + 1),
			Project: projects[i%len(projects)],
			Status:  statuses[i%len(statuses)],
		})
	}
	for _, q := range []string{"a", "AL", "pha", "ppro", "ta", "x", "Beta"} {
		got := Filter(items, model.TimesheetSearchFields, q)
		want := 0
		for _, it := range items {
			in := strings.Contains(strings.ToLower(it.Project), strings.ToLower(q)) ||
				strings.Contains(strings.ToLower(it.Status), strings.ToLower(q))
			if in {
				want++
			}
			if in != Matches(it, model.TimesheetSearchFields, q) {
				t.Fatalf("Matches(%d, %q) = %v, want %v", it.ID, q, !in, in)
			}
		}
		if len(got) != want {
			t.Fatalf("Filter(%q) returned %d items, want %d", q, len(got), want)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1].ID >= got[i].ID {
				t.Fatalf("Filter(%q) reordered items: %v", q, fmt.Sprint(got))
			}
		}
	}
}

func TestFilter_Idempotent(t *testing.T) {
	items := model.DefaultAllocations()
	a := Filter(items, model.AllocationSearchFields, "lead")
	b := Filter(items, model.AllocationSearchFields, "lead")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("repeated Filter differs (-first +second):\n%s", diff)
	}
	if len(a) != 1 || a[0].ProjectName != "Project Beta" {
		t.Fatalf("Filter(lead) = %#v, want Project Beta", a)
	}
}

func TestFilter_UnknownFieldsNeverMatch(t *testing.T) {
	got := Filter(sampleLeaves(), []string{"missing"}, "sick")
	if len(got) != 0 {
		t.Fatalf("Filter on unknown field = %d items, want 0", len(got))
	}
}
