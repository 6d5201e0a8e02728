package dashboard

import (
	"testing"
	"time"

	"github.com/five82/emphub/internal/model"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, time.December, 15, 10, 0, 0, 0, time.UTC)
	leaves := []model.Leave{
		{ID: 1, Status: model.StatusApproved, StartDate: "2025-03-01", Days: 5},
		{ID: 2, Status: model.StatusApproved, StartDate: "2025-07-14", Days: 4},
		{ID: 3, Status: model.StatusApproved, StartDate: "2024-12-30", Days: 2},
		{ID: 4, Status: model.StatusPending, StartDate: "2025-12-20", Days: 3},
		{ID: 5, Status: model.StatusRejected, StartDate: "2025-12-01", Days: 1},
	}
	timesheets := []model.Timesheet{
		{ID: 1, Date: "2025-12-01", HoursWorked: 8, Status: model.StatusApproved},
		{ID: 2, Date: "2025-12-02", HoursWorked: 7.5, Status: model.StatusPending},
		{ID: 3, Date: "2025-12-03", HoursWorked: 6, Status: model.StatusRejected},
		{ID: 4, Date: "2025-11-28", HoursWorked: 8, Status: model.StatusApproved},
	}
	allocations := append(model.DefaultAllocations(), model.Allocation{ID: 3, StartDate: "2024-01-01", EndDate: "2024-12-31"})

	got := ComputeStats(leaves, timesheets, allocations, now)
	want := Stats{
		LeaveDaysUsed:     9,
		LeaveAllowance:    25,
		HoursThisMonth:    15.5,
		ActiveAllocations: 2,
		PendingRequests:   2,
	}
	if got != want {
		t.Fatalf("ComputeStats = %+v, want %+v", got, want)
	}
	if got.LeaveDaysRemaining() != 16 {
		t.Fatalf("LeaveDaysRemaining = %d, want 16", got.LeaveDaysRemaining())
	}
	if (Stats{LeaveAllowance: 25, LeaveDaysUsed: 30}).LeaveDaysRemaining() != 0 {
		t.Fatal("LeaveDaysRemaining went negative")
	}
}
