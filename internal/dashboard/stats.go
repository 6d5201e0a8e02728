package dashboard

import (
	"time"

	"github.com/five82/emphub/internal/model"
)

// AnnualLeaveAllowance is the number of leave days granted per year.
const AnnualLeaveAllowance = 25

// Stats summarizes the collections for the overview tab.
type Stats struct {
	LeaveDaysUsed     int // approved leave days starting in the current year
	LeaveAllowance    int
	HoursThisMonth    float64 // non-rejected hours dated in the current month
	ActiveAllocations int
	PendingRequests   int // pending leaves and timesheets
}

// ComputeStats derives overview statistics as of now.
func ComputeStats(leaves []model.Leave, timesheets []model.Timesheet, allocations []model.Allocation, now time.Time) Stats {
	s := Stats{LeaveAllowance: AnnualLeaveAllowance}

	for _, l := range leaves {
		if l.Status == model.StatusPending {
			s.PendingRequests++
		}
		if l.Status != model.StatusApproved {
			continue
		}
		if start := model.ParseDate(l.StartDate); !start.IsZero() && start.Year() == now.Year() {
			s.LeaveDaysUsed += l.Days
		}
	}

	for _, ts := range timesheets {
		if ts.Status == model.StatusPending {
			s.PendingRequests++
		}
		if ts.Status == model.StatusRejected {
			continue
		}
		d := model.ParseDate(ts.Date)
		if d.Year() == now.Year() && d.Month() == now.Month() {
			s.HoursThisMonth += ts.HoursWorked
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for _, a := range allocations {
		if allocationActive(a, today) {
			s.ActiveAllocations++
		}
	}
	return s
}

// LeaveDaysRemaining never goes below zero.
func (s Stats) LeaveDaysRemaining() int {
	if left := s.LeaveAllowance - s.LeaveDaysUsed; left > 0 {
		return left
	}
	return 0
}

// Unparseable bounds are treated as open.
func allocationActive(a model.Allocation, today time.Time) bool {
	if start := model.ParseDate(a.StartDate); !start.IsZero() && today.Before(start) {
		return false
	}
	if end := model.ParseDate(a.EndDate); !end.IsZero() && today.After(end) {
		return false
	}
	return true
}
