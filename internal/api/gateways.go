package api

import (
	"context"

	"github.com/five82/emphub/internal/model"
	"github.com/five82/emphub/internal/state"
)

var (
	_ state.Source[model.Leave]                                = LeaveGateway{}
	_ state.Sink[model.LeaveApplication, model.Leave]          = LeaveGateway{}
	_ state.Source[model.Timesheet]                            = TimesheetGateway{}
	_ state.Sink[model.TimesheetSubmission, model.Timesheet]   = TimesheetGateway{}
	_ state.Source[model.Allocation]                           = StaticAllocations{}
)

// LeaveGateway adapts a Gateway to the leave collection.
type LeaveGateway struct{ G Gateway }

// Leaves returns the leave adapter for g.
func Leaves(g Gateway) LeaveGateway { return LeaveGateway{G: g} }

func (l LeaveGateway) FetchByUser(ctx context.Context, userID int64) ([]model.Leave, error) {
	return l.G.FetchLeaves(ctx, userID)
}

func (l LeaveGateway) Create(ctx context.Context, app model.LeaveApplication) (model.Leave, error) {
	return l.G.ApplyLeave(ctx, app)
}

// TimesheetGateway adapts a Gateway to the timesheet collection.
type TimesheetGateway struct{ G Gateway }

// Timesheets returns the timesheet adapter for g.
func Timesheets(g Gateway) TimesheetGateway { return TimesheetGateway{G: g} }

func (t TimesheetGateway) FetchByUser(ctx context.Context, userID int64) ([]model.Timesheet, error) {
	return t.G.FetchTimesheets(ctx, userID)
}

func (t TimesheetGateway) Create(ctx context.Context, sub model.TimesheetSubmission) (model.Timesheet, error) {
	return t.G.SubmitTimesheet(ctx, sub)
}

// StaticAllocations serves the fixed allocation list; the API has no
// allocation endpoint.
type StaticAllocations struct{}

func (StaticAllocations) FetchByUser(context.Context, int64) ([]model.Allocation, error) {
	return model.DefaultAllocations(), nil
}
