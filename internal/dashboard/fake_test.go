package dashboard

import (
	"context"
	"sync"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/model"
)

type fakeGateway struct {
	mu sync.Mutex

	leaves     []model.Leave
	timesheets []model.Timesheet
	profile    model.Profile

	leavesErr  error
	profileErr error
	saveErr    error

	applied []model.LeaveApplication
	saved   []model.Profile
	nextID  int64
}

var _ api.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) FetchLeaves(context.Context, int64) ([]model.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.leavesErr != nil {
		return nil, f.leavesErr
	}
	return append([]model.Leave(nil), f.leaves...), nil
}

func (f *fakeGateway) ApplyLeave(_ context.Context, app model.LeaveApplication) (model.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, app)
	f.nextID++
	return model.Leave{ID: f.nextID, Type: app.LeaveType, StartDate: app.StartDate, EndDate: app.EndDate, Status: model.StatusPending, Reason: app.Reason}, nil
}

func (f *fakeGateway) FetchTimesheets(context.Context, int64) ([]model.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Timesheet(nil), f.timesheets...), nil
}

func (f *fakeGateway) SubmitTimesheet(_ context.Context, sub model.TimesheetSubmission) (model.Timesheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return model.Timesheet{ID: f.nextID, Date: sub.Date, Project: sub.Project, HoursWorked: sub.HoursWorked, Status: model.StatusPending}, nil
}

func (f *fakeGateway) FetchProfile(context.Context, int64) (model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile, f.profileErr
}

func (f *fakeGateway) SaveProfile(_ context.Context, _ int64, p model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeGateway) Login(context.Context, model.Credentials) (model.User, error) {
	return model.User{ID: 7, Name: "Ana"}, nil
}
