package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/form"
	"github.com/five82/emphub/internal/model"
	"github.com/five82/emphub/internal/search"
	"github.com/five82/emphub/internal/state"
)

const (
	leaveSubmittedMessage     = "Leave submitted successfully!"
	timesheetSubmittedMessage = "Timesheet submitted successfully!"
)

// ErrNoForm is returned for tabs without a form.
var ErrNoForm = errors.New("tab has no form")

type (
	LeaveCollection      = state.Collection[model.Leave, model.LeaveApplication]
	TimesheetCollection  = state.Collection[model.Timesheet, model.TimesheetSubmission]
	AllocationCollection = state.Collection[model.Allocation, struct{}]

	LeaveForm     = form.Session[model.LeaveDraft, model.Leave]
	TimesheetForm = form.Session[model.TimesheetDraft, model.Timesheet]
)

// Form is the type-independent view of a form session used by the UI.
type Form interface {
	Name() string
	State() form.State
	Toggle() error
	UpdateField(name, value string) error
	Value(field string) string
	Fields() []string
	Message() string
	Err() error
	ClearMessage()
}

var (
	_ Form = (*LeaveForm)(nil)
	_ Form = (*TimesheetForm)(nil)
	_ Form = (*ProfileForm)(nil)
)

// Dashboard wires the collections, forms and tabs of one signed-in user.
type Dashboard struct {
	user model.User
	Tabs TabController

	Leaves      *LeaveCollection
	Timesheets  *TimesheetCollection
	Allocations *AllocationCollection

	LeaveForm     *LeaveForm
	TimesheetForm *TimesheetForm
	Profile       *ProfileEditor

	mu    sync.RWMutex
	query string
}

// New builds a dashboard for user on top of gw. Nothing is fetched until
// LoadAll.
func New(user model.User, gw api.Gateway) *Dashboard {
	d := &Dashboard{
		user:        user,
		Leaves:      state.NewCollection[model.Leave, model.LeaveApplication]("leaves", api.Leaves(gw), api.Leaves(gw)),
		Timesheets:  state.NewCollection[model.Timesheet, model.TimesheetSubmission]("timesheets", api.Timesheets(gw), api.Timesheets(gw)),
		Allocations: state.NewCollection[model.Allocation, struct{}]("allocations", api.StaticAllocations{}, nil),
		Profile:     newProfileEditor(gw, user.ID),
	}
	d.LeaveForm = form.NewSession(form.Config[model.LeaveDraft, model.Leave]{
		Name:           "leave",
		NewDraft:       model.NewLeaveDraft,
		Submit:         d.applyLeave,
		SuccessMessage: leaveSubmittedMessage,
		Message:        api.UserMessage,
	})
	d.TimesheetForm = form.NewSession(form.Config[model.TimesheetDraft, model.Timesheet]{
		Name:           "timesheet",
		NewDraft:       model.NewTimesheetDraft,
		Submit:         d.submitTimesheet,
		SuccessMessage: timesheetSubmittedMessage,
		Message:        api.UserMessage,
	})
	return d
}

func (d *Dashboard) applyLeave(ctx context.Context, draft model.LeaveDraft) (model.Leave, error) {
	return d.Leaves.Create(ctx, draft.Application(d.user.ID))
}

func (d *Dashboard) submitTimesheet(ctx context.Context, draft model.TimesheetDraft) (model.Timesheet, error) {
	sub, err := draft.Submission(d.user.ID)
	if err != nil {
		return model.Timesheet{}, err
	}
	return d.Timesheets.Create(ctx, sub)
}

// User returns the signed-in user.
func (d *Dashboard) User() model.User { return d.user }

// LoadAll fetches every collection and the profile concurrently. Load
// failures are recorded per collection and never returned.
func (d *Dashboard) LoadAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, load := range []func(){
		func() { d.Leaves.LoadInitial(ctx, d.user.ID) },
		func() { d.Timesheets.LoadInitial(ctx, d.user.ID) },
		func() { d.Allocations.LoadInitial(ctx, d.user.ID) },
		func() { d.Profile.Load(ctx) },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			load()
		}()
	}
	wg.Wait()
}

// Reload re-fetches the collections shown on tab; Overview reloads
// everything.
func (d *Dashboard) Reload(ctx context.Context, tab Tab) {
	switch tab {
	case Leaves:
		d.Leaves.Reload(ctx, d.user.ID)
	case Timesheets:
		d.Timesheets.Reload(ctx, d.user.ID)
	case Allocations:
		d.Allocations.Reload(ctx, d.user.ID)
	case Profile:
		d.Profile.Load(ctx)
	default:
		d.LoadAll(ctx)
	}
}

// SetQuery replaces the shared search query.
func (d *Dashboard) SetQuery(q string) {
	d.mu.Lock()
	d.query = q
	d.mu.Unlock()
}

// Query returns the shared search query.
func (d *Dashboard) Query() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.query
}

// FilteredLeaves returns the leaves matching the current query.
func (d *Dashboard) FilteredLeaves() []model.Leave {
	return search.Filter(d.Leaves.Items(), model.LeaveSearchFields, d.Query())
}

// FilteredTimesheets returns the timesheets matching the current query.
func (d *Dashboard) FilteredTimesheets() []model.Timesheet {
	return search.Filter(d.Timesheets.Items(), model.TimesheetSearchFields, d.Query())
}

// FilteredAllocations returns the allocations matching the current query.
func (d *Dashboard) FilteredAllocations() []model.Allocation {
	return search.Filter(d.Allocations.Items(), model.AllocationSearchFields, d.Query())
}

// Stats computes the overview statistics as of now.
func (d *Dashboard) Stats(now time.Time) Stats {
	return ComputeStats(d.Leaves.Items(), d.Timesheets.Items(), d.Allocations.Items(), now)
}

// FormFor returns the form activated by tab.
func (d *Dashboard) FormFor(tab Tab) (Form, bool) {
	switch tab {
	case Leaves:
		return d.LeaveForm, true
	case Timesheets:
		return d.TimesheetForm, true
	case Profile:
		return d.Profile.Form(), true
	}
	return nil, false
}

// Submit sends the form of tab and returns its resulting message.
func (d *Dashboard) Submit(ctx context.Context, tab Tab) (string, error) {
	var err error
	switch tab {
	case Leaves:
		_, err = d.LeaveForm.Submit(ctx)
		return d.LeaveForm.Message(), err
	case Timesheets:
		_, err = d.TimesheetForm.Submit(ctx)
		return d.TimesheetForm.Message(), err
	case Profile:
		_, err = d.Profile.Form().Submit(ctx)
		return d.Profile.Form().Message(), err
	}
	return "", ErrNoForm
}

// Status describes the load health of the collection on tab for the status
// bar. It is empty when the last load succeeded.
func (d *Dashboard) Status(tab Tab) string {
	switch tab {
	case Leaves:
		return snapshotStatus(d.Leaves.Snapshot())
	case Timesheets:
		return snapshotStatus(d.Timesheets.Snapshot())
	case Profile:
		return d.Profile.LoadMessage()
	}
	return ""
}

func snapshotStatus[T any](snap state.Snapshot[T]) string {
	if snap.LastError == nil {
		return ""
	}
	msg := api.UserMessage(snap.LastError)
	if snap.IsOffline() {
		return msg + " (offline)"
	}
	return msg
}
