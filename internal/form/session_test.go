package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/emphub/internal/model"
)

type recorder struct {
	calls  int
	drafts []model.TimesheetDraft
	result model.Timesheet
	err    error
	block  chan struct{}
}

func (r *recorder) submit(_ context.Context, d model.TimesheetDraft) (model.Timesheet, error) {
	r.calls++
	r.drafts = append(r.drafts, d)
	if r.block != nil {
		<-r.block
	}
	return r.result, r.err
}

func newTimesheetForm(r *recorder) *Session[model.TimesheetDraft, model.Timesheet] {
	return NewSession(Config[model.TimesheetDraft, model.Timesheet]{
		Name:           "timesheet",
		NewDraft:       model.NewTimesheetDraft,
		Submit:         r.submit,
		SuccessMessage: "Timesheet submitted successfully!",
	})
}

func fill(t *testing.T, s *Session[model.TimesheetDraft, model.Timesheet], hours string) {
	t.Helper()
	for field, value := range map[string]string{
		"date":        "2025-12-01",
		"project":     "Alpha",
		"hoursWorked": hours,
		"description": "api work",
	} {
		if err := s.UpdateField(field, value); err != nil {
			t.Fatalf("UpdateField(%s) returned error: %v", field, err)
		}
	}
}

func TestSession_ToggleOpensWithFreshDraft(t *testing.T) {
	s := newTimesheetForm(&recorder{})
	if s.State() != Closed {
		t.Fatalf("initial state = %v, want closed", s.State())
	}
	if err := s.UpdateField("project", "x"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("UpdateField while closed = %v, want ErrNotOpen", err)
	}

	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	fill(t, s, "8")
	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if s.State() != Closed {
		t.Fatalf("state = %v, want closed", s.State())
	}
	if err := s.Toggle(); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if diff := cmp.Diff(model.NewTimesheetDraft(), s.Draft()); diff != "" {
		t.Fatalf("reopened draft not reset (-want +got):\n%s", diff)
	}
}

func TestSession_UpdateFieldRejectsUnknownNames(t *testing.T) {
	s := newTimesheetForm(&recorder{})
	_ = s.Toggle()
	if err := s.UpdateField("status", "Approved"); !errors.Is(err, model.ErrUnknownField) {
		t.Fatalf("UpdateField(status) = %v, want ErrUnknownField", err)
	}
}

func TestSession_HoursBoundaryNeverCallsSubmit(t *testing.T) {
	cases := []struct {
		hours  string
		accept bool
	}{
		{"0", false},
		{"24", true},
		{"24.1", false},
		{"abc", false},
	}
	for _, tc := range cases {
		t.Run(tc.hours, func(t *testing.T) {
			r := &recorder{result: model.Timesheet{ID: 5}}
			s := newTimesheetForm(r)
			_ = s.Toggle()
			fill(t, s, tc.hours)

			_, err := s.Submit(context.Background())
			if tc.accept {
				if err != nil {
					t.Fatalf("Submit(%s) returned error: %v", tc.hours, err)
				}
				if r.calls != 1 {
					t.Fatalf("submit calls = %d, want 1", r.calls)
				}
				return
			}
			if !IsValidation(err) {
				t.Fatalf("Submit(%s) error = %v, want validation error", tc.hours, err)
			}
			if r.calls != 0 {
				t.Fatalf("submit called %d times for rejected hours", r.calls)
			}
			if s.State() != Open {
				t.Fatalf("state = %v, want open", s.State())
			}
			if s.Message() == "" {
				t.Fatal("Message() empty after validation failure")
			}
		})
	}
}

func TestSession_SubmitSuccessClosesAndClears(t *testing.T) {
	r := &recorder{result: model.Timesheet{ID: 11, Project: "Alpha"}}
	s := newTimesheetForm(r)
	_ = s.Toggle()
	fill(t, s, "7.5")

	got, err := s.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("Submit = %#v, want id 11", got)
	}
	if s.State() != Closed {
		t.Fatalf("state = %v, want closed", s.State())
	}
	if diff := cmp.Diff(model.TimesheetDraft{}, s.Draft()); diff != "" {
		t.Fatalf("draft not cleared (-want +got):\n%s", diff)
	}
	if s.Message() != "Timesheet submitted successfully!" {
		t.Fatalf("Message() = %q", s.Message())
	}
	if r.drafts[0].HoursWorked != "7.5" {
		t.Fatalf("submitted draft = %#v", r.drafts[0])
	}
}

func TestSession_SubmitFailureKeepsDraft(t *testing.T) {
	r := &recorder{err: errors.New("Hours exceed allowed maximum")}
	s := newTimesheetForm(r)
	_ = s.Toggle()
	fill(t, s, "12")
	before := s.Draft()

	if _, err := s.Submit(context.Background()); err == nil {
		t.Fatal("Submit returned nil error")
	}
	if s.State() != Open {
		t.Fatalf("state = %v, want open", s.State())
	}
	if diff := cmp.Diff(before, s.Draft()); diff != "" {
		t.Fatalf("draft changed on failure (-want +got):\n%s", diff)
	}
	if s.Message() != "Hours exceed allowed maximum" {
		t.Fatalf("Message() = %q", s.Message())
	}
	if r.calls != 1 {
		t.Fatalf("submit calls = %d, want 1 (no retry)", r.calls)
	}
}

func TestSession_SubmittingBlocksToggleAndResubmit(t *testing.T) {
	r := &recorder{block: make(chan struct{}), result: model.Timesheet{ID: 1}}
	s := newTimesheetForm(r)
	_ = s.Toggle()
	fill(t, s, "8")

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()

	for s.State() != Submitting {
		time.Sleep(time.Millisecond)
	}
	if err := s.Toggle(); !errors.Is(err, ErrSubmitting) {
		t.Fatalf("Toggle while submitting = %v, want ErrSubmitting", err)
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("second Submit = %v, want ErrNotOpen", err)
	}
	if err := s.UpdateField("project", "x"); !errors.Is(err, ErrNotOpen) {
		t.Fatalf("UpdateField while submitting = %v, want ErrNotOpen", err)
	}

	close(r.block)
	if err := <-done; err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if r.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", r.calls)
	}
}

func TestSession_MessageFuncMapsErrors(t *testing.T) {
	r := &recorder{err: errors.New("dial tcp: refused")}
	s := NewSession(Config[model.TimesheetDraft, model.Timesheet]{
		Name:     "timesheet",
		NewDraft: model.NewTimesheetDraft,
		Submit:   r.submit,
		Message:  func(error) string { return "Error connecting to server" },
	})
	_ = s.Toggle()
	fill(t, s, "8")
	_, _ = s.Submit(context.Background())
	if s.Message() != "Error connecting to server" {
		t.Fatalf("Message() = %q", s.Message())
	}
	s.ClearMessage()
	if s.Message() != "" || s.Err() != nil {
		t.Fatal("ClearMessage left state behind")
	}
}

func TestValidationError_AllReasons(t *testing.T) {
	s := NewSession(Config[model.LeaveDraft, model.Leave]{
		Name:     "leave",
		NewDraft: model.NewLeaveDraft,
	})
	_ = s.Toggle()
	err := s.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate() = %v, want *ValidationError", err)
	}
	want := []string{"Start date is required", "End date is required", "Reason is required"}
	if diff := cmp.Diff(want, verr.Reasons); diff != "" {
		t.Fatalf("reasons mismatch (-want +got):\n%s", diff)
	}
	if verr.First() != want[0] {
		t.Fatalf("First() = %q", verr.First())
	}
}
