package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/emphub/internal/api"
	"github.com/five82/emphub/internal/form"
	"github.com/five82/emphub/internal/model"
)

var testUser = model.User{ID: 7, Name: "Ana Costa", Email: "ana@example.com"}

func newHTTPDashboard(t *testing.T, handler http.HandlerFunc) *Dashboard {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := api.NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return New(testUser, client)
}

func TestDashboard_LeaveSubmitPrependsServerRecord(t *testing.T) {
	var mu sync.Mutex
	var got map[string]any
	d := newHTTPDashboard(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/leaves/user/7":
			_, _ = io.WriteString(w, `[{"id":1,"leave_type":"Sick Leave","start_date":"2025-10-01","end_date":"2025-10-01","status":"Approved","days":1,"reason":"cold"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/leaves/apply":
			mu.Lock()
			_ = json.NewDecoder(r.Body).Decode(&got)
			mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"leave":{"id":3,"leave_type":"Casual Leave","start_date":"2025-12-10T00:00:00Z","end_date":"2025-12-12T00:00:00Z","status":"Pending","days":3,"reason":"Medical"}}`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	})
	ctx := context.Background()
	d.LoadAll(ctx)

	if err := d.LeaveForm.Toggle(); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	for field, value := range map[string]string{"startDate": "2025-12-10", "endDate": "2025-12-12", "reason": "Medical"} {
		if err := d.LeaveForm.UpdateField(field, value); err != nil {
			t.Fatalf("UpdateField(%s) returned error: %v", field, err)
		}
	}

	msg, err := d.Submit(ctx, Leaves)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if msg != "Leave submitted successfully!" {
		t.Fatalf("message = %q", msg)
	}

	leaves := d.FilteredLeaves()
	want := model.Leave{ID: 3, Type: "Casual Leave", StartDate: "2025-12-10", EndDate: "2025-12-12", Status: "Pending", Days: 3, Reason: "Medical"}
	if len(leaves) != 2 {
		t.Fatalf("len(leaves) = %d, want 2", len(leaves))
	}
	if diff := cmp.Diff(want, leaves[0]); diff != "" {
		t.Fatalf("first leave mismatch (-want +got):\n%s", diff)
	}
	if d.LeaveForm.State() != form.Closed {
		t.Fatalf("form state = %v, want closed", d.LeaveForm.State())
	}
	if diff := cmp.Diff(model.LeaveDraft{}, d.LeaveForm.Draft()); diff != "" {
		t.Fatalf("draft not cleared (-want +got):\n%s", diff)
	}

	mu.Lock()
	defer mu.Unlock()
	if got["leave_type"] != "Casual Leave" || got["user_id"] != float64(7) {
		t.Fatalf("request body = %#v", got)
	}

	d.SetQuery("CASUAL")
	if filtered := d.FilteredLeaves(); len(filtered) != 1 || filtered[0].ID != 3 {
		t.Fatalf("filtered leaves = %#v, want only id 3", filtered)
	}
}

func TestDashboard_TimesheetRejectedByServer(t *testing.T) {
	d := newHTTPDashboard(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/timesheets/user/7":
			_, _ = io.WriteString(w, `[{"id":9,"date":"2025-11-28T00:00:00Z","hours_worked":8,"project":"Alpha","status":"Approved","description":"sprint"}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/timesheets/submit":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"Hours exceed allowed maximum"}`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	})
	ctx := context.Background()
	d.LoadAll(ctx)
	before := d.Timesheets.Items()

	_ = d.TimesheetForm.Toggle()
	for field, value := range map[string]string{"date": "2025-12-01", "project": "Alpha", "hoursWorked": "20", "description": "crunch"} {
		if err := d.TimesheetForm.UpdateField(field, value); err != nil {
			t.Fatalf("UpdateField(%s) returned error: %v", field, err)
		}
	}
	draft := d.TimesheetForm.Draft()

	msg, err := d.Submit(ctx, Timesheets)
	if err == nil {
		t.Fatal("Submit returned nil error")
	}
	if msg != "Hours exceed allowed maximum" {
		t.Fatalf("message = %q", msg)
	}
	if d.TimesheetForm.State() != form.Open {
		t.Fatalf("form state = %v, want open", d.TimesheetForm.State())
	}
	if diff := cmp.Diff(draft, d.TimesheetForm.Draft()); diff != "" {
		t.Fatalf("draft changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, d.Timesheets.Items()); diff != "" {
		t.Fatalf("collection changed (-want +got):\n%s", diff)
	}
}

func TestDashboard_UnreachableServerMessage(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	client, err := api.NewClient(url, api.WithTimeout(500*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	d := New(testUser, client)
	d.LoadAll(context.Background())
	if d.Leaves.Len() != 0 {
		t.Fatalf("leaves = %d, want empty after failed load", d.Leaves.Len())
	}
	if got := d.Status(Leaves); got != api.ConnectionMessage {
		t.Fatalf("Status(Leaves) = %q", got)
	}

	_ = d.TimesheetForm.Toggle()
	for field, value := range map[string]string{"date": "2025-12-01", "project": "Alpha", "hoursWorked": "8"} {
		_ = d.TimesheetForm.UpdateField(field, value)
	}
	msg, _ := d.Submit(context.Background(), Timesheets)
	if msg != api.ConnectionMessage {
		t.Fatalf("message = %q, want %q", msg, api.ConnectionMessage)
	}
}

func TestDashboard_StatusReportsOffline(t *testing.T) {
	gw := &fakeGateway{leavesErr: &api.Error{Kind: api.KindTransport, Op: "leaves.fetch", Err: errors.New("refused")}}
	d := New(testUser, gw)
	ctx := context.Background()

	d.Reload(ctx, Leaves)
	if got := d.Status(Leaves); got != api.ConnectionMessage {
		t.Fatalf("Status after one failure = %q", got)
	}
	d.Reload(ctx, Leaves)
	if got := d.Status(Leaves); got != api.ConnectionMessage+" (offline)" {
		t.Fatalf("Status after two failures = %q", got)
	}

	gw.mu.Lock()
	gw.leavesErr = nil
	gw.leaves = []model.Leave{{ID: 1, Type: model.LeaveSick, Status: model.StatusPending}}
	gw.mu.Unlock()
	d.Reload(ctx, Leaves)
	if got := d.Status(Leaves); got != "" {
		t.Fatalf("Status after recovery = %q", got)
	}
	if d.Leaves.Len() != 1 {
		t.Fatalf("leaves = %d, want 1", d.Leaves.Len())
	}
}

func TestDashboard_FormFor(t *testing.T) {
	d := New(testUser, &fakeGateway{})
	for _, tab := range []Tab{Leaves, Timesheets, Profile} {
		if _, ok := d.FormFor(tab); !ok {
			t.Errorf("FormFor(%v) = false", tab)
		}
	}
	for _, tab := range []Tab{Overview, Allocations} {
		if _, ok := d.FormFor(tab); ok {
			t.Errorf("FormFor(%v) = true", tab)
		}
	}
	if _, err := d.Submit(context.Background(), Allocations); !errors.Is(err, ErrNoForm) {
		t.Fatalf("Submit(Allocations) = %v, want ErrNoForm", err)
	}
}

func TestDashboard_AllocationsAreStaticAndSearchable(t *testing.T) {
	d := New(testUser, &fakeGateway{})
	d.LoadAll(context.Background())

	if got := len(d.FilteredAllocations()); got != 2 {
		t.Fatalf("allocations = %d, want 2", got)
	}
	d.SetQuery("lead")
	got := d.FilteredAllocations()
	if len(got) != 1 || got[0].ProjectName != "Project Beta" {
		t.Fatalf("filtered allocations = %#v", got)
	}
	if !d.Allocations.ReadOnly() {
		t.Fatal("allocations collection is writable")
	}
}

func TestProfileEditor_EditAndSave(t *testing.T) {
	gw := &fakeGateway{profile: model.Profile{City: "Porto", Phone: "555"}}
	d := New(testUser, gw)
	ctx := context.Background()
	d.Profile.Load(ctx)

	f := d.Profile.Form()
	if err := f.Toggle(); err != nil {
		t.Fatalf("Toggle returned error: %v", err)
	}
	if f.Value("city") != "Porto" {
		t.Fatalf("draft city = %q, want the loaded profile", f.Value("city"))
	}
	if err := f.UpdateField("city", "Lisbon"); err != nil {
		t.Fatalf("UpdateField returned error: %v", err)
	}

	msg, err := d.Submit(ctx, Profile)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if msg != "Profile saved successfully" {
		t.Fatalf("message = %q", msg)
	}
	want := model.Profile{City: "Lisbon", Phone: "555"}
	if diff := cmp.Diff(want, d.Profile.Profile()); diff != "" {
		t.Fatalf("profile mismatch (-want +got):\n%s", diff)
	}
	if len(gw.saved) != 1 || gw.saved[0] != want {
		t.Fatalf("saved = %#v", gw.saved)
	}
}

func TestProfileEditor_Failures(t *testing.T) {
	gw := &fakeGateway{
		profileErr: errors.New("boom"),
		saveErr:    &api.Error{Kind: api.KindApplication, Status: 500, Message: "Failed to save profile"},
	}
	d := New(testUser, gw)
	ctx := context.Background()
	d.Profile.Load(ctx)

	if d.Profile.Loaded() {
		t.Fatal("Loaded() = true after failed load")
	}
	if got := d.Status(Profile); got != "Error loading profile" {
		t.Fatalf("Status(Profile) = %q", got)
	}

	f := d.Profile.Form()
	_ = f.Toggle()
	_ = f.UpdateField("phone", "123")
	msg, err := d.Submit(ctx, Profile)
	if err == nil {
		t.Fatal("Submit returned nil error")
	}
	if msg != "Failed to save profile" {
		t.Fatalf("message = %q", msg)
	}
	if f.State() != form.Open || f.Value("phone") != "123" {
		t.Fatalf("form = %v phone %q, want open with draft kept", f.State(), f.Value("phone"))
	}
	if d.Profile.Profile() != (model.Profile{}) {
		t.Fatalf("profile changed on failed save: %#v", d.Profile.Profile())
	}
}
