package state

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/emphub/internal/model"
)

type fakeLeaves struct {
	items     []model.Leave
	loadErr   error
	created   model.Leave
	createErr error
	loads     int
	creates   []model.LeaveApplication
}

func (f *fakeLeaves) FetchByUser(_ context.Context, _ int64) ([]model.Leave, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.items, nil
}

func (f *fakeLeaves) Create(_ context.Context, p model.LeaveApplication) (model.Leave, error) {
	f.creates = append(f.creates, p)
	if f.createErr != nil {
		return model.Leave{}, f.createErr
	}
	return f.created, nil
}

func newLeaves(f *fakeLeaves) *Collection[model.Leave, model.LeaveApplication] {
	return NewCollection[model.Leave, model.LeaveApplication]("leaves", f, f)
}

func TestCollection_LoadAndSnapshotClone(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1}, {ID: 2}}}
	c := newLeaves(f)

	before := time.Now()
	got := c.LoadInitial(context.Background(), 7)
	if len(got) != 2 || got[0].ID != 1 {
		t.Fatalf("LoadInitial = %#v, want 2 items", got)
	}

	snap := c.Snapshot()
	if !snap.Loaded {
		t.Fatal("Loaded = false after successful load")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Items[0].ID = 999
	if c.Items()[0].ID != 1 {
		t.Fatalf("Snapshot should clone items; got id %d want 1", c.Items()[0].ID)
	}
}

func TestCollection_LoadFailureKeepsPreviousData(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1}}}
	c := newLeaves(f)
	c.LoadInitial(context.Background(), 7)

	origErr := errors.New("boom")
	f.loadErr = origErr
	got := c.Reload(context.Background(), 7)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("items changed on error: got %#v", got)
	}

	snap := c.Snapshot()
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestCollection_FailedInitialLoadIsEmpty(t *testing.T) {
	f := &fakeLeaves{loadErr: errors.New("connection refused")}
	c := newLeaves(f)

	if got := c.LoadInitial(context.Background(), 7); len(got) != 0 {
		t.Fatalf("LoadInitial = %#v, want empty", got)
	}
	snap := c.Snapshot()
	if snap.Loaded {
		t.Fatal("Loaded = true after failed load")
	}
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("failures = %d offline = %v, want 1/false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	c.Reload(context.Background(), 7)
	if snap := c.Snapshot(); !snap.IsOffline() {
		t.Fatal("IsOffline() = false after two failures")
	}

	f.loadErr = nil
	c.Reload(context.Background(), 7)
	if snap := c.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failures = %d after success, want 0", snap.ConsecutiveFailures)
	}
}

func TestCollection_LoadKeepsFirstOfDuplicateIDs(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1, Reason: "a"}, {ID: 2}, {ID: 1, Reason: "b"}}}
	c := newLeaves(f)
	got := c.LoadInitial(context.Background(), 7)
	if len(got) != 2 || got[0].Reason != "a" {
		t.Fatalf("LoadInitial = %#v, want first occurrence kept", got)
	}
}

func TestCollection_CreatePrependsConfirmedRecord(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1}, {ID: 2}}}
	c := newLeaves(f)
	c.LoadInitial(context.Background(), 7)

	want := model.Leave{
		ID:        3,
		Type:      "Casual Leave",
		StartDate: "2025-12-10",
		EndDate:   "2025-12-12",
		Status:    model.StatusPending,
		Days:      3,
		Reason:    "Medical",
	}
	f.created = want

	got, err := c.Create(context.Background(), model.LeaveApplication{UserID: 7, Reason: "Medical"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Create record mismatch (-want +got):\n%s", diff)
	}
	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}
	if diff := cmp.Diff(want, items[0]); diff != "" {
		t.Fatalf("first item mismatch (-want +got):\n%s", diff)
	}
	if items[1].ID != 1 || items[2].ID != 2 {
		t.Fatalf("existing order changed: %#v", items)
	}
}

func TestCollection_CreateFailureLeavesItemsUntouched(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1}}, createErr: errors.New("nope")}
	c := newLeaves(f)
	c.LoadInitial(context.Background(), 7)

	if _, err := c.Create(context.Background(), model.LeaveApplication{}); err == nil {
		t.Fatal("Create returned nil error")
	}
	if got := c.Items(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("items = %#v, want unchanged", got)
	}
	if snap := c.Snapshot(); snap.LastError != nil {
		t.Fatalf("create failure recorded as load error: %v", snap.LastError)
	}
}

func TestCollection_CreateDuplicateIDNotInserted(t *testing.T) {
	f := &fakeLeaves{items: []model.Leave{{ID: 1}}, created: model.Leave{ID: 1, Reason: "dup"}}
	c := newLeaves(f)
	c.LoadInitial(context.Background(), 7)

	got, err := c.Create(context.Background(), model.LeaveApplication{})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got.Reason != "dup" {
		t.Fatalf("Create = %#v, want server record", got)
	}
	if items := c.Items(); len(items) != 1 || items[0].Reason != "" {
		t.Fatalf("items = %#v, want held record untouched", items)
	}
}

type staticAllocations []model.Allocation

func (s staticAllocations) FetchByUser(context.Context, int64) ([]model.Allocation, error) {
	return s, nil
}

func TestCollection_ReadOnly(t *testing.T) {
	c := NewCollection[model.Allocation, struct{}]("allocations", staticAllocations(model.DefaultAllocations()), nil)
	if !c.ReadOnly() {
		t.Fatal("ReadOnly() = false, want true")
	}
	if got := c.LoadInitial(context.Background(), 1); len(got) != 2 {
		t.Fatalf("LoadInitial = %d items, want 2", len(got))
	}
	if _, err := c.Create(context.Background(), struct{}{}); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Create error = %v, want ErrReadOnly", err)
	}
}

func TestCollection_NilSourceIsNoop(t *testing.T) {
	c := NewCollection[model.Leave, model.LeaveApplication]("leaves", nil, nil)
	if got := c.LoadInitial(context.Background(), 1); got != nil {
		t.Fatalf("LoadInitial = %#v, want nil", got)
	}
	if c.Snapshot().Loaded {
		t.Fatal("nil source marked loaded")
	}
}
