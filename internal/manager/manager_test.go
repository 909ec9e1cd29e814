package manager

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
)

type fakeGateway struct {
	mu sync.Mutex

	records  []resource.Record
	fetchFn  func() ([]resource.Record, error)
	fetchErr error

	updateErr error
	insertErr error
	deleteErr error

	fetchCalls  int
	updateCalls int
	insertCalls int
	deleteCalls int

	lastUpdateID string
	lastDeleteID string
	lastSub      resource.Submission
}

func (f *fakeGateway) FetchCollection(_ context.Context, _ resource.Descriptor, _ session.Session) ([]resource.Record, error) {
	f.mu.Lock()
	f.fetchCalls++
	fn := f.fetchFn
	f.mu.Unlock()

	if fn != nil {
		return fn()
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.records, nil
}

func (f *fakeGateway) Update(_ context.Context, _ resource.Descriptor, id string, _ session.Session, sub resource.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUpdateID = id
	f.lastSub = sub
	return f.updateErr
}

func (f *fakeGateway) Insert(_ context.Context, _ resource.Descriptor, _ session.Session, sub resource.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	f.lastSub = sub
	return f.insertErr
}

func (f *fakeGateway) Delete(_ context.Context, _ resource.Descriptor, id string, _ session.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.lastDeleteID = id
	return f.deleteErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIdentity() session.Session {
	return session.Session{Email: "user@example.com", Password: "secret"}
}

func foodRecords() []resource.Record {
	return []resource.Record{
		{"_id": "f1", "foodname": "Momo", "shopname": "Everest Kitchen", "price": float64(120), "category": "snacks", "address": "Thamel", "description": "steamed"},
		{"_id": "f2", "foodname": "Chowmein", "shopname": "Everest Kitchen", "price": float64(150), "category": "snacks", "address": "Thamel", "description": "fried noodles"},
		{"_id": "f3", "foodname": "Pizza", "shopname": "Roma Corner", "price": float64(450), "category": "italian", "address": "Patan", "description": "wood fired"},
		{"_id": "f4", "foodname": "Thali", "shopname": "Heritage Foods", "price": float64(250), "category": "meals", "address": "Bhaktapur", "description": "full set"},
		{"_id": "f5", "foodname": "Burger", "shopname": "Grill House", "price": float64(300), "category": "fast food", "address": "Baneshwor", "description": "beef"},
	}
}

func TestManager_LoadAndFilter(t *testing.T) {
	gw := &fakeGateway{records: foodRecords()}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())

	require.NoError(t, m.Load(context.Background()))
	require.True(t, m.Loaded())
	assert.Len(t, m.Records(), 5)

	// Two of the five listings share the shop name.
	m.Filter("everest")
	matched := m.Records()
	require.Len(t, matched, 2)
	assert.Equal(t, "f1", matched[0].ID())
	assert.Equal(t, "f2", matched[1].ID())

	// Case does not matter.
	m.Filter("EVEREST")
	assert.Len(t, m.Records(), 2)

	// No searchable field contains the needle.
	m.Filter("sushi")
	assert.Empty(t, m.Records())

	// Empty query restores the full collection.
	m.Filter("")
	assert.Len(t, m.Records(), 5)
}

func TestManager_FilterSkipsAbsentFields(t *testing.T) {
	gw := &fakeGateway{records: []resource.Record{
		{"_id": "f1", "foodname": "Momo"},
		{"_id": "f2"},
	}}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	m.Filter("momo")
	matched := m.Records()
	require.Len(t, matched, 1)
	assert.Equal(t, "f1", matched[0].ID())
}

func TestManager_LoadFailureAndRetry(t *testing.T) {
	gw := &fakeGateway{fetchErr: errors.New("gateway unavailable")}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())

	err := m.Load(context.Background())
	require.Error(t, err)
	assert.False(t, m.Loaded())

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, OutcomeError, outcome.Kind)
	assert.Contains(t, outcome.Message, "gateway unavailable")

	m.Dismiss()
	_, ok = m.Outcome()
	assert.False(t, ok)

	gw.fetchErr = nil
	gw.records = foodRecords()
	require.NoError(t, m.Load(context.Background()))
	assert.True(t, m.Loaded())
	assert.Len(t, m.Records(), 5)
}

func TestManager_StaleLoadDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	stale := []resource.Record{{"_id": "old"}}
	fresh := []resource.Record{{"_id": "new"}}

	var calls int
	var mu sync.Mutex
	gw := &fakeGateway{}
	gw.fetchFn = func() ([]resource.Record, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()

		if first {
			close(started)
			<-release
			return stale, nil
		}
		return fresh, nil
	}

	m := New(resource.Food(), gw, testIdentity(), discardLogger())

	done := make(chan error, 1)
	go func() {
		done <- m.Load(context.Background())
	}()
	<-started

	// A newer load resolves while the first is still in flight.
	require.NoError(t, m.Load(context.Background()))

	close(release)
	require.NoError(t, <-done)

	records := m.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "new", records[0].ID())
}

func TestManager_SelectSeedsBuffer(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Room(), gw, testIdentity(), discardLogger())

	rec := resource.Record{
		"_id":       "r1",
		"roomType":  "single",
		"price":     float64(8000),
		"location":  "Kirtipur",
		"contactNo": "9812345678",
		"forroom":   "students",
		"images":    []any{"a.jpg", "b.jpg"},
	}
	require.NoError(t, m.Select(rec))
	assert.Equal(t, StateEditing, m.State())

	id, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "r1", id)

	buf := m.Buffer()
	assert.Equal(t, "single", buf.Fields["roomType"])
	assert.Equal(t, "8000", buf.Fields["price"])
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, buf.Existing)
	// Missing availability defaults to true.
	assert.True(t, buf.Bools["availability"])
}

func TestManager_UpdateField(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Room(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Select(resource.Record{"_id": "r1", "roomType": "single"}))

	require.NoError(t, m.UpdateField("roomType", "double"))
	assert.Equal(t, "double", m.Buffer().Fields["roomType"])

	// Booleans toggle regardless of the value argument.
	require.NoError(t, m.UpdateField("availability", ""))
	assert.False(t, m.Buffer().Bools["availability"])
	require.NoError(t, m.UpdateField("availability", ""))
	assert.True(t, m.Buffer().Bools["availability"])

	assert.Error(t, m.UpdateField("nosuchfield", "x"))
}

func TestManager_SubmitRejectsInvalidInputLocally(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Room(), gw, testIdentity(), discardLogger())

	rec := resource.Record{
		"_id": "r1", "roomType": "single", "price": "8000",
		"location": "Kirtipur", "contactNo": "9812345678", "forroom": "students",
	}
	require.NoError(t, m.Select(rec))
	require.NoError(t, m.UpdateField("contactNo", "981234567")) // nine digits

	err := m.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "10 digits")

	// No request went out and the buffer survived for another attempt.
	assert.Zero(t, gw.updateCalls)
	assert.Equal(t, "981234567", m.Buffer().Fields["contactNo"])
	assert.Equal(t, StateEditing, m.State())

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, OutcomeError, outcome.Kind)
}

func TestManager_SubmitRejectsMissingRequiredField(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())

	require.NoError(t, m.Select(resource.Record{"_id": "f1", "foodname": "Momo"}))
	err := m.Submit(context.Background())
	require.Error(t, err)
	assert.Zero(t, gw.updateCalls)
}

func TestManager_SubmitUpdateSuccess(t *testing.T) {
	gw := &fakeGateway{records: foodRecords()}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	require.NoError(t, m.Select(m.Records()[0]))
	require.NoError(t, m.UpdateField("price", "130"))
	require.NoError(t, m.Submit(context.Background()))

	assert.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, "f1", gw.lastUpdateID)
	assert.Equal(t, "130", gw.lastSub.Fields["price"])
	// Success reloads and drops the selection.
	assert.Equal(t, 2, gw.fetchCalls)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Equal(t, StateListing, m.State())

	outcome, hasOutcome := m.Outcome()
	require.True(t, hasOutcome)
	assert.Equal(t, OutcomeSuccess, outcome.Kind)

	// Submitting again without a selection is rejected locally.
	assert.Error(t, m.Submit(context.Background()))
	assert.Equal(t, 1, gw.updateCalls)
}

func TestManager_SubmitFailureKeepsBuffer(t *testing.T) {
	gw := &fakeGateway{records: foodRecords(), updateErr: errors.New("server returned status 500")}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	require.NoError(t, m.Select(m.Records()[0]))
	require.NoError(t, m.UpdateField("price", "130"))

	err := m.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateEditing, m.State())
	assert.Equal(t, "130", m.Buffer().Fields["price"])

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, OutcomeError, outcome.Kind)
}

func TestManager_Insert(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())

	require.NoError(t, m.StartInsert())
	for _, field := range resource.Food().Fields {
		require.NoError(t, m.UpdateField(field, "value"))
	}
	require.NoError(t, m.Attach(resource.Upload{Filename: "shop.jpg", Data: []byte("img")}))

	require.NoError(t, m.Submit(context.Background()))
	assert.Equal(t, 1, gw.insertCalls)
	assert.Zero(t, gw.updateCalls)
	require.Len(t, gw.lastSub.Uploads, 1)
	assert.Equal(t, "shop.jpg", gw.lastSub.Uploads[0].Filename)
}

func TestManager_DeleteIsTwoStep(t *testing.T) {
	gw := &fakeGateway{records: foodRecords()}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))
	require.NoError(t, m.Select(m.Records()[2]))

	require.NoError(t, m.RequestDelete())
	assert.Zero(t, gw.deleteCalls)

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, OutcomeConfirm, outcome.Kind)

	// Dismiss does not resolve a confirmation.
	m.Dismiss()
	_, ok = m.Outcome()
	assert.True(t, ok)

	require.NoError(t, m.ConfirmDelete(context.Background()))
	assert.Equal(t, 1, gw.deleteCalls)
	assert.Equal(t, "f3", gw.lastDeleteID)
	_, selected := m.Selected()
	assert.False(t, selected)
}

func TestManager_DeleteCancelled(t *testing.T) {
	gw := &fakeGateway{records: foodRecords()}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))
	require.NoError(t, m.Select(m.Records()[0]))

	require.NoError(t, m.RequestDelete())
	m.CancelConfirm()

	assert.Zero(t, gw.deleteCalls)
	_, ok := m.Outcome()
	assert.False(t, ok)

	// Selection survives a cancelled confirmation.
	id, selected := m.Selected()
	require.True(t, selected)
	assert.Equal(t, "f1", id)
}

func TestManager_DeleteFailureKeepsSelection(t *testing.T) {
	gw := &fakeGateway{records: foodRecords(), deleteErr: errors.New("server returned status 500")}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))
	require.NoError(t, m.Select(m.Records()[0]))

	require.NoError(t, m.RequestDelete())
	require.Error(t, m.ConfirmDelete(context.Background()))

	id, selected := m.Selected()
	require.True(t, selected)
	assert.Equal(t, "f1", id)

	outcome, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, OutcomeError, outcome.Kind)
}

func TestManager_SelectThenCancelIsNoOp(t *testing.T) {
	gw := &fakeGateway{records: foodRecords()}
	m := New(resource.Food(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	require.NoError(t, m.Select(m.Records()[0]))
	require.NoError(t, m.UpdateField("price", "999"))
	m.CancelSelection()

	assert.Equal(t, StateListing, m.State())
	assert.Equal(t, 1, gw.fetchCalls)
	assert.Zero(t, gw.updateCalls)
	assert.Zero(t, gw.deleteCalls)

	// The stored record is untouched.
	price, _ := m.Records()[0].Lookup("price")
	assert.Equal(t, "120", price)
}

func TestManager_ReadOnlyDescriptor(t *testing.T) {
	gw := &fakeGateway{records: []resource.Record{
		{"_id": "q1", "name": "Asha", "submittedAt": "2025-03-02T10:00:00Z"},
		{"_id": "q2", "name": "Bikram", "submittedAt": "2025-03-01T09:00:00Z"},
		{"_id": "q3", "name": "Chandra", "submittedAt": "2025-03-03T08:00:00Z"},
	}}
	m := New(resource.Queries(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	assert.Error(t, m.Select(resource.Record{"_id": "q1"}))
	assert.Error(t, m.StartInsert())

	m.Sort("submittedAt")
	records := m.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "q2", records[0].ID())
	assert.Equal(t, "q3", records[2].ID())

	// Sorting the same key again flips the direction.
	m.Sort("submittedAt")
	records = m.Records()
	assert.Equal(t, "q3", records[0].ID())
	assert.Equal(t, "q2", records[2].ID())
}

// SortBy takes an explicit direction, so a descending order never
// depends on how often the key was sorted before.
func TestManager_SortByExplicitDirection(t *testing.T) {
	gw := &fakeGateway{records: []resource.Record{
		{"_id": "q1", "name": "Asha"},
		{"_id": "q2", "name": "Bikram"},
		{"_id": "q3", "name": "Chandra"},
	}}
	m := New(resource.Queries(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Load(context.Background()))

	m.SortBy("name", false)
	records := m.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "q3", records[0].ID())
	assert.Equal(t, "q1", records[2].ID())

	// Repeating the call keeps the same order instead of toggling.
	m.SortBy("name", false)
	records = m.Records()
	assert.Equal(t, "q3", records[0].ID())

	m.SortBy("name", true)
	records = m.Records()
	assert.Equal(t, "q1", records[0].ID())

	// A prior toggle does not leak into the explicit direction.
	m.Sort("name")
	m.SortBy("name", false)
	records = m.Records()
	assert.Equal(t, "q3", records[0].ID())
}

func TestManager_DropExisting(t *testing.T) {
	gw := &fakeGateway{}
	m := New(resource.Room(), gw, testIdentity(), discardLogger())
	require.NoError(t, m.Select(resource.Record{
		"_id":    "r1",
		"images": []any{"a.jpg", "b.jpg"},
	}))

	require.NoError(t, m.DropExisting("a.jpg"))
	assert.Equal(t, []string{"b.jpg"}, m.Buffer().Existing)
	assert.Error(t, m.DropExisting("missing.jpg"))
}
