// Package manager implements the listing screen state machine shared by
// every resource type: load, filter, select, edit, submit, delete. The
// behavior is driven entirely by the resource descriptor, so foods,
// jobs, rooms, users and queries all run through the same code.
package manager

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"clusterview/internal/domain/resource"
	"clusterview/internal/domain/session"
)

// State is the screen the manager currently presents.
type State int

const (
	StateListing State = iota
	StateEditing
)

// Gateway is the slice of the HTTP client the manager needs.
type Gateway interface {
	FetchCollection(ctx context.Context, desc resource.Descriptor, identity session.Session) ([]resource.Record, error)
	Update(ctx context.Context, desc resource.Descriptor, id string, identity session.Session, sub resource.Submission) error
	Insert(ctx context.Context, desc resource.Descriptor, identity session.Session, sub resource.Submission) error
	Delete(ctx context.Context, desc resource.Descriptor, id string, identity session.Session) error
}

// Manager holds one resource screen's state. Methods may be called from
// multiple goroutines; loads that resolve after a newer load was issued
// are discarded.
type Manager struct {
	desc     resource.Descriptor
	gw       Gateway
	identity session.Session
	log      *slog.Logger

	mu sync.Mutex

	// token is the latest issued load token; responses carrying an
	// older token are discarded.
	token uint64

	records []resource.Record
	query   string
	loaded  bool

	state         State
	selectedID    string
	hasSelection  bool
	inserting     bool
	buffer        resource.Submission
	outcome       *Outcome
	pendingDelete bool

	sortKey string
	sortAsc bool
}

func New(desc resource.Descriptor, gw Gateway, identity session.Session, log *slog.Logger) *Manager {
	return &Manager{
		desc:     desc,
		gw:       gw,
		identity: identity,
		log:      log.With(slog.String("resource", desc.Name)),
		state:    StateListing,
	}
}

// Descriptor returns the descriptor the manager was built from.
func (m *Manager) Descriptor() resource.Descriptor {
	return m.desc
}

// State reports whether the screen is listing or editing.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loaded reports whether at least one load has resolved.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Query returns the active filter string.
func (m *Manager) Query() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.query
}

// Outcome returns the pending overlay, if any.
func (m *Manager) Outcome() (Outcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcome == nil {
		return Outcome{}, false
	}
	return *m.outcome, true
}

// Dismiss clears a non-confirm overlay. Confirm overlays are resolved
// through ConfirmDelete or CancelConfirm instead.
func (m *Manager) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcome != nil && m.outcome.Kind == OutcomeConfirm {
		return
	}
	m.outcome = nil
}

// setOutcome requires m.mu held.
func (m *Manager) setOutcome(kind OutcomeKind, message string) {
	if m.outcome != nil && m.outcome.Kind == OutcomeConfirm {
		panic(fmt.Sprintf("manager: outcome %q set while a confirmation is pending", kind))
	}
	m.outcome = &Outcome{Kind: kind, Message: message}
}

// Load fetches the whole collection. A stale response, one that
// resolves after a newer load was issued, is discarded without touching
// state. Retrying after a failure is just calling Load again.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reload(ctx)
}

// reload requires m.mu held; it releases the lock for the duration of
// the network call and re-acquires it before applying the result.
func (m *Manager) reload(ctx context.Context) error {
	m.token++
	token := m.token

	m.mu.Unlock()
	records, err := m.gw.FetchCollection(ctx, m.desc, m.identity)
	m.mu.Lock()

	if token != m.token {
		m.log.Debug("discarding stale load", slog.Uint64("token", token), slog.Uint64("latest", m.token))
		return nil
	}

	if err != nil {
		m.log.Error("load failed", slog.String("error", err.Error()))
		m.setOutcome(OutcomeError, err.Error())
		return fmt.Errorf("failed to load %s: %w", m.desc.Plural, err)
	}

	m.records = records
	m.loaded = true
	m.log.Debug("collection loaded", slog.Int("count", len(records)))
	return nil
}

// Filter sets the local search query. Matching is a case-insensitive
// substring test over the descriptor's searchable fields; records
// missing every searchable field never match. An empty query restores
// the full collection.
func (m *Manager) Filter(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query = query
}

// Records returns the collection as filtered by the active query and
// ordered by the active sort.
func (m *Manager) Records() []resource.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.filtered()
	if m.sortKey != "" {
		m.sortRecords(out)
	}
	return out
}

func (m *Manager) filtered() []resource.Record {
	if m.query == "" {
		out := make([]resource.Record, len(m.records))
		copy(out, m.records)
		return out
	}

	needle := strings.ToLower(m.query)
	var out []resource.Record
	for _, rec := range m.records {
		for _, field := range m.desc.Searchable {
			value, ok := rec.Lookup(field)
			if !ok {
				continue
			}
			if strings.Contains(strings.ToLower(value), needle) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Sort orders the listing by the given field, toggling direction when
// the field is already the sort key. Date fields compare as timestamps.
func (m *Manager) Sort(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sortKey == key {
		m.sortAsc = !m.sortAsc
		return
	}
	m.sortKey = key
	m.sortAsc = true
}

// SortBy orders the listing by the given field in an explicit
// direction, regardless of the current sort state.
func (m *Manager) SortBy(key string, ascending bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortKey = key
	m.sortAsc = ascending
}

func (m *Manager) sortRecords(records []resource.Record) {
	key := m.sortKey
	isDate := m.desc.IsDate(key)

	less := func(a, b resource.Record) bool {
		av, _ := a.Lookup(key)
		bv, _ := b.Lookup(key)
		if isDate {
			at, aerr := parseTimestamp(av)
			bt, berr := parseTimestamp(bv)
			if aerr == nil && berr == nil {
				return at.Before(bt)
			}
		}
		return av < bv
	}

	sort.SliceStable(records, func(i, j int) bool {
		if m.sortAsc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// Select opens the record for editing, seeding the buffer from its
// current values. Missing boolean fields default to true, matching the
// listing forms' defaults. Only one selection exists at a time.
func (m *Manager) Select(rec resource.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.desc.ReadOnly {
		return fmt.Errorf("%s records are read-only", m.desc.Name)
	}
	if rec.ID() == "" {
		return fmt.Errorf("record has no identifier")
	}

	buffer := resource.Submission{
		Fields: make(map[string]string, len(m.desc.Fields)),
		Bools:  make(map[string]bool, len(m.desc.BoolFields)),
	}
	for _, name := range m.desc.Fields {
		value, _ := rec.Lookup(name)
		buffer.Fields[name] = value
	}
	for _, name := range m.desc.BoolFields {
		buffer.Bools[name] = rec.Bool(name, true)
	}
	if m.desc.Attachment == resource.SlotImages {
		buffer.Existing = rec.Strings(m.desc.AttachmentField)
	}

	m.selectedID = rec.ID()
	m.hasSelection = true
	m.inserting = false
	m.buffer = buffer
	m.state = StateEditing
	return nil
}

// StartInsert opens an empty edit buffer for a new listing.
func (m *Manager) StartInsert() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.desc.ReadOnly {
		return fmt.Errorf("%s records are read-only", m.desc.Name)
	}
	if m.desc.InsertPath == "" {
		return fmt.Errorf("%s records cannot be inserted", m.desc.Name)
	}

	buffer := resource.Submission{
		Fields: make(map[string]string, len(m.desc.Fields)),
		Bools:  make(map[string]bool, len(m.desc.BoolFields)),
	}
	for _, name := range m.desc.BoolFields {
		buffer.Bools[name] = true
	}

	m.selectedID = ""
	m.hasSelection = false
	m.inserting = true
	m.buffer = buffer
	m.state = StateEditing
	return nil
}

// Selected returns the identifier of the record being edited.
func (m *Manager) Selected() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedID, m.hasSelection
}

// Buffer returns a copy of the current edit buffer.
func (m *Manager) Buffer() resource.Submission {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := resource.Submission{
		Fields:   make(map[string]string, len(m.buffer.Fields)),
		Bools:    make(map[string]bool, len(m.buffer.Bools)),
		Existing: append([]string(nil), m.buffer.Existing...),
		Uploads:  append([]resource.Upload(nil), m.buffer.Uploads...),
	}
	for k, v := range m.buffer.Fields {
		out.Fields[k] = v
	}
	for k, v := range m.buffer.Bools {
		out.Bools[k] = v
	}
	return out
}

// UpdateField writes one field into the edit buffer. Boolean fields
// toggle; the value argument is ignored for them.
func (m *Manager) UpdateField(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return fmt.Errorf("no record selected")
	}

	if m.desc.IsBool(name) {
		m.buffer.Bools[name] = !m.buffer.Bools[name]
		return nil
	}
	for _, field := range m.desc.Fields {
		if field == name {
			m.buffer.Fields[name] = value
			return nil
		}
	}
	return fmt.Errorf("unknown field %q", name)
}

// Attach replaces the buffer's pending uploads wholesale. Previously
// retained references stay until dropped explicitly.
func (m *Manager) Attach(uploads ...resource.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return fmt.Errorf("no record selected")
	}
	if m.desc.Attachment == resource.SlotNone {
		return fmt.Errorf("%s records take no attachments", m.desc.Name)
	}
	m.buffer.Uploads = uploads
	return nil
}

// DropExisting removes one retained attachment reference.
func (m *Manager) DropExisting(ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return fmt.Errorf("no record selected")
	}
	for i, existing := range m.buffer.Existing {
		if existing == ref {
			m.buffer.Existing = append(m.buffer.Existing[:i], m.buffer.Existing[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no retained attachment %q", ref)
}

// validateBuffer requires m.mu held.
func (m *Manager) validateBuffer() error {
	for _, name := range m.desc.Required {
		if strings.TrimSpace(m.buffer.Fields[name]) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	if m.desc.Validate != nil {
		if err := m.desc.Validate(m.buffer.Fields); err != nil {
			return err
		}
	}
	return nil
}

// Submit validates the buffer and sends it to the gateway. Invalid
// input never leaves the process and the buffer survives for another
// attempt. Success reloads the collection and drops the selection.
func (m *Manager) Submit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateEditing {
		return fmt.Errorf("no record selected")
	}

	if err := m.validateBuffer(); err != nil {
		m.setOutcome(OutcomeError, err.Error())
		return err
	}

	inserting := m.inserting
	id := m.selectedID
	buffer := m.buffer

	m.mu.Unlock()
	var err error
	if inserting {
		err = m.gw.Insert(ctx, m.desc, m.identity, buffer)
	} else {
		err = m.gw.Update(ctx, m.desc, id, m.identity, buffer)
	}
	m.mu.Lock()

	if err != nil {
		m.log.Error("submit failed", slog.String("error", err.Error()))
		m.setOutcome(OutcomeError, err.Error())
		return err
	}

	verb := "updated"
	if inserting {
		verb = "created"
	}
	m.clearSelection()
	m.setOutcome(OutcomeSuccess, fmt.Sprintf("%s %s", m.desc.Name, verb))
	return m.reload(ctx)
}

// RequestDelete asks for confirmation before deleting the selected
// record. Nothing is mutated until ConfirmDelete.
func (m *Manager) RequestDelete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasSelection {
		return fmt.Errorf("no record selected")
	}
	if m.desc.DeletePath == "" {
		return fmt.Errorf("%s records cannot be deleted", m.desc.Name)
	}

	m.setOutcome(OutcomeConfirm, fmt.Sprintf("delete this %s?", m.desc.Name))
	m.pendingDelete = true
	return nil
}

// ConfirmDelete resolves a pending confirmation by deleting the record.
// Failure keeps the selection so the user can retry or cancel.
func (m *Manager) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.pendingDelete {
		return fmt.Errorf("no deletion pending")
	}
	m.pendingDelete = false
	m.outcome = nil
	id := m.selectedID

	m.mu.Unlock()
	err := m.gw.Delete(ctx, m.desc, id, m.identity)
	m.mu.Lock()

	if err != nil {
		m.log.Error("delete failed", slog.String("error", err.Error()))
		m.setOutcome(OutcomeError, err.Error())
		return err
	}

	m.clearSelection()
	m.setOutcome(OutcomeSuccess, fmt.Sprintf("%s deleted", m.desc.Name))
	return m.reload(ctx)
}

// CancelConfirm resolves a pending confirmation without acting.
func (m *Manager) CancelConfirm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelConfirm()
}

func (m *Manager) cancelConfirm() {
	if !m.pendingDelete {
		return
	}
	m.pendingDelete = false
	m.outcome = nil
}

// CancelSelection drops the edit buffer and returns to the listing.
// Any pending confirmation is cancelled with it.
func (m *Manager) CancelSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelConfirm()
	m.clearSelection()
}

func (m *Manager) clearSelection() {
	m.selectedID = ""
	m.hasSelection = false
	m.inserting = false
	m.buffer = resource.Submission{}
	m.state = StateListing
}
