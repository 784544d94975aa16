package core

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// Event is a scheduled community event with its RSVP list.
type Event struct {
	ID          int64
	Title       string
	Date        string
	Time        string
	Location    string
	Description string
	CreatedBy   string
	RSVPs       []string
}

// EventDraft holds the client-supplied fields of a new event. Field order
// is the order in which missing fields are reported.
type EventDraft struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description" validate:"required"`
}

var draftValidator = newDraftValidator()

func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate reports the first missing field of the draft.
func (d EventDraft) Validate() error {
	err := draftValidator.Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return ValidationError("%s is required", fieldErrs[0].Field())
	}
	return err
}

type eventEntry struct {
	mu    sync.Mutex
	event Event
}

func (e *eventEntry) snapshot() Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copyLocked()
}

func (e *eventEntry) copyLocked() Event {
	cp := e.event
	cp.RSVPs = append(make([]string, 0, len(e.event.RSVPs)), e.event.RSVPs...)
	return cp
}

// EventLedger is an append-only collection of events. The ledger lock
// guards ID allocation; each event carries its own lock for RSVP changes.
type EventLedger struct {
	mu      sync.RWMutex
	entries []*eventEntry
}

// NewEventLedger creates an empty ledger.
func NewEventLedger() *EventLedger {
	return &EventLedger{}
}

// Create validates draft and appends a new event with the next ID.
func (l *EventLedger) Create(draft EventDraft, createdBy string) (Event, error) {
	if err := draft.Validate(); err != nil {
		return Event{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := &eventEntry{event: Event{
		ID:          int64(len(l.entries)) + 1,
		Title:       draft.Title,
		Date:        draft.Date,
		Time:        draft.Time,
		Location:    draft.Location,
		Description: draft.Description,
		CreatedBy:   createdBy,
		RSVPs:       []string{},
	}}
	l.entries = append(l.entries, entry)
	return entry.snapshot(), nil
}

func (l *EventLedger) lookup(id int64) (*eventEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if id < 1 || id > int64(len(l.entries)) {
		return nil, false
	}
	return l.entries[id-1], true
}

// ToggleRSVP flips name's membership in the event's RSVP list and reports
// whether name is attending afterwards.
func (l *EventLedger) ToggleRSVP(id int64, name string) (Event, bool, error) {
	entry, ok := l.lookup(id)
	if !ok {
		return Event{}, false, NotFoundError(MsgEventNotFound)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	attending := !lo.Contains(entry.event.RSVPs, name)
	if attending {
		entry.event.RSVPs = append(entry.event.RSVPs, name)
	} else {
		entry.event.RSVPs = lo.Without(entry.event.RSVPs, name)
	}
	return entry.copyLocked(), attending, nil
}

// Get returns a snapshot of a single event.
func (l *EventLedger) Get(id int64) (Event, bool) {
	entry, ok := l.lookup(id)
	if !ok {
		return Event{}, false
	}
	return entry.snapshot(), true
}

// History returns snapshots of every event in creation order.
func (l *EventLedger) History() []Event {
	l.mu.RLock()
	entries := append([]*eventEntry(nil), l.entries...)
	l.mu.RUnlock()

	return lo.Map(entries, func(e *eventEntry, _ int) Event {
		return e.snapshot()
	})
}

// Len returns the number of events.
func (l *EventLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
