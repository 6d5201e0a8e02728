package form

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

// State is the lifecycle position of a form session.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

var (
	// ErrNotOpen is returned for edits or submits outside the Open state.
	ErrNotOpen = errors.New("form is not open")
	// ErrSubmitting is returned when the form is toggled mid-submission.
	ErrSubmitting = errors.New("form is submitting")
)

// Draft is a fixed-field record under edit. With returns an updated copy.
type Draft[D any] interface {
	With(field, value string) (D, error)
	Value(field string) string
	Fields() []string
	Validate() error
}

// SubmitFunc persists a validated draft and returns the confirmed record.
type SubmitFunc[D, T any] func(ctx context.Context, draft D) (T, error)

// MessageFunc turns a submission error into the text shown to the user.
type MessageFunc func(err error) string

// Config wires a Session.
type Config[D Draft[D], T any] struct {
	Name           string
	NewDraft       func() D
	Submit         SubmitFunc[D, T]
	SuccessMessage string
	// Message maps submit errors to user text; nil uses err.Error().
	Message MessageFunc
}

// Session owns one draft and its open, submitting and closed lifecycle.
type Session[D Draft[D], T any] struct {
	cfg Config[D, T]

	mu      sync.Mutex
	state   State
	draft   D
	message string
	lastErr error
}

// NewSession returns a closed session.
func NewSession[D Draft[D], T any](cfg Config[D, T]) *Session[D, T] {
	if cfg.Message == nil {
		cfg.Message = func(err error) string { return err.Error() }
	}
	return &Session[D, T]{cfg: cfg}
}

// Name returns the resource name the session edits.
func (s *Session[D, T]) Name() string { return s.cfg.Name }

// State returns the current lifecycle state.
func (s *Session[D, T]) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Toggle opens a closed form with a fresh draft or closes an open one,
// discarding its draft.
func (s *Session[D, T]) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case Submitting:
		return ErrSubmitting
	case Open:
		s.state = Closed
		s.draft = s.emptyDraft()
		s.lastErr = nil
	default:
		s.state = Open
		s.draft = s.cfg.NewDraft()
		s.message = ""
		s.lastErr = nil
	}
	return nil
}

// UpdateField sets one draft field.
func (s *Session[D, T]) UpdateField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Open {
		return ErrNotOpen
	}
	next, err := s.draft.With(name, value)
	if err != nil {
		return err
	}
	s.draft = next
	return nil
}

// Validate runs the draft's local checks.
func (s *Session[D, T]) Validate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if verr := validationError(s.draft.Validate()); verr != nil {
		return verr
	}
	return nil
}

// Submit validates and sends the draft. Validation failures keep the form
// open without calling the submit function. A failed submission reopens the
// form with the draft intact; a successful one closes it and clears the
// draft.
func (s *Session[D, T]) Submit(ctx context.Context) (T, error) {
	var zero T

	s.mu.Lock()
	if s.state != Open {
		s.mu.Unlock()
		return zero, ErrNotOpen
	}
	if verr := validationError(s.draft.Validate()); verr != nil {
		s.message = verr.First()
		s.lastErr = verr
		s.mu.Unlock()
		return zero, verr
	}
	draft := s.draft
	s.state = Submitting
	s.message = ""
	s.lastErr = nil
	s.mu.Unlock()

	record, err := s.cfg.Submit(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("%s submit failed: %v", s.cfg.Name, err)
		s.state = Open
		s.message = s.cfg.Message(err)
		s.lastErr = err
		return zero, err
	}
	s.state = Closed
	s.draft = s.emptyDraft()
	s.message = s.cfg.SuccessMessage
	return record, nil
}

// Draft returns a copy of the current draft.
func (s *Session[D, T]) Draft() D {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Value returns one field of the current draft.
func (s *Session[D, T]) Value(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Value(field)
}

// Fields lists the draft's editable fields.
func (s *Session[D, T]) Fields() []string {
	return s.cfg.NewDraft().Fields()
}

// Message returns the last success or failure text.
func (s *Session[D, T]) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Err returns the error behind the current message, if any.
func (s *Session[D, T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearMessage drops the current message.
func (s *Session[D, T]) ClearMessage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = ""
	s.lastErr = nil
}

func (s *Session[D, T]) emptyDraft() D {
	var zero D
	return zero
}

func (s *Session[D, T]) String() string {
	return fmt.Sprintf("%s form (%s)", s.cfg.Name, s.State())
}
