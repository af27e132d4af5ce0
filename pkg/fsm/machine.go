package fsm

import (
	"context"
	"log/slog"
)

// Machine is an embeddable finite-state-machine instance. It owns its current
// state, the transition table, the entry/exit hook registries, and a
// lazily-built dispatch index.
//
// A Machine assumes a single logical owner: Execute mutates current state and
// builds the index without synchronization, so a single instance must not be
// shared across concurrent callers. Typical deployment is one machine per
// session, confined to one goroutine.
type Machine struct {
	label   string
	initial State
	current State

	table map[transitionKey]*transition
	entry map[string]StateAction
	exit  map[string]StateAction

	// index is a frozen snapshot of table, built on the first dispatch.
	// Registrations after the build do not affect dispatch until Reindex.
	index map[transitionKey]*transition

	sealOnDispatch bool
	deferredExit   bool

	logger   *slog.Logger
	onChange func(from, to State, event Event)
}

// New creates a machine starting in the given initial state. When no label is
// supplied via WithLabel, a random one is generated for diagnostics.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == nil {
		return nil, ErrNilInitialState
	}

	m := &Machine{
		initial: initial,
		current: initial,
		table:   make(map[transitionKey]*transition),
		entry:   make(map[string]StateAction),
		exit:    make(map[string]StateAction),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if m.label == "" {
		m.label = generateLabel()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With(slog.String("machine", m.label))

	return m, nil
}

// MustNew is like New but panics on error, for wiring done at startup where
// a misconfigured machine should prevent the program from running at all.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Label returns the diagnostic label of this machine.
func (m *Machine) Label() string {
	return m.label
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// SetEntryAction registers the hook fired when a full transition enters the
// given state. At most one entry action per state; last write wins. The
// registry is consulted live at dispatch time, so late registration takes
// effect immediately.
func (m *Machine) SetEntryAction(state State, action StateAction) {
	if state == nil {
		return
	}
	m.entry[state.Name()] = action
}

// SetExitAction registers the hook fired when a full transition leaves the
// given state. At most one exit action per state; last write wins.
func (m *Machine) SetExitAction(state State, action StateAction) {
	if state == nil {
		return
	}
	m.exit[state.Name()] = action
}

// RegisterTransition inserts or overwrites the transition table entry for the
// (source, event) pair. A nil target marks an internal transition. Note that
// entries registered after the first dispatch are not seen by Execute until
// Reindex is called; with WithSealOnDispatch such late registration fails
// with ErrMachineSealed instead.
func (m *Machine) RegisterTransition(source, target State, event Event, opts ...TransitionOption) error {
	if source == nil {
		return ErrNilState
	}
	if event == nil {
		return ErrNilEvent
	}
	if m.sealOnDispatch && m.index != nil {
		return ErrMachineSealed
	}

	t := &transition{
		source: source,
		target: target,
		event:  event,
	}
	for _, opt := range opts {
		opt(t)
	}

	m.table[keyOf(source, event)] = t
	return nil
}

// RegisterInternalTransition is shorthand for RegisterTransition with a nil
// target: the action fires but state never changes and no entry/exit hook runs.
func (m *Machine) RegisterInternalTransition(source State, event Event, opts ...TransitionOption) error {
	return m.RegisterTransition(source, nil, event, opts...)
}

// Execute dispatches an event against the current state and returns the
// resulting state.
//
// When no transition is registered for the (current state, event) pair, or a
// registered guard rejects it, the event is silently ignored: the current
// state is returned with a nil error and the decision is visible only in the
// diagnostic log.
//
// For a full transition the sequence is exit(source), transition action with
// the caller-supplied args, entry(target), state update. A non-nil State
// returned by the transition action overrides the configured target. For an
// internal transition only the action fires, with no arguments, and its
// return value is ignored.
//
// Any action error aborts the sequence and propagates wrapped in an
// ActionError; side effects already applied are not rolled back.
func (m *Machine) Execute(ctx context.Context, event Event, args ...any) (State, error) {
	if event == nil {
		return m.current, ErrNilEvent
	}

	if m.index == nil {
		m.buildIndex()
	}

	t, ok := m.index[keyOf(m.current, event)]
	if !ok {
		m.logger.DebugContext(ctx, "event ignored: no transition registered",
			slog.String("from", m.current.Name()),
			slog.String("event", event.Name()))
		return m.current, nil
	}

	if t.guard != nil && !t.guard(ctx, m.current, event, args...) {
		m.logger.DebugContext(ctx, "event ignored: guard rejected transition",
			slog.String("from", m.current.Name()),
			slog.String("event", event.Name()))
		return m.current, nil
	}

	if t.internal() {
		return m.dispatchInternal(ctx, t, event)
	}
	return m.dispatchFull(ctx, t, event, args)
}

func (m *Machine) dispatchInternal(ctx context.Context, t *transition, event Event) (State, error) {
	if t.action != nil {
		// Internal actions never receive dispatch args and cannot change state.
		if _, err := t.action(ctx); err != nil {
			return m.current, &ActionError{
				Machine: m.label,
				Stage:   StageInternal,
				State:   m.current.Name(),
				Event:   event.Name(),
				Err:     err,
			}
		}
	}

	m.logger.DebugContext(ctx, "internal transition",
		slog.String("from", m.current.Name()),
		slog.String("event", event.Name()),
		slog.String("to", m.current.Name()))
	return m.current, nil
}

func (m *Machine) dispatchFull(ctx context.Context, t *transition, event Event, args []any) (State, error) {
	from := m.current

	if !m.deferredExit {
		if err := m.fireExit(ctx, from, event); err != nil {
			return m.current, err
		}
	}

	next := t.target
	if t.action != nil {
		override, err := t.action(ctx, args...)
		if err != nil {
			return m.current, &ActionError{
				Machine: m.label,
				Stage:   StageTransition,
				State:   from.Name(),
				Event:   event.Name(),
				Err:     err,
			}
		}
		if override != nil {
			next = override
		}
	}

	if m.deferredExit {
		if err := m.fireExit(ctx, from, event); err != nil {
			return m.current, err
		}
	}

	if action, ok := m.entry[next.Name()]; ok && action != nil {
		if err := action(ctx); err != nil {
			return m.current, &ActionError{
				Machine: m.label,
				Stage:   StageEntry,
				State:   next.Name(),
				Event:   event.Name(),
				Err:     err,
			}
		}
	}

	m.current = next

	m.logger.DebugContext(ctx, "transition",
		slog.String("from", from.Name()),
		slog.String("event", event.Name()),
		slog.String("to", next.Name()))

	if m.onChange != nil {
		m.onChange(from, next, event)
	}
	return next, nil
}

func (m *Machine) fireExit(ctx context.Context, from State, event Event) error {
	action, ok := m.exit[from.Name()]
	if !ok || action == nil {
		return nil
	}
	if err := action(ctx); err != nil {
		return &ActionError{
			Machine: m.label,
			Stage:   StageExit,
			State:   from.Name(),
			Event:   event.Name(),
			Err:     err,
		}
	}
	return nil
}

// CanExecute reports whether dispatching the event in the current state would
// perform a transition (full or internal), evaluating any registered guard
// against the given args. It consults the same view of the transition table
// that Execute would, but never builds the index itself.
func (m *Machine) CanExecute(ctx context.Context, event Event, args ...any) bool {
	if event == nil {
		return false
	}

	var t *transition
	var ok bool
	if m.index != nil {
		t, ok = m.index[keyOf(m.current, event)]
	} else {
		t, ok = m.table[keyOf(m.current, event)]
	}
	if !ok {
		return false
	}
	if t.guard != nil && !t.guard(ctx, m.current, event, args...) {
		return false
	}
	return true
}

// Reset restores the construction-time initial state without firing any
// entry, exit, or transition action.
func (m *Machine) Reset() {
	m.current = m.initial
}

// Reindex invalidates the frozen dispatch index so that the next Execute
// rebuilds it from the live transition table, picking up registrations made
// after the first dispatch.
func (m *Machine) Reindex() {
	m.index = nil
}

// buildIndex snapshots the transition table into the dispatch index. Built at
// most once per Reindex cycle, on the first Execute, by scanning the table;
// lookups afterwards are O(1).
func (m *Machine) buildIndex() {
	m.index = make(map[transitionKey]*transition, len(m.table))
	for k, t := range m.table {
		m.index[k] = t
	}
	m.logger.Debug("transition index built", slog.Int("transitions", len(m.index)))
}
