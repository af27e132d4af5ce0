package definition

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fsmkit/fsmkit/pkg/fsm"
)

// Definition is a declarative machine description, typically loaded from
// YAML. Actions and guards are referenced by name and resolved against a
// Registry when the machine is built.
type Definition struct {
	Label       string            `yaml:"label,omitempty"`
	Initial     string            `yaml:"initial"`
	States      []string          `yaml:"states,omitempty"`
	Transitions []TransitionDef   `yaml:"transitions"`
	Entry       map[string]string `yaml:"entry,omitempty"`
	Exit        map[string]string `yaml:"exit,omitempty"`
}

// TransitionDef describes a single transition table entry. An omitted target
// marks an internal transition.
type TransitionDef struct {
	From   string `yaml:"from"`
	To     string `yaml:"to,omitempty"`
	Event  string `yaml:"event"`
	Action string `yaml:"action,omitempty"`
	Guard  string `yaml:"guard,omitempty"`
}

// Registry holds the named callables a Definition may reference.
type Registry struct {
	Actions map[string]fsm.TransitionAction
	Hooks   map[string]fsm.StateAction
	Guards  map[string]fsm.Guard
}

// Parse decodes a YAML document into a validated Definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidYAML, err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a YAML definition from r.
func Load(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return Parse(data)
}

// Validate checks structural consistency. The engine itself would accept a
// mistyped state name or a duplicated (from, event) pair without complaint
// (last write wins); the declarative layer exists to catch those before a
// machine is built.
func (d *Definition) Validate() error {
	if d.Initial == "" {
		return ErrMissingInitial
	}

	declared := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if s == "" {
			return fmt.Errorf("%w: empty state name", ErrUndeclaredState)
		}
		declared[s] = true
	}

	checkState := func(name, where string) error {
		if len(declared) > 0 && name != "" && !declared[name] {
			return fmt.Errorf("%w: %q in %s", ErrUndeclaredState, name, where)
		}
		return nil
	}

	if err := checkState(d.Initial, "initial"); err != nil {
		return err
	}

	seen := make(map[[2]string]bool, len(d.Transitions))
	for i, t := range d.Transitions {
		if t.From == "" {
			return fmt.Errorf("transition[%d]: %w: missing from", i, ErrInvalidTransition)
		}
		if t.Event == "" {
			return fmt.Errorf("transition[%d]: %w: missing event", i, ErrInvalidTransition)
		}
		pair := [2]string{t.From, t.Event}
		if seen[pair] {
			return fmt.Errorf("transition[%d]: %w: (%s, %s)", i, ErrDuplicateTransition, t.From, t.Event)
		}
		seen[pair] = true

		if err := checkState(t.From, fmt.Sprintf("transition[%d].from", i)); err != nil {
			return err
		}
		if err := checkState(t.To, fmt.Sprintf("transition[%d].to", i)); err != nil {
			return err
		}
	}

	for state := range d.Entry {
		if err := checkState(state, "entry"); err != nil {
			return err
		}
	}
	for state := range d.Exit {
		if err := checkState(state, "exit"); err != nil {
			return err
		}
	}

	return nil
}

// Build resolves all named actions and guards against the registry, registers
// the described transitions and hooks, and returns the ready machine.
func (d *Definition) Build(reg Registry, opts ...fsm.Option) (*fsm.Machine, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	machineOpts := make([]fsm.Option, 0, len(opts)+1)
	if d.Label != "" {
		machineOpts = append(machineOpts, fsm.WithLabel(d.Label))
	}
	machineOpts = append(machineOpts, opts...)

	m, err := fsm.New(fsm.StringState(d.Initial), machineOpts...)
	if err != nil {
		return nil, err
	}

	for state, name := range d.Entry {
		hook, ok := reg.Hooks[name]
		if !ok {
			return nil, fmt.Errorf("%w: entry hook %q for state %q", ErrUnknownAction, name, state)
		}
		m.SetEntryAction(fsm.StringState(state), hook)
	}
	for state, name := range d.Exit {
		hook, ok := reg.Hooks[name]
		if !ok {
			return nil, fmt.Errorf("%w: exit hook %q for state %q", ErrUnknownAction, name, state)
		}
		m.SetExitAction(fsm.StringState(state), hook)
	}

	for i, t := range d.Transitions {
		var topts []fsm.TransitionOption
		if t.Action != "" {
			action, ok := reg.Actions[t.Action]
			if !ok {
				return nil, fmt.Errorf("%w: action %q in transition[%d]", ErrUnknownAction, t.Action, i)
			}
			topts = append(topts, fsm.WithAction(action))
		}
		if t.Guard != "" {
			guard, ok := reg.Guards[t.Guard]
			if !ok {
				return nil, fmt.Errorf("%w: guard %q in transition[%d]", ErrUnknownAction, t.Guard, i)
			}
			topts = append(topts, fsm.WithGuard(guard))
		}

		var target fsm.State
		if t.To != "" {
			target = fsm.StringState(t.To)
		}
		if err := m.RegisterTransition(fsm.StringState(t.From), target, fsm.StringEvent(t.Event), topts...); err != nil {
			return nil, fmt.Errorf("transition[%d]: %w", i, err)
		}
	}

	return m, nil
}
