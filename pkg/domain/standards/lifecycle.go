package standards

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Store lifecycle state constants.
// These must remain untyped string constants for statekit.StateID compatibility.
const (
	StateEmpty  = "empty"
	StateLoaded = "loaded"
)

const eventLoad = "load"

// lifecycle models the store's two-state life: empty until the first
// successful LoadAll, then loaded for the rest of the process lifetime.
// No event leads out of the loaded state; there is no reload.
type lifecycle struct {
	interpreter *statekit.Interpreter[struct{}]
}

func newLifecycle() (*lifecycle, error) {
	builder := statekit.NewMachine[struct{}]("store-lifecycle").
		WithInitial(statekit.StateID(StateEmpty)).
		WithContext(struct{}{})

	builder.State(StateEmpty).
		On(eventLoad).Target(StateLoaded).
		Done()

	builder.State(StateLoaded).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build lifecycle machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &lifecycle{interpreter: interpreter}, nil
}

// MarkLoaded transitions empty -> loaded. A second call is an error because
// the loaded state is terminal.
func (l *lifecycle) MarkLoaded() error {
	if l.Current() == StateLoaded {
		return fmt.Errorf("store is already in the '%s' state", StateLoaded)
	}
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(eventLoad)})
	if l.Current() != StateLoaded {
		return fmt.Errorf("the '%s' event is not allowed while the store is in the '%s' state", eventLoad, l.Current())
	}
	return nil
}

func (l *lifecycle) Current() string {
	return string(l.interpreter.State().Value)
}

// Loaded reports whether the store has completed its load.
func (l *lifecycle) Loaded() bool {
	return l.Current() == StateLoaded
}
