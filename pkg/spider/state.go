package spider

import "github.com/matzehuels/spiderfy/pkg/errors"

// State is the engine's lifecycle position.
type State int

const (
	StateNormal State = iota
	StateSpiderfying
	StateSpiderfied
	StateUnspiderfying
)

var stateNames = [...]string{"normal", "spiderfying", "spiderfied", "unspiderfying"}

// String returns the lowercase name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Transitioning reports whether the engine is moving markers.
func (s State) Transitioning() bool {
	return s == StateSpiderfying || s == StateUnspiderfying
}

// next lists the single legal successor of each state.
var next = map[State]State{
	StateNormal:        StateSpiderfying,
	StateSpiderfying:   StateSpiderfied,
	StateSpiderfied:    StateUnspiderfying,
	StateUnspiderfying: StateNormal,
}

// CanTransition reports whether the engine may move from s to to.
func (s State) CanTransition(to State) bool {
	n, ok := next[s]
	return ok && n == to
}

// Outcome describes what a click or collapse request did.
type Outcome int

const (
	// OutcomeNoop means nothing changed.
	OutcomeNoop Outcome = iota
	// OutcomeIgnored means the request arrived during a transition.
	OutcomeIgnored
	// OutcomeClick means a plain click was delivered.
	OutcomeClick
	// OutcomeSpiderfied means a cluster was fanned out.
	OutcomeSpiderfied
	// OutcomeUnspiderfied means the active cluster was collapsed.
	OutcomeUnspiderfied
)

var outcomeNames = [...]string{"noop", "ignored", "click", "spiderfied", "unspiderfied"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

func (e *Engine) transition(to State) error {
	if !e.state.CanTransition(to) {
		return errors.New(errors.ErrCodeInternal, "illegal spider transition %s -> %s", e.state, to)
	}
	e.log.Debug("state", "from", e.state, "to", to)
	e.state = to
	return nil
}
