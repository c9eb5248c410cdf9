package render

type state int

const (
	idle state = iota
	rendered
	redirected
)

// An Outcome is the one result an action execution produced: nothing
// yet, a rendered body with a status, or a redirect target. The zero
// value is the not-performed state.
//
// Once a Gate commits a rendered or redirected Outcome, it is immutable
// for the remainder of the action's execution.
type Outcome struct {
	state  state
	body   []byte
	status string
	target string
}

// Performed reports whether the Outcome is terminal.
func (o Outcome) Performed() bool { return o.state != idle }

// Rendered unwraps the body and status of a rendered Outcome.
func (o Outcome) Rendered() (body []byte, status string, ok bool) {
	if o.state != rendered {
		return nil, "", false
	}

	return o.body, o.status, true
}

// Redirected unwraps the target of a redirected Outcome.
func (o Outcome) Redirected() (target string, ok bool) {
	if o.state != redirected {
		return "", false
	}

	return o.target, true
}
