package routes

import (
	"github.com/TopShelfBullard/rails/http/params"
)

// A Slot is one named parameter of the current route in positional
// order: its name, the value it resolved to for the current request,
// and whether that value came from the route's declared default rather
// than the request path.
type Slot struct {
	Name        string
	Value       string
	FromDefault bool
}

// RequestState holds the routing state of the current request: the
// matched route's positionally ordered parameter slots, the request's
// parameter Bag, and where the request arrived (scheme/host).
//
// A RequestState is owned by a single in-flight request.
type RequestState struct {
	route *Route
	slots []Slot

	// Bag is the full parameter set of the current request.
	Bag *params.Bag

	// Scheme and Host identify where the current request arrived,
	// used when absolutizing generated URLs. Host includes the port
	// when non-standard.
	Scheme string
	Host   string
}

// NewRequestState constructs a *RequestState directly from a Route's
// recognized slots. Exposed for tests and transport adapters.
func NewRequestState(r *Route, slots []Slot) *RequestState {
	return &RequestState{route: r, slots: slots}
}

// Route returns the matched Route.
func (rs *RequestState) Route() *Route { return rs.route }

// Slots returns the matched route's parameter slots in positional order.
func (rs *RequestState) Slots() []Slot {
	slots := make([]Slot, len(rs.slots))
	copy(slots, rs.slots)
	return slots
}

// Param returns the current value for the named slot.
func (rs *RequestState) Param(name string) (string, bool) {
	for _, s := range rs.slots {
		if s.Name == name {
			return s.Value, true
		}
	}

	return "", false
}
