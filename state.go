package ttymon

// Phase is the controller's lifecycle phase
type Phase int

const (
	Searching Phase = iota
	Connected
)

func (p Phase) String() string {
	if p == Connected {
		return "connected"
	}
	return "searching"
}

// State is the controller's connection state. Device is set only while
// Connected.
type State struct {
	Phase  Phase
	Device Device
}

// Reporter receives the lifecycle messages meant for the person at the
// console
type Reporter interface {
	Waiting(c Criteria)
	Connected(d Device)
	Disconnected(d Device, reason EndReason)
	OpenFailed(d Device, err error)
}
