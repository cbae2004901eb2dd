package discovery

// EventType is the potential event type for member event
type EventType int

// All the message types related to member events
const (
	EventMemberJoin EventType = iota
	EventMemberLeave
	EventMemberFailed
	EventMemberReap
)

// String returns the lower case name of the event type
func (t EventType) String() string {
	switch t {
	case EventMemberJoin:
		return "join"
	case EventMemberLeave:
		return "leave"
	case EventMemberFailed:
		return "failed"
	case EventMemberReap:
		return "reap"
	}
	return "unknown"
}

// MemberEvent is the member event received
type MemberEvent struct {
	// Type is one of the EventType
	Type EventType
	// Servers is the list of servers related to this event, format: [address:port]
	Servers []string
}

// HandlerFunc defines a function to handle the member events
type HandlerFunc func(event MemberEvent) error
