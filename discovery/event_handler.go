package discovery

import (
	"errors"
	"net"
	"strconv"

	"github.com/hashicorp/serf/serf"
	log "github.com/sirupsen/logrus"
)

var (
	// logTag is the logging tag for discovery module
	logTag = "shardnav.discovery"

	// ErrUnknownMemberEvent is returned for serf member events without a MemberEvent counterpart
	ErrUnknownMemberEvent = errors.New("unknown member event received")
)

// EventHandler converts serf events into MemberEvents, it can be registered on a serf agent
type EventHandler struct {
	handler HandlerFunc
}

// NewEventHandler will return an EventHandler forwarding member events to handler
func NewEventHandler(handler HandlerFunc) *EventHandler {
	return &EventHandler{
		handler: handler,
	}
}

// HandleEvent implements the serf agent EventHandler
func (h *EventHandler) HandleEvent(event serf.Event) {
	if err := h.processEvent(event); err != nil {
		log.WithField("tag", logTag).Errorf("event handler error: %s", err)
	}
}

func (h *EventHandler) processEvent(event serf.Event) error {
	switch casted := event.(type) {
	case serf.MemberEvent:
		return h.processMemberEvent(casted)
	case serf.UserEvent:
		log.WithField("tag", logTag).Debugf("ignored user event %s", casted.Name)
	case *serf.Query:
		log.WithField("tag", logTag).Debugf("ignored query event %s", casted.Name)
	}
	return nil
}

func (h *EventHandler) processMemberEvent(casted serf.MemberEvent) error {
	var eventType EventType

	switch casted.Type {
	case serf.EventMemberJoin:
		eventType = EventMemberJoin
	case serf.EventMemberFailed:
		eventType = EventMemberFailed
	case serf.EventMemberLeave:
		eventType = EventMemberLeave
	case serf.EventMemberReap:
		eventType = EventMemberReap
	case serf.EventMemberUpdate:
		return nil
	default:
		return ErrUnknownMemberEvent
	}

	return h.handler(MemberEvent{
		Type:    eventType,
		Servers: GetServers(casted.Members),
	})
}

// GetServers converts serf members to servers, format: [address:port]
func GetServers(members []serf.Member) []string {
	servers := make([]string, 0, len(members))
	for _, member := range members {
		servers = append(servers, net.JoinHostPort(member.Addr.String(), strconv.Itoa(int(member.Port))))
	}
	return servers
}
