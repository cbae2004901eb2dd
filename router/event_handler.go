package router

import (
	"github.com/justloop/shardnav/discovery"
	log "github.com/sirupsen/logrus"
)

// logTagListener is the logging tag for EventHandler
var logTagListener = "shardnav.router.listener"

// EventHandler applies membership events to a ConsistentHashingRouter.
// Failed, leaving and reaped servers are marked down, joined servers are readmitted.
type EventHandler struct {
	router *ConsistentHashingRouter
}

// NewEventHandler creates an EventHandler for router
func NewEventHandler(router *ConsistentHashingRouter) *EventHandler {
	return &EventHandler{
		router: router,
	}
}

// Handler is the discovery.HandlerFunc of the router
func (h *EventHandler) Handler(event discovery.MemberEvent) error {
	log.WithField("tag", logTagListener).Debugf("router received %s event for %v", event.Type, event.Servers)
	switch event.Type {
	case discovery.EventMemberJoin:
		for _, server := range event.Servers {
			h.router.ReadmitHost(server)
		}
	case discovery.EventMemberFailed, discovery.EventMemberLeave, discovery.EventMemberReap:
		for _, server := range event.Servers {
			h.router.MarkHostDown(server)
		}
	}
	return nil
}
