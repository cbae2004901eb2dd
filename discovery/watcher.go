package discovery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/justloop/shardnav/utils"
	log "github.com/sirupsen/logrus"
)

// Watcher polls a Source and dispatches a MemberEvent for every membership change
type Watcher struct {
	config   *Config
	source   Source
	handlers []HandlerFunc

	// servers is the sorted server list seen on the last successful poll
	servers  []string
	checksum uint32
	polled   bool

	mu sync.Mutex
}

// NewWatcher will create a Watcher over source, a nil config uses the defaults
func NewWatcher(source Source, config *Config) *Watcher {
	return &Watcher{
		config: setDefaultConfig(config),
		source: source,
	}
}

// AddEventHandler registers handler for the membership changes found by later polls
func (w *Watcher) AddEventHandler(handler HandlerFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// Servers returns the servers seen on the last successful poll
func (w *Watcher) Servers() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	servers := make([]string, len(w.servers))
	copy(servers, w.servers)
	return servers
}

// Poll reads the source once. New servers are dispatched as a join event,
// vanished servers as a failed event. It returns the source error or the last handler error.
func (w *Watcher) Poll() error {
	servers, err := w.source.AliveServers()
	if err != nil {
		log.WithField("tag", logTag).Warnf("get alive servers got error: %s", err)
		return err
	}

	w.mu.Lock()
	checksum := utils.GetCheckSumFromNodes(servers)
	if w.polled && checksum == w.checksum {
		w.mu.Unlock()
		return nil
	}
	joined, failed := utils.Difference(servers, w.servers)
	sorted := make([]string, len(servers))
	copy(sorted, servers)
	sort.Strings(sorted)
	w.servers = sorted
	w.checksum = checksum
	w.polled = true
	handlers := make([]HandlerFunc, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	var events []MemberEvent
	if len(failed) > 0 {
		events = append(events, MemberEvent{Type: EventMemberFailed, Servers: failed})
	}
	if len(joined) > 0 {
		events = append(events, MemberEvent{Type: EventMemberJoin, Servers: joined})
	}
	for _, event := range events {
		log.WithField("tag", logTag).Infof("membership changed: %s %v", event.Type, event.Servers)
		for _, handler := range handlers {
			if herr := dispatch(handler, event); herr != nil {
				log.WithField("tag", logTag).Warnf("handler failed on %s event: %s", event.Type, herr)
				err = herr
			}
		}
	}
	return err
}

func dispatch(handler HandlerFunc, event MemberEvent) error {
	defer utils.DoPanicRecovery("discovery.Watcher handler")
	return handler(event)
}

// Run polls the source every PollInterval until ctx is done, poll errors are logged and retried on the next tick
func (w *Watcher) Run(ctx context.Context) error {
	log.WithField("tag", logTag).Infof("watcher started, polling every %s", w.config.PollInterval)
	_ = w.Poll()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.WithField("tag", logTag).Info("watcher shutdown...")
			return ctx.Err()
		case <-ticker.C:
			_ = w.Poll()
		}
	}
}
