package resources

import (
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/observability/log"
)

const (
	EventLoaded       = "resource.loaded"
	EventLoadFailed   = "resource.load_failed"
	EventReloaded     = "resource.reloaded"
	EventReloadFailed = "resource.reload_failed"
)

// ResourceEvent is the payload of every resource event.
type ResourceEvent struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

func (s *Service) publish(typ, name string, err error) {
	if s.bus == nil {
		return
	}
	data := ResourceEvent{Name: name}
	if err != nil {
		data.Error = err.Error()
	}
	if perr := s.bus.Publish(bus.NewEvent(typ, "resources", data)); perr != nil {
		s.log.Warn("event handler failed", log.String("event", typ), log.Error(perr))
	}
}
