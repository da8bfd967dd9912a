package core

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Interface defines a common interface for all services
type Interface interface {
	Start(ctx context.Context) error
	Stop()
}

type namedService struct {
	name    string
	service Interface
}

// Registry starts services in registration order and stops them in reverse
type Registry struct {
	services []namedService
	started  int
}

// NewRegistry creates a new core registry
func NewRegistry() *Registry {
	return &Registry{
		services: make([]namedService, 0),
	}
}

// Register adds a service under a name used in logs and errors
func (sr *Registry) Register(name string, service Interface) {
	sr.services = append(sr.services, namedService{name: name, service: service})
}

// Names returns the registered service names in start order
func (sr *Registry) Names() []string {
	names := make([]string, len(sr.services))
	for i, s := range sr.services {
		names[i] = s.name
	}
	return names
}

// StartAll starts all registered services. When one fails, the services
// already started are stopped again.
func (sr *Registry) StartAll(ctx context.Context) error {
	for i, s := range sr.services {
		if err := s.service.Start(ctx); err != nil {
			sr.started = i
			sr.StopAll()
			return fmt.Errorf("failed to start %s: %w", s.name, err)
		}
		log.Debugf("Core: Started %s", s.name)
	}
	sr.started = len(sr.services)
	return nil
}

// StopAll stops started services in reverse order. Safe to call repeatedly.
func (sr *Registry) StopAll() {
	for i := sr.started - 1; i >= 0; i-- {
		sr.services[i].service.Stop()
		log.Debugf("Core: Stopped %s", sr.services[i].name)
	}
	sr.started = 0
}
