package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhishek622/parentalcontrol/pkg/discovery"
)

// instanceTTL is how long an instance stays active without a heartbeat.
const instanceTTL = 5 * time.Second

type serviceName string
type instanceID string

// Registry defines an in-memory service registry.
type Registry struct {
	sync.RWMutex
	serviceAddrs map[serviceName]map[instanceID]*serviceInstance
	now          func() time.Time
}

type serviceInstance struct {
	hostPort   string
	lastActive time.Time
}

// NewRegistry creates a new in-memory service registry instance.
func NewRegistry() *Registry {
	return &Registry{
		serviceAddrs: map[serviceName]map[instanceID]*serviceInstance{},
		now:          time.Now,
	}
}

// Register creates a service record in the registry.
func (r *Registry) Register(ctx context.Context, id string, name string, hostPort string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.serviceAddrs[serviceName(name)]; !ok {
		r.serviceAddrs[serviceName(name)] = map[instanceID]*serviceInstance{}
	}
	r.serviceAddrs[serviceName(name)][instanceID(id)] = &serviceInstance{hostPort: hostPort, lastActive: r.now()}
	return nil
}

// Deregister removes a service record from the registry.
func (r *Registry) Deregister(ctx context.Context, id string, name string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.serviceAddrs[serviceName(name)]; !ok {
		return nil
	}
	delete(r.serviceAddrs[serviceName(name)], instanceID(id))
	return nil
}

// ReportHealthyState is a push mechanism for reporting healthy state to the registry.
func (r *Registry) ReportHealthyState(id string, name string) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.serviceAddrs[serviceName(name)]; !ok {
		return errors.New("service is not registered yet")
	}
	if _, ok := r.serviceAddrs[serviceName(name)][instanceID(id)]; !ok {
		return errors.New("service instance is not registered yet")
	}
	r.serviceAddrs[serviceName(name)][instanceID(id)].lastActive = r.now()
	return nil
}

// ServiceAddresses returns the list of addresses of active instances of the given service.
func (r *Registry) ServiceAddresses(ctx context.Context, name string) ([]string, error) {
	r.RLock()
	defer r.RUnlock()
	if len(r.serviceAddrs[serviceName(name)]) == 0 {
		return nil, discovery.ErrNotFound
	}
	var res []string
	for _, i := range r.serviceAddrs[serviceName(name)] {
		if i.lastActive.Before(r.now().Add(-instanceTTL)) {
			continue
		}
		res = append(res, i.hostPort)
	}
	if len(res) == 0 {
		return nil, discovery.ErrNotFound
	}
	return res, nil
}
