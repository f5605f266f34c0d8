package consul

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/abhishek622/parentalcontrol/pkg/discovery"
	consul "github.com/hashicorp/consul/api"
)

// checkTTL is how long an instance stays healthy without a heartbeat.
const checkTTL = "5s"

// Registry defines a Consul-based service registry.
type Registry struct {
	client *consul.Client
}

// NewRegistry creates a new Consul-based service registry instance.
func NewRegistry(addr string) (*Registry, error) {
	config := consul.DefaultConfig()
	config.Address = addr
	client, err := consul.NewClient(config)
	if err != nil {
		return nil, err
	}
	return &Registry{client: client}, nil
}

// Register creates a service record in the registry.
func (r *Registry) Register(ctx context.Context, instanceID string, serviceName string, hostPort string) error {
	host, p, err := net.SplitHostPort(hostPort)
	if err != nil || host == "" {
		return errors.New("hostPort must be in a form of <host>:<port>, example: localhost:8081")
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", p, err)
	}
	return r.client.Agent().ServiceRegisterOpts(&consul.AgentServiceRegistration{
		Address: host,
		ID:      instanceID,
		Name:    serviceName,
		Port:    port,
		Check:   &consul.AgentServiceCheck{CheckID: instanceID, TTL: checkTTL},
	}, consul.ServiceRegisterOpts{}.WithContext(ctx))
}

// Deregister removes a service record from the registry.
func (r *Registry) Deregister(ctx context.Context, instanceID string, _ string) error {
	return r.client.Agent().ServiceDeregisterOpts(instanceID, (&consul.QueryOptions{}).WithContext(ctx))
}

// ServiceAddresses returns the list of addresses of active instances of the given service.
func (r *Registry) ServiceAddresses(ctx context.Context, serviceName string) ([]string, error) {
	entries, _, err := r.client.Health().Service(serviceName, "", true, (&consul.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	} else if len(entries) == 0 {
		return nil, discovery.ErrNotFound
	}
	var res []string
	for _, e := range entries {
		res = append(res, net.JoinHostPort(e.Service.Address, strconv.Itoa(e.Service.Port)))
	}
	return res, nil
}

// ReportHealthyState is a push mechanism for reporting healthy state to the registry.
func (r *Registry) ReportHealthyState(instanceID string, _ string) error {
	return r.client.Agent().UpdateTTL(instanceID, "", consul.HealthPassing)
}
