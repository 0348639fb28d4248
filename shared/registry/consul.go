package registry

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Registration is a live consul service registration. Deregister must be
// called on shutdown so the instance drops out of discovery.
type Registration struct {
	client    *api.Client
	serviceID string
	logger    *zerolog.Logger
}

type registryConfig struct {
	Enabled        bool   `env:"CONSUL_ENABLED"         envDefault:"false"`
	Address        string `env:"CONSUL_HTTP_ADDR"       envDefault:"127.0.0.1:8500"`
	ServiceName    string `env:"CONSUL_SERVICE_NAME"    envDefault:"console-api"`
	ServiceAddress string `env:"CONSUL_SERVICE_ADDRESS" envDefault:"127.0.0.1"`
	ServicePort    int    `env:"CONSUL_SERVICE_PORT"    envDefault:"8080"`
	HealthPath     string `env:"CONSUL_HEALTH_PATH"     envDefault:"/healthz"`
}

// Register registers this instance with consul using CONSUL_* environment
// variables. Returns nil when registration is disabled.
func Register(logger *zerolog.Logger) (*Registration, error) {
	cfg, err := env.ParseAs[registryConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse consul configuration: %w", err)
	}

	if !cfg.Enabled {
		return nil, nil
	}

	apiConfig := api.DefaultConfig()
	apiConfig.Address = cfg.Address

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	serviceID := fmt.Sprintf("%s-%s", cfg.ServiceName, uuid.NewString())

	registration := &api.AgentServiceRegistration{
		ID:      serviceID,
		Name:    cfg.ServiceName,
		Address: cfg.ServiceAddress,
		Port:    cfg.ServicePort,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", cfg.ServiceAddress, cfg.ServicePort, cfg.HealthPath),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return nil, fmt.Errorf("failed to register service with consul: %w", err)
	}

	logger.Info().Str("service_id", serviceID).Msg("registered with consul")

	return &Registration{client: client, serviceID: serviceID, logger: logger}, nil
}

// Deregister removes the registration from consul.
func (r *Registration) Deregister() {
	if r == nil {
		return
	}

	if err := r.client.Agent().ServiceDeregister(r.serviceID); err != nil {
		r.logger.Error().Err(err).Msg("failed to deregister service from consul")
	}
}
