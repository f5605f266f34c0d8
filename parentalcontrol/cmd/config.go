package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type config struct {
	API              apiConfig              `yaml:"api"`
	Env              string                 `yaml:"env" validate:"required,oneof=dev prod"`
	LogLevel         string                 `yaml:"logLevel" validate:"required,oneof=debug info warn error"`
	ServiceDiscovery serviceDiscoveryConfig `yaml:"serviceDiscovery"`
	Jaeger           jaegerConfig           `yaml:"jaeger"`
	RateLimit        rateLimitConfig        `yaml:"rateLimit"`
	Catalog          catalogConfig          `yaml:"catalog"`
	TLS              tlsConfig              `yaml:"tls"`
}

type apiConfig struct {
	Port        int `yaml:"port" validate:"required,gte=1,lt=65536"`
	MetricsPort int `yaml:"metricsPort" validate:"required,gte=1,lt=65536,nefield=Port"`
}

type serviceDiscoveryConfig struct {
	Consul consulConfig `yaml:"consul"`
}

type consulConfig struct {
	Address string `yaml:"address" validate:"required,hostname_port"`
}

type jaegerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port string `yaml:"port" validate:"required,numeric"`
}

type rateLimitConfig struct {
	Limit int `yaml:"limit" validate:"gte=1"`
	Burst int `yaml:"burst" validate:"gte=1"`
}

type catalogConfig struct {
	// Transport selects the catalog gateway: memory, http or grpc.
	Transport string `yaml:"transport" validate:"required,oneof=memory http grpc"`
	// Titles seeds the memory catalog with movie id to level entries.
	Titles map[string]string `yaml:"titles"`
}

// tlsConfig enables mutual TLS on the gRPC server and the catalog client.
type tlsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"certFile" validate:"required_if=Enabled true"`
	KeyFile  string `yaml:"keyFile" validate:"required_if=Enabled true"`
	CAFile   string `yaml:"caFile" validate:"required_if=Enabled true"`
}

func loadConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open configuration: %w", err)
	}
	defer f.Close()

	var cfg config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}
