package fluxcost

import (
	"context"
	"fmt"

	"github.com/viant/afs/storage"

	"github.com/viant/fluxcost/model/resource"
	"github.com/viant/fluxcost/service/dao"
	"github.com/viant/fluxcost/service/dao/process/memory"
	"github.com/viant/fluxcost/service/meta"
	"github.com/viant/fluxcost/service/worker"
)

// Config is a serialisable representation of the engine configuration.  It
// can be populated from JSON or YAML.  Zero-valued sections are filled with
// package defaults by DefaultConfig.
type Config struct {
	Pool        worker.Config     `json:"pool" yaml:"pool"`
	Repository  RepositoryConfig  `json:"repository" yaml:"repository"`
	Aggregation AggregationConfig `json:"aggregation" yaml:"aggregation"`
	Resources   ResourcesConfig   `json:"resources" yaml:"resources"`
	Tracing     TracingConfig     `json:"tracing" yaml:"tracing"`
}

type RepositoryConfig struct {
	Shards int `json:"shards" yaml:"shards"`
}

type AggregationConfig struct {
	BatchSize int `json:"batchSize" yaml:"batchSize"`
}

// ResourcesConfig selects the built-in kinds that get registered; empty means
// all of them.
type ResourcesConfig struct {
	Kinds []string `json:"kinds,omitempty" yaml:"kinds,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives the exported spans; stdout when empty.
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the package defaults.
// Callers may modify the returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Pool:        worker.DefaultConfig(),
		Repository:  RepositoryConfig{Shards: memory.DefaultShards},
		Aggregation: AggregationConfig{BatchSize: dao.DefaultBatchSize},
		Tracing: TracingConfig{
			ServiceName:    "fluxcost",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if err := c.Pool.Validate(); err != nil {
		return err
	}
	if c.Repository.Shards <= 0 {
		return fmt.Errorf("repository.shards must be > 0")
	}
	if c.Aggregation.BatchSize <= 0 {
		return fmt.Errorf("aggregation.batchSize must be > 0")
	}
	if _, err := c.Resources.kinds(); err != nil {
		return err
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName must be set when tracing is enabled")
	}
	return nil
}

func (c *Config) clone() *Config {
	ret := *c
	ret.Resources.Kinds = append([]string(nil), c.Resources.Kinds...)
	return &ret
}

func (r ResourcesConfig) kinds() ([]resource.Kind, error) {
	var ret []resource.Kind
	for _, text := range r.Kinds {
		kind, err := resource.ParseKind(text)
		if err != nil {
			return nil, fmt.Errorf("invalid resources.kinds: %w", err)
		}
		ret = append(ret, kind)
	}
	return ret, nil
}

// LoadConfig reads a YAML configuration from URL (file, mem, embed or cloud
// storage).  ${env.NAME} references are expanded before decoding and
// settings absent from the document keep their defaults.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	ret := DefaultConfig()
	if err := meta.New(nil, "", options...).Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
