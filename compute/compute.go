// Package compute provisions compute environments on the remote
// scheduling service. Creation is fire-and-forget: a single create call
// is issued and acknowledged, with no polling for readiness.
package compute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrNoName indicates an EnvironmentSpec without a name.
	ErrNoName = errors.New("compute: environment spec has no name")
	// ErrNoType indicates an EnvironmentSpec without an environment type.
	ErrNoType = errors.New("compute: environment spec has no type")
	// ErrNilClient indicates a Creator constructed without a client.
	ErrNilClient = errors.New("compute: nil environment client")
)

// Resources describes the capacity managed by a compute environment.
// Only meaningful for managed environments.
type Resources struct {
	// Type selects the provisioning model, e.g. "EC2", "SPOT",
	// "FARGATE", "FARGATE_SPOT".
	Type string `json:"type"`

	// MinVCPUs, MaxVCPUs, and DesiredVCPUs bound the environment's
	// capacity. MaxVCPUs is required by the service for managed
	// environments.
	MinVCPUs     int `json:"min_vcpus,omitempty"`
	MaxVCPUs     int `json:"max_vcpus,omitempty"`
	DesiredVCPUs int `json:"desired_vcpus,omitempty"`

	// InstanceTypes restricts which instance types may be launched.
	InstanceTypes []string `json:"instance_types,omitempty"`

	// Subnets and SecurityGroupIDs place launched capacity in the VPC.
	Subnets          []string `json:"subnets,omitempty"`
	SecurityGroupIDs []string `json:"security_group_ids,omitempty"`

	// InstanceRole is the ECS instance profile applied to EC2 capacity.
	InstanceRole string `json:"instance_role,omitempty"`
}

// EnvironmentSpec is the immutable description of a compute environment
// to create.
type EnvironmentSpec struct {
	// Name of the environment. Required.
	Name string `json:"name"`

	// Type is "MANAGED" or "UNMANAGED". Required.
	Type string `json:"type"`

	// State is "ENABLED" or "DISABLED". Empty leaves the service default.
	State string `json:"state,omitempty"`

	// UnmanagedVCPUs caps vCPUs for an UNMANAGED environment. Ignored
	// for managed environments.
	UnmanagedVCPUs int `json:"unmanaged_vcpus,omitempty"`

	// Resources describes managed capacity. Nil for unmanaged
	// environments.
	Resources *Resources `json:"resources,omitempty"`

	// ServiceRole allows the service to act on the caller's behalf.
	ServiceRole string `json:"service_role,omitempty"`

	// Tags are applied to the environment. Nil means no tags.
	Tags map[string]string `json:"tags,omitempty"`
}

// Validate checks the EnvironmentSpec invariants.
func (s EnvironmentSpec) Validate() error {
	if s.Name == "" {
		return ErrNoName
	}
	if s.Type == "" {
		return ErrNoType
	}
	return nil
}

// EnvironmentClient issues compute-environment calls against the
// remote scheduling service.
type EnvironmentClient interface {
	CreateEnvironment(ctx context.Context, spec EnvironmentSpec) error
}

// Creator creates compute environments.
type Creator struct {
	client EnvironmentClient
	logger *slog.Logger
}

// Option configures a Creator.
type Option func(*Creator)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Creator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCreator builds a Creator backed by the given client.
func NewCreator(client EnvironmentClient, opts ...Option) (*Creator, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	c := &Creator{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Create validates the spec and issues a single create call. It returns
// once the service acknowledges the request; the environment may still
// be provisioning.
func (c *Creator) Create(ctx context.Context, spec EnvironmentSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if err := c.client.CreateEnvironment(ctx, spec); err != nil {
		return fmt.Errorf("compute: create environment %q: %w", spec.Name, err)
	}
	c.logger.Info("compute environment created",
		slog.String("name", spec.Name),
		slog.String("type", spec.Type),
	)
	return nil
}
