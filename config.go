package conductor

import "github.com/xraph/conductor/wait"

// Config holds configuration for the Controller.
type Config struct {
	// Budget bounds polling work per wait phase.
	Budget wait.Budget

	// Region and Partition locate the service endpoint for console
	// links. They do not affect remote calls; the client carries its
	// own endpoint configuration.
	Region    string
	Partition string

	// CancelReason is the terminate reason used when none is supplied.
	CancelReason string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Budget:       wait.DefaultBudget(),
		Region:       "us-east-1",
		Partition:    "aws",
		CancelReason: "job cancelled by caller",
	}
}
