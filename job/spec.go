package job

import (
	"errors"
	"fmt"
)

// Overrides adjusts the container parameters of a job definition at
// submission time. Zero values mean "use the job definition's value".
type Overrides struct {
	// Command replaces the container command.
	Command []string `json:"command,omitempty"`

	// Environment adds or replaces environment variables.
	Environment map[string]string `json:"environment,omitempty"`

	// VCPUs overrides the number of vCPUs reserved for the container.
	VCPUs int `json:"vcpus,omitempty"`

	// MemoryMiB overrides the memory reservation in MiB.
	MemoryMiB int `json:"memory_mib,omitempty"`
}

// Spec is the immutable description of a job to submit. Construct one
// per invocation; it is read-only thereafter.
type Spec struct {
	// Name is the job name shown by the scheduling service.
	Name string `json:"name"`

	// Definition references a pre-registered execution template on the
	// service. Required.
	Definition string `json:"definition"`

	// Queue references the scheduling queue to submit to. Required.
	Queue string `json:"queue"`

	// Overrides adjusts container parameters for this submission.
	Overrides Overrides `json:"overrides,omitempty"`

	// ArraySize, when greater than 1, submits an array job with that
	// many child jobs. Zero or 1 submits a regular job.
	ArraySize int `json:"array_size,omitempty"`

	// Parameters substitutes placeholders in the job definition.
	Parameters map[string]string `json:"parameters,omitempty"`

	// Tags are applied to the submission. Nil means no tags.
	Tags map[string]string `json:"tags,omitempty"`
}

var (
	// ErrNoDefinition indicates a Spec without a job definition reference.
	ErrNoDefinition = errors.New("job: spec has no job definition")
	// ErrNoQueue indicates a Spec without a queue reference.
	ErrNoQueue = errors.New("job: spec has no job queue")
)

// Validate checks the Spec invariants: definition and queue references
// must be non-empty.
func (s Spec) Validate() error {
	if s.Definition == "" {
		return ErrNoDefinition
	}
	if s.Queue == "" {
		return ErrNoQueue
	}
	return nil
}

// IsArray reports whether the spec describes an array job.
func (s Spec) IsArray() bool { return s.ArraySize > 1 }

// Handle is the opaque job identifier assigned by the scheduling
// service at submission. It is unset until submission succeeds and is
// required for every subsequent operation.
type Handle string

// IsZero reports whether the handle has not been assigned.
func (h Handle) IsZero() bool { return h == "" }

func (h Handle) String() string { return string(h) }

// LogLocator names the log group and stream a job's container writes
// to, once the service has populated them. It is advisory metadata for
// link persistence; no lifecycle decision depends on it.
type LogLocator struct {
	Group  string `json:"group"`
	Stream string `json:"stream"`
}

// Description is a point-in-time snapshot of a job as reported by a
// describe call.
type Description struct {
	// Handle echoes the job identifier the snapshot describes.
	Handle Handle `json:"handle"`

	// Name is the job name as recorded by the service.
	Name string `json:"name,omitempty"`

	// Status is the lifecycle state at describe time. May be empty
	// immediately after submission (eventual consistency).
	Status Status `json:"status,omitempty"`

	// Reason is the service-supplied explanation for the current
	// status. Populated for FAILED jobs.
	Reason string `json:"reason,omitempty"`

	// DefinitionARN and QueueARN are the fully qualified resource names
	// resolved by the service. Either may be empty early in the job's
	// life.
	DefinitionARN string `json:"definition_arn,omitempty"`
	QueueARN      string `json:"queue_arn,omitempty"`

	// Logs locates the job's log stream when available.
	Logs *LogLocator `json:"logs,omitempty"`
}

func (d *Description) String() string {
	return fmt.Sprintf("job %s status=%s reason=%q", d.Handle, d.Status, d.Reason)
}
