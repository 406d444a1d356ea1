// Package links builds and persists console-link records for a job
// invocation: the job details page, its job definition, its queue, and,
// once available, its log stream. Link persistence is purely
// observational metadata for UI consumption; no lifecycle logic depends
// on it, and persistence failures are logged, never escalated.
package links

import (
	"fmt"
	"time"

	"github.com/xraph/conductor/id"
	"github.com/xraph/conductor/job"
)

// Kind names the console page a record links to.
type Kind string

const (
	// KindJobDetails links to the job's detail page.
	KindJobDetails Kind = "job-details"
	// KindJobDefinition links to the job definition the job ran with.
	KindJobDefinition Kind = "job-definition"
	// KindJobQueue links to the queue the job was scheduled on.
	KindJobQueue Kind = "job-queue"
	// KindLogStream links to the job container's log stream.
	KindLogStream Kind = "log-stream"
)

// Record is one persisted console link. Which identifier fields are set
// depends on Kind.
type Record struct {
	ID         id.LinkID       `json:"id"`
	Invocation id.InvocationID `json:"invocation"`
	Kind       Kind            `json:"kind"`
	Region     string          `json:"region"`
	Partition  string          `json:"partition"`

	Handle        job.Handle      `json:"handle,omitempty"`
	DefinitionARN string          `json:"definition_arn,omitempty"`
	QueueARN      string          `json:"queue_arn,omitempty"`
	Logs          *job.LogLocator `json:"logs,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// JobDetails builds a job-details record.
func JobDetails(inv id.InvocationID, region, partition string, h job.Handle) Record {
	return newRecord(inv, KindJobDetails, region, partition, func(r *Record) {
		r.Handle = h
	})
}

// JobDefinition builds a job-definition record.
func JobDefinition(inv id.InvocationID, region, partition, definitionARN string) Record {
	return newRecord(inv, KindJobDefinition, region, partition, func(r *Record) {
		r.DefinitionARN = definitionARN
	})
}

// JobQueue builds a job-queue record.
func JobQueue(inv id.InvocationID, region, partition, queueARN string) Record {
	return newRecord(inv, KindJobQueue, region, partition, func(r *Record) {
		r.QueueARN = queueARN
	})
}

// LogStream builds a log-stream record.
func LogStream(inv id.InvocationID, region, partition string, h job.Handle, logs job.LogLocator) Record {
	return newRecord(inv, KindLogStream, region, partition, func(r *Record) {
		r.Handle = h
		r.Logs = &logs
	})
}

func newRecord(inv id.InvocationID, kind Kind, region, partition string, fill func(*Record)) Record {
	r := Record{
		ID:         id.NewLinkID(),
		Invocation: inv,
		Kind:       kind,
		Region:     region,
		Partition:  partition,
		CreatedAt:  time.Now().UTC(),
	}
	fill(&r)
	return r
}

// ConsoleURL renders the console URL the record points at.
func (r Record) ConsoleURL() string {
	domain := partitionDomain(r.Partition)
	switch r.Kind {
	case KindJobDetails:
		return fmt.Sprintf("https://console.%s/batch/home?region=%s#jobs/detail/%s",
			domain, r.Region, r.Handle)
	case KindJobDefinition:
		return fmt.Sprintf("https://console.%s/batch/home?region=%s#job-definition/detail/%s",
			domain, r.Region, r.DefinitionARN)
	case KindJobQueue:
		return fmt.Sprintf("https://console.%s/batch/home?region=%s#queues/detail/%s",
			domain, r.Region, r.QueueARN)
	case KindLogStream:
		group, stream := "", ""
		if r.Logs != nil {
			group, stream = r.Logs.Group, r.Logs.Stream
		}
		return fmt.Sprintf("https://console.%s/cloudwatch/home?region=%s#logEventViewer:group=%s;stream=%s",
			domain, r.Region, group, stream)
	default:
		return ""
	}
}

// partitionDomain maps a partition name to its console domain.
func partitionDomain(partition string) string {
	switch partition {
	case "aws-cn":
		return "amazonaws.cn"
	case "aws-us-gov":
		return "amazonaws-us-gov.com"
	default:
		return "aws.amazon.com"
	}
}
