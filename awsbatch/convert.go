package awsbatch

import (
	"slices"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/batch/types"

	"github.com/xraph/conductor/compute"
	"github.com/xraph/conductor/job"
)

// defaultLogGroup is where Batch container logs land when the job
// definition does not configure an explicit awslogs group.
const defaultLogGroup = "/aws/batch/job"

func submitInput(spec job.Spec) *batch.SubmitJobInput {
	in := &batch.SubmitJobInput{
		JobName:            aws.String(spec.Name),
		JobQueue:           aws.String(spec.Queue),
		JobDefinition:      aws.String(spec.Definition),
		ContainerOverrides: containerOverrides(spec.Overrides),
		Parameters:         spec.Parameters,
		Tags:               spec.Tags,
	}
	if spec.IsArray() {
		in.ArrayProperties = &types.ArrayProperties{
			Size: aws.Int32(int32(spec.ArraySize)),
		}
	}
	return in
}

func containerOverrides(o job.Overrides) *types.ContainerOverrides {
	if len(o.Command) == 0 && len(o.Environment) == 0 && o.VCPUs == 0 && o.MemoryMiB == 0 {
		return nil
	}
	co := &types.ContainerOverrides{
		Command: o.Command,
	}
	// Deterministic environment order keeps submissions reproducible.
	keys := make([]string, 0, len(o.Environment))
	for k := range o.Environment {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		co.Environment = append(co.Environment, types.KeyValuePair{
			Name:  aws.String(k),
			Value: aws.String(o.Environment[k]),
		})
	}
	if o.VCPUs > 0 {
		co.ResourceRequirements = append(co.ResourceRequirements, types.ResourceRequirement{
			Type:  types.ResourceTypeVcpu,
			Value: aws.String(strconv.Itoa(o.VCPUs)),
		})
	}
	if o.MemoryMiB > 0 {
		co.ResourceRequirements = append(co.ResourceRequirements, types.ResourceRequirement{
			Type:  types.ResourceTypeMemory,
			Value: aws.String(strconv.Itoa(o.MemoryMiB)),
		})
	}
	return co
}

func description(detail types.JobDetail) *job.Description {
	return &job.Description{
		Handle:        job.Handle(aws.ToString(detail.JobId)),
		Name:          aws.ToString(detail.JobName),
		Status:        job.Status(detail.Status),
		Reason:        aws.ToString(detail.StatusReason),
		DefinitionARN: aws.ToString(detail.JobDefinition),
		QueueARN:      aws.ToString(detail.JobQueue),
		Logs:          logLocator(detail),
	}
}

// logLocator resolves the CloudWatch group and stream for a job's
// container, if the service has assigned one. Only the awslogs driver
// puts logs somewhere a console link can point at.
func logLocator(detail types.JobDetail) *job.LogLocator {
	c := detail.Container
	if c == nil {
		return nil
	}
	stream := aws.ToString(c.LogStreamName)
	if stream == "" {
		return nil
	}
	group := defaultLogGroup
	if lc := c.LogConfiguration; lc != nil {
		if lc.LogDriver != "" && lc.LogDriver != types.LogDriverAwslogs {
			return nil
		}
		if g := lc.Options["awslogs-group"]; g != "" {
			group = g
		}
	}
	return &job.LogLocator{Group: group, Stream: stream}
}

func environmentInput(spec compute.EnvironmentSpec) *batch.CreateComputeEnvironmentInput {
	in := &batch.CreateComputeEnvironmentInput{
		ComputeEnvironmentName: aws.String(spec.Name),
		Type:                   types.CEType(spec.Type),
		Tags:                   spec.Tags,
	}
	if spec.State != "" {
		in.State = types.CEState(spec.State)
	}
	if spec.UnmanagedVCPUs > 0 {
		in.UnmanagedvCpus = aws.Int32(int32(spec.UnmanagedVCPUs))
	}
	if spec.ServiceRole != "" {
		in.ServiceRole = aws.String(spec.ServiceRole)
	}
	if r := spec.Resources; r != nil {
		cr := &types.ComputeResource{
			Type:             types.CRType(r.Type),
			MaxvCpus:         aws.Int32(int32(r.MaxVCPUs)),
			InstanceTypes:    r.InstanceTypes,
			Subnets:          r.Subnets,
			SecurityGroupIds: r.SecurityGroupIDs,
		}
		if r.MinVCPUs > 0 {
			cr.MinvCpus = aws.Int32(int32(r.MinVCPUs))
		}
		if r.DesiredVCPUs > 0 {
			cr.DesiredvCpus = aws.Int32(int32(r.DesiredVCPUs))
		}
		if r.InstanceRole != "" {
			cr.InstanceRole = aws.String(r.InstanceRole)
		}
		in.ComputeResources = cr
	}
	return in
}
