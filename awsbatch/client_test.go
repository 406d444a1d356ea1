package awsbatch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/batch"
	"github.com/aws/aws-sdk-go-v2/service/batch/types"
	"github.com/aws/smithy-go"

	"github.com/xraph/conductor/awsbatch"
	"github.com/xraph/conductor/compute"
	"github.com/xraph/conductor/job"
	"github.com/xraph/conductor/remote"
)

type fakeAPI struct {
	submitIn  *batch.SubmitJobInput
	submitOut *batch.SubmitJobOutput
	submitErr error

	describeIn  *batch.DescribeJobsInput
	describeOut *batch.DescribeJobsOutput
	describeErr error

	terminateIn  *batch.TerminateJobInput
	terminateErr error

	createEnvIn  *batch.CreateComputeEnvironmentInput
	createEnvErr error
}

func (f *fakeAPI) SubmitJob(_ context.Context, in *batch.SubmitJobInput, _ ...func(*batch.Options)) (*batch.SubmitJobOutput, error) {
	f.submitIn = in
	return f.submitOut, f.submitErr
}

func (f *fakeAPI) DescribeJobs(_ context.Context, in *batch.DescribeJobsInput, _ ...func(*batch.Options)) (*batch.DescribeJobsOutput, error) {
	f.describeIn = in
	return f.describeOut, f.describeErr
}

func (f *fakeAPI) TerminateJob(_ context.Context, in *batch.TerminateJobInput, _ ...func(*batch.Options)) (*batch.TerminateJobOutput, error) {
	f.terminateIn = in
	return &batch.TerminateJobOutput{}, f.terminateErr
}

func (f *fakeAPI) CreateComputeEnvironment(_ context.Context, in *batch.CreateComputeEnvironmentInput, _ ...func(*batch.Options)) (*batch.CreateComputeEnvironmentOutput, error) {
	f.createEnvIn = in
	return &batch.CreateComputeEnvironmentOutput{}, f.createEnvErr
}

func newTestClient(api awsbatch.API) *awsbatch.Client {
	return awsbatch.New(api, awsbatch.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestSubmitJob_MapsSpec(t *testing.T) {
	api := &fakeAPI{submitOut: &batch.SubmitJobOutput{JobId: aws.String("job-1")}}
	c := newTestClient(api)

	spec := job.Spec{
		Name:       "etl",
		Definition: "etl-def:4",
		Queue:      "default",
		ArraySize:  10,
		Parameters: map[string]string{"input": "s3://bucket/in"},
		Tags:       map[string]string{"team": "data"},
		Overrides: job.Overrides{
			Command:     []string{"python", "run.py"},
			Environment: map[string]string{"B": "2", "A": "1"},
			VCPUs:       4,
			MemoryMiB:   2048,
		},
	}

	h, err := c.SubmitJob(context.Background(), spec)
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}
	if h != "job-1" {
		t.Errorf("handle = %q, want %q", h, "job-1")
	}

	in := api.submitIn
	if got := aws.ToString(in.JobName); got != "etl" {
		t.Errorf("JobName = %q, want %q", got, "etl")
	}
	if got := aws.ToString(in.JobQueue); got != "default" {
		t.Errorf("JobQueue = %q, want %q", got, "default")
	}
	if got := aws.ToString(in.JobDefinition); got != "etl-def:4" {
		t.Errorf("JobDefinition = %q, want %q", got, "etl-def:4")
	}
	if in.ArrayProperties == nil || aws.ToInt32(in.ArrayProperties.Size) != 10 {
		t.Errorf("ArrayProperties = %+v, want size 10", in.ArrayProperties)
	}
	if in.Parameters["input"] != "s3://bucket/in" {
		t.Errorf("Parameters = %v", in.Parameters)
	}

	co := in.ContainerOverrides
	if co == nil {
		t.Fatal("ContainerOverrides is nil")
	}
	if len(co.Command) != 2 || co.Command[0] != "python" {
		t.Errorf("Command = %v", co.Command)
	}
	if len(co.Environment) != 2 || aws.ToString(co.Environment[0].Name) != "A" {
		t.Errorf("Environment = %v, want sorted by name", co.Environment)
	}
	if len(co.ResourceRequirements) != 2 {
		t.Fatalf("ResourceRequirements = %v, want vcpu and memory", co.ResourceRequirements)
	}
	if co.ResourceRequirements[0].Type != types.ResourceTypeVcpu || aws.ToString(co.ResourceRequirements[0].Value) != "4" {
		t.Errorf("vcpu requirement = %+v", co.ResourceRequirements[0])
	}
	if co.ResourceRequirements[1].Type != types.ResourceTypeMemory || aws.ToString(co.ResourceRequirements[1].Value) != "2048" {
		t.Errorf("memory requirement = %+v", co.ResourceRequirements[1])
	}
}

func TestSubmitJob_PlainJobOmitsOptionalBlocks(t *testing.T) {
	api := &fakeAPI{submitOut: &batch.SubmitJobOutput{JobId: aws.String("job-2")}}
	c := newTestClient(api)

	_, err := c.SubmitJob(context.Background(), job.Spec{Name: "j", Definition: "d", Queue: "q"})
	if err != nil {
		t.Fatalf("SubmitJob: %v", err)
	}
	if api.submitIn.ArrayProperties != nil {
		t.Error("ArrayProperties set for non-array job")
	}
	if api.submitIn.ContainerOverrides != nil {
		t.Error("ContainerOverrides set for empty overrides")
	}
}

func TestSubmitJob_MissingJobIDIsError(t *testing.T) {
	c := newTestClient(&fakeAPI{submitOut: &batch.SubmitJobOutput{}})

	if _, err := c.SubmitJob(context.Background(), job.Spec{Name: "j", Definition: "d", Queue: "q"}); err == nil {
		t.Fatal("expected error for response without job id")
	}
}

func TestSubmitJob_ThrottlingIsTransient(t *testing.T) {
	c := newTestClient(&fakeAPI{submitErr: &smithy.GenericAPIError{
		Code:    "TooManyRequestsException",
		Message: "rate exceeded",
		Fault:   smithy.FaultClient,
	}})

	_, err := c.SubmitJob(context.Background(), job.Spec{Name: "j", Definition: "d", Queue: "q"})
	if !remote.IsTransient(err) {
		t.Errorf("error %v not classified transient", err)
	}
}

func TestSubmitJob_AccessDeniedIsFatal(t *testing.T) {
	cause := &smithy.GenericAPIError{Code: "AccessDeniedException", Fault: smithy.FaultClient}
	c := newTestClient(&fakeAPI{submitErr: cause})

	_, err := c.SubmitJob(context.Background(), job.Spec{Name: "j", Definition: "d", Queue: "q"})
	if remote.IsTransient(err) {
		t.Errorf("access denied classified transient: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want %v", err, cause)
	}
}

func TestDescribeJob_MapsDetail(t *testing.T) {
	api := &fakeAPI{describeOut: &batch.DescribeJobsOutput{
		Jobs: []types.JobDetail{{
			JobId:         aws.String("job-1"),
			JobName:       aws.String("etl"),
			Status:        types.JobStatusRunning,
			StatusReason:  aws.String(""),
			JobDefinition: aws.String("arn:aws:batch:us-east-1:123:job-definition/etl:4"),
			JobQueue:      aws.String("arn:aws:batch:us-east-1:123:job-queue/default"),
			Container: &types.ContainerDetail{
				LogStreamName: aws.String("etl/default/abc123"),
			},
		}},
	}}
	c := newTestClient(api)

	d, err := c.DescribeJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("DescribeJob: %v", err)
	}
	if api.describeIn.Jobs[0] != "job-1" {
		t.Errorf("described jobs = %v", api.describeIn.Jobs)
	}
	if d.Status != job.StatusRunning {
		t.Errorf("Status = %s, want RUNNING", d.Status)
	}
	if d.DefinitionARN == "" || d.QueueARN == "" {
		t.Errorf("ARNs not mapped: %+v", d)
	}
	if d.Logs == nil || d.Logs.Group != "/aws/batch/job" || d.Logs.Stream != "etl/default/abc123" {
		t.Errorf("Logs = %+v, want default group with stream", d.Logs)
	}
}

func TestDescribeJob_LogGroupFromLogConfiguration(t *testing.T) {
	api := &fakeAPI{describeOut: &batch.DescribeJobsOutput{
		Jobs: []types.JobDetail{{
			JobId:  aws.String("job-1"),
			Status: types.JobStatusSucceeded,
			Container: &types.ContainerDetail{
				LogStreamName: aws.String("s"),
				LogConfiguration: &types.LogConfiguration{
					LogDriver: types.LogDriverAwslogs,
					Options:   map[string]string{"awslogs-group": "/custom/group"},
				},
			},
		}},
	}}
	c := newTestClient(api)

	d, err := c.DescribeJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("DescribeJob: %v", err)
	}
	if d.Logs == nil || d.Logs.Group != "/custom/group" {
		t.Errorf("Logs = %+v, want custom group", d.Logs)
	}
}

func TestDescribeJob_NonAwslogsDriverHasNoLocator(t *testing.T) {
	api := &fakeAPI{describeOut: &batch.DescribeJobsOutput{
		Jobs: []types.JobDetail{{
			JobId:  aws.String("job-1"),
			Status: types.JobStatusSucceeded,
			Container: &types.ContainerDetail{
				LogStreamName:    aws.String("s"),
				LogConfiguration: &types.LogConfiguration{LogDriver: types.LogDriverSplunk},
			},
		}},
	}}
	c := newTestClient(api)

	d, err := c.DescribeJob(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("DescribeJob: %v", err)
	}
	if d.Logs != nil {
		t.Errorf("Logs = %+v, want nil for splunk driver", d.Logs)
	}
}

func TestDescribeJob_EmptyResultIsTransient(t *testing.T) {
	c := newTestClient(&fakeAPI{describeOut: &batch.DescribeJobsOutput{}})

	_, err := c.DescribeJob(context.Background(), "job-1")
	if !remote.IsTransient(err) {
		t.Errorf("empty describe result not transient: %v", err)
	}
}

func TestTerminateJob_PassesReason(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(api)

	if err := c.TerminateJob(context.Background(), "job-1", "cancelled by caller"); err != nil {
		t.Fatalf("TerminateJob: %v", err)
	}
	if got := aws.ToString(api.terminateIn.JobId); got != "job-1" {
		t.Errorf("JobId = %q", got)
	}
	if got := aws.ToString(api.terminateIn.Reason); got != "cancelled by caller" {
		t.Errorf("Reason = %q", got)
	}
}

func TestCreateEnvironment_MapsSpec(t *testing.T) {
	api := &fakeAPI{}
	c := newTestClient(api)

	spec := compute.EnvironmentSpec{
		Name:        "ce-1",
		Type:        "MANAGED",
		State:       "ENABLED",
		ServiceRole: "arn:aws:iam::123:role/batch",
		Resources: &compute.Resources{
			Type:     "FARGATE",
			MaxVCPUs: 64,
			Subnets:  []string{"subnet-1", "subnet-2"},
		},
	}
	if err := c.CreateEnvironment(context.Background(), spec); err != nil {
		t.Fatalf("CreateEnvironment: %v", err)
	}

	in := api.createEnvIn
	if got := aws.ToString(in.ComputeEnvironmentName); got != "ce-1" {
		t.Errorf("name = %q", got)
	}
	if in.Type != types.CETypeManaged {
		t.Errorf("type = %s", in.Type)
	}
	if in.State != types.CEStateEnabled {
		t.Errorf("state = %s", in.State)
	}
	if in.ComputeResources == nil || in.ComputeResources.Type != types.CRTypeFargate {
		t.Errorf("resources = %+v", in.ComputeResources)
	}
	if aws.ToInt32(in.ComputeResources.MaxvCpus) != 64 {
		t.Errorf("max vcpus = %d", aws.ToInt32(in.ComputeResources.MaxvCpus))
	}
}
