// Package awsbatch adapts the AWS Batch API to the remote.Client and
// compute.EnvironmentClient contracts. It maps job specs to SubmitJob
// inputs, describe results back to job descriptions, and classifies
// throttling and timeout failures as transient so the poller's retry
// budget applies to them.
//
// Construct a Client from an already-resolved aws.Config:
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	client := awsbatch.NewFromConfig(cfg)
//	ctl, err := conductor.New(client)
//
// Credential and region resolution stay with the caller.
package awsbatch
