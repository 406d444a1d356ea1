// Package conductor orchestrates the lifecycle of batch jobs running
// on a remote scheduling service: submit once, poll with a bounded
// retry budget until terminal, classify the outcome, and terminate on
// cancellation.
//
// Conductor is designed as a library, not a service. Import it, wire a
// remote client, and drive jobs from ordinary Go code.
//
// # Quick Start
//
//	client := awsbatch.NewFromConfig(cfg)
//	ctl, err := conductor.New(client,
//	    conductor.WithRegion("us-east-1"),
//	)
//	if err != nil { ... }
//	handle, err := ctl.Execute(ctx, spec, true)
//
// # Architecture
//
// The root Controller owns the submit/monitor/cancel flow. Waiting is
// pluggable via wait.Strategy (the bundled wait.Poller by default),
// remote calls go through a narrow Client interface so middleware and
// fakes compose, and lifecycle events fan out to hook extensions.
//
// Invocation and link identifiers are type-prefixed, K-sortable,
// UUIDv7-based values from the id package.
package conductor
