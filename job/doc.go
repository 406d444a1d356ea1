// Package job defines the data model for remote batch jobs: the
// immutable submission [Spec], the opaque [Handle] returned by the
// scheduling service, the [Status] state machine, and the [Description]
// snapshot returned by describe calls.
//
// # Status machine
//
// A job progresses through the service-side states:
//
//	SUBMITTED → PENDING → RUNNABLE → STARTING → RUNNING → SUCCEEDED
//	                                                    ↘ FAILED
//
// SUCCEEDED and FAILED are terminal; no further transitions occur.
// Status is never cached authoritatively by this library — every poll
// derives it fresh from the remote service.
package job
