package conductor

import "github.com/xraph/conductor/id"

// InvocationID correlates the logs, hooks, and link records of one
// controller invocation.
type InvocationID = id.InvocationID
