package job

// Status is the service-reported lifecycle state of a remote batch job.
type Status string

const (
	// StatusSubmitted means the job has been accepted by the scheduler
	// but not yet evaluated for placement.
	StatusSubmitted Status = "SUBMITTED"
	// StatusPending means the job is waiting on dependencies or
	// scheduler evaluation.
	StatusPending Status = "PENDING"
	// StatusRunnable means the job is eligible to be placed on compute
	// resources.
	StatusRunnable Status = "RUNNABLE"
	// StatusStarting means compute resources are being provisioned and
	// the container is starting.
	StatusStarting Status = "STARTING"
	// StatusRunning means the job's container is executing.
	StatusRunning Status = "RUNNING"
	// StatusSucceeded means the job finished with a zero exit status.
	StatusSucceeded Status = "SUCCEEDED"
	// StatusFailed means the job finished unsuccessfully or was
	// terminated.
	StatusFailed Status = "FAILED"
)

// statuses lists every status the service can report, in lifecycle order.
var statuses = []Status{
	StatusSubmitted,
	StatusPending,
	StatusRunnable,
	StatusStarting,
	StatusRunning,
	StatusSucceeded,
	StatusFailed,
}

// Known reports whether s is one of the statuses the service defines.
// Describe calls made immediately after submission can race the
// scheduler's own bookkeeping and return nothing; callers use Known to
// distinguish "no status yet" from a real lifecycle state.
func (s Status) Known() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether s is a state from which no further
// transition occurs.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// RunningOrLater reports whether the job has at least reached the
// running phase. Terminal states count: a short job can finish between
// two polls without the running state ever being observed.
func (s Status) RunningOrLater() bool {
	return s == StatusRunning || s.Terminal()
}

func (s Status) String() string { return string(s) }
