package awsbatch

import (
	"errors"
	"net"

	"github.com/aws/smithy-go"

	"github.com/xraph/conductor/remote"
)

// throttleCodes are the API error codes AWS services return when the
// caller should back off and retry.
var throttleCodes = map[string]struct{}{
	"ThrottlingException":         {},
	"Throttling":                  {},
	"TooManyRequestsException":    {},
	"RequestThrottled":            {},
	"RequestThrottledException":   {},
	"RequestLimitExceeded":        {},
	"ServerException":             {},
	"ServiceUnavailableException": {},
}

// classify wraps throttling and timeout failures as transient so
// callers can distinguish them from fatal API errors.
func classify(op string, err error) error {
	if isThrottle(err) || isTimeout(err) {
		return &remote.TransientError{Op: op, Err: err}
	}
	return err
}

func isThrottle(err error) bool {
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return false
	}
	if ae.ErrorFault() == smithy.FaultServer {
		return true
	}
	_, ok := throttleCodes[ae.ErrorCode()]
	return ok
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
