package utils

// FailPolicy names the decision a verification path takes when its
// backing store errors or holds malformed state: FailClosed denies the
// caller, FailOpen proceeds as if the state were absent. Each
// operation declares its policy as a constant so tests can assert it
// directly instead of inferring it from control flow.
type FailPolicy int

const (
	FailClosed FailPolicy = iota
	FailOpen
)

// AllowOnError reports whether an erroring check should be treated as
// passing under this policy.
func (p FailPolicy) AllowOnError() bool {
	return p == FailOpen
}

func (p FailPolicy) String() string {
	if p == FailOpen {
		return "fail_open"
	}
	return "fail_closed"
}
