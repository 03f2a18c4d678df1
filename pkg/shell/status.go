package shell

import "fmt"

// ExitStatus is the outcome of running a script.
type ExitStatus struct {
	Code int
}

// ExitedWith returns the status of a script that finished with code.
func ExitedWith(code int) ExitStatus {
	return ExitStatus{Code: code}
}

func (s ExitStatus) Success() bool { return s.Code == 0 }

func (s ExitStatus) String() string {
	return fmt.Sprintf("exited with %d", s.Code)
}
