package debug

import (
	"net"
	"time"
)

// deadlineNow returns a deadline in the very near future, turning a
// blocking Accept/Read into an effectively non-blocking poll: either data
// is already available, or the call returns a timeout error immediately.
func deadlineNow() time.Time {
	return time.Now().Add(time.Millisecond)
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
