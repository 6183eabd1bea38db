package unreader

// Unreader keeps bytes that were taken back and must be served before anything else is read.
type Unreader struct {
	pending []byte
}

// PendingOr returns the pending bytes if there are any, otherwise calls the fallback.
func (u *Unreader) PendingOr(or func() ([]byte, error)) (data []byte, err error) {
	if len(u.pending) > 0 {
		data, u.pending = u.pending, nil
		return data, nil
	}

	return or()
}

// Unread puts the bytes in front of those already pending. The slice isn't copied unless
// something is pending already.
func (u *Unreader) Unread(b []byte) {
	switch {
	case len(b) == 0:
	case len(u.pending) == 0:
		u.pending = b
	default:
		merged := make([]byte, 0, len(b)+len(u.pending))
		u.pending = append(append(merged, b...), u.pending...)
	}
}

// Pending returns bytes waiting to be read, without consuming them.
func (u *Unreader) Pending() []byte {
	return u.pending
}

func (u *Unreader) Reset() {
	u.pending = nil
}
