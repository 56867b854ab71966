package gateway

// BackendError wraps any remote call failure: network, permission, or
// not-found-on-write. Absent-entity lookups are a normal value, never a
// BackendError.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
