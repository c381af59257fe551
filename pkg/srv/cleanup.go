package srv

import "context"

// NewCleanup wraps a close function into a Service so resource teardown
// runs in shutdown order with everything else.
func NewCleanup(fn func() error) Service {
	return &cleanup{fn: fn}
}

type cleanup struct {
	fn func() error
}

func (c *cleanup) Start(ctx context.Context) error { return nil }

func (c *cleanup) Shutdown(ctx context.Context) error {
	if c.fn == nil {
		return nil
	}
	return c.fn()
}
