package repokit

import (
	"context"
	"fmt"
	"time"
)

type guarder interface {
	Guard(context.Context) error
}

// MustGuard runs st.Guard and panics on any error; used once at service startup
// ctx without a deadline gets timeout (when > 0)
func MustGuard(ctx context.Context, st guarder, timeout time.Duration) {
	if st == nil {
		panic("dependency guard: nil store")
	}
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
