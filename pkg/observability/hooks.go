package observability

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// Combine merges hook sets. Each callback runs the non-nil callbacks of every set in
// argument order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var pass []func(context.Context, *domain.PassEvent)
	var apply, reject []func(context.Context, *domain.InputEvent)
	var complete []func(context.Context, *domain.EventBase)
	var change []func(context.Context, *domain.StateDiff)

	for _, s := range sets {
		if s.OnPass != nil {
			pass = append(pass, s.OnPass)
		}
		if s.OnApply != nil {
			apply = append(apply, s.OnApply)
		}
		if s.OnReject != nil {
			reject = append(reject, s.OnReject)
		}
		if s.OnComplete != nil {
			complete = append(complete, s.OnComplete)
		}
		if s.OnChange != nil {
			change = append(change, s.OnChange)
		}
	}

	if len(pass) > 0 {
		out.OnPass = func(ctx context.Context, e *domain.PassEvent) {
			for _, fn := range pass {
				fn(ctx, e)
			}
		}
	}
	if len(apply) > 0 {
		out.OnApply = func(ctx context.Context, e *domain.InputEvent) {
			for _, fn := range apply {
				fn(ctx, e)
			}
		}
	}
	if len(reject) > 0 {
		out.OnReject = func(ctx context.Context, e *domain.InputEvent) {
			for _, fn := range reject {
				fn(ctx, e)
			}
		}
	}
	if len(complete) > 0 {
		out.OnComplete = func(ctx context.Context, e *domain.EventBase) {
			for _, fn := range complete {
				fn(ctx, e)
			}
		}
	}
	if len(change) > 0 {
		out.OnChange = func(ctx context.Context, d *domain.StateDiff) {
			for _, fn := range change {
				fn(ctx, d)
			}
		}
	}
	return out
}
