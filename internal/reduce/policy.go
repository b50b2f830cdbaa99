package reduce

import (
	"context"
	"iter"

	"golang.org/x/time/rate"
)

// DefaultMaxSteps caps the traversal policies when the caller has no limit
// of its own. Reduction is not guaranteed to terminate.
const DefaultMaxSteps = 1000

// Head takes steps in order until normal form or count steps.
func Head(r *Reducer, count int) []Step {
	var steps []Step
	for len(steps) < count {
		step, ok := r.Next()
		if !ok {
			break
		}
		steps = append(steps, step)
	}
	return steps
}

// All is Head bounded by maxSteps.
func All(r *Reducer, maxSteps int) []Step {
	return Head(r, maxSteps)
}

// Tail runs until normal form or maxSteps and keeps the last count steps in
// their original order. The buffer may grow to twice count before it is
// compacted, so trimming is amortised.
func Tail(r *Reducer, count, maxSteps int) []Step {
	if count <= 0 {
		return nil
	}

	buf := make([]Step, 0, 2*count)
	for taken := 0; taken < maxSteps; taken++ {
		step, ok := r.Next()
		if !ok {
			break
		}
		if len(buf) == 2*count {
			n := copy(buf, buf[count:])
			buf = buf[:n]
		}
		buf = append(buf, step)
	}

	if len(buf) > count {
		buf = buf[len(buf)-count:]
	}
	return buf
}

// Last runs until normal form or maxSteps and returns the final step. It
// returns false when no step was taken.
func Last(r *Reducer, maxSteps int) (Step, bool) {
	var (
		last  Step
		taken bool
	)
	for i := 0; i < maxSteps; i++ {
		step, ok := r.Next()
		if !ok {
			break
		}
		last, taken = step, true
	}
	return last, taken
}

// Steps yields reductions until normal form, waiting on limiter before each
// one. A nil limiter does not pace. Cancelling ctx ends the sequence with
// the context's error.
func Steps(ctx context.Context, r *Reducer, limiter *rate.Limiter) iter.Seq2[Step, error] {
	return func(yield func(Step, error) bool) {
		for r.HasNext() {
			var err error
			if limiter != nil {
				err = limiter.Wait(ctx)
			} else {
				err = ctx.Err()
			}
			if err != nil {
				yield(Step{}, err)
				return
			}

			step, ok := r.Next()
			if !ok || !yield(step, nil) {
				return
			}
		}
	}
}
