package folio

import (
	"context"
	"fmt"
	"log"
)

// Failure records one failed batch item with its reason.
type Failure struct {
	Item   string
	Reason string
}

// Summary is the outcome of a batch run. A batch with failures is still a
// completed batch; no single item ever aborts the run.
type Summary struct {
	Name      string
	Total     int
	Succeeded int
	Failed    []Failure
}

// Skipped counts items never dispatched because the batch was cancelled.
func (s Summary) Skipped() int { return s.Total - s.Succeeded - len(s.Failed) }

// Ok reports whether every dispatched item succeeded.
func (s Summary) Ok() bool { return len(s.Failed) == 0 && s.Skipped() == 0 }

func (s Summary) String() string {
	return fmt.Sprintf("%s: %d/%d succeeded, %d failed", s.Name, s.Succeeded, s.Total, len(s.Failed))
}

// RunBatch applies op to every item in order, isolating failures: an error
// from one item is recorded with the item's label and the run continues with
// the next. Cancelling the context stops dispatching new items but never
// interrupts the item already running.
func RunBatch[T any](ctx context.Context, name string, items []T, label func(T) string, op func(context.Context, T) error) Summary {
	s := Summary{Name: name, Total: len(items)}

	for i, item := range items {
		if ctx.Err() != nil {
			log.Printf("%s: cancelled after %d/%d items", name, i, s.Total)
			break
		}

		log.Printf("[%d/%d] %s: %s", i+1, s.Total, name, label(item))
		if err := op(ctx, item); err != nil {
			log.Printf("[%d/%d] FAILED %s: %v", i+1, s.Total, label(item), err)
			s.Failed = append(s.Failed, Failure{Item: label(item), Reason: err.Error()})
			continue
		}
		s.Succeeded++
	}
	return s
}
