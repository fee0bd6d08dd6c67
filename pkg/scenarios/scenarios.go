// Package scenarios holds the built-in cart cases run by the
// assertchain command. Each case drives a cart.Cart through an
// assertion chain whose recorder is supplied by the suite runner.
package scenarios

import (
	"context"
	"fmt"
	"sync"

	"digital.vasic.assertchain/pkg/assertion"
	"digital.vasic.assertchain/pkg/callsite"
	"digital.vasic.assertchain/pkg/cart"
	"digital.vasic.assertchain/pkg/expect"
	"digital.vasic.assertchain/pkg/failure"
	"digital.vasic.assertchain/pkg/suite"
)

var (
	apple  = cart.Product{ID: "apple", Name: "Apple"}
	banana = cart.Product{ID: "banana", Name: "Banana"}
)

// All returns the cases that are expected to pass.
func All() []suite.Case {
	return []suite.Case{
		{Name: "merge-quantities", Run: mergeQuantities},
		{Name: "parallel-adds", Run: parallelAdds},
		{Name: "same-product-contention", Run: sameProductContention},
		{Name: "set-quantity", Run: setQuantity},
		{Name: "remove-absent", Run: removeAbsent},
	}
}

// Failing returns cases that fail on purpose, to show how a
// chain reports only its first failure.
func Failing() []suite.Case {
	return []suite.Case{
		{Name: "miscounted-total", Run: miscountedTotal},
	}
}

func start(c *cart.Cart, rec failure.Recorder) assertion.Assertion[*cart.Cart] {
	file, line := callsite.Caller(1)
	return assertion.New(c,
		assertion.WithRecorder(rec, file),
		assertion.WithLine(line),
	)
}

func add(p cart.Product, quantity int) assertion.Step[*cart.Cart, *cart.Cart] {
	return func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
		if err := c.AddQuantity(p, quantity); err != nil {
			return c, failure.Messagef("add %s: %v", p.ID, err)
		}
		return c, nil
	}
}

func itemQuantity(id string) assertion.Step[*cart.Cart, int] {
	return func(_ context.Context, c *cart.Cart) (int, failure.Reason) {
		item := c.Item(id)
		if item == nil {
			return 0, failure.Messagef("no item for %s", id)
		}
		return item.Quantity(), nil
	}
}

func count(_ context.Context, c *cart.Cart) (int, failure.Reason) {
	return c.Count(), nil
}

func distinct(_ context.Context, c *cart.Cart) (int, failure.Reason) {
	return c.Len(), nil
}

func mergeQuantities(ctx context.Context, rec failure.Recorder) {
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "add 2 apples", callsite.Line(), add(apple, 2))
	a = assertion.Evaluate(ctx, a, "add 3 apples", callsite.Line(), add(apple, 3))

	n := assertion.Evaluate(ctx, a, "one line item", callsite.Line(), distinct)
	_ = assertion.Evaluate(ctx, n, "one line item", callsite.Line(), expect.Equal(1))

	q := assertion.Evaluate(ctx, a, "apple quantity", callsite.Line(), itemQuantity(apple.ID))
	_ = assertion.Evaluate(ctx, q, "merged to 5", callsite.Line(), expect.Equal(5))

	r := assertion.Evaluate(ctx, a, "remove apples",
		callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			c.Remove(apple)
			return c, nil
		},
	)
	total := assertion.Evaluate(ctx, r, "total", callsite.Line(), count)
	_ = assertion.Evaluate(ctx, total, "empty after remove", callsite.Line(), expect.Equal(0))
}

func parallelAdds(ctx context.Context, rec failure.Recorder) {
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "add concurrently", callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			errs := make(chan error, 2)
			var wg sync.WaitGroup
			for _, op := range []struct {
				p cart.Product
				n int
			}{{apple, 2}, {banana, 3}} {
				wg.Add(1)
				go func() {
					defer wg.Done()
					errs <- c.AddQuantity(op.p, op.n)
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil {
					return c, failure.Messagef("concurrent add: %v", err)
				}
			}
			return c, nil
		},
	)

	items := assertion.Evaluate(ctx, a, "distinct items", callsite.Line(), distinct)
	_ = assertion.Evaluate(ctx, items, "two items", callsite.Line(), expect.Equal(2))

	total := assertion.Evaluate(ctx, a, "total", callsite.Line(), count)
	_ = assertion.Evaluate(ctx, total, "sum of both", callsite.Line(), expect.Equal(5))
}

func sameProductContention(ctx context.Context, rec failure.Recorder) {
	const workers = 32
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "contended adds", callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					c.Add(apple)
				}()
			}
			wg.Wait()
			return c, nil
		},
	)

	items := assertion.Evaluate(ctx, a, "single line", callsite.Line(), distinct)
	_ = assertion.Evaluate(ctx, items, "no duplicates", callsite.Line(), expect.Equal(1))

	q := assertion.Evaluate(ctx, a, "apple quantity", callsite.Line(), itemQuantity(apple.ID))
	_ = assertion.Evaluate(ctx, q, "every add counted", callsite.Line(), expect.Equal(workers))
}

func setQuantity(ctx context.Context, rec failure.Recorder) {
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "add apple", callsite.Line(), add(apple, 1))
	a = assertion.Evaluate(ctx, a, "set to 7", callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			if err := c.SetQuantity(apple, 7); err != nil {
				return c, failure.Message{Text: err.Error()}
			}
			return c, nil
		},
	)
	a = assertion.Evaluate(ctx, a, "negative rejected", callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			if err := c.SetQuantity(apple, -1); err == nil {
				return c, failure.Message{Text: "negative quantity accepted"}
			}
			return c, nil
		},
	)

	total := assertion.Evaluate(ctx, a, "total", callsite.Line(), count)
	_ = assertion.Evaluate(ctx, total, "is 7", callsite.Line(), expect.Equal(7))
}

func removeAbsent(ctx context.Context, rec failure.Recorder) {
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "add apple", callsite.Line(), add(apple, 1))
	a = assertion.Evaluate(ctx, a, "remove banana", callsite.Line(),
		func(_ context.Context, c *cart.Cart) (*cart.Cart, failure.Reason) {
			c.Remove(banana)
			return c, nil
		},
	)

	items := assertion.Evaluate(ctx, a, "items", callsite.Line(),
		func(_ context.Context, c *cart.Cart) ([]string, failure.Reason) {
			var ids []string
			for _, item := range c.Items() {
				ids = append(ids, item.Product().ID)
			}
			return ids, nil
		},
	)
	_ = assertion.Evaluate(ctx, items, "apple untouched", callsite.Line(),
		expect.Equal([]string{apple.ID}))
}

func miscountedTotal(ctx context.Context, rec failure.Recorder) {
	c := cart.New()

	a := start(c, rec)
	a = assertion.Evaluate(ctx, a, "add apples", callsite.Line(), add(apple, 2))
	a = assertion.Evaluate(ctx, a, "add bananas", callsite.Line(), add(banana, 2))

	total := assertion.Evaluate(ctx, a, "total", callsite.Line(), count)
	total = assertion.Evaluate(ctx, total, "total is 5", callsite.Line(), expect.Equal(5))
	_ = assertion.Evaluate(ctx, total, "label",
		callsite.Line(),
		assertion.Map(func(n int) string { return fmt.Sprintf("%d items", n) }),
	)
}
