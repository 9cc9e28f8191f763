package dispatch_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/toolalgo/dispatch"
)

func ExampleDispatcher_Call() {
	d := dispatch.New()
	ctx := context.Background()

	sorted, _ := d.Call(ctx, "countingsort", map[string]any{
		"numbers": []any{4.0, 2.0, 2.0, 8.0, 3.0, 3.0, 1.0},
	})
	fmt.Println(sorted)

	idx, _ := d.Call(ctx, "binarysearch", map[string]any{
		"target":  3.0,
		"numbers": []any{5.0, 3.0, 8.0, 1.0},
	})
	fmt.Println(idx)

	_, err := d.Call(ctx, "quicksort", map[string]any{})
	fmt.Println(errors.Is(err, dispatch.ErrInvalidParams))
	// Output:
	// [1 2 2 3 3 4 8]
	// 1
	// true
}
