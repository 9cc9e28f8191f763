package tooldoc_test

import (
	"fmt"

	"github.com/jonwraymond/toolalgo/catalog"
	"github.com/jonwraymond/toolalgo/index"
	"github.com/jonwraymond/toolalgo/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
)

func ExampleInMemoryStore_DescribeTool() {
	op, _ := catalog.MustLoad().Lookup("breadthfirstsearch")

	idx := index.NewInMemoryIndex()
	_ = idx.RegisterTool(op.Tool(""), model.NewLocalBackend(op.Name))

	store := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})
	_ = store.RegisterDoc(op.Name, tooldoc.FromOperation(op))

	summary, _ := store.DescribeTool(op.Name, tooldoc.DetailSummary)
	fmt.Println("Has Tool:", summary.Tool != nil)

	full, _ := store.DescribeTool(op.Name, tooldoc.DetailFull)
	fmt.Println("Required:", full.SchemaInfo.Required)
	for _, ex := range full.Examples {
		fmt.Printf("%s -> %s\n", ex.Title, ex.ResultHint)
	}
	// Output:
	// Has Tool: false
	// Required: [numbers target]
	// Shallow match wins -> 2
}

func ExampleValidateArgs() {
	stats, ok := tooldoc.ValidateArgs(map[string]any{
		"target":  5,
		"numbers": []any{1, []any{5}, 5},
	})
	fmt.Printf("ok=%v depth=%d keys=%d\n", ok, stats.Depth, stats.Keys)
	// Output:
	// ok=true depth=3 keys=6
}
