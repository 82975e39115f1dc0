package javascript

import "github.com/modulegraph/jsgraph/depgraph"

func init() {
	depgraph.RegisterHandler(
		[]string{"js", "jsx", "ts", "tsx", "mts", "cts", "mjs", "cjs"},
		func() depgraph.SourceHandler { return &Handler{} },
	)
}
