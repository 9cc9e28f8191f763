// Package catalog declares the operations toolalgo serves.
//
// Declarations live in an embedded YAML file, one entry per operation, and
// carry everything a transport needs to publish the operation: a route
// name, display metadata, typed inputs and outputs, and worked examples.
// The dispatch package decodes call arguments against these declarations,
// and the registry publishes them as MCP tools.
//
// # Parameter kinds
//
//   - number:   a single real number
//   - integer:  a single whole number
//   - numbers:  a list of real numbers
//   - integers: a list of whole numbers
//   - tree:     a list whose items are numbers or further such lists
//
// # Usage
//
//	cat, err := catalog.Load()
//	if err != nil {
//	    return err
//	}
//	op, ok := cat.Lookup("countingsort2") // aliases resolve to "countingsort"
//	schema := op.InputSchema()
package catalog
