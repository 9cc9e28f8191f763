// Package tooldoc serves tool documentation in tiers, so a client can pull a
// one-line summary first and ask for schemas, notes and worked examples only
// when it needs them. It backs the tools/describe and tools/examples
// methods of the registry.
//
// # Documentation Tiers
//
// Summary: a short description taken from a registered DocEntry or, failing
// that, the first line of Tool.Description. Works with docs-only entries.
//
// Schema: adds the resolved model.Tool and a SchemaInfo digest (required
// inputs, defaults, allowed JSON types). Requires the tool to resolve
// through StoreOptions.Index or StoreOptions.ToolResolver.
//
// Full: adds Notes, up to MaxExamples worked examples, and external
// references.
//
// # Errors
//
//   - ErrNotFound: neither a doc entry nor a tool exists for the ID
//   - ErrNoTool: schema or full detail requested but the tool does not resolve
//   - ErrInvalidDetail: unknown DetailLevel
//   - ErrArgsTooLarge: example Args exceed MaxArgsDepth or MaxArgsKeys
//
// # Operation docs
//
// FromOperation turns a catalog.Operation into a DocEntry: its notes, its
// declared inputs and its examples with their expected results.
//
// InMemoryStore is safe for concurrent use. Example Args are deep-copied on
// the way in and out.
package tooldoc
