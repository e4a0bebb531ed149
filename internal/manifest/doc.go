// Package manifest implements the pod template engine: a read-only store
// of provider-keyed execution-environment templates, a variable binder
// that resolves run configuration into placeholder values, and a
// deterministic ${var} renderer.
//
// The store is built once from templates embedded in the binary and is
// never mutated afterwards, so concurrent runs can share it without
// locking. Rendering is pure: identical template and binding inputs
// always produce identical manifest text.
package manifest
