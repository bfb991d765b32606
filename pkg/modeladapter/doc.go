// Package modeladapter defines the interface and shared plumbing for LLM
// completion clients.
//
// It contains the [Completer] interface, the single [ErrCompletionFailed]
// error class, and the embeddable [ModelAdapter] base struct with HTTP
// helpers, auth, and custom headers. Model configuration (name, temperature,
// max tokens) is inlined directly on the ModelAdapter struct. This package
// contains no provider-specific code; concrete adapters live in
// separate packages that import modeladapter.
package modeladapter
