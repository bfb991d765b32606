// Package providers groups the concrete completion clients.
//
// Each sub-package embeds [github.com/germanamz/drsarcastic/pkg/modeladapter.ModelAdapter]
// and implements [github.com/germanamz/drsarcastic/pkg/modeladapter.Completer]:
//   - [github.com/germanamz/drsarcastic/pkg/providers/openrouter] for OpenAI-compatible chat completions (OpenRouter, OpenAI, local gateways)
//
// This package contains no code of its own.
package providers
