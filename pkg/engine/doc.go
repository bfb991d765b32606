// Package engine is the composition root that assembles the Dr. Sarcastic
// components from configuration and exposes them through a frontend-agnostic
// API. Frontends (the terminal UI, the one-shot ask command) interact with
// Engine and Session types, observe activity through an EventBus, and never
// build completers or touch the preferences file directly.
package engine
