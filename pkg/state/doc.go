// Package state stores option registries and models the session and window
// topology that show requests resolve targets against.
//
// Responsibilities:
//   - Store only loads and saves one *opts.Registry for one Ref.
//   - Host keeps the session/window topology, implements opts.TargetFinder on
//     top of a Store and assembles opts.Environment values for the engine.
//   - The root opts package stays persistence-agnostic; it only sees the
//     registries handed to it through the Environment.
//
// Data flow:
//
//	config/hydrate -> Store.Save -> Host.Environment -> opts.Engine.Show
//
// Deterministic keys:
//
//	Ref.Identifier() provides the canonical storage key: "server",
//	"session-defaults", "window-defaults", "session/<name>" and
//	"window/<session>:<index>".
package state
