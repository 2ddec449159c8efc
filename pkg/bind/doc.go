// Package bind wires reactive cells to sinks.
//
// A binding is the triple (group, derivation, sink): a set of observed
// cells, a pure function over their current values, and a write target
// for the result. Three binding shapes cover the patterns this module
// ships demos for:
//
//   - Derive: one group, one derivation, one sink. Recomputes from all
//     current values on every change (derived state).
//   - FanOut: many dependent cells sharing one cell. A dependent change
//     recomputes its own pair; a shared-cell change recomputes every
//     pair (one-to-many dependency).
//   - SyncGroup: peer cells mirroring each other with no designated
//     primary (bidirectional synchronization).
//
// Every binding evaluates once at construction and then exactly once
// per observed change, synchronously. Construction validates the wiring
// and returns a *ConfigError for unusable configurations; recomputes
// themselves never fail. Unparsable numeric text is absorbed into the
// Num marker value rather than surfaced as an error.
package bind
