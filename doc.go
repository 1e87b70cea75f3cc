// Package stockroom is the engine of a local-first, single-user inventory
// tracker.
//
// An Inventory maps unique item names to records holding a quantity, a unit
// price, a low-stock threshold and a bounded History Ledger of quantity
// changes. On top of the records the package provides:
//   - Mutations: Create, Delete, ApplyDelta and ApplyUpdate. Quantities never
//     go below zero and every actual quantity change is recorded as an Event.
//   - Views: View selects items by FilterMode (all, low, zero, recent) and a
//     case-insensitive name search, sorted by name.
//   - Statistics: Stats, always computed over the whole inventory.
//   - Persistence: Encode and Decode the human-readable JSON document, and
//     WriteCSV for tabular exports.
//
// The package holds no global state. It serves the `stock` command-line tool,
// which adds storage backends, backups and rendering around it.
package stockroom
