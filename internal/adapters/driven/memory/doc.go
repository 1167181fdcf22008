// Package memory provides in-memory implementations of driven port interfaces.
//
// Adapters:
//   - ConfigStore: map-backed configuration storage
//   - Page: the search form elements (fields, select, buttons, status, results)
//
// Page elements are safe for concurrent use. Handlers run synchronously
// on the goroutine that clicks or submits, and never under an element lock.
package memory
