// Package services implements the driving port interfaces.
// Services contain the core search logic and orchestrate
// calls to driven ports (adapters).
//
//   - SearchService: request defaults, validation, backend call, metrics
//   - SearchClient: the form state machine writing status and results
//   - SettingsService: settings resolution from the config store
//
// Services are pure Go with no external dependencies.
package services
