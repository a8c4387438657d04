// Package services implements the driving port interfaces. Services
// contain the core business logic, reference resolution and command
// dispatch, and orchestrate calls to driven ports (adapters).
package services
