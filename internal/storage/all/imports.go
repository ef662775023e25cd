// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (ecometl/internal/storage/sqlite)
//   - "postgres" (ecometl/internal/storage/postgres)
//
// Typical usage (in cmd/ecometl/main.go or a similar wiring layer):
//
//	import _ "ecometl/internal/storage/all" // enable all built-in backends
//
// This pattern keeps backend-specific wiring in a single, small package and
// allows the rest of the application (pipeline, cleaners, CLI) to depend only
// on the storage abstraction rather than individual backends.
package all

import (
	_ "ecometl/internal/storage/postgres"
	_ "ecometl/internal/storage/sqlite"
)
