// Package store defines the persistence ports of the application.
// Services depend only on the interfaces declared here; concrete
// adapters (e.g. internal/platform/postgres) implement them against a
// specific storage technology. Sentinel errors in this package are the
// storage-agnostic error taxonomy translated to wire errors at the HTTP
// boundary.
package store
