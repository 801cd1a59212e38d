// Package postgres implements the store interfaces against a PostgreSQL
// database accessed through the pgx stdlib driver. Constraint violations
// reported by the database are mapped onto the store package's sentinel
// errors so callers never see driver-level error types.
package postgres
