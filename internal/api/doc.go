// Package api contains the inbound HTTP adapter: route handlers, the
// request/response schemas, and the typed API errors that domain errors
// are translated into at this single boundary.
package api
