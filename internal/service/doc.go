// Package service contains the domain services. They are deliberately
// thin: each operation delegates to exactly one store call, existing as
// the seam that lets the HTTP layer depend on an interface rather than a
// concrete store. The one piece of logic they own is password hashing,
// which must happen before a create-user command crosses the port.
package service
