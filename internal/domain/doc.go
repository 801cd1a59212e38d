// Package domain defines the core business entities of the stash API:
// users, the items they own, and the command objects carried by write
// operations. Entities are plain data records; persistence and transport
// concerns live in their own packages.
package domain
