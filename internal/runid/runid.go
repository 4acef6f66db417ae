// Package runid mints identifiers for a simulation run, pairing a
// machine-generated UUID with the operator-supplied run name from the
// CLI's --name flag.
package runid

import "github.com/google/uuid"

// ID identifies one simulation invocation.
type ID struct {
	Name string // operator-supplied label; may be empty
	UUID string // machine-unique identifier
}

// New mints an ID for a run, generating a fresh UUID and attaching the
// given operator-supplied name (possibly empty).
func New(name string) ID {
	return ID{Name: name, UUID: uuid.NewString()}
}

// String renders the ID for report headers: "name (uuid)" when a name was
// supplied, otherwise just the uuid.
func (id ID) String() string {
	if id.Name == "" {
		return id.UUID
	}
	return id.Name + " (" + id.UUID + ")"
}
