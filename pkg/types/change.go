package types

import (
	"fmt"
)

// Fingerprint is the hex-encoded BLAKE2b digest of a file's content.
// Equal content yields equal fingerprints; a collision is treated as
// impossible.
type Fingerprint string

// Command identifies the kind of change detected by a repository scan or
// applied by the sync engine.
type Command string

const (
	CommandCreate  Command = "create"
	CommandModify  Command = "modify"
	CommandMove    Command = "move"
	CommandCopy    Command = "copy"
	CommandDelete  Command = "delete"
	CommandRestore Command = "restore"
)

// ChangeRecord is one entry of the change log produced by Repository.UpdateStatus.
// Path is always relative to the repository root.
type ChangeRecord struct {
	Command Command
	Hash    Fingerprint
	Path    string
}

// String renders the record in the change-log line format.
func (c ChangeRecord) String() string {
	return fmt.Sprintf("%s %s -> %s", c.Command, c.Hash, c.Path)
}
