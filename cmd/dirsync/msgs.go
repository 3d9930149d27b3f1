package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "A one-way directory mirror"
	MsgRunShort     = "Mirror SRC onto DEST until interrupted"
	MsgSyncShort    = "Run a single sync cycle from SRC to DEST"
	MsgScanShort    = "Scan DIR once and list the detected changes"
	MsgVersionShort = "Print version information"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v DEBUG, -vv TRACE)"
	MsgFlagConfig   = "Config file (default: ./.dirsync.toml or ./dirsync.toml)"
	MsgFlagLogfile  = "Logfile path (default: $XDG_STATE_HOME/dirsync/dirsync.log)"
	MsgFlagInterval = "Sync period in milliseconds"

	// Status messages
	MsgNoChanges     = "No changes detected."
	MsgVersionFormat = "dirsync version %s\n  commit: %s\n  built:  %s\n"
)

// Long descriptions
const (
	MsgRootLong = `dirsync mirrors one directory tree onto another. It detects creations,
modifications, moves, copies and deletions by content fingerprint, replays
them onto the destination, and reverts any direct edits made to the mirror.`

	MsgRunLong = `Run starts the sync daemon: the source directory is scanned every interval,
its change log is replayed onto the destination, and untracked or edited
destination files are pruned and restored. The loop stops on SIGINT/SIGTERM.`

	MsgScanLong = `Scan registers the directory's files in a fresh index and prints the change
log a sync cycle would act on. Nothing is written; this is the log-only mode.`
)
