// Package syncer drives the polling loop that mirrors a source repository
// onto a destination repository.
//
// Each cycle replays the source's change log against the destination. Moves
// and copies are resolved against the destination's own hash index, so
// content-identical relocations never re-read or re-transfer file bytes; only
// creations, modifications and drift restores carry content across.
package syncer

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dirsync/pkg/errors"
	"github.com/arthur-debert/dirsync/pkg/fingerprint"
	"github.com/arthur-debert/dirsync/pkg/logging"
	"github.com/arthur-debert/dirsync/pkg/types"
)

// State is the engine's cycle state.
type State string

const (
	StateIdle    State = "idle"
	StateSyncing State = "syncing"
)

// Engine orchestrates the sync cycles between one repository pair.
// It owns both repositories for its lifetime; neither may be mutated by
// anyone else while the engine runs.
type Engine struct {
	src      types.Repository
	dest     types.Repository
	interval time.Duration
	logger   zerolog.Logger
	state    State
}

// New creates an engine mirroring src onto dest at the given period.
func New(src, dest types.Repository, interval time.Duration) *Engine {
	return &Engine{
		src:      src,
		dest:     dest,
		interval: interval,
		logger:   logging.GetLogger("syncer"),
		state:    StateIdle,
	}
}

// State returns the engine's current cycle state.
func (e *Engine) State() State { return e.state }

// Run executes cycles until ctx is cancelled. The period is measured from
// the end of one cycle to the start of the next; there is no catch-up when a
// cycle overruns. A failed cycle is logged and the loop carries on.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info().
		Str("src", e.src.Root()).
		Str("dest", e.dest.Root()).
		Dur("interval", e.interval).
		Msg("starting sync loop")

	timer := time.NewTimer(e.interval)
	defer timer.Stop()

	for {
		if _, err := e.Cycle(); err != nil {
			e.logger.Error().Err(err).Msg("sync cycle failed")
		}

		timer.Reset(e.interval)
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("sync loop stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Cycle performs one full pass: scan the source, replay its change log onto
// the destination, prune destination drift, and restore any direct edits made
// to destination files. A failed replay step aborts the rest of the cycle.
// It returns the records applied this cycle, restores included.
func (e *Engine) Cycle() ([]types.ChangeRecord, error) {
	e.state = StateSyncing
	defer func() { e.state = StateIdle }()

	changes, err := e.src.UpdateStatus()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "source scan failed")
	}

	for _, rec := range changes {
		e.logger.Info().Msg(rec.String())
		if err := e.replay(rec); err != nil {
			return changes, errors.Wrapf(err, errors.ErrInternal, "replay of %q aborted the cycle", rec.String())
		}
	}

	if err := e.dest.Prune(); err != nil {
		return changes, errors.Wrap(err, errors.ErrInternal, "destination prune failed")
	}

	restored, err := e.healDrift()
	return append(changes, restored...), err
}

// replay applies one source change record to the destination.
func (e *Engine) replay(rec types.ChangeRecord) error {
	switch rec.Command {
	case types.CommandCreate:
		content, err := e.readSource(rec.Path)
		if err != nil {
			return err
		}
		return e.dest.Create(rec.Path, content)

	case types.CommandModify:
		content, err := e.readSource(rec.Path)
		if err != nil {
			return err
		}
		return e.dest.Modify(rec.Path, content)

	case types.CommandMove:
		err := e.dest.Move(rec.Hash, rec.Path)
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return e.fallbackTransfer(rec)
		}
		return err

	case types.CommandCopy:
		err := e.dest.Copy(rec.Hash, rec.Path)
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return e.fallbackTransfer(rec)
		}
		return err

	case types.CommandDelete:
		return e.dest.Delete(rec.Path)

	default:
		return errors.Newf(errors.ErrInternal, "unexpected command %q in change log", rec.Command)
	}
}

// fallbackTransfer recovers a move/copy replay whose hash the destination
// does not hold (out-of-order logs or state corruption): the content is
// transferred in full from the source instead of crashing the loop.
func (e *Engine) fallbackTransfer(rec types.ChangeRecord) error {
	e.logger.Warn().
		Str("path", rec.Path).
		Str("hash", string(rec.Hash)).
		Msg("destination holds no file with this hash, falling back to full content transfer")

	content, err := e.readSource(rec.Path)
	if err != nil {
		return err
	}
	return e.dest.Create(rec.Path, content)
}

// healDrift detects direct edits made to the destination tree and reverts
// them to the source's authoritative content. The destination is never
// authoritative: a modified file is overwritten, a deleted file re-created.
func (e *Engine) healDrift() ([]types.ChangeRecord, error) {
	drift, err := e.dest.UpdateStatus()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "destination scan failed")
	}

	var restores []types.ChangeRecord
	for _, rec := range drift {
		switch rec.Command {
		case types.CommandModify, types.CommandCopy, types.CommandDelete:
			// A direct edit whose new bytes coincide with another tracked
			// file scans as a copy; it is an overwrite all the same.
			content, err := e.readSource(rec.Path)
			if errors.IsErrorCode(err, errors.ErrNotFound) {
				// The source no longer tracks this path; the next source
				// scan settles it.
				e.logger.Debug().Str("path", rec.Path).Msg("drifted path no longer in source, skipping restore")
				continue
			}
			if err != nil {
				return restores, err
			}

			if rec.Command == types.CommandDelete {
				err = e.dest.Create(rec.Path, content)
			} else {
				err = e.dest.Modify(rec.Path, content)
			}
			if err != nil {
				return restores, err
			}
			restored := types.ChangeRecord{Command: types.CommandRestore, Hash: fingerprint.FromBytes(content), Path: rec.Path}
			e.logger.Info().Msg(restored.String())
			restores = append(restores, restored)

		default:
			// Moves within the destination leave untracked files, which
			// the prune that ran before this scan already removed; anything
			// left is noise worth seeing at debug.
			e.logger.Debug().Msg("destination drift: " + rec.String())
		}
	}

	return restores, nil
}

// readSource reads the current bytes at relPath from the source repository.
func (e *Engine) readSource(relPath string) ([]byte, error) {
	handle, err := e.src.FileAtPath(relPath)
	if err != nil {
		return nil, err
	}
	return handle.Read()
}
