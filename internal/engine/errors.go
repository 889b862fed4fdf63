package engine

import "errors"

// Sentinel errors for the coordinator's error taxonomy. All are
// fatal: the coordinator stops consuming, drains the worker pool, and
// the run ends non-zero.
var (
	// ErrMalformedManifest is returned when info.json fails to parse
	// or decode into the expected schema.
	ErrMalformedManifest = errors.New("engine: malformed manifest")

	// ErrMalformedChunkName is returned when a chunk's path stem does
	// not parse as "surface,x,y".
	ErrMalformedChunkName = errors.New("engine: malformed chunk name")

	// ErrDecodeFailure is returned when a chunk image cannot be decoded.
	ErrDecodeFailure = errors.New("engine: chunk decode failure")

	// ErrWriteFailure is returned on a file-system error during
	// write-parts. There is no retry policy.
	ErrWriteFailure = errors.New("engine: tile write failure")

	// ErrPlanInvariant indicates a bug in the coordinator: a parent
	// query returned a Processed child, or loaded_tiles exceeded
	// total_tiles.
	ErrPlanInvariant = errors.New("engine: plan invariant violated")

	// ErrManifestNotReceived is returned when a chunk image arrives
	// before the manifest. The upstream contract requires
	// manifest-before-chunks; the engine fails fast rather than
	// buffer silently.
	ErrManifestNotReceived = errors.New("engine: chunk received before manifest")

	// ErrDuplicateChunk is returned when the same (surface, x, y) is
	// submitted more than once in a run. The engine rejects the
	// duplicate deterministically rather than silently overwriting it.
	ErrDuplicateChunk = errors.New("engine: duplicate chunk delivery")

	// ErrManifestAlreadyReceived indicates a second ManifestReceived
	// completion arrived; the coordinator asserts no prior plan exists.
	ErrManifestAlreadyReceived = errors.New("engine: manifest already received")

	// ErrKilled is returned by Run when the engine was cancelled via
	// Kill before reaching Finished.
	ErrKilled = errors.New("engine: killed")
)
