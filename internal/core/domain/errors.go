package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
//
// Configuration errors (ErrUnknownPlugin through ErrInvalidConfig) are
// fatal: they abort a run before any plugin executes. Everything else
// is recorded as data in plugin outcomes or item assignments.
var (
	// ErrUnknownPlugin indicates an enabled plugin identifier is not registered.
	ErrUnknownPlugin = errors.New("unknown plugin")

	// ErrDuplicatePlugin indicates a plugin identifier was registered twice,
	// or appears twice in the enabled list.
	ErrDuplicatePlugin = errors.New("duplicate plugin")

	// ErrDependencyNotEnabled indicates a plugin depends on another plugin
	// that is not in the enabled set.
	ErrDependencyNotEnabled = errors.New("dependency not enabled")

	// ErrDependencyCycle indicates the dependency graph over the enabled
	// plugins is cyclic and no execution order exists.
	ErrDependencyCycle = errors.New("dependency cycle")

	// ErrFieldConflict indicates two enabled plugins claim ownership of the
	// same evidence field without a dependency edge ordering their writes.
	ErrFieldConflict = errors.New("owned field conflict")

	// ErrInvalidConfig indicates the case configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRunInProgress indicates the orchestrator is already executing a run.
	ErrRunInProgress = errors.New("run in progress")

	// ErrNoExtractor indicates no registered extractor handles the file type.
	ErrNoExtractor = errors.New("no extractor for file type")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// AI Oracle Errors.

	// ErrAIUnavailable indicates no AI service is configured.
	// Plugins requiring the AI capability fail in isolation.
	ErrAIUnavailable = errors.New("AI service unavailable")

	// ErrRateLimited indicates the AI provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthInvalid indicates the AI provider rejected the credentials.
	ErrAuthInvalid = errors.New("authentication invalid")
)
