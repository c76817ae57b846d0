package crossing

import "errors"

// Core errors. None of them is retryable: the engine stops its loop when one
// reaches it, and callers test for them with errors.Is.
var (
	// ErrInfeasibleMap means the interior rows cannot hold the requested
	// number of enemy lanes.
	ErrInfeasibleMap = errors.New("crossing: infeasible map")

	// ErrMapNotInitialized means a layout-dependent call ran before Init.
	ErrMapNotInitialized = errors.New("crossing: map not initialized")

	// ErrAssetNotFound means a sprite key was never loaded.
	ErrAssetNotFound = errors.New("crossing: asset not found")
)
