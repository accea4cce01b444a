// =============================
// File: internal/launchpad/errors.go
// =============================
package launchpad

import (
	"errors"
	"fmt"
)

// Validation and domain errors, rejected before any instruction is built.
var (
	ErrMarketNotFound      = errors.New("market account not found")
	ErrStakingExists       = errors.New("staking pool already initialized for market")
	ErrInvalidCurveLength  = errors.New("ask and bid price arrays must have equal, non-zero length")
	ErrZeroAmount          = errors.New("amount must be greater than zero")
	ErrMissingVestingPlan  = errors.New("vesting plan address is required")
	ErrCurvePercentBounds  = errors.New("bonding curve percentage must be within [20, 80]")
	ErrMinRaiseNotMet      = errors.New("target raise is below the minimum")
	ErrUnsupportedAction   = errors.New("action must be \"buy\" or \"sell\"")
	ErrUnsupportedSwapMode = errors.New("trade type must be \"exactInput\" or \"exactOutput\"")
)

// ProbeError wraps an RPC failure during state probing. Probes are never
// silently treated as "absent": the caller sees the failure and may retry.
type ProbeError struct {
	Account string
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe of %s failed: %v", e.Account, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }
