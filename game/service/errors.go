// game/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the API layer. Handlers map these to HTTP status
// codes; anything else is treated as an internal storage failure.
var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
	ErrItemNotFound         = errors.New("shop item not found")
	ErrAgentNotFound        = errors.New("agent not found")
	ErrMissionNotFound      = errors.New("mission not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrNoTeam               = errors.New("user has no team")

	ErrOutOfStock = errors.New("item out of stock")

	ErrAlreadyAccepted  = errors.New("mission already accepted")
	ErrNotAccepted      = errors.New("mission not accepted")
	ErrAlreadyCompleted = errors.New("mission already completed")

	ErrAlreadyMember     = errors.New("user is already a team member")
	ErrTeamFull          = errors.New("team is at capacity")
	ErrLeaderCannotLeave = errors.New("team leader cannot leave")
	ErrNotLeader         = errors.New("user is not the team leader")

	ErrPermissionDenied = errors.New("permission denied")
)

// InsufficientFundsError reports a gold shortfall on a purchase or recruit.
type InsufficientFundsError struct {
	Shortfall int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: %d gold short", e.Shortfall)
}

// AsInsufficientFunds extracts the shortfall from an error chain, if present.
func AsInsufficientFunds(err error) (*InsufficientFundsError, bool) {
	var ife *InsufficientFundsError
	if errors.As(err, &ife) {
		return ife, true
	}
	return nil, false
}
