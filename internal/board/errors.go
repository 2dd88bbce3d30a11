package board

import "errors"

var (
	ErrCourtNotFound  = errors.New("court not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrCourtFull      = errors.New("court is full")
	ErrGroupFull      = errors.New("group is full")
	ErrAlreadyActive  = errors.New("player is already active elsewhere")
	ErrAlreadyQueued  = errors.New("player is already in a queue")
	ErrNotAssigned    = errors.New("player has no assignment")
	ErrTimerRunning   = errors.New("cannot leave court while timer is running")
	ErrGroupsDisabled = errors.New("group operations require group mode")
	ErrNotQueueGroup  = errors.New("group is not a queue group")
)
