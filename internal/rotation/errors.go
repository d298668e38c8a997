package rotation

import "errors"

var (
	// ErrInvalidGroupCount indicates the requested group count is not
	// positive or exceeds the number of participants.
	ErrInvalidGroupCount = errors.New("rotation: group count must be between 1 and the number of participants")
	// ErrNotEnoughParticipants indicates fewer participants than groups.
	ErrNotEnoughParticipants = errors.New("rotation: not enough participants for the requested number of groups")
)
