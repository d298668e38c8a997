// Package messages holds the bot's user-facing texts in one place.
package messages

const (
	IntroMessage = "Hi! I organize daily mixer groups in this chat. " +
		"Every day I post an invite; tap the button to join and I'll " +
		"split everyone into small groups, avoiding the same matchups " +
		"day after day."
	DailyInvite    = "Mixer time! Who's in today?"
	ImInButton     = "I'm in"
	JoinedAck      = "You're in. Groups are announced when signup closes."
	AlreadyIn      = "You already joined today."
	SignupClosed   = "Signup for today is already closed."
	NoParticipants = "Nobody joined today, no groups this time."
	ResultsHeader  = "Today's mixer groups:"
)
