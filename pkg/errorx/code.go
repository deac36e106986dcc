package errorx

type Code int

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009

	// Application codes
	DuplicateApplication Code = 200001
	ValidationFailed     Code = 200002

	// Raffle codes
	RaffleNotActive Code = 300001
	RaffleExpired   Code = 300002
	AlreadyJoined   Code = 300003
	AlreadyDrawn    Code = 300004
	NoParticipants  Code = 300005
)
