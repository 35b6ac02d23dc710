package response

const (
	CodeSuccess = 2000 // Success
	CodeCreated = 2001 // Created

	// Friend request outcomes that are not errors
	CodeAlreadyPending = 2101
	CodeAlreadyFriends = 2102

	CodeValidation   = 4000 // Missing or malformed input
	CodeSelfRequest  = 4001
	CodeRateLimited  = 4002
	CodeNotPending   = 4003
	CodeUnauthorized = 4010
	CodeForbidden    = 4030
	CodeNotFound     = 4040
	CodeTooMany      = 4290 // API level throttling

	CodeInternal    = 5000
	CodeUnavailable = 5030
)

// message
var msg = map[int]string{
	CodeSuccess: "success",
	CodeCreated: "created",

	// Friend requests
	CodeAlreadyPending: "Already have pending request.",
	CodeAlreadyFriends: "Already your friend.",
	CodeSelfRequest:    "You cannot send Friend Request to Same User.",
	CodeRateLimited:    "You cannot send more than 3 friend requests within a minute.",
	CodeNotPending:     "This friend request is no longer pending.",
	CodeForbidden:      "You do not have permission to resolve this friend request.",

	CodeValidation:   "invalid input",
	CodeUnauthorized: "unauthorized",
	CodeNotFound:     "not found",
	CodeTooMany:      "rate limit exceeded",
	CodeInternal:     "internal server error",
	CodeUnavailable:  "service unavailable",
}

// Message returns the default text for a code, or an empty string when none is registered.
func Message(code int) string {
	return msg[code]
}
