package constants

// Field Length Limits
const (
	MinPasswordLength = 6
	MaxPasswordLength = 100
	MaxNameLength     = 255
	MaxEmailLength    = 255
	MaxURLLength      = 2048
)

// Application statuses
const (
	ApplicationPending  = "pending"
	ApplicationReviewed = "reviewed"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
	ApplicationOffered  = "offered"
)

// ApplicationStatuses lists every status an application may move to.
var ApplicationStatuses = []string{
	ApplicationPending,
	ApplicationReviewed,
	ApplicationAccepted,
	ApplicationRejected,
	ApplicationOffered,
}
