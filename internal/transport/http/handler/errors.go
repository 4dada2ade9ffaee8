package handler

const (
	errInternalServer      = "Internal server error"
	errRegistrationMissing = "Registration not found"
)
