package handler

const (
	errInvalidForm = "Invalid form data"
	errUnknown     = "An unknown error occurred"
)
