package handler

const (
	// APIRoot is the root path of the JSON API route group.
	APIRoot = "/api"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// MsgInvalidBody is returned when the request body cannot be decoded.
	MsgInvalidBody = "Invalid request body"

	// MsgInvalidID is returned when the :id route parameter is not numeric.
	MsgInvalidID = "Invalid id"

	// MsgInternal is the generic unexpected-failure message.
	MsgInternal = "Internal server error"
)
