package http

var (
	// HelloWorld response for the liveness check
	HelloWorld = MessageResponse{Message: "Hello World"}
	// OK response for an accepted webhook delivery
	OK = MessageResponse{Message: "OK"}
	// MissingSignature response
	MissingSignature = ErrorResponse{Detail: "missing signature"}
	// InvalidSignature response
	InvalidSignature = ErrorResponse{Detail: "invalid signature"}
	// InvalidRequestBody response
	InvalidRequestBody = ErrorResponse{Detail: "invalid request body"}
	// InternalServerError response
	InternalServerError = ErrorResponse{Detail: "internal server error"}
)

// MessageResponse struct
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse struct
type ErrorResponse struct {
	Detail string `json:"detail"`
}
