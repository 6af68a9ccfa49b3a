package errors

// ErrorResponse is the envelope the payments API uses for failed requests.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code              string             `json:"code"`
	Message           string             `json:"message"`
	Details           []string           `json:"details,omitempty"`
	FieldErrors       []FieldError       `json:"fieldErrors,omitempty"`
	AdditionalDetails []AdditionalDetail `json:"additionalDetails,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

type AdditionalDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
