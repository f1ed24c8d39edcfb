package response

const (
	statusSuccess = "success"
	statusError   = "error"
)

type Response struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data any) Response {
	return Response{
		Status: statusSuccess,
		Data:   data,
	}
}

// SuccessWithMessage carries a one-shot notice for the user next to the data.
func SuccessWithMessage(data any, message string) Response {
	return Response{
		Status:  statusSuccess,
		Data:    data,
		Message: message,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  statusError,
		Error:   err,
		Details: details,
	}
}
