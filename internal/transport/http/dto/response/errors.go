package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  statusError,
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status:  statusError,
		Error:   "authentication_required",
		Details: "Log in to continue",
	}

	ErrConfirmationRequired = ErrorResponse{
		Status:  statusError,
		Error:   "confirmation_required",
		Details: "Deleting an item must be confirmed",
	}

	ErrItemNotFound = ErrorResponse{
		Status:  statusError,
		Error:   "item_not_found",
		Details: "Item is not on the current page",
	}

	ErrDeleteInFlight = ErrorResponse{
		Status:  statusError,
		Error:   "delete_in_flight",
		Details: "Another delete is still running",
	}

	ErrInternal = ErrorResponse{
		Status:  statusError,
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
