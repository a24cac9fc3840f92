package errors

import "scales/internal/errors"

// ErrorInfo is the caller-facing description of a failed operation.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USER_NOT_FOUND"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Field errors or extra detail (optional)
}

// NewErrorInfo describes err. Validation failures keep their field errors,
// any other AppError its code and details. Errors outside the catalogue are
// reported as ErrInternalError so their text never reaches the caller.
func NewErrorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return &ErrorInfo{
			Code:    verr.ErrorCode(),
			Message: verr.Message(),
			Details: verr.Fields,
		}
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		info := &ErrorInfo{
			Code:    appErr.ErrorCode(),
			Message: appErr.Message(),
		}
		if details := appErr.Details(); details != "" {
			info.Details = details
		}

		return info
	}

	return &ErrorInfo{
		Code:    ErrInternalError.ErrorCode(),
		Message: ErrInternalError.Message(),
	}
}
