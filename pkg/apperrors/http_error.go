package apperrors

// HttpError binds an application error to the HTTP status and message the
// controller should render. Message is safe to show to the user; Err and
// Context are for the logs only.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// WithDetails attaches a payload (e.g. per-row validation errors) that is
// serialized into the response body.
func (e *HttpError) WithDetails(details interface{}) *HttpError {
	e.Details = details
	return e
}
