package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorModel replaces huma's RFC 7807 error body with the
// {success:false,...} envelope used by every other response.
type ErrorModel struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Errors  []*huma.ErrorDetail `json:"errors,omitempty"`

	status int
}

func (e *ErrorModel) Error() string {
	return e.Message
}

func (e *ErrorModel) GetStatus() int {
	return e.status
}

func init() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		// huma reports request validation failures as 422; the API
		// contract is 400 for every validation failure.
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		details := make([]*huma.ErrorDetail, 0, len(errs))
		for _, err := range errs {
			if d, ok := err.(huma.ErrorDetailer); ok {
				details = append(details, d.ErrorDetail())
			} else if err != nil {
				details = append(details, &huma.ErrorDetail{Message: err.Error()})
			}
		}

		return &ErrorModel{
			Success: false,
			Message: message,
			Errors:  details,
			status:  status,
		}
	}
}
