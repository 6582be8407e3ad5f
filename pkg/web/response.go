// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// JSONError provides type for explicit json encoded error response.
type JSONError struct {
	Error string `json:"error"`
}

// Error wraps a given err into json friendly struct.
func Error(err error) JSONError {
	return JSONError{Error: err.Error()}
}

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken          string `json:"access_token,omitempty"`
	AccessTokenExpiresAt string `json:"access_token_expires_at,omitempty"`
	Data                 any    `json:"data,omitempty"`
	Error                string `json:"error,omitempty"`
}

// GetErrorMsg returns a human readable message for a failed binding field.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " field must be greater or equal to " + fe.Param()
	case "max":
		return " field must be less or equal to " + fe.Param()
	case "alphanum":
		return " field must be alphanumeric"
	case "email":
		return " field must be a valid email"
	case "rib":
		return " field must be a valid RIB (2 letters followed by 22 digits)"
	case "oneof":
		return " field must be one of " + fe.Param()
	}

	return " field is invalid"
}
