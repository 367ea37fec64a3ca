// Package web defines common components for a web application.
package web

import (
	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Token  string `json:"token,omitempty"`
	Status string `json:"status,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Error wraps a given err into a json friendly response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// Status wraps a given status message into a json friendly response.
func Status(msg string) Response {
	return Response{Status: msg}
}

// DescribeValidationErr renders the first field error of ve as a short
// human readable message.
func DescribeValidationErr(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " is required"
	case "email":
		return field.Field() + " must be a valid email"
	case "currency":
		return field.Field() + " is not supported"
	case "min":
		return field.Field() + " must be at least " + field.Param()
	case "max":
		return field.Field() + " must be at most " + field.Param()
	case "oneof":
		return field.Field() + " must be one of " + field.Param()
	}

	return field.Field() + " is invalid"
}
