package net

import (
	"net/http"

	perr "ticketdesk/internal/platform/errors"
)

// ErrorBody is the failure envelope every transport writes
//
//	{"success":false,"error":{"message":"...","code":"NOT_FOUND","details":[...]}}
type ErrorBody struct {
	Success bool      `json:"success"`
	Error   perr.Wire `json:"error"`
}

// Failure maps err to its status and envelope; nil maps to a bare 200 OK
func Failure(err error) (int, ErrorBody) {
	if err == nil {
		return http.StatusOK, ErrorBody{Success: true}
	}
	return perr.HTTPStatus(err), ErrorBody{Error: perr.WireFrom(err)}
}
