package net_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	perr "ticketdesk/internal/platform/errors"
	pnet "ticketdesk/internal/platform/net"
)

func TestFailure_NotFound(t *testing.T) {
	status, body := pnet.Failure(perr.NotFoundf("Ticket not found"))
	if status != http.StatusNotFound {
		t.Fatalf("status %d", status)
	}
	b, _ := json.Marshal(body)
	want := `{"success":false,"error":{"message":"Ticket not found","code":"NOT_FOUND"}}`
	if string(b) != want {
		t.Fatalf("body = %s\nwant  %s", b, want)
	}
}

func TestFailure_ValidationDetails(t *testing.T) {
	status, body := pnet.Failure(perr.Invalid(perr.Violation{Path: "query.limit", Message: "limit must be at most 100"}))
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("status %d", status)
	}
	if body.Success || body.Error.Code != perr.KindValidation || len(body.Error.Details) != 1 {
		t.Fatalf("body = %+v", body)
	}
	if body.Error.Details[0].Path != "query.limit" {
		t.Fatalf("detail path = %q", body.Error.Details[0].Path)
	}
}

func TestFailure_InternalIsGeneric(t *testing.T) {
	status, body := pnet.Failure(errors.New("pq: relation tickets does not exist"))
	if status != http.StatusInternalServerError {
		t.Fatalf("status %d", status)
	}
	if body.Error.Message != perr.InternalMessage || body.Error.Code != perr.KindInternal {
		t.Fatalf("body = %+v", body)
	}
}

func TestFailure_Nil(t *testing.T) {
	status, body := pnet.Failure(nil)
	if status != http.StatusOK || !body.Success {
		t.Fatalf("nil failure = %d %+v", status, body)
	}
}
