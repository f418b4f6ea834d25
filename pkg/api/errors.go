package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a non-200 backend reply.
type ErrorKind int

const (
	// KindAPI is the generic kind for any non-200 status without a more
	// specific mapping below.
	KindAPI ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindInsufficientBalance
	KindForbidden
	KindResourceNotFound
	KindInternalServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad request"
	case KindUnauthorized:
		return "unauthorized"
	case KindInsufficientBalance:
		return "insufficient balance"
	case KindForbidden:
		return "forbidden"
	case KindResourceNotFound:
		return "resource not found"
	case KindInternalServerError:
		return "internal server error"
	default:
		return "api error"
	}
}

// APIError is a non-200 reply from the AlgoBulls backend. It carries the
// HTTP method and full URL of the failing exchange plus the response
// payload: the parsed JSON body when the backend sent JSON, otherwise the
// raw body as a string.
type APIError struct {
	Kind   ErrorKind
	Status int
	Method string
	URL    string
	Body   any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("algobulls api %s (%d): %s %s: %v", e.Kind, e.Status, e.Method, e.URL, e.Body)
}

// kindForStatus maps an HTTP status code to its error kind. The mapping is
// part of the platform's wire contract.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusPaymentRequired:
		return KindInsufficientBalance
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindResourceNotFound
	case http.StatusInternalServerError:
		return KindInternalServerError
	default:
		return KindAPI
	}
}

// AsAPIError unwraps err into an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func isKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}

// IsUnauthorized reports whether err is a 401 backend reply.
func IsUnauthorized(err error) bool { return isKind(err, KindUnauthorized) }

// IsForbidden reports whether err is a 403 backend reply.
func IsForbidden(err error) bool { return isKind(err, KindForbidden) }

// IsInsufficientBalance reports whether err is a 402 backend reply.
func IsInsufficientBalance(err error) bool { return isKind(err, KindInsufficientBalance) }

// IsResourceNotFound reports whether err is a 404 backend reply.
func IsResourceNotFound(err error) bool { return isKind(err, KindResourceNotFound) }

// ProgrammingError reports a contract violation inside the client or its
// caller, such as an unrecognized trading or report type. It never comes
// from the backend; if one shows up at runtime it is a defect.
type ProgrammingError struct {
	What string
}

func (e *ProgrammingError) Error() string {
	return "not implemented: " + e.What
}
