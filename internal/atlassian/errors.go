package atlassian

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// ErrorKind classifies a failed API interaction.
type ErrorKind string

const (
	// ErrorKindBadCredentials indicates the API rejected the credential.
	ErrorKindBadCredentials ErrorKind = "bad-credentials"
	// ErrorKindBadRequest indicates a GraphQL-level rejection of the request.
	ErrorKindBadRequest ErrorKind = "bad-request"
	// ErrorKindNetwork indicates a transport failure with no response.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindUnknown is the fallback for anything unmatched.
	ErrorKindUnknown ErrorKind = "unknown"
)

// IsValid checks if the error kind is valid.
func (k ErrorKind) IsValid() bool {
	switch k {
	case ErrorKindBadCredentials, ErrorKindBadRequest, ErrorKindNetwork, ErrorKindUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the error kind.
func (k ErrorKind) Description() string {
	switch k {
	case ErrorKindBadCredentials:
		return "Your credentials were rejected. Log in again to refresh them."
	case ErrorKindBadRequest:
		return "The Atlassian API rejected the request."
	case ErrorKindNetwork:
		return "Unable to reach the Atlassian API. Check your connection."
	default:
		return "Something went wrong while fetching notifications."
	}
}

// ClassifiedError is an API failure tagged with its kind. It is produced
// once, at the per-account fetch boundary, and carried on the per-account
// result instead of being thrown further up.
type ClassifiedError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassifiedError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// APIError is an HTTP-level rejection (non-2xx status).
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// GraphQLError is a 200 response carrying a GraphQL errors array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql error"
	}
	return "graphql error: " + strings.Join(e.Messages, "; ")
}

// Classify maps an error from the transport into the error taxonomy.
// A nil error returns nil.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return &ClassifiedError{Kind: ErrorKindBadCredentials, Err: err}
		default:
			return &ClassifiedError{Kind: ErrorKindUnknown, Err: err}
		}
	}

	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) {
		return &ClassifiedError{Kind: ErrorKindBadRequest, Err: err}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &ClassifiedError{Kind: ErrorKindNetwork, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ClassifiedError{Kind: ErrorKindNetwork, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClassifiedError{Kind: ErrorKindNetwork, Err: err}
	}

	return &ClassifiedError{Kind: ErrorKindUnknown, Err: err}
}
