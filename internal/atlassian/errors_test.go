package atlassian

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil stays nil", nil, ""},
		{"401", &APIError{StatusCode: 401}, ErrorKindBadCredentials},
		{"403", &APIError{StatusCode: 403}, ErrorKindBadCredentials},
		{"404", &APIError{StatusCode: 404}, ErrorKindBadCredentials},
		{"500", &APIError{StatusCode: 500}, ErrorKindUnknown},
		{"graphql errors array", &GraphQLError{Messages: []string{"bad field"}}, ErrorKindBadRequest},
		{"transport failure", &url.Error{Op: "Post", URL: "https://x", Err: errors.New("refused")}, ErrorKindNetwork},
		{"deadline", context.DeadlineExceeded, ErrorKindNetwork},
		{"anything else", errors.New("weird"), ErrorKindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.ErrorIs(t, got, tt.err, "classified error unwraps to the cause")
		})
	}
}

func TestClassify_WrappedCause(t *testing.T) {
	wrapped := fmt.Errorf("fetching: %w", &APIError{StatusCode: 401})
	got := Classify(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ErrorKindBadCredentials, got.Kind)
}

func TestErrorKind(t *testing.T) {
	assert.True(t, ErrorKindNetwork.IsValid())
	assert.False(t, ErrorKind("nope").IsValid())
	assert.NotEmpty(t, ErrorKindBadCredentials.Description())
	assert.NotEmpty(t, ErrorKindUnknown.Description())
}

func TestFindAttribute(t *testing.T) {
	attrs := []AttributePair{
		{Key: "registrationProduct", Value: "jira"},
		{Key: "subProduct", Value: "software"},
	}
	assert.Equal(t, "jira", FindAttribute(attrs, "registrationProduct"))
	assert.Equal(t, "software", FindAttribute(attrs, "subProduct"))
	assert.Equal(t, "", FindAttribute(attrs, "missing"))
	assert.Equal(t, "", FindAttribute(nil, "registrationProduct"))
}
