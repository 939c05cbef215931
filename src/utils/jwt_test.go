package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewTokenRoundTrip(t *testing.T) {
	token, err := GenerateViewToken("abc123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseViewToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", claims.SubmissionID)
}

func TestViewTokenTampered(t *testing.T) {
	token, err := GenerateViewToken("abc123")
	assert.NoError(t, err)

	_, err = ParseViewToken(token + "x")
	assert.Error(t, err)

	_, err = ParseViewToken("not.a.token")
	assert.Error(t, err)
}

func TestSubmissionViewLink(t *testing.T) {
	link := SubmissionViewLink("https://api.test", "abc123")
	assert.True(t, strings.HasPrefix(link, "https://api.test/submissions/abc123?token="))

	assert.Equal(t, "", SubmissionViewLink("", "abc123"))
}
