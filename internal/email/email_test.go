package email

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinboard-dev/pinboard/internal/config"
	internal_errors "github.com/pinboard-dev/pinboard/internal/errors"
)

func testEmail() *Email {
	return New(&config.Email{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		Username:   "noreply@example.com",
		SenderName: "Pinboard",
	})
}

func TestIsCorrect(t *testing.T) {
	e := testEmail()

	for _, addr := range []string{"a@x.com", "first.last@sub.example.org", "User <user@example.com>"} {
		assert.NoError(t, e.IsCorrect(addr), addr)
	}

	for _, addr := range []string{"", "not-an-email", "@example.com", "a@"} {
		err := e.IsCorrect(addr)
		require.Error(t, err, addr)
		ec, ok := err.(*internal_errors.ErrorWithStatusCode)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, ec.StatusCode)
	}
}

func TestBuildMessage(t *testing.T) {
	e := testEmail()

	msg := string(e.buildMessage("user@example.com", "Activate your account", "<a href=\"x\">x</a>"))

	assert.Contains(t, msg, "To: user@example.com\r\n")
	assert.Contains(t, msg, "From: Pinboard <noreply@example.com>\r\n")
	assert.Contains(t, msg, "Subject: Activate your account\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"utf-8\"\r\n")
	assert.Contains(t, msg, "Message-ID: <")

	headerEnd := strings.Index(msg, "\r\n\r\n")
	require.Greater(t, headerEnd, 0, "headers and body must be separated by a blank line")
	assert.Equal(t, "<a href=\"x\">x</a>", msg[headerEnd+4:])
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	e := testEmail()

	msg := string(e.buildMessage("user@example.com", "Привет", "body"))
	assert.Contains(t, msg, "=?utf-8?q?")
}
