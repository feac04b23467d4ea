package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("noreply@safealert.app", "jane@example.com", "Your verification code", "code body")

	require.True(t, strings.HasPrefix(msg, "From: noreply@safealert.app\r\n"))
	require.Contains(t, msg, "To: jane@example.com\r\n")
	require.Contains(t, msg, "Subject: Your verification code\r\n")
	require.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n")
	require.True(t, strings.HasSuffix(msg, "\r\n\r\ncode body"))
}
