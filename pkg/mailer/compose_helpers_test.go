package mailer_test

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/quotedprintable"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeQP(t *testing.T, data []byte) string {
	t.Helper()
	out, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(data)))
	require.NoError(t, err)
	return string(out)
}

func decodeBase64(t *testing.T, data []byte) string {
	t.Helper()
	clean := strings.NewReplacer("\r", "", "\n", "").Replace(string(data))
	out, err := base64.StdEncoding.DecodeString(clean)
	require.NoError(t, err)
	return string(out)
}
