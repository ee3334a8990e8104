package devsender

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/outreach/pkg/mailer"
)

func TestSender(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "outbox", "nested")
	s := New(Config{Dir: dir})
	s.now = func() time.Time { return time.Date(2025, 10, 2, 9, 30, 0, 0, time.UTC) }

	session, err := s.Dial(context.Background())
	require.NoError(t, err)

	for _, to := range []string{"Grace Hopper <grace@example.com>", "ada@example.com"} {
		require.NoError(t, session.Send(context.Background(), &mailer.Email{
			From:    "me@example.com",
			To:      []string{to},
			Subject: "Hello",
			HTML:    "<p>Hi</p>",
		}))
	}
	require.NoError(t, session.Close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2025_10_02_093000_001_grace_at_example.com.eml", entries[0].Name())
	assert.Equal(t, "2025_10_02_093000_002_ada_at_example.com.eml", entries[1].Name())

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Subject: Hello")
	assert.Contains(t, string(data), "grace@example.com")
}

func TestSender_InvalidEmail(t *testing.T) {
	t.Parallel()

	s := New(Config{Dir: t.TempDir()})
	err := s.Send(context.Background(), &mailer.Email{To: []string{"grace@example.com"}, Subject: "x"})
	require.ErrorIs(t, err, mailer.ErrNoContent)
}

func TestSender_DialFailure(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, err := New(Config{Dir: filepath.Join(file, "outbox")}).Dial(context.Background())
	require.ErrorIs(t, err, mailer.ErrConnectFailed)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "grace_at_example.com", sanitizeFilename("Grace <grace@example.com>"))
	assert.Equal(t, "ada_at_example.com", sanitizeFilename("ADA@Example.com"))
	assert.Equal(t, "email", sanitizeFilename("<>"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 150)+"@example.com"), 100)
}
