package campaign

import (
	"context"
	"sync"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/outreach/pkg/mailer"
	"github.com/dmitrymomot/outreach/pkg/recipient"
	"github.com/dmitrymomot/outreach/pkg/sheet"
)

// MockSession is a mock implementation of mailer.Session.
type MockSession struct {
	mock.Mock
}

func (m *MockSession) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockSession) Close() error {
	return m.Called().Error(0)
}

// memoryStore keeps the recipients snapshot in memory and records saves.
type memoryStore struct {
	mu       sync.Mutex
	snapshot *recipient.Snapshot
	loadErr  error
	saveErr  error
	saves    []*recipient.Snapshot
}

func newMemoryStore(t *sheet.Table) *memoryStore {
	return &memoryStore{snapshot: recipient.NewSnapshot(t, recipient.DefaultColumns())}
}

func (s *memoryStore) Load(context.Context) (*recipient.Snapshot, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.snapshot, nil
}

func (s *memoryStore) Save(_ context.Context, snapshot *recipient.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, snapshot)
	return s.saveErr
}

func (s *memoryStore) saved() []*recipient.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*recipient.Snapshot(nil), s.saves...)
}

// dialerFor counts dials and always hands out session.
func dialerFor(session mailer.Session, dials *int) mailer.Dialer {
	return mailer.DialerFunc(func(context.Context) (mailer.Session, error) {
		*dials++
		return session, nil
	})
}

var header = []string{
	"Name", "Email", "Companies", "Positions", "Template File",
	"Framework", "my strength", "something my target audience values", "Sent or Not",
}

type row struct {
	name, email, company, template, status string
}

func table(rows ...row) *sheet.Table {
	t := &sheet.Table{Name: "Contacts", Header: header}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.name, r.email, r.company, "Engineer", r.template,
			"passion", "building compilers", "reliable software", r.status,
		})
	}
	return t
}

var testIdentity = Identity{
	Name:      "Ada Lovelace",
	Email:     "ada@example.com",
	Phone:     "555-0100",
	CityState: "Austin, TX",
}

func testTemplates() *mailer.TemplateStore {
	return mailer.NewTemplateStore(fstest.MapFS{
		"intro.html": {Data: []byte(
			"Subject: Hello {first_name}\n---\n<p>Hi {first_name}, {value_prop_sentence}</p>\n<p>{your_name} | {your_phone_number}</p>",
		)},
		DefaultImageTemplate: {Data: []byte(
			"Subject: Meeting summary for {company}\n---\n<p>Hi {first_name}</p>{dynamic_image_tag}",
		)},
		"strict.html": {Data: []byte("Subject: Hi\n---\n<p>{nickname}</p>")},
		"broken.html": {Data: []byte("no delimiter at all")},
	})
}

func testConfig() Config {
	return Config{Identity: testIdentity, ImageTemplate: DefaultImageTemplate}
}

// pauseRecorder records throttle pauses instead of sleeping.
type pauseRecorder struct {
	err       error
	durations []time.Duration
	calls     int
}

func (p *pauseRecorder) pause(_ context.Context, d time.Duration) error {
	p.durations = append(p.durations, d)
	p.calls++
	return p.err
}
