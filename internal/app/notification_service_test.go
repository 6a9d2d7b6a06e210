package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"subscription_notifier/internal/domain/client"
	"subscription_notifier/internal/domain/messaging"
	"subscription_notifier/internal/domain/reminder"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	clients []*client.Client
	failErr error
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	if f.failErr != nil {
		return f.failErr
	}
	c.ID = int64(len(f.clients) + 1)
	f.clients = append(f.clients, c)
	return nil
}
func (f *fakeClientRepo) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	return nil, client.ErrNotFound
}
func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error { return nil }
func (f *fakeClientRepo) Delete(ctx context.Context, id int64) error         { return nil }
func (f *fakeClientRepo) ListAll(ctx context.Context) ([]*client.Client, error) {
	return f.clients, nil
}
func (f *fakeClientRepo) ListActive(ctx context.Context) ([]*client.Client, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []*client.Client
	for _, c := range f.clients {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeClientRepo) ListActiveByExpiration(ctx context.Context, date time.Time) ([]*client.Client, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []*client.Client
	for _, c := range f.clients {
		if c.Active && c.ExpirationDate.Equal(client.Date(date)) {
			out = append(out, c)
		}
	}
	return out, nil
}

// fakeProvider records every send and fails for phones listed in failFor.
type fakeProvider struct {
	sent    []string // phones, in order
	bodies  []string
	failFor map[string]error
}

func (p *fakeProvider) Send(ctx context.Context, toPhone, body string) (string, error) {
	p.sent = append(p.sent, toPhone)
	p.bodies = append(p.bodies, body)
	if err, ok := p.failFor[toPhone]; ok {
		return "", err
	}
	return "SM123", nil
}

func (p *fakeProvider) Configured() bool { return true }

type fakeGuard struct {
	deny map[string]bool
	err  error
}

func (g *fakeGuard) Acquire(ctx context.Context, day time.Time, offset int, clientID int64) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	key := day.Format("2006-01-02")
	if g.deny[key] {
		return false, nil
	}
	return true, nil
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testRoster() []*client.Client {
	return []*client.Client{
		{ID: 1, Name: "Jean", Phone: "+50937000001", Service: "Netflix", ExpirationDate: date("2024-06-10"), Active: true},
		{ID: 2, Name: "Marie", Phone: "+50937000002", Service: "Spotify", ExpirationDate: date("2024-06-10"), Active: true},
		{ID: 3, Name: "Pierre", Phone: "+50937000003", Service: "Disney+", ExpirationDate: date("2024-06-10"), Active: true},
	}
}

func newTestService(repo *fakeClientRepo, provider messaging.Provider, guard SendGuard) (*NotificationService, *logtest.Hook) {
	log, hook := logtest.NewNullLogger()
	svc := NewNotificationService(reminder.NewEvaluator(repo), provider, guard, reminder.Offsets{3, 1, 0}, log)
	return svc, hook
}

func TestRunDaily_SendsOneMessagePerMatch(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()}
	provider := &fakeProvider{}
	svc, _ := newTestService(repo, provider, nil)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 3, summary.Sent)
	assert.Empty(t, summary.Failures)
	assert.False(t, summary.Skipped)
	assert.Equal(t, []string{"+50937000001", "+50937000002", "+50937000003"}, provider.sent)
}

func TestRunDaily_MessageContent(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()[:1]}
	provider := &fakeProvider{}
	svc, _ := newTestService(repo, provider, nil)

	_, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	require.Len(t, provider.bodies, 1)
	assert.Contains(t, provider.bodies[0], "Jean")
	assert.Contains(t, provider.bodies[0], "Netflix")
	assert.Contains(t, provider.bodies[0], "10/06/2024")
}

func TestRunDaily_FailureIsolation(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()}
	provider := &fakeProvider{failFor: map[string]error{
		"+50937000002": errors.New("invalid number"),
	}}
	svc, _ := newTestService(repo, provider, nil)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	// All three sends were attempted despite the middle one failing.
	assert.Len(t, provider.sent, 3)
	assert.Equal(t, 2, summary.Sent)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, int64(2), summary.Failures[0].ClientID)
	assert.Equal(t, "+50937000002", summary.Failures[0].Phone)
}

func TestRunDaily_UnconfiguredProvider(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()}
	svc, hook := newTestService(repo, messaging.Disabled(), nil)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	assert.True(t, summary.Skipped)
	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 0, summary.Sent)

	// One warning per run, not one per client.
	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestRunDaily_StoreFailure(t *testing.T) {
	repo := &fakeClientRepo{failErr: errors.New("connection refused")}
	provider := &fakeProvider{}
	svc, _ := newTestService(repo, provider, nil)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Empty(t, provider.sent)
}

func TestRunDaily_GuardDeduplicates(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()}
	provider := &fakeProvider{}
	guard := &fakeGuard{deny: map[string]bool{"2024-06-07": true}}
	svc, _ := newTestService(repo, provider, guard)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Deduplicated)
	assert.Equal(t, 0, summary.Sent)
	assert.Empty(t, provider.sent)
}

func TestRunDaily_GuardErrorStillSends(t *testing.T) {
	repo := &fakeClientRepo{clients: testRoster()}
	provider := &fakeProvider{}
	guard := &fakeGuard{err: errors.New("redis down")}
	svc, _ := newTestService(repo, provider, guard)

	summary, err := svc.RunDaily(context.Background(), date("2024-06-07"))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Sent)
	assert.Equal(t, 0, summary.Deduplicated)
}
