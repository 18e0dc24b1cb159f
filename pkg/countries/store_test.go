package countries

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/grovetools/atlas/errors"
	"github.com/grovetools/atlas/pkg/models"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []models.Country{
	{Name: "Germany", Region: "Europe", Capital: "Berlin", Population: 83240525},
	{Name: "Ghana", Region: "Africa", Capital: "Accra", Population: 31072940},
	{Name: "Georgia", Region: "Asia", Capital: "Tbilisi", Population: 3714000},
}

func quietLogger() (*logrus.Entry, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger.WithField("component", "countries-test"), hook
}

func newStore(t *testing.T, client Client) (*Store, *logtest.Hook) {
	t.Helper()
	logger, hook := quietLogger()
	return New(client, WithLogger(logger)), hook
}

func staticClient(list []models.Country, err error) Client {
	return ClientFunc(func(context.Context) ([]models.Country, error) {
		return list, err
	})
}

// gatedClient blocks every fetch until release is signalled.
type gatedClient struct {
	started chan struct{}
	release chan struct{}
	calls   atomic.Int32
	list    []models.Country
	err     error
}

func newGatedClient(list []models.Country, err error) *gatedClient {
	return &gatedClient{
		started: make(chan struct{}, 4),
		release: make(chan struct{}),
		list:    list,
		err:     err,
	}
}

func (c *gatedClient) FetchAllCountries(ctx context.Context) ([]models.Country, error) {
	c.calls.Add(1)
	c.started <- struct{}{}
	<-c.release
	return c.list, c.err
}

func waitStarted(t *testing.T, c *gatedClient) {
	t.Helper()
	select {
	case <-c.started:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch never started")
	}
}

func TestInitialState(t *testing.T) {
	s, _ := newStore(t, staticClient(sample, nil))

	summary := s.SelectDatasetSummary()
	assert.Equal(t, StatusIdle, summary.Status)
	assert.Nil(t, summary.Error)
	assert.Equal(t, 0, summary.Count)
	assert.Empty(t, s.SelectAllCountries())
	assert.NoError(t, s.Err())
}

func TestLoadSuccess(t *testing.T) {
	s, _ := newStore(t, staticClient(sample, nil))

	s.Load(context.Background())

	summary := s.SelectDatasetSummary()
	assert.Equal(t, StatusReceived, summary.Status)
	assert.Nil(t, summary.Error)
	assert.Equal(t, len(sample), summary.Count)
	if diff := cmp.Diff(sample, s.SelectAllCountries()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSuccessKeepsDuplicatesAndOrder(t *testing.T) {
	fetched := []models.Country{sample[2], sample[0], sample[2]}
	s, _ := newStore(t, staticClient(fetched, nil))

	s.Load(context.Background())

	if diff := cmp.Diff(fetched, s.SelectAllCountries()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReplacesListWholesale(t *testing.T) {
	responses := [][]models.Country{sample, {sample[1]}}
	call := 0
	s, _ := newStore(t, ClientFunc(func(context.Context) ([]models.Country, error) {
		list := responses[call]
		call++
		return list, nil
	}))

	s.Load(context.Background())
	s.Load(context.Background())

	if diff := cmp.Diff([]models.Country{sample[1]}, s.SelectAllCountries()); diff != "" {
		t.Errorf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFailureKeepsList(t *testing.T) {
	fail := false
	s, _ := newStore(t, ClientFunc(func(context.Context) ([]models.Country, error) {
		if fail {
			return nil, stderrors.New("connection refused")
		}
		return sample, nil
	}))

	s.Load(context.Background())
	fail = true
	s.Load(context.Background())

	summary := s.SelectDatasetSummary()
	assert.Equal(t, StatusRejected, summary.Status)
	require.NotNil(t, summary.Error)
	assert.Equal(t, "connection refused", *summary.Error)
	assert.Equal(t, len(sample), summary.Count)
	if diff := cmp.Diff(sample, s.SelectAllCountries()); diff != "" {
		t.Errorf("list changed on failure (-want +got):\n%s", diff)
	}
	assert.True(t, errors.Is(s.Err(), errors.ErrCodeLoadFailed))
}

func TestLoadFailureFallbackMessage(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{
			name:   "error without message",
			client: staticClient(nil, stderrors.New("")),
			want:   errors.UnknownErrorMessage,
		},
		{
			name: "panic with non-error value",
			client: ClientFunc(func(context.Context) ([]models.Country, error) {
				panic(42)
			}),
			want: errors.UnknownErrorMessage,
		},
		{
			name: "panic with error value",
			client: ClientFunc(func(context.Context) ([]models.Country, error) {
				panic(stderrors.New("decoder exploded"))
			}),
			want: "decoder exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newStore(t, tt.client)

			require.NotPanics(t, func() { s.Load(context.Background()) })

			summary := s.SelectDatasetSummary()
			assert.Equal(t, StatusRejected, summary.Status)
			require.NotNil(t, summary.Error)
			assert.Equal(t, tt.want, *summary.Error)
			assert.Equal(t, 0, summary.Count)
		})
	}
}

func TestLoadWhileLoadingIsDropped(t *testing.T) {
	client := newGatedClient(sample, nil)
	s, hook := newStore(t, client)

	var (
		mu          sync.Mutex
		transitions []Status
	)
	s.Subscribe(func(summary Summary) {
		mu.Lock()
		transitions = append(transitions, summary.Status)
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()
	waitStarted(t, client)

	before := s.SelectDatasetSummary()
	s.Load(context.Background())
	assert.Equal(t, before, s.SelectDatasetSummary(), "a dropped load must not touch the state")
	assert.Equal(t, int32(1), client.calls.Load())

	close(client.release)
	<-done

	assert.Equal(t, int32(1), client.calls.Load())
	mu.Lock()
	assert.Equal(t, []Status{StatusLoading, StatusReceived}, transitions)
	mu.Unlock()

	assert.Equal(t, 1, countMessages(hook, "Load already in flight, dropping request"))
}

func countMessages(hook *logtest.Hook, msg string) int {
	n := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == msg {
			n++
		}
	}
	return n
}

func TestConcurrentLoadsStartOneFetch(t *testing.T) {
	client := newGatedClient(sample, nil)
	s, hook := newStore(t, client)

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Load(context.Background())
		}()
	}
	waitStarted(t, client)

	require.Eventually(t, func() bool {
		return countMessages(hook, "Load already in flight, dropping request") == callers-1
	}, 2*time.Second, 5*time.Millisecond)
	close(client.release)
	wg.Wait()

	assert.Equal(t, int32(1), client.calls.Load())
	assert.Equal(t, StatusReceived, s.Status())
}

func TestReloadKeepsListAndClearsError(t *testing.T) {
	s, _ := newStore(t, staticClient(nil, stderrors.New("timeout")))
	s.Load(context.Background())
	require.Equal(t, StatusRejected, s.Status())

	client := newGatedClient(sample, nil)
	s.client = client

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()
	waitStarted(t, client)

	mid := s.SelectDatasetSummary()
	assert.Equal(t, StatusLoading, mid.Status)
	assert.Nil(t, mid.Error, "a new attempt clears the previous error")
	assert.NoError(t, s.Err())

	close(client.release)
	<-done
	assert.Equal(t, StatusReceived, s.Status())
}

func TestStaleListVisibleDuringReload(t *testing.T) {
	s, _ := newStore(t, staticClient(sample, nil))
	s.Load(context.Background())

	client := newGatedClient([]models.Country{sample[0]}, nil)
	s.client = client

	done := make(chan struct{})
	go func() {
		s.Load(context.Background())
		close(done)
	}()
	waitStarted(t, client)

	assert.Equal(t, StatusLoading, s.Status())
	assert.Len(t, s.SelectAllCountries(), len(sample))

	close(client.release)
	<-done
	assert.Len(t, s.SelectAllCountries(), 1)
}

func TestLoadPassesContextToClient(t *testing.T) {
	type ctxKey struct{}
	var got interface{}
	s, _ := newStore(t, ClientFunc(func(ctx context.Context) ([]models.Country, error) {
		got = ctx.Value(ctxKey{})
		return nil, ctx.Err()
	}))

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "marker"))
	cancel()
	s.Load(ctx)

	assert.Equal(t, "marker", got)
	summary := s.SelectDatasetSummary()
	assert.Equal(t, StatusRejected, summary.Status)
	require.NotNil(t, summary.Error)
	assert.Equal(t, context.Canceled.Error(), *summary.Error)
}

func TestSelectAllCountriesReturnsCopy(t *testing.T) {
	s, _ := newStore(t, staticClient(sample, nil))
	s.Load(context.Background())

	list := s.SelectAllCountries()
	list[0].Name = "Mutated"

	assert.Equal(t, "Germany", s.SelectAllCountries()[0].Name)
}

func TestNilListIsReceivedAsEmpty(t *testing.T) {
	s, _ := newStore(t, staticClient(nil, nil))
	s.Load(context.Background())

	assert.Equal(t, StatusReceived, s.Status())
	assert.NotNil(t, s.SelectAllCountries())
	assert.Equal(t, 0, s.SelectDatasetSummary().Count)
}

func TestSubscribeSeesEveryTransition(t *testing.T) {
	fail := true
	s, _ := newStore(t, ClientFunc(func(context.Context) ([]models.Country, error) {
		if fail {
			return nil, stderrors.New("boom")
		}
		return sample, nil
	}))

	var got []Status
	unsubscribe := s.Subscribe(func(summary Summary) {
		got = append(got, summary.Status)
	})

	s.Load(context.Background())
	fail = false
	s.Load(context.Background())

	want := []Status{StatusLoading, StatusRejected, StatusLoading, StatusReceived}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}

	unsubscribe()
	s.Load(context.Background())
	assert.Len(t, got, len(want), "no notifications after unsubscribe")
}

func TestEachAttemptLogsOneID(t *testing.T) {
	s, hook := newStore(t, staticClient(sample, nil))

	s.Load(context.Background())
	s.Load(context.Background())

	var started, settled []string
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "Loading countries":
			started = append(started, entry.Data["attempt"].(string))
		case "Countries received":
			settled = append(settled, entry.Data["attempt"].(string))
		}
	}
	require.Len(t, started, 2)
	assert.Equal(t, started, settled)
	assert.NotEqual(t, started[0], started[1])
}
