package services

import (
	"context"
	"sync"

	"github.com/ceramicnetwork/go-cas-client/models"
)

type casApiResult struct {
	resp *models.CasStatusResponse
	err  error
}

// FakeCasApi scripts the anchoring service: each call consumes the next
// scripted result, and the last one repeats once the script runs out.
type FakeCasApi struct {
	mu            sync.Mutex
	chains        *models.CasSupportedChains
	chainsErr     error
	chainsCalls   int
	createResults []casApiResult
	createCalls   int
	createGate    chan struct{}
	statusResults []casApiResult
	statusCalls   int
}

func (f *FakeCasApi) SupportedChains(ctx context.Context) (*models.CasSupportedChains, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chainsCalls++
	return f.chains, f.chainsErr
}

func (f *FakeCasApi) CreateRequest(ctx context.Context, req *models.CasCreateRequest) (*models.CasStatusResponse, error) {
	if f.createGate != nil {
		select {
		case <-f.createGate:
		case <-ctx.Done():
			return nil, &models.TransportError{Err: ctx.Err()}
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if len(f.createResults) == 0 {
		return nil, &models.TransportError{Err: context.Canceled}
	}
	result := f.createResults[min(f.createCalls-1, len(f.createResults)-1)]
	return result.resp, result.err
}

func (f *FakeCasApi) RequestStatus(ctx context.Context, cid string) (*models.CasStatusResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if len(f.statusResults) == 0 {
		return nil, &models.TransportError{Err: context.Canceled}
	}
	result := f.statusResults[min(f.statusCalls-1, len(f.statusResults)-1)]
	return result.resp, result.err
}

func (f *FakeCasApi) CreateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls
}

func (f *FakeCasApi) StatusCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SpyLogger counts error logs and swallows everything else.
type SpyLogger struct {
	mu          sync.Mutex
	errorCount  int
	fatalCalled bool
}

func (l *SpyLogger) Debugf(template string, args ...interface{}) {}
func (l *SpyLogger) Debugw(msg string, args ...interface{})      {}
func (l *SpyLogger) Errorf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errorCount++
}
func (l *SpyLogger) Fatalf(template string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fatalCalled = true
}
func (l *SpyLogger) Infof(template string, args ...interface{}) {}
func (l *SpyLogger) Infoln(args ...interface{})                 {}
func (l *SpyLogger) Warnf(template string, args ...interface{}) {}
func (l *SpyLogger) Sync() error                                { return nil }

func (l *SpyLogger) ErrorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errorCount
}

type FakeMetricService struct {
	mu     sync.Mutex
	counts map[models.MetricName]int
}

func (f *FakeMetricService) Count(ctx context.Context, name models.MetricName, val int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[models.MetricName]int)
	}
	f.counts[name] += val
	return nil
}

func (f *FakeMetricService) Distribution(ctx context.Context, name models.MetricName, val int) error {
	return nil
}

func (f *FakeMetricService) Shutdown(ctx context.Context) {}

func (f *FakeMetricService) CountOf(name models.MetricName) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[name]
}

type FakeNotifier struct {
	mu     sync.Mutex
	alerts []string
}

func (f *FakeNotifier) SendAlert(title, desc, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, desc)
	return nil
}

func (f *FakeNotifier) Alerts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.alerts...)
}

// FakeAuthenticator records the order of engine initialization relative to its
// own, plus every signed request it forwards.
type FakeAuthenticator struct {
	mu          sync.Mutex
	transport   models.Transport
	initialized bool
	signed      []*models.TransportRequest
}

func (f *FakeAuthenticator) Init(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initialized = true
	return nil
}

func (f *FakeAuthenticator) SendAuthenticatedRequest(ctx context.Context, req *models.TransportRequest) ([]byte, error) {
	f.mu.Lock()
	f.signed = append(f.signed, req)
	f.mu.Unlock()
	if f.transport != nil {
		return f.transport.Send(ctx, req)
	}
	return []byte("{}"), nil
}

func (f *FakeAuthenticator) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

func (f *FakeAuthenticator) SignedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.signed)
}
