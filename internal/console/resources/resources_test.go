package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/muhammadnuman-eng/school-managment-crm-sub001/internal/console/client"
	"github.com/muhammadnuman-eng/school-managment-crm-sub001/pkg/api"
)

// fakeDoer returns canned envelopes keyed by "METHOD path" and records every
// dispatched request.
type fakeDoer struct {
	mu        sync.Mutex
	responses map[string]json.RawMessage
	errors    map[string]error
	requests  []client.Request
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{
		responses: make(map[string]json.RawMessage),
		errors:    make(map[string]error),
	}
}

func (f *fakeDoer) respond(method, path, body string) {
	f.responses[method+" "+path] = json.RawMessage(body)
}

func (f *fakeDoer) fail(method, path string, err error) {
	f.errors[method+" "+path] = err
}

func (f *fakeDoer) Do(_ context.Context, req client.Request) (*api.RawEnvelope, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	key := req.Method + " " + req.Path
	if err, ok := f.errors[key]; ok {
		return nil, err
	}
	data, ok := f.responses[key]
	if !ok {
		return nil, fmt.Errorf("no canned response for %s", key)
	}
	return &api.RawEnvelope{Success: true, Data: data, Timestamp: time.Now()}, nil
}

func (f *fakeDoer) lastRequest() client.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
