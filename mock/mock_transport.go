// Package mock provides a scripted http.RoundTripper for exercising the
// watchparty client without a live backend: queue responses per method+path,
// then assert on the recorded calls.
package mock

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Call records one request the transport saw.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Step is one scripted outcome. Err takes precedence over the response
// fields, simulating a transport-level failure. Delay is applied before
// responding, to widen race windows in concurrency tests.
type Step struct {
	Status int
	Body   string
	Header http.Header
	Err    error
	Delay  time.Duration
}

// Transport is a scripted http.RoundTripper. Steps queued for a
// "{METHOD} {path}" key are consumed in order; when a queue runs out its
// last step repeats.
type Transport struct {
	mu    sync.Mutex
	steps map[string][]Step
	calls []Call
}

func NewTransport() *Transport {
	return &Transport{
		steps: make(map[string][]Step),
	}
}

// Script queues outcomes for a method+path pair.
func (t *Transport) Script(method, path string, steps ...Step) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := method + " " + path
	t.steps[key] = append(t.steps[key], steps...)
}

// Calls returns a copy of every recorded call.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// CallCount returns how many requests matched the method+path pair.
func (t *Transport) CallCount(method, path string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, c := range t.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	t.mu.Lock()
	t.calls = append(t.calls, Call{
		Method: req.Method,
		Path:   req.URL.Path,
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   body,
	})

	key := req.Method + " " + req.URL.Path
	queue := t.steps[key]
	var step Step
	switch {
	case len(queue) == 0:
		step = Step{Status: http.StatusNotFound, Body: `{"detail":"no scripted response"}`}
	case len(queue) == 1:
		step = queue[0]
	default:
		step = queue[0]
		t.steps[key] = queue[1:]
	}
	t.mu.Unlock()

	if step.Delay > 0 {
		time.Sleep(step.Delay)
	}

	if step.Err != nil {
		return nil, step.Err
	}

	header := step.Header
	if header == nil {
		header = http.Header{"Content-Type": []string{"application/json"}}
	}
	return &http.Response{
		StatusCode: step.Status,
		Header:     header,
		Body:       io.NopCloser(bytes.NewReader([]byte(step.Body))),
		Request:    req,
	}, nil
}
