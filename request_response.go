package watchparty

import (
	"net/http"
	"net/url"
	"time"
)

// Request describes one logical call against the backend. A Request is
// created per call and discarded after it settles; the pipeline mutates it
// while the call is in flight (metadata stamps, the refresh-retry guard).
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    []byte

	// Metadata is stamped by the request interceptor before the first send.
	Metadata RequestMetadata

	// retried guards the 401 refresh path: at most one token refresh and
	// one resend per logical request, no matter how often 401 recurs.
	retried bool
}

// RequestMetadata carries per-request bookkeeping used for log correlation
// and latency reporting.
type RequestMetadata struct {
	RequestID string
	StartTime time.Time
}

// Response is the normalized transport result. Data holds the raw body;
// the verb helpers decode it into caller-supplied types.
type Response struct {
	StatusCode int
	Headers    http.Header
	Data       []byte
}

// key returns the retry-counter key for this request. The key is coarse on
// purpose: two concurrent requests to the same method and path share a
// counter entry.
func (r *Request) key() string {
	return r.Method + "-" + r.Path
}
