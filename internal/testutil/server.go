package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// RecordedRequest is what the test server saw for one request.
type RecordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     string
	At       time.Time
}

// Server is an httptest server that records every request it receives.
type Server struct {
	*httptest.Server

	hits     atomic.Int32
	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a recording server and closes it when the test ends.
func NewServer(t testing.TB, handler http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(body),
			At:       time.Now(),
		})
		s.mu.Unlock()
		s.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// Hits returns the number of requests received so far.
func (s *Server) Hits() int {
	return int(s.hits.Load())
}

func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request. It panics if none arrived.
func (s *Server) LastRequest() RecordedRequest {
	reqs := s.Requests()
	return reqs[len(reqs)-1]
}

// DropConnection closes the underlying connection without writing a
// response, so the client sees a transport failure.
func DropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("testutil: response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	conn.Close()
}

// AlwaysDrop is a handler that fails every request at the transport level.
func AlwaysDrop(w http.ResponseWriter, _ *http.Request) {
	DropConnection(w)
}

// DropFirst drops the first n connections and serves the rest with next.
func DropFirst(n int, next http.HandlerFunc) http.HandlerFunc {
	var seen atomic.Int32
	return func(w http.ResponseWriter, r *http.Request) {
		if int(seen.Add(1)) <= n {
			DropConnection(w)
			return
		}
		next(w, r)
	}
}

// Respond writes status and body, with headers given as name, value pairs.
func Respond(status int, body string, headers ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		for i := 0; i+1 < len(headers); i += 2 {
			w.Header().Add(headers[i], headers[i+1])
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Stall waits for d or for the client to go away before answering 200.
func Stall(d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(d):
			w.WriteHeader(http.StatusOK)
		case <-r.Context().Done():
		}
	}
}

// StallBody answers 200, flushes prefix as the start of the body, then
// waits for d or for the client to go away without finishing it.
func StallBody(prefix string, d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, prefix)
		w.(http.Flusher).Flush()
		select {
		case <-time.After(d):
		case <-r.Context().Done():
		}
	}
}

// Trickle answers 200 and writes chunks one at a time, flushing each and
// pausing gap between them.
func Trickle(gap time.Duration, chunks ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		for i, chunk := range chunks {
			if i > 0 {
				time.Sleep(gap)
			}
			_, _ = io.WriteString(w, chunk)
			w.(http.Flusher).Flush()
		}
	}
}
