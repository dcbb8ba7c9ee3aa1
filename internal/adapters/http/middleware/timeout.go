package middleware

import (
	"bytes"
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/badhon18478/Marketplace-sub000/internal/adapters/http/dto"
)

const timeoutDetail = "the job listing did not respond in time"

// Timeout gives the handler a deadline of d. The handler's response is
// buffered; if the deadline passes first a 504 problem is sent instead and
// everything the handler wrote is dropped. The deadline travels in the
// request context, so an in-flight listing fetch is abandoned with it.
// A handler panic is re-raised on the serving goroutine for Recovery.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			buf := &bufferedResponse{header: http.Header{}}
			finished := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer close(finished)
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
					}
				}()
				next.ServeHTTP(buf, r.WithContext(ctx))
			}()

			select {
			case <-finished:
				select {
				case v := <-panicked:
					panic(v)
				default:
				}
				buf.copyTo(w)
			case <-ctx.Done():
				buf.abandon()
				_ = dto.NewProblem(r, http.StatusGatewayTimeout, timeoutDetail).Write(w)
			}
		})
	}
}

// bufferedResponse holds a handler's response until Timeout decides who
// owns the real writer.
type bufferedResponse struct {
	mu        sync.Mutex
	header    http.Header
	body      bytes.Buffer
	status    int
	abandoned bool
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) WriteHeader(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.status == 0 {
		b.status = http.StatusOK
	}
	if b.abandoned {
		return len(p), nil
	}
	return b.body.Write(p)
}

// abandon discards the buffered body and stops further buffering.
func (b *bufferedResponse) abandon() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.abandoned = true
	b.body.Reset()
}

func (b *bufferedResponse) copyTo(w http.ResponseWriter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	maps.Copy(w.Header(), b.header)
	if b.status != 0 {
		w.WriteHeader(b.status)
	}
	_, _ = w.Write(b.body.Bytes())
}
