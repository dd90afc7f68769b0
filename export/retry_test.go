package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"bylaws/common"
)

func TestPolicy_Delay(t *testing.T) {
	p := Policy{Attempts: 5, Backoff: 100 * time.Millisecond, Max: 350 * time.Millisecond}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 350 * time.Millisecond},
		{10, 350 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := p.Delay(tt.attempt); got != tt.want {
			t.Errorf("Delay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
	if got := (Policy{}).Delay(3); got != 0 {
		t.Errorf("zero policy Delay() = %v", got)
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"attempt timeout", context.DeadlineExceeded, true},
		{"empty body", ErrEmptyBody, false},
		{"not binary", ErrNotBinary, false},
		{"503", &StatusError{Code: 503}, true},
		{"429", &StatusError{Code: 429}, true},
		{"404", &StatusError{Code: 404}, false},
		{"transport", errors.New("connection reset"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transient(tt.err); got != tt.want {
				t.Errorf("Transient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_ExportWithRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []int
		attempts  int
		wantCalls int32
		wantErr   bool
	}{
		{"first attempt", []int{200}, 3, 1, false},
		{"recovers", []int{503, 500, 200}, 3, 3, false},
		{"gives up", []int{503, 503, 503, 503}, 3, 3, true},
		{"permanent", []int{400, 200}, 3, 1, true},
		{"zero attempts means one", []int{503, 200}, 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(calls.Add(1)) - 1
				status := tt.responses[min(n, len(tt.responses)-1)]
				w.WriteHeader(status)
				if status == http.StatusOK {
					w.Write(pdfBody)
				}
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "", time.Second, zaptest.NewLogger(t))
			res, err := c.ExportWithRetry(context.Background(), sampleRequest(common.OutputFmtPdf),
				Policy{Attempts: tt.attempts, Backoff: time.Millisecond, Max: 5 * time.Millisecond})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExportWithRetry() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && res == nil {
				t.Fatal("no result")
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("service called %d times, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestClient_ExportWithRetry_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	c := NewClient(srv.URL, "", time.Second, zaptest.NewLogger(t))
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err := c.ExportWithRetry(ctx, sampleRequest(common.OutputFmtPdf), Policy{Attempts: 10, Backoff: time.Hour})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExportWithRetry() error = %v, want context.Canceled", err)
	}
}

func TestClient_ExportWithRetry_Timeout(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// first attempt outlives client timeout
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		w.Write(pdfBody)
	}))
	defer srv.Close()

	t.Run("slow attempt is retried", func(t *testing.T) {
		c := NewClient(srv.URL, "", 50*time.Millisecond, zaptest.NewLogger(t))
		res, err := c.ExportWithRetry(context.Background(), sampleRequest(common.OutputFmtPdf),
			Policy{Attempts: 3, Backoff: time.Millisecond})
		if err != nil {
			t.Fatalf("ExportWithRetry() error = %v", err)
		}
		if res == nil {
			t.Fatal("no result")
		}
		if got := calls.Load(); got != 2 {
			t.Errorf("service called %d times, want 2", got)
		}
	})

	t.Run("caller deadline stops retries", func(t *testing.T) {
		calls.Store(0)
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		c := NewClient(srv.URL, "", 5*time.Second, zaptest.NewLogger(t))
		_, err := c.ExportWithRetry(ctx, sampleRequest(common.OutputFmtPdf),
			Policy{Attempts: 5, Backoff: time.Millisecond})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("ExportWithRetry() error = %v, want context.DeadlineExceeded", err)
		}
		if got := calls.Load(); got != 1 {
			t.Errorf("service called %d times, want 1", got)
		}
	})
}
