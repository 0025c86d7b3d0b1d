package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string   { return fmt.Sprintf("status %d", e.code) }
func (e *statusErr) HTTPStatus() int { return e.code }

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain", err: errors.New("invalid input: missing field"), want: false},
		{name: "429", err: &statusErr{code: 429}, want: true},
		{name: "503 wrapped by eris", err: eris.Wrap(&statusErr{code: 503}, "tavily: search"), want: true},
		{name: "401", err: &statusErr{code: 401}, want: false},
		{name: "400 wrapped", err: fmt.Errorf("call: %w", &statusErr{code: 400}), want: false},
		{name: "deadline", err: eris.Wrap(context.DeadlineExceeded, "search"), want: true},
		{name: "dns timeout", err: &net.DNSError{IsTimeout: true, Err: "timeout"}, want: true},
		{name: "econnreset", err: fmt.Errorf("write tcp: %w", syscall.ECONNRESET), want: true},
		{name: "econnrefused", err: fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED), want: true},
		{name: "broken pipe text", err: errors.New("write: broken pipe"), want: true},
		{name: "tls text", err: errors.New("net/http: TLS handshake timeout"), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindPermanent, Classify(nil))
	assert.Equal(t, KindCanceled, Classify(eris.Wrap(context.Canceled, "pipeline: wait")))
	assert.Equal(t, KindTransient, Classify(&statusErr{code: 502}))
	assert.Equal(t, KindPermanent, Classify(&statusErr{code: 403}))
	assert.Equal(t, KindPermanent, Classify(errors.New("unmarshal response")))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), code)
	}
	for _, code := range []int{200, 201, 400, 401, 403, 404, 405, 409, 422} {
		assert.False(t, IsTransientHTTPStatus(code), code)
	}
}
