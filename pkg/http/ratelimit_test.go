package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/showfinder/pkg/http/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewRateLimitedClient(t *testing.T) {
	type args struct {
		opts []ClientOption
	}
	tests := []struct {
		name string
		args args
		want *RateLimitedClient
	}{
		{
			name: "default",
			args: args{
				opts: []ClientOption{},
			},
			want: &RateLimitedClient{
				client:      http.DefaultClient,
				maxRetries:  DefaultMaxRetries,
				baseBackoff: DefaultBaseBackoff,
			},
		},
		{
			name: "custom",
			args: args{
				opts: []ClientOption{
					WithMaxRetries(5),
					WithBaseBackoff(time.Millisecond * 100),
					WithUserAgent("showfinder"),
					WithHTTPClient(&http.Client{
						Timeout: time.Second,
					}),
				},
			},
			want: &RateLimitedClient{
				client: &http.Client{
					Timeout: time.Second,
				},
				maxRetries:  5,
				baseBackoff: time.Millisecond * 100,
				userAgent:   "showfinder",
			},
		},
		{
			name: "zero retries still makes one attempt",
			args: args{
				opts: []ClientOption{WithMaxRetries(0)},
			},
			want: &RateLimitedClient{
				client:      http.DefaultClient,
				maxRetries:  1,
				baseBackoff: DefaultBaseBackoff,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewRateLimitedClient(tt.args.opts...); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewRateLimitedClient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func tooManyRequests(header http.Header) *http.Response {
	return &http.Response{
		StatusCode: http.StatusTooManyRequests,
		Header:     header,
		Body:       io.NopCloser(bytes.NewBuffer([]byte("429 response"))),
	}
}

func TestRateLimitedClient_Do(t *testing.T) {
	t.Run("error during request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Return(nil, errors.New("http error"))
		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("non 429 response", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Return(&http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBuffer([]byte("non 429 response"))),
		}, nil)

		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "non 429 response", string(b))
	})

	t.Run("sets user agent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(gomock.Any()).DoAndReturn(func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "showfinder/test", r.Header.Get("User-Agent"))
			return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
		})

		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithUserAgent("showfinder/test"))
		_, err = client.Do(req)
		require.NoError(t, err)
	})

	t.Run("single attempt returns the 429", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Times(1).Return(tooManyRequests(nil), nil)
		client := NewRateLimitedClient(WithHTTPClient(mhttp))
		resp, err := client.Do(req)
		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("429 then success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		gomock.InOrder(
			mhttp.EXPECT().Do(req).Return(tooManyRequests(nil), nil),
			mhttp.EXPECT().Do(req).Return(&http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil),
		)

		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithMaxRetries(3), WithBaseBackoff(time.Millisecond))
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("429 - max retries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		req, err := http.NewRequest("GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Times(2).DoAndReturn(func(*http.Request) (*http.Response, error) {
			return tooManyRequests(nil), nil
		})

		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithMaxRetries(2), WithBaseBackoff(time.Millisecond))
		resp, err := client.Do(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mhttp := mocks.NewMockHTTPClient(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		req, err := http.NewRequestWithContext(ctx, "GET", "https://example.com", nil)
		require.NoError(t, err)

		mhttp.EXPECT().Do(req).Times(1).Return(tooManyRequests(http.Header{
			"Retry-After": []string{"10"},
		}), nil)

		client := NewRateLimitedClient(WithHTTPClient(mhttp), WithMaxRetries(3))
		resp, err := client.Do(req)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, resp)
	})
}

func TestRateLimitedClient_getRetryAfter(t *testing.T) {
	type args struct {
		resp    *http.Response
		attempt int
	}
	tests := []struct {
		name        string
		baseBackoff time.Duration
		args        args
		want        time.Duration
	}{
		{
			name:        "retry after header",
			baseBackoff: time.Second,
			args: args{
				resp: &http.Response{
					Header: http.Header{
						"Retry-After": []string{"1"},
					},
				},
				attempt: 0,
			},
			want: time.Second,
		},
		{
			name:        "unparseable header falls back to backoff",
			baseBackoff: time.Second,
			args: args{
				resp: &http.Response{
					Header: http.Header{
						"Retry-After": []string{"soon"},
					},
				},
				attempt: 1,
			},
			want: time.Second * 2,
		},
		{
			name:        "exponential backoff",
			baseBackoff: time.Second,
			args: args{
				resp:    &http.Response{},
				attempt: 3,
			},
			want: time.Second * 8, // 2^3 * 1 second
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &RateLimitedClient{
				baseBackoff: tt.baseBackoff,
			}
			if got := c.getRetryAfter(tt.args.resp, tt.args.attempt); got != tt.want {
				t.Errorf("RateLimitedClient.getRetryAfter() = %v, want %v", got, tt.want)
			}
		})
	}
}
