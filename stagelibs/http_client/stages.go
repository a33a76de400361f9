package http_client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/stage"
)

// newClient builds the shared transport configuration both stages use.
func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

func configuredTimeout(cfg stage.Config) (time.Duration, error) {
	raw, ok := cfg.String("timeout")
	if !ok {
		return 30 * time.Second, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	return timeout, nil
}

// clientSource polls an HTTP endpoint.
type clientSource struct {
	client *http.Client
	url    string
	method string
}

func (s *clientSource) Init(ctx context.Context, cfg stage.Config) error {
	url, ok := cfg.String("url")
	if !ok {
		return fmt.Errorf("http_source: url is required")
	}
	s.url = url

	s.method, ok = cfg.String("method")
	if !ok {
		s.method = http.MethodGet
	}

	timeout, err := configuredTimeout(cfg)
	if err != nil {
		return fmt.Errorf("http_source: %w", err)
	}
	s.client = newClient(timeout)

	ctxlog.FromContext(ctx).Debug("HTTP source initialized.", "url", s.url, "method", s.method)
	return nil
}

func (s *clientSource) Destroy(ctx context.Context) error {
	if s.client != nil {
		s.client.CloseIdleConnections()
	}
	return nil
}

// Poll issues one request against the configured endpoint.
func (s *clientSource) Poll(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, s.method, s.url, nil)
	if err != nil {
		return nil, err
	}
	return s.client.Do(req)
}

// clientTarget posts batches to an HTTP endpoint.
type clientTarget struct {
	client *http.Client
	url    string
}

func (t *clientTarget) Init(ctx context.Context, cfg stage.Config) error {
	url, ok := cfg.String("url")
	if !ok {
		return fmt.Errorf("http_target: url is required")
	}
	t.url = url

	timeout, err := configuredTimeout(cfg)
	if err != nil {
		return fmt.Errorf("http_target: %w", err)
	}
	t.client = newClient(timeout)

	ctxlog.FromContext(ctx).Debug("HTTP target initialized.", "url", t.url)
	return nil
}

func (t *clientTarget) Destroy(ctx context.Context) error {
	if t.client != nil {
		t.client.CloseIdleConnections()
	}
	return nil
}
