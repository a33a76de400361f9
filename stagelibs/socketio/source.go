package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/stagegridgo/internal/ctxlog"
	"github.com/vk/stagegridgo/internal/stage"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// source subscribes to one Socket.IO event stream.
type source struct {
	manager *socket.Manager
	io      *socket.Socket
	events  chan any
}

func (s *source) Init(ctx context.Context, cfg stage.Config) error {
	rawURL, ok := cfg.String("url")
	if !ok {
		return fmt.Errorf("socketio_source: url is required")
	}
	eventName, ok := cfg.String("on_event")
	if !ok {
		return fmt.Errorf("socketio_source: on_event is required")
	}
	namespace, ok := cfg.String("namespace")
	if !ok {
		namespace = "/"
	}

	timeout := 10 * time.Second
	if raw, ok := cfg.String("connect_timeout"); ok {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("socketio_source: invalid connect_timeout %q: %w", raw, err)
		}
		timeout = parsed
	}

	logger := ctxlog.FromContext(ctx).With("stage", "socketio_source", "url", rawURL, "onEvent", eventName)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("socketio_source: failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if insecure, _ := cfg.Bool("insecure_skip_verify"); insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	s.events = make(chan any, 64)
	connected := make(chan error, 1)

	s.manager = socket.NewManager(baseURL, opts)
	s.io = s.manager.Socket(namespace, opts)

	s.io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to Socket.IO server", "namespace", namespace, "sid", s.io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	s.io.On(types.EventName("connect_error"), func(errs ...any) {
		err, _ := errs[0].(error)
		if err == nil {
			err = fmt.Errorf("socketio_source: connect error: %v", errs[0])
		}
		select {
		case connected <- err:
		default:
		}
	})
	s.io.On(types.EventName(eventName), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		select {
		case s.events <- payload:
		default:
			logger.Warn("Dropping event, buffer full")
		}
	})

	s.io.Connect()

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	select {
	case <-connectCtx.Done():
		s.disconnect(logger)
		return fmt.Errorf("socketio_source: timed out waiting for initial connection")
	case err := <-connected:
		if err != nil {
			s.disconnect(logger)
			return err
		}
	}
	return nil
}

// Receive blocks until the next subscribed event arrives.
func (s *source) Receive(ctx context.Context) (any, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-s.events:
		return payload, nil
	}
}

func (s *source) Destroy(ctx context.Context) error {
	s.disconnect(ctxlog.FromContext(ctx))
	return nil
}

func (s *source) disconnect(logger interface{ Debug(string, ...any) }) {
	if s.io != nil {
		logger.Debug("Disconnecting Socket.IO client")
		s.io.Disconnect()
		s.io = nil
	}
}
