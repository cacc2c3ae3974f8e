// Package socketio is a sink module that forwards every transmission to a
// socket.io server as one event. The payload is
//
//	{"name": "u1", "type": "float", "location": 1, "data": [14]}
//
// Settings: url (required), namespace (default "/"), event (default
// "uniform"), timeout (connect timeout, default 10s) and
// insecure_skip_verify.
package socketio

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Kind is the sink kind this module registers.
const Kind = "socketio"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the sink with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink(Kind, Open)
}

// Input defines the settings of the socketio sink.
type Input struct {
	URL                string
	Namespace          string
	Event              string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// ParseInput reads the sink settings, applying defaults.
func ParseInput(settings map[string]string) (*Input, error) {
	in := &Input{
		URL:       settings["url"],
		Namespace: settings["namespace"],
		Event:     settings["event"],
		Timeout:   10 * time.Second,
	}
	if in.URL == "" {
		return nil, fmt.Errorf("socketio sink needs a url")
	}
	if in.Namespace == "" {
		in.Namespace = "/"
	}
	if in.Event == "" {
		in.Event = "uniform"
	}
	if s := settings["timeout"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", s, err)
		}
		in.Timeout = d
	}
	if s := settings["insecure_skip_verify"]; s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid insecure_skip_verify %q: %w", s, err)
		}
		in.InsecureSkipVerify = b
	}
	return in, nil
}

// conn is the live part of a session.
type conn struct {
	emit  func(event string, payload any)
	close func()
}

// dial connects to the server. Tests replace it.
var dial = dialSocket

type session struct {
	logger *slog.Logger
	event  string
	conn   *conn
}

// Open connects to the socket.io server described by opts.Settings and
// waits for the connection, up to the configured timeout.
func Open(ctx context.Context, opts registry.Options) (registry.Session, error) {
	in, err := ParseInput(opts.Settings)
	if err != nil {
		return nil, err
	}
	logger := ctxlog.FromContext(ctx).With("sink", Kind, "url", in.URL, "event", in.Event)

	c, err := dial(ctx, logger, in)
	if err != nil {
		return nil, err
	}
	return &session{logger: logger, event: in.Event, conn: c}, nil
}

func (s *session) SinkFor(t registry.Target) uniform.Sink {
	return uniform.SinkFunc(func(name string, v uniform.Value) {
		p := registry.NewPayload(t, name, v)
		s.logger.Debug("Emitting uniform.", "name", name, "value", v.String())
		s.conn.emit(s.event, p)
	})
}

func (s *session) Close() error {
	s.logger.Debug("Disconnecting socket client")
	s.conn.close()
	return nil
}

// dialSocket opens a websocket-only socket.io client and blocks until it
// is connected, the connection fails or the timeout expires.
func dialSocket(ctx context.Context, logger *slog.Logger, in *Input) (*conn, error) {
	parsedURL, err := url.Parse(in.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if in.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(in.Namespace, opts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "namespace", in.Namespace, "sid", io.Id())
		select {
		case done <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- err:
		default:
		}
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	select {
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to %s: %w", in.URL, err)
		}
	}

	return &conn{
		emit:  func(event string, payload any) { io.Emit(event, payload) },
		close: func() { io.Disconnect() },
	}, nil
}
