// Package httpsink is a sink module that POSTs every transmission as JSON to
// an HTTP endpoint, using one shared client per session.
//
// Settings: url (required) and timeout (per request, default 5s).
package httpsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/specialistvlad/uniformgrid/internal/ctxlog"
	"github.com/specialistvlad/uniformgrid/internal/registry"
	"github.com/specialistvlad/uniformgrid/internal/uniform"
)

// Kind is the sink kind this module registers.
const Kind = "http"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the sink with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterSink(Kind, Open)
}

// Input defines the settings of the http sink.
type Input struct {
	URL     string
	Timeout time.Duration
}

// ParseInput reads the sink settings, applying defaults.
func ParseInput(settings map[string]string) (*Input, error) {
	in := &Input{URL: settings["url"], Timeout: 5 * time.Second}
	if in.URL == "" {
		return nil, fmt.Errorf("http sink needs a url")
	}
	if s := settings["timeout"]; s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", s, err)
		}
		in.Timeout = d
	}
	return in, nil
}

type session struct {
	ctx    context.Context
	logger *slog.Logger
	url    string
	client *http.Client

	mu     sync.Mutex
	sent   int
	failed int
}

// Open creates the shared client. No request is made until the first
// transmission.
func Open(ctx context.Context, opts registry.Options) (registry.Session, error) {
	in, err := ParseInput(opts.Settings)
	if err != nil {
		return nil, err
	}
	client := &http.Client{
		Timeout: in.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	logger := ctxlog.FromContext(ctx).With("sink", Kind, "url", in.URL)
	logger.Debug("http sink ready.", "timeout", in.Timeout)
	return &session{ctx: ctx, logger: logger, url: in.URL, client: client}, nil
}

func (s *session) SinkFor(t registry.Target) uniform.Sink {
	return uniform.SinkFunc(func(name string, v uniform.Value) {
		err := s.post(registry.NewPayload(t, name, v))
		s.mu.Lock()
		defer s.mu.Unlock()
		s.sent++
		if err != nil {
			s.failed++
			s.logger.Error("Failed to post uniform.", "name", name, "error", err)
		}
	})
}

func (s *session) post(p registry.Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(s.ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	s.logger.Debug("Posted uniform.", "name", p.Name, "status", resp.StatusCode)
	return nil
}

// Close releases idle connections and reports failed transmissions.
func (s *session) Close() error {
	s.client.CloseIdleConnections()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed > 0 {
		return fmt.Errorf("%d of %d transmissions failed", s.failed, s.sent)
	}
	return nil
}
