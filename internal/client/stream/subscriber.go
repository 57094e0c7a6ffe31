// Package stream consumes the server-sent reservation events and keeps the connection alive.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"table-booking/internal/domain/event"
	"table-booking/internal/pkg/errs"
)

const (
	defaultMinBackoff = 500 * time.Millisecond
	defaultMaxBackoff = 30 * time.Second
	maxFrameBytes     = 1 << 20
)

var ErrUnexpectedStatus = errs.New("unexpected event stream status")

// ConnectFunc runs after every successful connection. reconnect is false only for the first one;
// on a reconnect the caller must re-fetch whatever it mirrors because missed events are lost.
type ConnectFunc func(ctx context.Context, reconnect bool) error

type Subscriber struct {
	url        string
	client     *http.Client
	token      string
	minBackoff time.Duration
	maxBackoff time.Duration
	logger     *slog.Logger
}

type Option func(*Subscriber)

func WithBearerToken(token string) Option {
	return func(s *Subscriber) { s.token = token }
}

func WithBackoff(lo, hi time.Duration) Option {
	return func(s *Subscriber) {
		s.minBackoff, s.maxBackoff = lo, hi
	}
}

func NewSubscriber(url string, client *http.Client, logger *slog.Logger, opts ...Option) *Subscriber {
	if client == nil {
		client = &http.Client{}
	}
	s := &Subscriber{
		url:        url,
		client:     client,
		minBackoff: defaultMinBackoff,
		maxBackoff: defaultMaxBackoff,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run keeps a subscription open until ctx is done, reconnecting with exponential backoff.
func (s *Subscriber) Run(ctx context.Context, onConnect ConnectFunc, handle func(event.Event)) error {
	backoff := s.minBackoff
	connected := false

	for {
		err := s.session(ctx, func() error {
			backoff = s.minBackoff
			reconnect := connected
			connected = true
			if onConnect == nil {
				return nil
			}
			return onConnect(ctx, reconnect)
		}, handle)
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("Event stream interrupted", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, s.maxBackoff)
	}
}

func (s *Subscriber) session(ctx context.Context, connected func() error, handle func(event.Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return errs.Wrap(err, "failed to build stream request")
	}
	req.Header.Set("Accept", "text/event-stream")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return errs.Wrap(err, "failed to open event stream")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errs.Wrapf(ErrUnexpectedStatus, "status %d", resp.StatusCode)
	}
	if err := connected(); err != nil {
		return errs.Wrap(err, "connect callback failed")
	}

	return Decode(resp.Body, func(name string, data []byte) error {
		t := event.Type(name)
		if !t.IsValid() {
			return nil
		}
		var e event.Event
		if err := json.Unmarshal(data, &e); err != nil {
			s.logger.Warn("Dropping undecodable event", "event", name, "error", err)
			return nil
		}
		if e.Type == "" {
			e.Type = t
		}
		handle(e)
		return nil
	})
}

// Decode splits an SSE byte stream into frames and calls fn with each frame's event name and
// joined data lines. Frames without data are skipped. It returns io.ErrUnexpectedEOF when the
// stream ends, because the server never closes a healthy stream.
func Decode(r io.Reader, fn func(name string, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxFrameBytes)

	var (
		name string
		data bytes.Buffer
	)
	flush := func() error {
		defer func() {
			name = ""
			data.Reset()
		}()
		if data.Len() == 0 {
			return nil
		}
		if name == "" {
			name = "message"
		}
		return fn(name, bytes.TrimSuffix(data.Bytes(), []byte("\n")))
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if err := flush(); err != nil {
				return err
			}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			name = value
		case "data":
			data.WriteString(value)
			data.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}
	return io.ErrUnexpectedEOF
}
