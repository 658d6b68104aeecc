// Package daemon serves hover and cache requests to an editor over newline-delimited JSON.
package daemon

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"go.trai.ch/peek/internal/core/domain"
	"go.trai.ch/peek/internal/core/ports"
	"go.trai.ch/zerr"
)

const maxRequestBytes = 1 << 20

// Service is the application surface the daemon dispatches to.
type Service interface {
	Hover(ctx context.Context, document, line string, character int) (domain.Hover, error)
	Resolve(ctx context.Context, assetID, document string) (string, bool, error)
	AddMapping(ctx context.Context, assetID, url, document string) error
	Reload(ctx context.Context, document string) (domain.Stats, error)
	Stats(ctx context.Context, document string) (domain.Stats, error)
}

// Server reads requests line by line and answers each one in order.
type Server struct {
	service   Service
	lifecycle *Lifecycle
	logger    ports.Logger
}

// NewServer creates a daemon server.
func NewServer(service Service, lifecycle *Lifecycle, logger ports.Logger) *Server {
	return &Server{
		service:   service,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

// Serve handles requests from r until r is exhausted, ctx is cancelled or the lifecycle shuts down.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan []byte)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
		for scanner.Scan() {
			select {
			case lines <- bytes.Clone(scanner.Bytes()):
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	enc := json.NewEncoder(w)
	for {
		// A shutdown request must win over lines that are already buffered.
		select {
		case <-s.lifecycle.ShutdownChan():
			return nil
		default:
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.lifecycle.ShutdownChan():
			return nil
		case err := <-readErr:
			if err != nil {
				return zerr.Wrap(err, "failed to read daemon request")
			}
			return nil
		case line := <-lines:
			s.lifecycle.ResetTimer()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if err := enc.Encode(s.handle(ctx, line)); err != nil {
				return zerr.Wrap(err, "failed to write daemon response")
			}
		}
	}
}

// handle decodes and dispatches one request. Failures are reported in the response.
func (s *Server) handle(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Response{Error: zerr.Wrap(err, domain.ErrInvalidRequest.Error()).Error()}
	}

	result, err := s.dispatch(ctx, req)
	if err != nil {
		s.logger.Error(err)
		return Response{ID: req.ID, Error: err.Error()}
	}
	return Response{ID: req.ID, Result: result}
}

func (s *Server) dispatch(ctx context.Context, req Request) (any, error) {
	p := req.Params

	switch req.Op {
	case OpHover:
		hover, err := s.service.Hover(ctx, p.Document, p.Line, p.Character)
		if err != nil {
			return nil, err
		}
		return newHoverResult(hover), nil

	case OpResolve:
		if p.AssetID == "" {
			return nil, zerr.With(domain.ErrInvalidRequest, "missing", "assetId")
		}
		url, ok, err := s.service.Resolve(ctx, p.AssetID, p.Document)
		if err != nil {
			return nil, err
		}
		return ResolveResult{AssetID: p.AssetID, URL: url, Found: ok}, nil

	case OpAddMapping:
		if p.AssetID == "" || p.URL == "" {
			return nil, zerr.With(domain.ErrInvalidRequest, "missing", "assetId or url")
		}
		if err := s.service.AddMapping(ctx, p.AssetID, p.URL, p.Document); err != nil {
			return nil, err
		}
		return OKResult{OK: true}, nil

	case OpReload:
		return s.service.Reload(ctx, p.Document)

	case OpStats:
		return s.service.Stats(ctx, p.Document)

	case OpPing:
		return PingResult{
			Uptime:        millis(s.lifecycle.Uptime()),
			IdleRemaining: millis(s.lifecycle.IdleRemaining()),
		}, nil

	case OpShutdown:
		s.lifecycle.Shutdown()
		return OKResult{OK: true}, nil

	default:
		return nil, zerr.With(domain.ErrInvalidRequest, "op", req.Op)
	}
}
