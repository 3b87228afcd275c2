package hinfo

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultServerToken is the product token sent in the Server header unless
// overridden by ServerOptions.
const DefaultServerToken = "hinfod/1.0"

// ServerOptions holds Server options
type ServerOptions struct {
	Name        string
	Network     string
	Address     string
	ServerToken string
	Sysinfo     SystemInfo
}

// CopyFrom sets the underlying ServerOptions by given ServerOptions
func (o *ServerOptions) CopyFrom(src *ServerOptions) {
	*o = *src
	if o.Network == "" {
		o.Network = "tcp"
	}
	if o.Name == "" {
		o.Name = o.Address
	}
	if o.ServerToken == "" {
		o.ServerToken = DefaultServerToken
	}
}

// Server owns the listening endpoint and the serial dispatch cycle. At most
// one connection is open at any moment; the next one is accepted only after
// the previous exchange has been written out and closed.
type Server struct {
	opts ServerOptions
	lis  net.Listener

	promReadBytes              *prometheus.CounterVec
	promWriteBytes             *prometheus.CounterVec
	promRequestsTotal          *prometheus.CounterVec
	promRequestDurationSeconds prometheus.ObserverVec
}

// NewServer creates a new Server by given options and binds its listening
// endpoint. The "tcp" network with a host-less address gives a dual-stack
// listener accepting IPv4-mapped addresses.
func NewServer(opts ServerOptions) (s *Server, err error) {
	s = &Server{}
	s.opts.CopyFrom(&opts)

	if s.opts.Sysinfo == nil {
		s = nil
		err = errors.New("no sysinfo provider")
		return
	}

	s.lis, err = net.Listen(s.opts.Network, s.opts.Address)
	if err != nil {
		s = nil
		err = errors.Wrapf(err, "listener %q create error", opts.Address)
		return
	}

	promLabels := map[string]string{"name": s.opts.Name}
	s.promReadBytes = promHTTPServerReadBytes.MustCurryWith(promLabels)
	s.promWriteBytes = promHTTPServerWriteBytes.MustCurryWith(promLabels)
	s.promRequestsTotal = promHTTPServerRequestsTotal.MustCurryWith(promLabels)
	s.promRequestDurationSeconds = promHTTPServerRequestDurationSeconds.MustCurryWith(promLabels)

	return
}

// GetOpts returns a copy of underlying Server's options
func (s *Server) GetOpts() (opts ServerOptions) {
	opts.CopyFrom(&s.opts)
	return
}

// Addr returns the address of the listening endpoint.
func (s *Server) Addr() net.Addr {
	return s.lis.Addr()
}

// Close closes the listening endpoint. Safe to call more than once.
func (s *Server) Close() {
	s.lis.Close()
}

type acceptResult struct {
	conn net.Conn
	err  error
}

// acceptNext accepts one pending connection each time it receives a token on
// next, so no connection is ever accepted while an exchange is in flight.
func (s *Server) acceptNext(next <-chan struct{}, acceptCh chan<- acceptResult) {
	for range next {
		conn, err := s.lis.Accept()
		acceptCh <- acceptResult{conn: conn, err: err}
		if err != nil {
			return
		}
	}
}

// Serve runs the dispatch cycle until ctx is canceled or a transport error
// occurs; transport errors are returned to the caller. Cancellation is
// observed only between exchanges, never during one, so shutdown cannot
// truncate a response mid-write.
func (s *Server) Serve(ctx context.Context) (err error) {
	acceptCh := make(chan acceptResult, 1)
	next := make(chan struct{}, 1)
	defer close(next)
	next <- struct{}{}
	go s.acceptNext(next, acceptCh)

	for {
		select {
		case <-ctx.Done():
			s.lis.Close()
			select {
			case r := <-acceptCh:
				if r.conn != nil {
					r.conn.Close()
				}
			default:
			}
			infoLogger.Printf("server %q closed", s.opts.Name)
			return
		case r := <-acceptCh:
			if r.err != nil {
				err = errors.Wrapf(r.err, "listener %q accept error", s.opts.Address)
				return
			}
			// The exchange never runs under ctx: cancellation must not
			// interrupt an in-flight request.
			if e := s.serveConn(context.Background(), r.conn); e != nil {
				s.lis.Close()
				err = e
				return
			}
			next <- struct{}{}
		}
	}
}

// serveConn drives one exchange to completion and unconditionally closes the
// connection. Protocol errors still produce a well-formed error response; a
// read or write failure on the established connection is returned and ends
// the server.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) (err error) {
	defer conn.Close()
	startTime := time.Now()
	sr := &statsReader{R: conn}
	sw := &statsWriter{W: conn}
	br := bufio.NewReader(sr)

	var out parseOutcome
	line, rerr := readRequestHead(br)
	switch {
	case rerr == nil:
		out = parseRequestLine(line)
	case errors.Cause(rerr) == errRequestLineBudget:
		// Classify by what fits in the budget. The truncated prefix can
		// never parse back to 200 because the parser bounds-checks every
		// fixed-width read.
		debugLogger.Printf("server %q: %v from %q", s.opts.Name, rerr, conn.RemoteAddr().String())
		out = parseRequestLine(line)
		if out.statusCode == 200 {
			out = parseOutcome{statusCode: 400}
		}
	case isProtocolError(rerr):
		debugLogger.Printf("server %q: %v from %q", s.opts.Name, rerr, conn.RemoteAddr().String())
		out = parseOutcome{statusCode: 400}
	default:
		err = errors.Wrapf(rerr, "server %q read error", s.opts.Name)
		return
	}

	resp := s.buildResponse(ctx, out)
	if _, e := resp.WriteTo(sw); e != nil {
		err = errors.Wrapf(e, "server %q write error", s.opts.Name)
		return
	}

	promLabels := prometheus.Labels{
		"code": strconv.Itoa(resp.StatusCode),
		"path": routeLabel(out.path),
	}
	s.promRequestsTotal.With(promLabels).Inc()
	s.promRequestDurationSeconds.With(promLabels).Observe(time.Since(startTime).Seconds())
	s.promReadBytes.With(promLabels).Add(float64(atomic.LoadInt64(&sr.N)))
	s.promWriteBytes.With(promLabels).Add(float64(atomic.LoadInt64(&sw.N)))
	return
}

// routeLabel keeps the prometheus path label bounded to the known routes.
func routeLabel(path string) string {
	switch path {
	case "/hostname", "/cpu-name", "/load":
		return path
	}
	return ""
}
