package hinfo

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"
)

var statusPhrases = map[int]string{
	200: "OK",
	400: "Bad Request",
	404: "Not Found",
	405: "Method Not Allowed",
	414: "URI Too Long",
	500: "Internal Server Error",
	505: "HTTP Version Not Supported",
}

func statusPhrase(statusCode int) string {
	if s, ok := statusPhrases[statusCode]; ok {
		return s
	}
	return http.StatusText(statusCode)
}

type headerField struct {
	name  string
	value string
}

// Response is one complete wire response. Header fields keep the order they
// are emitted in; Content-Length always equals the exact body length because
// it is computed from the finalized body, never estimated.
type Response struct {
	StatusCode int
	fields     []headerField
	Body       []byte
}

func newResponse(statusCode int, body []byte, serverToken string) (resp *Response) {
	resp = &Response{
		StatusCode: statusCode,
		Body:       body,
	}
	resp.fields = []headerField{
		{"Connection", "close"},
		{"Date", time.Now().UTC().Format(http.TimeFormat)},
		{"Server", serverToken},
		{"Content-Length", strconv.Itoa(len(body))},
		{"Content-Type", "text/plain"},
	}
	return
}

// WriteTo serializes the response to dst in a single write.
func (r *Response) WriteTo(dst io.Writer) (nw int64, err error) {
	buf := make([]byte, 0, 160+len(r.Body))
	buf = append(buf, "HTTP/1.1 "...)
	buf = strconv.AppendInt(buf, int64(r.StatusCode), 10)
	buf = append(buf, ' ')
	buf = append(buf, statusPhrase(r.StatusCode)...)
	buf = append(buf, '\r', '\n')
	for i := range r.fields {
		f := &r.fields[i]
		buf = append(buf, f.name...)
		buf = append(buf, ':', ' ')
		buf = append(buf, f.value...)
		buf = append(buf, '\r', '\n')
	}
	buf = append(buf, '\r', '\n')
	buf = append(buf, r.Body...)
	n, err := dst.Write(buf)
	nw = int64(n)
	if err != nil {
		err = wrapHTTPError("communication", err)
	}
	return
}

// buildResponse resolves a parse outcome into a complete response. Routing
// happens only for outcome 200; the match is exact and case-sensitive. A
// failing host query degrades to a 500 response instead of ending the server.
func (s *Server) buildResponse(ctx context.Context, out parseOutcome) (resp *Response) {
	if out.statusCode != 200 {
		return newResponse(out.statusCode, nil, s.opts.ServerToken)
	}
	var body string
	var err error
	switch out.path {
	case "/hostname":
		var hostname string
		hostname, err = s.opts.Sysinfo.Hostname(ctx)
		body = hostname + "\r\n"
	case "/cpu-name":
		var model string
		model, err = s.opts.Sysinfo.CPUModel(ctx)
		body = model + "\r\n"
	case "/load":
		var load int
		load, err = s.opts.Sysinfo.CPULoadPercent(ctx)
		body = strconv.Itoa(load) + "%\r\n"
	default:
		return newResponse(404, nil, s.opts.ServerToken)
	}
	if err != nil {
		errorLogger.Printf("server %q: %s query error: %v", s.opts.Name, out.path, err)
		return newResponse(500, nil, s.opts.ServerToken)
	}
	return newResponse(200, []byte(body), s.opts.ServerToken)
}
