package hinfo

import (
	"testing"
)

func TestParseRequestLine(t *testing.T) {
	tests := []struct {
		line       string
		statusCode int
		path       string
	}{
		{"GET /hostname HTTP/1.1", 200, "/hostname"},
		{"GET /cpu-name HTTP/1.1", 200, "/cpu-name"},
		{"GET /load HTTP/1.1", 200, "/load"},
		{"GET  /load \t HTTP/1.1", 200, "/load"},
		{"GET /123456789012345678 HTTP/1.1", 200, "/123456789012345678"},
		{"POST /load HTTP/1.1", 405, ""},
		{"PUT /load HTTP/1.1", 405, ""},
		{"GET /load HTTP/1.0", 505, ""},
		{"GET /load HTTP/2.0", 505, ""},
		// truncated to the 30-byte line budget by the head reader
		{"GET /this/path/is/definitely/t", 414, ""},
		{"GET /12345678901234567890 HTTP", 414, ""},
		{"GET/load HTTP/1.1", 400, ""},
		{"GET /load", 400, ""},
		{"GET /load ", 400, ""},
		{"GET /load HTTP", 400, ""},
		{"GET", 400, ""},
		{"GE", 400, ""},
		{"", 400, ""},
	}
	for _, tt := range tests {
		out := parseRequestLine([]byte(tt.line))
		if out.statusCode != tt.statusCode {
			t.Errorf("line %q: expected status %d, got %d", tt.line, tt.statusCode, out.statusCode)
		}
		if out.statusCode == 200 && out.path != tt.path {
			t.Errorf("line %q: expected path %q, got %q", tt.line, tt.path, out.path)
		}
	}
}

func TestParseRequestLinePrecedence(t *testing.T) {
	// method is checked before target length, target length before version
	if out := parseRequestLine([]byte("DEL /this/path/is/definitely/t")); out.statusCode != 405 {
		t.Errorf("expected 405, got %d", out.statusCode)
	}
	if out := parseRequestLine([]byte("GET /this/is/a/long/path HTTP/")); out.statusCode != 414 {
		t.Errorf("expected 414, got %d", out.statusCode)
	}
}
