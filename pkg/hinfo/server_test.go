package hinfo

import (
	"context"
	"io/ioutil"
	"net"
	"os"
	"strings"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	PromInitialize("hinfod_test")
	os.Exit(m.Run())
}

func startTestServer(t *testing.T, si SystemInfo) (*Server, context.CancelFunc, chan error) {
	t.Helper()
	s, err := NewServer(ServerOptions{Name: "test", Address: "127.0.0.1:0", Sysinfo: si})
	if err != nil {
		t.Fatalf("server create error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx)
	}()
	return s, cancel, done
}

func rawRequest(t *testing.T, addr, req string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err = conn.Write([]byte(req)); err != nil {
		t.Fatalf("write error: %v", err)
	}
	raw, err := ioutil.ReadAll(conn)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	return string(raw)
}

func TestServerEndToEnd(t *testing.T) {
	s, cancel, done := startTestServer(t, &fakeSysinfo{
		hostname: "host.example.test",
		model:    "TestCPU v1",
		load:     7,
	})
	defer func() {
		cancel()
		<-done
	}()
	addr := s.Addr().String()

	tests := []struct {
		req        string
		statusLine string
		body       string
	}{
		{"GET /hostname HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK", "host.example.test\r\n"},
		{"GET /cpu-name HTTP/1.1\r\nHost: localhost\r\nAccept: */*\r\n\r\n", "HTTP/1.1 200 OK", "TestCPU v1\r\n"},
		{"GET /load HTTP/1.1\r\n\r\n", "HTTP/1.1 200 OK", "7%\r\n"},
		{"GET /unknown HTTP/1.1\r\n\r\n", "HTTP/1.1 404 Not Found", ""},
		{"POST /load HTTP/1.1\r\n\r\n", "HTTP/1.1 405 Method Not Allowed", ""},
		{"GET /this/path/is/definitely/too/long/for/the/budget HTTP/1.1\r\n\r\n", "HTTP/1.1 414 URI Too Long", ""},
		{"GET /load HTTP/1.0\r\n\r\n", "HTTP/1.1 505 HTTP Version Not Supported", ""},
		{"GET /load HTTP/1.1\r\nBad Header\r\n\r\n", "HTTP/1.1 400 Bad Request", ""},
	}
	for _, tt := range tests {
		raw := rawRequest(t, addr, tt.req)
		if !strings.HasPrefix(raw, tt.statusLine+"\r\n") {
			t.Errorf("request %q: unexpected status line in %q", tt.req, raw)
			continue
		}
		_, body := parseResponse(t, []byte(raw))
		if string(body) != tt.body {
			t.Errorf("request %q: expected body %q, got %q", tt.req, tt.body, body)
		}
	}
}

func TestServerSequentialExchanges(t *testing.T) {
	s, cancel, done := startTestServer(t, &fakeSysinfo{hostname: "host.example.test"})
	defer func() {
		cancel()
		<-done
	}()
	addr := s.Addr().String()

	connA, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer connA.Close()
	time.Sleep(100 * time.Millisecond)

	connB, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer connB.Close()
	if _, err = connB.Write([]byte("GET /hostname HTTP/1.1\r\n\r\n")); err != nil {
		t.Fatalf("write error: %v", err)
	}

	// the server is blocked on connA's head, so connB must not be served yet
	connB.SetReadDeadline(time.Now().Add(250 * time.Millisecond))
	buf := make([]byte, 1)
	if _, err = connB.Read(buf); err == nil {
		t.Fatal("second connection served before the first completed")
	} else if nerr, ok := err.(net.Error); !ok || !nerr.Timeout() {
		t.Fatalf("expected timeout, got %v", err)
	}

	connA.SetDeadline(time.Now().Add(5 * time.Second))
	if _, err = connA.Write([]byte("GET /hostname HTTP/1.1\r\n\r\n")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	rawA, err := ioutil.ReadAll(connA)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !strings.HasPrefix(string(rawA), "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("unexpected first response %q", rawA)
	}

	connB.SetDeadline(time.Now().Add(5 * time.Second))
	rawB, err := ioutil.ReadAll(connB)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if !strings.HasPrefix(string(rawB), "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("unexpected second response %q", rawB)
	}
}

func TestServerShutdown(t *testing.T) {
	s, cancel, done := startTestServer(t, &fakeSysinfo{hostname: "host.example.test"})
	addr := s.Addr().String()

	raw := rawRequest(t, addr, "GET /hostname HTTP/1.1\r\n\r\n")
	if !strings.HasPrefix(raw, "HTTP/1.1 200 OK\r\n") {
		t.Fatalf("unexpected response %q", raw)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancellation")
	}

	if conn, err := net.Dial("tcp", addr); err == nil {
		conn.Close()
		t.Fatal("listener still accepting after shutdown")
	}
}
