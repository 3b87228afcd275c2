package hinfo

import (
	"io"
	"sync/atomic"
)

// statsReader and statsWriter count transferred bytes for the prometheus
// byte counters.

type statsReader struct {
	R io.Reader
	N int64
}

func (sr *statsReader) Read(p []byte) (n int, err error) {
	n, err = sr.R.Read(p)
	if n > 0 {
		atomic.AddInt64(&sr.N, int64(n))
	}
	return
}

type statsWriter struct {
	W io.Writer
	N int64
}

func (sw *statsWriter) Write(p []byte) (n int, err error) {
	n, err = sw.W.Write(p)
	if n > 0 {
		atomic.AddInt64(&sw.N, int64(n))
	}
	return
}
