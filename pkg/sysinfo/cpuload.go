package sysinfo

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// CPUSample is one reading of the aggregate CPU time counters. Counters are
// cumulative since boot, so between two readings each field is monotonically
// non-decreasing.
type CPUSample struct {
	User    float64
	Nice    float64
	System  float64
	Idle    float64
	Iowait  float64
	IRQ     float64
	SoftIRQ float64
	Steal   float64
}

func (s *CPUSample) idleTime() float64 {
	return s.Idle + s.Iowait
}

func (s *CPUSample) activeTime() float64 {
	return s.User + s.Nice + s.System + s.IRQ + s.SoftIRQ + s.Steal
}

func (s *CPUSample) totalTime() float64 {
	return s.idleTime() + s.activeTime()
}

// Sample takes one reading of the aggregate CPU time counters.
func (p *Provider) Sample() (s CPUSample, err error) {
	st, err := p.fs.Stat()
	if err != nil {
		err = errors.Wrap(err, "stat read error")
		return
	}
	c := st.CPUTotal
	s = CPUSample{
		User:    c.User,
		Nice:    c.Nice,
		System:  c.System,
		Idle:    c.Idle,
		Iowait:  c.Iowait,
		IRQ:     c.IRQ,
		SoftIRQ: c.SoftIRQ,
		Steal:   c.Steal,
	}
	return
}

// LoadPercent computes the CPU utilization between two samples as an integer
// percentage, truncating. It fails when the counters did not advance.
func LoadPercent(prev, curr CPUSample) (load int, err error) {
	idleDelta := curr.idleTime() - prev.idleTime()
	totalDelta := curr.totalTime() - prev.totalTime()
	if totalDelta <= 0 {
		err = errors.New("cpu counters did not advance")
		return
	}
	load = int((totalDelta - idleDelta) * 100 / totalDelta)
	return
}

// CPULoadPercent samples the CPU time counters twice, SampleInterval apart,
// and returns the utilization percentage between the two readings. The wait
// between the samples is synchronous.
func (p *Provider) CPULoadPercent(ctx context.Context) (load int, err error) {
	prev, err := p.Sample()
	if err != nil {
		return
	}
	select {
	case <-time.After(p.opts.SampleInterval):
	case <-ctx.Done():
		err = ctx.Err()
		return
	}
	curr, err := p.Sample()
	if err != nil {
		return
	}
	return LoadPercent(prev, curr)
}
