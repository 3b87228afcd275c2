package sysinfo

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
)

// ProviderOptions holds Provider options
type ProviderOptions struct {
	ProcMount       string
	SampleInterval  time.Duration
	HostnameCommand []string
}

// CopyFrom sets the underlying ProviderOptions by given ProviderOptions
func (o *ProviderOptions) CopyFrom(src *ProviderOptions) {
	if src == nil {
		src = &ProviderOptions{}
	}
	*o = *src
	if o.ProcMount == "" {
		o.ProcMount = procfs.DefaultMountPoint
	}
	if o.SampleInterval <= 0 {
		o.SampleInterval = 200 * time.Millisecond
	}
	if len(src.HostnameCommand) > 0 {
		o.HostnameCommand = make([]string, len(src.HostnameCommand))
		copy(o.HostnameCommand, src.HostnameCommand)
	} else {
		o.HostnameCommand = []string{"/bin/hostname", "-f"}
	}
}

// Provider answers host facts from the proc pseudo-filesystem and the
// hostname command. All readings are point-in-time; nothing is cached
// between calls.
type Provider struct {
	opts ProviderOptions
	fs   procfs.FS
}

// NewProvider creates a new Provider by given options
func NewProvider(opts ProviderOptions) (p *Provider, err error) {
	p = &Provider{}
	p.opts.CopyFrom(&opts)
	p.fs, err = procfs.NewFS(p.opts.ProcMount)
	if err != nil {
		err = errors.Wrapf(err, "proc mount %q", p.opts.ProcMount)
		p = nil
		return
	}
	return
}

// GetOpts returns a copy of underlying Provider's options
func (p *Provider) GetOpts() (opts ProviderOptions) {
	opts.CopyFrom(&p.opts)
	return
}

// Hostname resolves the fully-qualified hostname of the running host by
// invoking the configured hostname command.
func (p *Provider) Hostname(ctx context.Context) (hostname string, err error) {
	out, err := exec.CommandContext(ctx, p.opts.HostnameCommand[0], p.opts.HostnameCommand[1:]...).Output()
	if err != nil {
		err = errors.Wrapf(err, "command %q run error", p.opts.HostnameCommand[0])
		return
	}
	hostname = strings.TrimRight(string(out), "\n")
	if hostname == "" {
		err = errors.New("empty hostname")
		return
	}
	return
}

// CPUModel returns the model name of the first CPU described by the host.
func (p *Provider) CPUModel(ctx context.Context) (model string, err error) {
	infos, err := p.fs.CPUInfo()
	if err != nil {
		err = errors.Wrap(err, "cpuinfo read error")
		return
	}
	if len(infos) <= 0 {
		err = errors.New("no cpu entries")
		return
	}
	model = infos[0].ModelName
	if model == "" {
		err = errors.New("empty model name")
		return
	}
	return
}
