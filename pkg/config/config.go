package config

import (
	"fmt"
	"io"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config stores configuration
type Config struct {
	Global struct {
		PromNamespace string
	}
	Server struct {
		Name        string
		ServerToken string
	}
	Metrics struct {
		Address string
	}
	Sysinfo struct {
		ProcMount       string
		SampleInterval  time.Duration
		HostnameCommand []string
	}
}

// LoadFrom loads configuration from reader, decodes and returns as Config type
func LoadFrom(r io.Reader) (cfg *Config, err error) {
	cfg = &Config{}
	d := yaml.NewDecoder(r)
	err = d.Decode(cfg)
	if err != nil {
		err = fmt.Errorf("yaml decode error: %w", err)
		return
	}
	return
}

// LoadFromFile takes yaml file as input, decodes and returns as Config type
func LoadFromFile(fileName string) (cfg *Config, err error) {
	f, err := os.Open(fileName)
	if err != nil {
		err = fmt.Errorf("file %q open error: %w", fileName, err)
		return
	}
	defer f.Close()
	return LoadFrom(f)
}
