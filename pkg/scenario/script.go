package scenario

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Op is a cache operation in a script.
type Op string

const (
	OpPut    Op = "put"
	OpGet    Op = "get"
	OpRemove Op = "remove"
	OpPeek   Op = "peek"
)

func (o Op) valid() bool {
	switch o {
	case OpPut, OpGet, OpRemove, OpPeek:
		return true
	}
	return false
}

// Step is one scripted operation. Value is only used by put.
type Step struct {
	Op    Op     `yaml:"op"`
	Key   string `yaml:"key"`
	Value string `yaml:"value,omitempty"`
}

// Script is a sequence of operations replayed against a fresh cache.
type Script struct {
	Name     string `yaml:"name,omitempty"`
	Capacity int    `yaml:"capacity"`
	Steps    []Step `yaml:"steps"`
}

//go:embed default.yaml
var defaultScript []byte

// Default returns the built-in script: capacity 3, keys 1..3 inserted, 1 read
// back, then 4, an update of 3 and 5 inserted, evicting 2 and then 1.
func Default() *Script {
	s, err := Parse(defaultScript)
	if err != nil {
		panic(fmt.Sprintf("scenario: embedded default script is invalid: %v", err))
	}
	return s
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrFailedToParseScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadScript, err)
	}
	return Parse(data)
}

// Validate checks that every step names a known operation.
// Capacity is checked by the cache itself when the script runs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if !st.Op.valid() {
			return fmt.Errorf("%w %q at step %d", ErrUnknownOp, st.Op, i)
		}
	}
	return nil
}
