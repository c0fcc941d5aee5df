package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/cornerturn"
)

var errNoCases = errors.New("config: no cases")

// Case is one benchmark problem, either from flags or a config file.
type Case struct {
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	BlockRows int    `yaml:"block_rows"`
	BlockCols int    `yaml:"block_cols"`
	Threads   int    `yaml:"threads"`
	Strategy  string `yaml:"strategy"`
	Type      string `yaml:"type"`
	Iters     int    `yaml:"iters"`
}

// Config is a batch of cases.
//
//	seed: 7
//	verify: true
//	cases:
//	  - {rows: 1024, cols: 1024, strategy: threads-row-simd, threads: 8, type: complex64}
//	  - {rows: 3, cols: 5, strategy: blocked, block_rows: 2, block_cols: 3}
type Config struct {
	Seed   uint64 `yaml:"seed"`
	Verify bool   `yaml:"verify"`
	Cases  []Case `yaml:"cases"`
}

var elementTypes = []string{"float32", "float64", "complex64", "complex128"}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return parseConfig(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if len(cfg.Cases) == 0 {
		return nil, errNoCases
	}

	for i := range cfg.Cases {
		if err := cfg.Cases[i].normalize(); err != nil {
			return nil, fmt.Errorf("config: case %d: %w", i, err)
		}
	}

	return &cfg, nil
}

// normalize fills defaults and checks what the engine does not check itself.
func (c *Case) normalize() error {
	if c.Strategy == "" {
		c.Strategy = "naive"
	}

	if c.Type == "" {
		c.Type = "float64"
	}

	if c.Iters < 1 {
		c.Iters = 1
	}

	if c.Threads == 0 {
		c.Threads = 1
	}

	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("%w: %dx%d", cornerturn.ErrInvalidDimensions, c.Rows, c.Cols)
	}

	if _, err := c.types(); err != nil {
		return err
	}

	_, err := c.Options()

	return err
}

// Options converts the case into validated transpose options.
func (c Case) Options() (cornerturn.Options, error) {
	s, err := cornerturn.ParseStrategy(c.Strategy)
	if err != nil {
		return cornerturn.Options{}, err
	}

	opts := cornerturn.Options{
		Strategy:  s,
		BlockRows: c.BlockRows,
		BlockCols: c.BlockCols,
		Threads:   c.Threads,
	}

	return opts, opts.Validate()
}

// types expands "all" and checks the element type names.
func (c Case) types() ([]string, error) {
	if c.Type == "all" {
		return elementTypes, nil
	}

	for _, t := range elementTypes {
		if t == c.Type {
			return []string{t}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (want %s or all)", cornerturn.ErrUnsupportedType, c.Type, strings.Join(elementTypes, ", "))
}
