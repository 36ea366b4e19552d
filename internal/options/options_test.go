package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type config struct {
	a int
	b string
}

func TestApply_InOrder(t *testing.T) {
	cfg := &config{}

	opts := []Option[*config]{
		New(func(c *config) { c.a = 1 }),
		New(func(c *config) { c.a = 2 }),
		New(func(c *config) { c.b = "set" }),
	}

	Apply(cfg, opts...)

	assert.Equal(t, 2, cfg.a)
	assert.Equal(t, "set", cfg.b)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &config{a: 5}

	Apply(cfg)

	assert.Equal(t, 5, cfg.a)
}
