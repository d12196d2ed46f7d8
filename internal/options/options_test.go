package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// settings is a stand-in config struct used to exercise the generic
// options pattern independent of any real caller.
type settings struct {
	limit    int
	label    string
	strict   bool
	lastCall string
}

func (s *settings) setLimit(v int) error {
	if v < 0 {
		return errors.New("limit cannot be negative")
	}
	s.limit = v
	s.lastCall = "setLimit"

	return nil
}

func (s *settings) setLabel(label string) {
	s.label = label
	s.lastCall = "setLabel"
}

func (s *settings) setStrict(strict bool) {
	s.strict = strict
	s.lastCall = "setStrict"
}

func TestNewAppliesFunctionAndPropagatesError(t *testing.T) {
	cfg := &settings{}

	t.Run("succeeds", func(t *testing.T) {
		opt := New(func(s *settings) error { return s.setLimit(42) })

		require.NoError(t, opt.apply(cfg))
		require.Equal(t, 42, cfg.limit)
		require.Equal(t, "setLimit", cfg.lastCall)
	})

	t.Run("fails", func(t *testing.T) {
		opt := New(func(s *settings) error { return s.setLimit(-1) })

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "limit cannot be negative")
	})
}

func TestNoErrorWrapsInfallibleSetter(t *testing.T) {
	cfg := &settings{}

	opt := NoError(func(s *settings) { s.setLabel("prod") })
	require.NoError(t, opt.apply(cfg))
	require.Equal(t, "prod", cfg.label)
	require.Equal(t, "setLabel", cfg.lastCall)

	opt = NoError(func(s *settings) { s.setStrict(true) })
	require.NoError(t, opt.apply(cfg))
	require.True(t, cfg.strict)
}

func TestApplyRunsOptionsInOrderAndStopsAtFirstError(t *testing.T) {
	cfg := &settings{}

	opts := []Option[*settings]{
		New(func(s *settings) error { return s.setLimit(10) }),
		NoError(func(s *settings) { s.setLabel("a") }),
		NoError(func(s *settings) { s.setStrict(true) }),
	}
	require.NoError(t, Apply(cfg, opts...))
	require.Equal(t, 10, cfg.limit)
	require.Equal(t, "a", cfg.label)
	require.True(t, cfg.strict)
	require.Equal(t, "setStrict", cfg.lastCall)

	cfg = &settings{}
	opts = []Option[*settings]{
		New(func(s *settings) error { return s.setLimit(5) }),
		New(func(s *settings) error { return s.setLimit(-1) }),
		NoError(func(s *settings) { s.setLabel("never reached") }),
	}
	err := Apply(cfg, opts...)
	require.Error(t, err)
	require.Equal(t, 5, cfg.limit)
	require.Empty(t, cfg.label)
}

func TestApplyWithNoOptionsLeavesTargetUnchanged(t *testing.T) {
	cfg := &settings{}
	require.NoError(t, Apply(cfg))
	require.Equal(t, settings{}, *cfg)
}

func TestWithXxxHelpersBuiltOnNewAndNoError(t *testing.T) {
	withLimit := func(v int) Option[*settings] {
		return New(func(s *settings) error { return s.setLimit(v) })
	}
	withLabel := func(label string) Option[*settings] {
		return NoError(func(s *settings) { s.setLabel(label) })
	}

	cfg := &settings{}
	require.NoError(t, Apply(cfg, withLimit(100), withLabel("integration")))
	require.Equal(t, 100, cfg.limit)
	require.Equal(t, "integration", cfg.label)
}

func TestGenericsWorkWithNonStructTargets(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })
	require.NoError(t, opt.apply(&n))
	require.Equal(t, 42, n)
}
