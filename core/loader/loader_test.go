package loader_test

import (
	"errors"
	"testing"

	"artifact-host/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (s *stubFeature) Name() string    { return s.name }
func (s *stubFeature) IsEnabled() bool { return s.enabled }
func (s *stubFeature) Load(app fiber.Router) error {
	s.loaded = true
	return s.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		a := &stubFeature{name: "a", enabled: true}
		b := &stubFeature{name: "b", enabled: false}
		mgr := loader.NewManager()
		mgr.Register(a)
		mgr.Register(b)
		mgr.Register(nil)

		names, err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.Equal(t, []string{"a"}, names)
		assert.True(t, a.loaded)
		assert.False(t, b.loaded)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		mgr := loader.NewManager()
		mgr.Register(&stubFeature{name: "bad", enabled: true, err: errors.New("boom")})
		mgr.Register(&stubFeature{name: "after", enabled: true})

		names, err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "feature bad")
		assert.Empty(t, names)
	})
}
