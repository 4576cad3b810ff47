package termisu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCacheElidesRepeatedForeground(t *testing.T) {
	under := &recordingSink{}
	cache := NewRenderCache(under)

	for i := 0; i < 5; i++ {
		cache.SetForeground(ANSI(3))
	}
	assert.Len(t, under.fgs, 1)
}

func TestRenderCacheReemitsAfterChange(t *testing.T) {
	under := &recordingSink{}
	cache := NewRenderCache(under)

	cache.SetForeground(ANSI(3))
	cache.SetForeground(ANSI(4))
	assert.Len(t, under.fgs, 2)
}

func TestRenderCacheResetClearsFgBgAttr(t *testing.T) {
	under := &recordingSink{}
	cache := NewRenderCache(under)

	cache.SetForeground(ANSI(3))
	cache.ResetAttributes()
	cache.SetForeground(ANSI(3))
	assert.Len(t, under.fgs, 2)
}

func TestRenderCacheInvalidateForcesReemission(t *testing.T) {
	under := &recordingSink{}
	cache := NewRenderCache(under)

	cache.SetAttributes(AttrBold)
	cache.Invalidate()
	cache.SetAttributes(AttrBold)
	assert.Len(t, under.attrs, 2)
}

func TestRenderCacheCursorVisibility(t *testing.T) {
	under := &recordingSink{}
	cache := NewRenderCache(under)

	calls := 0
	apply := func(bool) { calls++ }

	cache.SetCursorVisible(true, apply)
	cache.SetCursorVisible(true, apply)
	cache.SetCursorVisible(false, apply)
	assert.Equal(t, 2, calls)
}
