package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartsEmpty(t *testing.T) {
	var s Store

	id, ok := s.Get()
	assert.False(t, ok)
	assert.Empty(t, id)
	assert.Nil(t, s.Ref())
}

func TestSetReplaces(t *testing.T) {
	s := NewStore()
	s.Set("c1")
	s.Set("c2")

	id, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "c2", id)

	ref := s.Ref()
	require.NotNil(t, ref)
	assert.Equal(t, "c2", *ref)
}

func TestClearThenGetIsAbsent(t *testing.T) {
	for _, prior := range []string{"", "c1", "another"} {
		s := NewStore()
		s.Set(prior)
		s.Clear()

		_, ok := s.Get()
		assert.False(t, ok, "prior value %q", prior)

		s.Clear()
		_, ok = s.Get()
		assert.False(t, ok, "second clear after %q", prior)
	}
}

func TestSetBlankClears(t *testing.T) {
	s := NewStore()
	s.Set("c1")
	s.Set("   ")

	_, ok := s.Get()
	assert.False(t, ok)
}

func TestRefIsACopy(t *testing.T) {
	s := NewStore()
	s.Set("c1")

	ref := s.Ref()
	*ref = "tampered"

	id, _ := s.Get()
	assert.Equal(t, "c1", id)
}
