package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore(Seed())

	got, ok := store.FindByID("professional")
	require.True(t, ok)
	assert.Equal(t, "DISC YOU - Professional", got.Name)
	assert.True(t, got.Recurring)

	_, ok = store.FindByID("enterprise")
	assert.False(t, ok)
}

func TestMemoryStoreListIsCopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	list := store.List()
	require.Len(t, list, 4)
	list[0].Name = "mutated"

	assert.Equal(t, "DISC YOU - Avaliação Completa", store.List()[0].Name)
}

func TestMemoryStoreIDs(t *testing.T) {
	store := NewMemoryStore(Seed())
	assert.Equal(t, []string{"teste_unico", "starter", "professional", "premium"}, store.IDs())
}

func TestMemoryStoreSkipsDuplicateIDs(t *testing.T) {
	store := NewMemoryStore([]Plan{{ID: "a", Name: "first"}, {ID: "b"}, {ID: "a", Name: "second"}})

	assert.Equal(t, []string{"a", "b"}, store.IDs())
	got, ok := store.FindByID("a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
}

func TestMemoryStoreRequire(t *testing.T) {
	store := NewMemoryStore(Seed())

	got, err := store.Require(" starter ")
	require.NoError(t, err)
	assert.Equal(t, "starter", got.ID)

	_, err = store.Require("gold")
	var unknown *UnknownPlanError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "gold", unknown.ID)
	assert.Equal(t, store.IDs(), unknown.Available)
	assert.EqualError(t, err, `unknown plan "gold" (available: teste_unico, starter, professional, premium)`)
}

func TestPriceLabel(t *testing.T) {
	cases := []struct {
		plan Plan
		want string
	}{
		{plan: Plan{Price: 249}, want: "R$ 249.00"},
		{plan: Plan{Price: 49.9, Recurring: true}, want: "R$ 49.90/mês"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.plan.PriceLabel())
	}
}
