package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/cache"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type stubAnimalRepo struct {
	animals []*repository.Animal
	err     error
}

func (s *stubAnimalRepo) GetAllAdoptable(_ context.Context) ([]*repository.Animal, error) {
	return s.animals, s.err
}

func TestAnimalCache(t *testing.T) {
	ctx := context.Background()

	t.Run("loads adoptable animals at boot", func(t *testing.T) {
		repo := &stubAnimalRepo{animals: []*repository.Animal{
			{ID: "a1", Name: "Buddy", Status: repository.AnimalAvailable},
			{ID: "a2", Name: "Mittens", Status: repository.AnimalFostered},
		}}
		c := cache.NewAnimalCache(repo)
		require.NoError(t, c.LoadInitialData(ctx))

		animal, ok := c.Get("a1")
		require.True(t, ok)
		assert.Equal(t, "Buddy", animal.Name)

		_, ok = c.Get("a3")
		assert.False(t, ok)
	})

	t.Run("load failure propagates", func(t *testing.T) {
		c := cache.NewAnimalCache(&stubAnimalRepo{err: assert.AnError})
		assert.ErrorIs(t, c.LoadInitialData(ctx), assert.AnError)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		c := cache.NewAnimalCache(&stubAnimalRepo{})
		c.Set(&repository.Animal{ID: "a1", Name: "Buddy", Status: repository.AnimalAvailable})

		animal, ok := c.Get("a1")
		require.True(t, ok)
		animal.Name = "Clone"

		again, ok := c.Get("a1")
		require.True(t, ok)
		assert.Equal(t, "Buddy", again.Name)
	})

	t.Run("adopted animal is evicted on set", func(t *testing.T) {
		c := cache.NewAnimalCache(&stubAnimalRepo{})
		c.Set(&repository.Animal{ID: "a1", Status: repository.AnimalAvailable})

		c.Set(&repository.Animal{ID: "a1", Status: repository.AnimalAdopted})
		_, ok := c.Get("a1")
		assert.False(t, ok)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		c := cache.NewAnimalCache(&stubAnimalRepo{})
		c.Set(&repository.Animal{ID: "a1", Status: repository.AnimalAvailable})
		c.Delete("a1")
		_, ok := c.Get("a1")
		assert.False(t, ok)
	})
}
