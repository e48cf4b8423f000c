package cache

import (
	"context"
	"log"
	"sync"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/metrics"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type AnimalRepository interface {
	GetAllAdoptable(ctx context.Context) ([]*repository.Animal, error)
}

// AnimalCache keeps the adoptable animals in memory for availability reads.
// Animals leave the cache the moment their status stops being adoptable.
type AnimalCache struct {
	mu    sync.RWMutex
	cache map[string]*repository.Animal
	repo  AnimalRepository
}

func NewAnimalCache(repo AnimalRepository) *AnimalCache {
	return &AnimalCache{
		cache: make(map[string]*repository.Animal),
		repo:  repo,
	}
}

func (c *AnimalCache) LoadInitialData(ctx context.Context) error {
	log.Println("Loading adoptable animals into cache...")
	animals, err := c.repo.GetAllAdoptable(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, animal := range animals {
		animalCopy := *animal
		c.cache[animal.ID] = &animalCopy
	}
	metrics.AnimalCacheItems.Set(float64(len(c.cache)))
	log.Printf("Loaded %d adoptable animals into cache.", len(c.cache))
	return nil
}

func (c *AnimalCache) Get(animalID string) (*repository.Animal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	animal, found := c.cache[animalID]
	if !found {
		return nil, false
	}
	animalCopy := *animal
	return &animalCopy, true
}

func (c *AnimalCache) Set(animal *repository.Animal) {
	if !isAdoptable(animal.Status) {
		c.Delete(animal.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	animalCopy := *animal
	c.cache[animal.ID] = &animalCopy
	metrics.AnimalCacheItems.Set(float64(len(c.cache)))
}

func (c *AnimalCache) Delete(animalID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[animalID]; found {
		delete(c.cache, animalID)
		metrics.AnimalCacheItems.Set(float64(len(c.cache)))
	}
}

func isAdoptable(status repository.AnimalStatus) bool {
	return status == repository.AnimalAvailable || status == repository.AnimalFostered
}
