package memory_test

import (
	"testing"

	"petclinic/internal/adapters/storage/memory"
	"petclinic/internal/adapters/storage/storagetest"
)

func TestMemoryStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storagetest.Repos {
		return storagetest.Repos{
			Owners: memory.NewOwnersRepo(),
			Pets:   memory.NewPetsRepo(),
			Visits: memory.NewVisitsRepo(),
		}
	})
}
