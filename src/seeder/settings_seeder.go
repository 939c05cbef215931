package seeder

import (
	"log"

	"formrunner/src/settings"
)

// SeedSettings writes every built-in default the store does not already
// have. Existing values are never overwritten, so reseeding is safe.
func SeedSettings(store settings.Store) {
	seeded := 0
	for key, value := range settings.Defaults() {
		if _, ok := store.Get(key); ok {
			continue
		}
		if err := store.Set(key, value); err != nil {
			log.Println("❌ Failed to seed setting", key, ":", err)
			continue
		}
		seeded++
	}
	if seeded > 0 {
		log.Printf("✅ Seeded %d default settings", seeded)
	}
}
