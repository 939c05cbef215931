package main

import (
	"formrunner/src/database"
	"formrunner/src/hooks"
	"formrunner/src/services/pipeline"
	"formrunner/src/utils"
)

// registerHooks is the single place deployments attach pipeline handlers.
func registerHooks() *hooks.Bus {
	bus := hooks.New()
	return bus
}

// newSnapshotCache backs the form schema cache with Redis when available.
func newSnapshotCache() pipeline.Cache {
	if database.RedisClient == nil {
		return nil
	}
	return utils.NewRedisCache(database.RedisClient)
}
