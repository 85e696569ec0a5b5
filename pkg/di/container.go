// Package di provides dependency injection container
package di

import (
	"github.com/gisdevelope/mapdb/pkg/api"
	"github.com/gisdevelope/mapdb/pkg/config"
	"github.com/gisdevelope/mapdb/pkg/store"
)

// StoreFactory builds the store a container hands out.
type StoreFactory func(path string, opts store.Options) (store.Store, error)

// Container holds all the dependencies for the application
type Container struct {
	cfg          *config.Config
	storeFactory StoreFactory
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		cfg: cfg,
		storeFactory: func(path string, opts store.Options) (store.Store, error) {
			return store.OpenFileStore(path, opts)
		},
	}
}

// OpenStore builds the configured store.
func (c *Container) OpenStore() (store.Store, error) {
	return c.storeFactory(c.cfg.Path, store.Options{
		ThreadSafe: c.cfg.Store.ThreadSafe,
		Paranoid:   c.cfg.Store.Paranoid,
	})
}

// ServerConfig derives the API server configuration.
func (c *Container) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Port:   c.cfg.Port,
		Bind:   c.cfg.Bind,
		APIKey: c.cfg.Security.APIKey,
	}
}

// SetStoreFactory allows overriding the store factory (for testing)
func (c *Container) SetStoreFactory(factory StoreFactory) {
	c.storeFactory = factory
}
