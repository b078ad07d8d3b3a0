package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Namespace is a logical Redis database number. Each cache concern owns one.
type Namespace int

// ClientPool hands out one Redis client per namespace, all pointed at the same server.
// It is created at startup and passed to the components that need a client.
type ClientPool struct {
	addr     string
	password string

	mu      sync.Mutex
	clients map[Namespace]*redis.Client
}

func NewClientPool(addr, password string) *ClientPool {
	return &ClientPool{
		addr:     addr,
		password: password,
		clients:  make(map[Namespace]*redis.Client),
	}
}

// Client returns the client for ns, creating it on first use
func (p *ClientPool) Client(ns Namespace) *redis.Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[ns]; ok {
		return client
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.addr,
		Password: p.password,
		DB:       int(ns),
	})
	p.clients[ns] = client

	log.Info().Str("addr", p.addr).Int("db", int(ns)).Msg("Redis client created")
	return client
}

// Ping checks every namespace that has a client
func (p *ClientPool) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for ns, client := range p.clients {
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis db %d: %w", ns, err)
		}
	}
	return nil
}

// Flush removes every key of ns
func (p *ClientPool) Flush(ctx context.Context, ns Namespace) error {
	if err := p.Client(ns).FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("flush redis db %d: %w", ns, err)
	}
	return nil
}

// Close closes all clients and forgets them
func (p *ClientPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for ns, client := range p.clients {
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis db %d: %w", ns, err))
		}
		delete(p.clients, ns)
	}
	return errors.Join(errs...)
}
