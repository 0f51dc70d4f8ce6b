package cache

import (
	"sync"
	"time"

	"github.com/joystie/graph-telemetry-api/internal/graph"
)

// ResultCache guarda resultados de análise por hash do conteúdo da imagem,
// para que o mesmo screenshot reenviado dentro do TTL não seja reprocessado
type ResultCache struct {
	mu       sync.RWMutex
	items    map[string]*cacheItem
	ttl      time.Duration
	stopChan chan struct{}
}

type cacheItem struct {
	result     *graph.Result
	expiration time.Time
}

// NewResultCache cria um cache com o TTL informado
func NewResultCache(ttl time.Duration) *ResultCache {
	c := &ResultCache{
		items:    make(map[string]*cacheItem),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Get busca um resultado pelo hash. Retorna uma cópia, para que mutações do
// chamador não contaminem os próximos acertos da mesma chave.
func (c *ResultCache) Get(key string) (*graph.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expiration) {
		return nil, false
	}

	result := *item.result
	return &result, true
}

// Set armazena uma cópia do resultado com o TTL padrão
func (c *ResultCache) Set(key string, result *graph.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := *result
	c.items[key] = &cacheItem{
		result:     &stored,
		expiration: time.Now().Add(c.ttl),
	}
}

// Len retorna o número de entradas (inclui expiradas ainda não coletadas)
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stop encerra a goroutine de limpeza
func (c *ResultCache) Stop() {
	close(c.stopChan)
}

// cleanup remove entradas expiradas periodicamente
func (c *ResultCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiration) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
