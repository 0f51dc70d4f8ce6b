package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/joystie/graph-telemetry-api/internal/graph"
)

func TestResultCacheSetGet(t *testing.T) {
	c := NewResultCache(time.Minute)
	defer c.Stop()

	result := &graph.Result{Day: graph.DayNames[2], Hours: 1, Minutes: 30, Found: true}
	c.Set("abc", result)

	got, ok := c.Get("abc")
	if !ok {
		t.Fatal("entrada recém gravada não encontrada")
	}
	if *got != *result {
		t.Errorf("valor retornado = %+v, gravado %+v", got, result)
	}

	if _, ok := c.Get("inexistente"); ok {
		t.Error("chave inexistente não pode retornar valor")
	}
}

func TestResultCacheIsolatesCallers(t *testing.T) {
	c := NewResultCache(time.Minute)
	defer c.Stop()

	original := &graph.Result{Day: graph.DayNames[0], Hours: 2, Minutes: 30, Found: true}
	c.Set("k", original)

	// Mutação no ponteiro gravado não afeta o que o cache entrega
	original.Hours = 99

	first, ok := c.Get("k")
	if !ok {
		t.Fatal("entrada não encontrada")
	}
	if first.Hours != 2 {
		t.Errorf("Hours = %d, a gravação deve ser uma cópia", first.Hours)
	}

	// Mutação no resultado entregue não contamina os próximos acertos
	first.Minutes = 0

	second, ok := c.Get("k")
	if !ok {
		t.Fatal("entrada não encontrada na releitura")
	}
	if second.Minutes != 30 {
		t.Errorf("Minutes = %d, cada leitura deve ser uma cópia", second.Minutes)
	}
}

func TestResultCacheExpiration(t *testing.T) {
	c := NewResultCache(10 * time.Millisecond)
	defer c.Stop()

	c.Set("k", &graph.Result{})
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("entrada expirada retornada")
	}
}

func TestResultCacheLen(t *testing.T) {
	c := NewResultCache(time.Minute)
	defer c.Stop()

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("k%d", i), &graph.Result{})
	}
	if c.Len() != 5 {
		t.Errorf("Len = %d, esperado 5", c.Len())
	}

	// Regravar a mesma chave não cria entrada nova
	c.Set("k0", &graph.Result{})
	if c.Len() != 5 {
		t.Errorf("Len após regravação = %d, esperado 5", c.Len())
	}
}

func TestResultCacheConcurrentAccess(t *testing.T) {
	c := NewResultCache(time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			c.Set(key, &graph.Result{Hours: n})
			c.Get(key)
			c.Len()
		}(i)
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("Len = %d, esperado 4", c.Len())
	}
}
