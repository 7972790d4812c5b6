package stress

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/depot"
	"github.com/aretw0/depot/pkg/resources"
)

// TestConcurrency_CreatesOverHTTP fires concurrent POSTs at one collection
// and checks that every request got its own identifier.
func TestConcurrency_CreatesOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	app, err := depot.New()
	require.NoError(t, err)
	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	const workers, perWorker = 16, 25
	locations := make(chan string, workers*perWorker)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				body := fmt.Sprintf(`{"task":"w%d-%d"}`, w, i)
				resp, err := http.Post(srv.URL+"/api/v2/orders", "application/json", strings.NewReader(body))
				if err != nil {
					t.Error(err)
					return
				}
				resp.Body.Close()
				if resp.StatusCode != http.StatusCreated {
					t.Errorf("unexpected status %d", resp.StatusCode)
					return
				}
				locations <- resp.Header.Get("Location")
			}
		}(w)
	}
	wg.Wait()
	close(locations)

	seen := make(map[string]bool)
	for loc := range locations {
		require.False(t, seen[loc], "duplicate location %s", loc)
		seen[loc] = true
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Len(t, app.Orders().List(), workers*perWorker+len(resources.SampleOrders()))
}

// TestConcurrency_MixedWithWatcher runs writers, readers and a watcher
// across every collection and checks nothing deadlocks or panics.
func TestConcurrency_MixedWithWatcher(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	app, err := depot.New(depot.WithEventBuffer(4))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := app.Events(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup

	// Slow watcher: must never stall writers.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range stream {
			time.Sleep(time.Millisecond)
		}
	}()

	// Writers
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				id := fmt.Sprintf("g%d", rand.Intn(10))
				_, _ = app.Goods().Put(id, resources.Good{Task: "restock"})
				_, _, _ = app.Orders().Create(resources.Order{Task: "order"})
				if rand.Intn(3) == 0 {
					_ = app.Goods().Delete(id)
				}
				time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
			}
		}()
	}

	// Readers
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				_ = app.Goods().List()
				_, _ = app.Orders().Get("todo1")
				time.Sleep(time.Duration(rand.Intn(3)) * time.Millisecond)
			}
		}()
	}

	wg.Wait()

	_, err = app.Orders().Get("todo1")
	require.NoError(t, err)
	t.Logf("Survived chaos with %d orders and %d goods", len(app.Orders().List()), len(app.Goods().List()))
}
