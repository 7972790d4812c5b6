package memory_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/depot/pkg/adapters/memory"
	"github.com/aretw0/depot/pkg/core"
)

type task struct {
	Task string `json:"task"`
}

type tagged struct {
	Name string
	Tags map[string]string
}

func (t tagged) Clone() tagged {
	tags := make(map[string]string, len(t.Tags))
	for k, v := range t.Tags {
		tags[k] = v
	}
	return tagged{Name: t.Name, Tags: tags}
}

func TestStore_Example(t *testing.T) {
	store := memory.New[task]("todos")

	id, created, err := store.Create(task{Task: "build an API"})
	require.NoError(t, err)
	assert.Equal(t, "item1", id)
	assert.Equal(t, task{Task: "build an API"}, created)

	got, err := store.Get("item1")
	require.NoError(t, err)
	assert.Equal(t, "build an API", got.Task)

	require.NoError(t, store.Delete("item1"))

	_, err = store.Get("item1")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	var nf *core.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "todos", nf.Collection)
	assert.Equal(t, "item1", nf.ID)
}

func TestStore_GetUnknown(t *testing.T) {
	store := memory.New[task]("todos")

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = store.Delete("nope")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, ok := store.Lookup("nope")
	assert.False(t, ok)
}

func TestStore_DeleteTwice(t *testing.T) {
	store := memory.New[task]("todos")
	id, _, err := store.Create(task{Task: "once"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(id))
	assert.ErrorIs(t, store.Delete(id), core.ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestStore_ListCounts(t *testing.T) {
	store := memory.New[task]("todos")

	const n = 5
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id, _, err := store.Create(task{Task: fmt.Sprintf("task %d", i)})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Len(t, store.List(), n)

	require.NoError(t, store.Delete(ids[2]))
	list := store.List()
	assert.Len(t, list, n-1)
	assert.NotContains(t, list, ids[2])
}

func TestStore_ListIsSnapshot(t *testing.T) {
	store := memory.New[task]("todos")
	_, err := store.Put("a", task{Task: "first"})
	require.NoError(t, err)

	snapshot := store.List()
	snapshot["b"] = task{Task: "injected"}
	delete(snapshot, "a")

	_, err = store.Put("c", task{Task: "later"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "c"}, store.Keys())
	assert.Len(t, snapshot, 1)
}

func TestStore_PutIsIdempotent(t *testing.T) {
	once := memory.New[task]("todos")
	twice := memory.New[task]("todos")

	_, err := once.Put("todo1", task{Task: "profit!"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := twice.Put("todo1", task{Task: "profit!"})
		require.NoError(t, err)
	}

	assert.Equal(t, once.List(), twice.List())
}

func TestStore_PutReplaces(t *testing.T) {
	store := memory.New[task]("todos")
	_, err := store.Put("todo1", task{Task: "old"})
	require.NoError(t, err)
	stored, err := store.Put("todo1", task{Task: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Task)

	got, err := store.Get("todo1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Task)
	assert.Equal(t, 1, store.Len())
}

func TestStore_SequenceSkipsTakenAndNeverReuses(t *testing.T) {
	store := memory.New[task]("todos", memory.WithIDGenerator(memory.Sequence("todo")))
	store.Seed(map[string]task{
		"todo1": {Task: "build an API"},
		"todo2": {Task: "?????"},
		"todo3": {Task: "profit!"},
	})

	id, _, err := store.Create(task{Task: "more"})
	require.NoError(t, err)
	assert.Equal(t, "todo4", id)

	require.NoError(t, store.Delete("todo4"))
	require.NoError(t, store.Delete("todo3"))

	// The length-based scheme would hand out todo3 again here.
	id, _, err = store.Create(task{Task: "again"})
	require.NoError(t, err)
	assert.Equal(t, "todo5", id)
}

func TestStore_WithSeed(t *testing.T) {
	seed := map[string]task{"todo1": {Task: "build an API"}, "todo2": {Task: "profit!"}}
	store := memory.New[task]("todos",
		memory.WithSeed(seed),
		memory.WithReadOnly(true),
		memory.WithIDGenerator(memory.Sequence("todo")),
	)

	assert.Equal(t, []string{"todo1", "todo2"}, store.Keys())
	got, err := store.Get("todo2")
	require.NoError(t, err)
	assert.Equal(t, "profit!", got.Task)

	seed["todo1"] = task{Task: "changed later"}
	got, _ = store.Get("todo1")
	assert.Equal(t, "build an API", got.Task)
	assert.True(t, store.State().(memory.StoreState).ReadOnly)
}

func TestStore_WithSeedTypeMismatch(t *testing.T) {
	assert.PanicsWithValue(t,
		`memory: seed of type map[string]int cannot populate store "todos" of memory_test.task`,
		func() { memory.New[task]("todos", memory.WithSeed(map[string]int{"a": 1})) },
	)
}

func TestStore_UUIDs(t *testing.T) {
	store := memory.New[task]("todos", memory.WithIDGenerator(memory.UUIDs()))

	a, _, err := store.Create(task{Task: "a"})
	require.NoError(t, err)
	b, _, err := store.Create(task{Task: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	store := memory.New[task]("todos")

	const m = 200
	ids := make([]string, m)
	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, _, err := store.Create(task{Task: fmt.Sprintf("task %d", i)})
			if err != nil {
				t.Errorf("create %d: %v", i, err)
				return
			}
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, m)
	for i, id := range ids {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		got, err := store.Get(id)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("task %d", i), got.Task)
	}
	assert.Equal(t, m, store.Len())
}

func TestStore_ConcurrentMixed(t *testing.T) {
	store := memory.New[task]("todos")

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				id, _, err := store.Create(task{Task: "x"})
				if err != nil {
					t.Error(err)
					return
				}
				_, _ = store.Put(fmt.Sprintf("w%d", w), task{Task: id})
				_ = store.List()
				if i%2 == 0 {
					_ = store.Delete(id)
				}
			}
		}(w)
	}
	wg.Wait()

	// 8 writers * 25 surviving creates + 8 put keys
	assert.Equal(t, 8*25+8, store.Len())
}

func TestStore_ClonesReferenceFields(t *testing.T) {
	store := memory.New[tagged]("tagged")

	in := tagged{Name: "a", Tags: map[string]string{"k": "v"}}
	_, err := store.Put("a", in)
	require.NoError(t, err)

	in.Tags["k"] = "mutated"

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "v", got.Tags["k"])

	got.Tags["k"] = "mutated again"
	again, _ := store.Get("a")
	assert.Equal(t, "v", again.Tags["k"])
}

func TestStore_ReadOnly(t *testing.T) {
	store := memory.New[task]("todos", memory.WithReadOnly(true))
	store.Seed(map[string]task{"todo1": {Task: "seeded"}})

	_, _, err := store.Create(task{Task: "x"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	_, err = store.Put("todo1", task{Task: "x"})
	assert.ErrorIs(t, err, core.ErrReadOnly)
	assert.ErrorIs(t, store.Delete("todo1"), core.ErrReadOnly)

	got, err := store.Get("todo1")
	require.NoError(t, err)
	assert.Equal(t, "seeded", got.Task)
}

func TestStore_Watch(t *testing.T) {
	store := memory.New[task]("todos")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	id, _, err := store.Create(task{Task: "a"})
	require.NoError(t, err)
	_, err = store.Put(id, task{Task: "b"})
	require.NoError(t, err)
	require.NoError(t, store.Delete(id))

	var got []core.EventType
	for i := 0; i < 3; i++ {
		select {
		case e := <-events:
			assert.Equal(t, "todos", e.Collection)
			assert.Equal(t, id, e.ID)
			got = append(got, e.Type)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.Equal(t, []core.EventType{core.EventCreate, core.EventModify, core.EventDelete}, got)

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestStore_WatchCancelled(t *testing.T) {
	store := memory.New[task]("todos")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Watch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_SlowWatcherDoesNotBlockWriters(t *testing.T) {
	store := memory.New[task]("todos", memory.WithEventBuffer(1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := store.Watch(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			_, _, _ = store.Create(task{Task: "x"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writers blocked on an unread watcher")
	}
	assert.Equal(t, 10, store.Len())
}

func TestStore_State(t *testing.T) {
	store := memory.New[task]("orders", memory.WithIDGenerator(memory.UUIDs()))
	_, _, _ = store.Create(task{Task: "a"})
	_, _ = store.Put("x", task{Task: "b"})
	_ = store.Delete("x")

	state, ok := store.State().(memory.StoreState)
	require.True(t, ok)
	assert.Equal(t, "orders", state.Name)
	assert.Equal(t, 1, state.Size)
	assert.Equal(t, "uuid", state.IDStrategy)
	assert.Equal(t, uint64(1), state.Creates)
	assert.Equal(t, uint64(1), state.Puts)
	assert.Equal(t, uint64(1), state.Deletes)
	assert.Equal(t, "store", store.ComponentType())
}

func TestSequence_DefaultPrefix(t *testing.T) {
	gen := memory.Sequence("")
	never := func(string) bool { return false }

	assert.Equal(t, "item1", gen.Next(never))
	assert.Equal(t, "item2", gen.Next(never))
	assert.Equal(t, "sequence", gen.Strategy())
}

func TestSequence_SkipsTaken(t *testing.T) {
	gen := memory.Sequence("todo")
	taken := func(id string) bool { return strings.HasSuffix(id, "1") || id == "todo2" }

	assert.Equal(t, "todo3", gen.Next(taken))
}
