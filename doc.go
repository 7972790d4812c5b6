// Package depot is the Composition Root for the depot server.
//
// Depot keeps a handful of record collections (orders, measurements, goods,
// buyings, users) in memory and serves them over a small REST surface.
// Every collection is an independent, concurrency-safe store with its own
// lock; there is no persistence across restarts.
//
// Features:
//
//   - **Generic store**: one implementation (`memory.Store[T]`) serves every record type.
//   - **Collision-free identifiers**: sequence (`todo4`) or UUID ids generated under the write lock.
//   - **Seed files**: JSON/YAML files preload collections and can be hot-reloaded.
//   - **Change events**: every mutation is broadcast to watchers without blocking writers.
//   - **Introspection**: store and app state exposed under `/debug/state`.
//
// Usage:
//
//	app, err := depot.New(
//		depot.WithSeedDir("./seeds"),
//		depot.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(":5555", app.Handler())
package depot
