// Package explore walks the Last.fm tag graph.
//
// # Manager
//
// The Manager coordinates the walk:
//
//  1. Parse input tag names
//  2. Fetch similar tags and top albums, artists and tracks of each tag
//  3. Follow similar tags breadth-first, skipping tags already seen
//  4. Stop after ExploreDepth levels
//
// # Basic Usage
//
//	manager, err := explore.NewManager(session, settings, func(event explore.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	err = manager.Initialize(ctx, "rock, jazz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = manager.Expand(ctx)
//	for _, s := range manager.Summaries() {
//	    fmt.Println(s.Name(), len(s.Similar))
//	}
//
// # Concurrency
//
// Relationship fetches of one level run in parallel, at most
// MaxConcurrentFetches at a time. The progress callback may be called from
// several goroutines.
package explore
