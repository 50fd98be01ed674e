// Package model defines the Last.fm entities: Tag, Artist, Album, Track and
// Stats.
//
// Entities are built from a Fetcher and a set of optional attributes. They
// never fetch anything at construction. Relationships are fetched on first
// access and memoized for the lifetime of the entity:
//
//	rock, err := model.NewTag(session, model.TagAttrs{Name: lastfm.String("rock")})
//	similar, err := rock.Similar(ctx)   // one tag.getsimilar request
//	similar, err = rock.Similar(ctx)    // no request, same slice
//
// Child entities are fully independent: accessing similar[0].TopAlbums(ctx)
// issues its own request on first use.
//
// # Absent Attributes
//
// Optional attributes are pointers in the Attrs structs and (value, ok)
// pairs on the getters. A missing or empty numeric field in a response is
// absent, never zero. Nested entities that are missing are nil.
//
// # Identity
//
// Tag and Artist are identified by name, Album and Track by artist name and
// name, Stats by subject. Two entities with the same identity are equal and
// hash alike even when one carries more descriptive data:
//
//	thin, _ := model.NewTag(session, model.TagAttrs{Name: lastfm.String("rock")})
//	eq, _ := thin.Equal(similar[0]) // compares names only
//
// Relationship resolution on an entity without identity fails with
// lastfm.ErrMissingIdentity before any request is made.
package model
