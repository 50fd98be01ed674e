// Package lastfm defines the capabilities shared by every Last.fm entity.
//
// Entities never talk to the network or to an XML library directly. They
// hold a Fetcher, which executes one web-service method and returns the
// parsed response as a Node:
//
//	node, err := fetcher.Fetch(ctx, lastfm.Params{"method": "tag.getsimilar", "tag": "rock"})
//	wrapper, ok := node.FindChild("similartags")
//	for _, child := range wrapper.FindAll("tag") {
//	    name, _ := child.FindChildText("name")
//	}
//
// # Lazy Relationships
//
// Lazy memoizes one relationship of an entity. The first Get runs the
// resolve function, later calls return the stored value without calling it
// again. Concurrent first calls share a single resolution. Failed
// resolutions are not stored, so the next Get tries again.
//
// # Identity
//
// Entities implement Keyed. Hash, Equal, Compare, Sort and Index work on the
// identity key only and fail with ErrMissingIdentity when it is absent.
//
// # Errors
//
//   - ErrInvalidReference: an entity was constructed without a Fetcher
//   - ErrMissingIdentity: an identity attribute is absent
//   - ErrRemote / *RemoteError: transport, HTTP or service-reported failure
//   - ErrMalformedResponse: the payload could not be read as a tree
//   - ErrUnsupported: a declared lookup that is not implemented
package lastfm
