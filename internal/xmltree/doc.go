// Package xmltree reads Last.fm XML responses into lastfm.Node trees.
//
// Every Last.fm response is wrapped in an lfm envelope:
//
//	<lfm status="ok">
//	  <similartags tag="rock">
//	    <tag><name>classic rock</name>...</tag>
//	  </similartags>
//	</lfm>
//
// Parse returns the lfm element for status="ok". For status="failed" it
// returns a *lastfm.RemoteError carrying the service error code:
//
//	<lfm status="failed">
//	  <error code="6">Tag not found</error>
//	</lfm>
//
// Payloads that are not XML, or lack the envelope, yield
// lastfm.ErrMalformedResponse.
package xmltree
