// Package http provides the HTTP side of the Last.fm client.
//
// Client is a thin wrapper over net/http with a User-Agent and timeout.
// Session implements lastfm.Fetcher on top of it: it signs each request with
// the API key, parses the XML response and retries transient failures.
//
// # Basic Usage
//
//	client := http.NewClient(30*time.Second, "lastfm-graph")
//	session := http.NewSession(client, http.SessionConfig{
//	    APIKey:  os.Getenv("LASTFM_API_KEY"),
//	    BaseURL: http.DefaultBaseURL,
//	})
//
//	rock, _ := model.NewTag(session, model.TagAttrs{Name: lastfm.String("rock")})
//	similar, err := rock.Similar(ctx)
//
// # Retry Logic
//
// Transport errors, HTTP 5xx responses and the service's "temporarily
// unavailable" codes are retried with exponential backoff:
//
//	wait = RetryCooldown * RetryExponent^attempt seconds
//
// Service-reported errors such as "Tag not found" and malformed responses
// are returned immediately.
package http
