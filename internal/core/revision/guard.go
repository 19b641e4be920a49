// Package revision implements last-writer-wins staleness checks for
// client-supplied timestamps.
package revision

// Resolve decides the timestamp an update should persist.
//
// A nil client timestamp means "now". A client timestamp older than the
// stored one marks the write as stale: ok is false and the caller must not
// persist anything. Equal timestamps are accepted.
func Resolve(stored int64, client *int64, now int64) (ts int64, ok bool) {
	if client == nil {
		return now, true
	}
	if *client < stored {
		return 0, false
	}
	return *client, true
}

// Initial returns the timestamp for a newly created record.
func Initial(client *int64, now int64) int64 {
	if client == nil {
		return now
	}
	return *client
}
