// Package combined implements the fallback policy joining the remote
// store client and the local cache store.
//
// Reads attempt the remote store first; on success the returned list is
// the remote list plus any purely-local entries not yet reflected
// remotely (remote wins on id collision), and the cache is refreshed
// with that merged list. On remote failure the cached list is returned
// unmodified.
//
// Writes land in the local cache synchronously first, then the remote
// call is attempted; the outcome of both is reported to the caller as a
// typed SyncResult instead of being logged and forgotten. An operation
// counts as succeeded once the cache write completes.
package combined

const (
	entityJobs         = "jobs"
	entityApplications = "applications"
	entityProfiles     = "profiles"
)

// SyncResult reports where a write landed. A write with CacheWritten
// true and RemoteSynced false persists only locally until the next
// successful remote write for that id; the caller decides whether to
// retry, queue, or surface RemoteErr.
type SyncResult struct {
	CacheWritten bool
	RemoteSynced bool
	RemoteErr    error
}

// Succeeded reports whether the operation is considered successful from
// the caller's perspective: the local write is authoritative for the
// session.
func (r SyncResult) Succeeded() bool {
	return r.CacheWritten
}

// mergeByID returns remoteList plus every localList entry whose id is
// absent from remoteList. Remote entries are never dropped and each
// local-only entry appears exactly once, preserving order within each
// source.
func mergeByID[T any](remoteList, localList []T, id func(T) string) []T {
	seen := make(map[string]struct{}, len(remoteList))
	out := make([]T, 0, len(remoteList)+len(localList))
	for _, r := range remoteList {
		seen[id(r)] = struct{}{}
		out = append(out, r)
	}
	for _, l := range localList {
		if _, ok := seen[id(l)]; !ok {
			out = append(out, l)
		}
	}
	return out
}
