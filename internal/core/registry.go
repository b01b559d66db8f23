package core

import (
	"sort"
	"strings"
	"sync"
)

var (
	repositories = make(map[string]RemoteRepository)
	mu           sync.RWMutex
)

// Register adds a well-known repository under its id.
// Registering the same id again replaces the URL.
func Register(id, url string) {
	mu.Lock()
	defer mu.Unlock()
	repositories[id] = RemoteRepository{ID: id, URL: url}
}

// LookupRepository returns the registered repository for id.
func LookupRepository(id string) (RemoteRepository, bool) {
	mu.RLock()
	defer mu.RUnlock()
	r, ok := repositories[id]
	return r, ok
}

// KnownRepositories returns all registered repositories sorted by id.
func KnownRepositories() []RemoteRepository {
	mu.RLock()
	defer mu.RUnlock()

	repos := make([]RemoteRepository, 0, len(repositories))
	for _, r := range repositories {
		repos = append(repos, r)
	}
	sort.Slice(repos, func(i, j int) bool {
		return repos[i].ID < repos[j].ID
	})
	return repos
}

// ResolveRepositories turns a list of references into repositories, keeping order.
// A reference is either a registered id, "id=url", or a bare http(s) URL (whose
// id becomes the URL host).
func ResolveRepositories(refs []string) ([]RemoteRepository, error) {
	repos := make([]RemoteRepository, 0, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}

		if id, url, ok := strings.Cut(ref, "="); ok {
			repos = append(repos, RemoteRepository{ID: strings.TrimSpace(id), URL: strings.TrimSpace(url)})
			continue
		}

		if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
			repos = append(repos, RemoteRepository{ID: hostOf(ref), URL: ref})
			continue
		}

		r, ok := LookupRepository(ref)
		if !ok {
			return nil, &UnknownRepositoryError{ID: ref}
		}
		repos = append(repos, r)
	}
	return repos, nil
}

func hostOf(rawURL string) string {
	rest := rawURL[strings.Index(rawURL, "://")+3:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
