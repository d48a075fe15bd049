package utils

import (
	"net/url"
	"regexp"
	"strings"
	"sync"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title. Products without an
// explicit slug get one from their title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// NormalizeObjectKey reduces a full storage URL to its object key.
// Values that are already keys pass through unchanged.
func NormalizeObjectKey(value string) string {
	if value == "" || !strings.HasPrefix(value, "http") {
		return value
	}
	u, err := url.Parse(value)
	if err != nil {
		return value
	}
	return strings.TrimLeft(u.Path, "/")
}

// FanoutResult collects the outcome of a FetchAll: successes by key
// plus per-key failures, so callers can surface degraded items
// instead of aborting the whole fetch.
type FanoutResult[K comparable, V any] struct {
	Results  map[K]V
	Failures map[K]error
}

// FetchAll runs fetch for every key concurrently and waits for all of
// them to settle. Completion order is not significant; results are
// keyed, never ordered.
func FetchAll[K comparable, V any](keys []K, fetch func(K) (V, error)) FanoutResult[K, V] {
	out := FanoutResult[K, V]{
		Results:  make(map[K]V, len(keys)),
		Failures: make(map[K]error),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, key := range keys {
		wg.Add(1)
		go func(k K) {
			defer wg.Done()
			v, err := fetch(k)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				out.Failures[k] = err
				return
			}
			out.Results[k] = v
		}(key)
	}
	wg.Wait()
	return out
}
