package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cyberglobes/querybuilder/internal/driver"
)

// ErrUnavailable means the source of record could not be reached and no
// prior snapshot exists to fall back on.
var ErrUnavailable = errors.New("service catalog unavailable")

const defaultPageSize = 100

// Store serves the live service catalog with a TTL cache. A refresh is
// attempted only when the cache is empty or expired; a failed refresh
// keeps serving the previous snapshot. Safe for concurrent use - racing
// refreshes are last-writer-wins, which is fine since concurrent fetches
// within one TTL window produce equivalent snapshots.
type Store struct {
	driver   driver.CatalogDriver
	ttl      time.Duration
	pageSize int
	adapter  recordAdapter

	mu        sync.Mutex
	snapshot  *Catalog
	fetchedAt time.Time
}

func NewStore(d driver.CatalogDriver, ttl time.Duration, pageSize int, recordShape string) *Store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Store{
		driver:   d,
		ttl:      ttl,
		pageSize: pageSize,
		adapter:  adapterForShape(recordShape),
	}
}

// current returns a valid snapshot, refreshing it when empty or expired.
func (s *Store) current(ctx context.Context) (*Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.snapshot, nil
	}

	fresh, err := s.fetch(ctx)
	if err != nil {
		if s.snapshot != nil {
			log.Printf("Warning: catalog refresh failed, serving stale snapshot: %v", err)
			return s.snapshot, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.snapshot = fresh
	s.fetchedAt = time.Now()
	return s.snapshot, nil
}

// ForceReload drops the cached snapshot and refetches synchronously.
func (s *Store) ForceReload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.fetch(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	s.snapshot = fresh
	s.fetchedAt = time.Now()
	return nil
}

// fetch scans the source of record page by page and groups entries by
// category. Backends that emit one record per initiator collapse into a
// single entry per (category, name) with the initiators accumulated.
func (s *Store) fetch(ctx context.Context) (*Catalog, error) {
	byCategory := map[string][]ServiceEntry{}

	skip := 0
	for {
		result, err := s.driver.ExecuteQuery(ctx, driver.ScanServicesQuery, map[string]interface{}{
			"skip":  skip,
			"limit": s.pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("catalog scan failed at offset %d: %w", skip, err)
		}

		for _, rec := range result.Records {
			entry := s.adapter(rec.AsMap())
			if entry.Category == "" || entry.Name == "" {
				continue
			}

			entries := byCategory[entry.Category]
			if merged := mergeEntry(entries, entry); merged {
				continue
			}
			byCategory[entry.Category] = append(entries, entry)
		}

		if len(result.Records) < s.pageSize {
			break
		}
		skip += s.pageSize
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	cat := &Catalog{}
	for _, c := range categories {
		cat.Groups = append(cat.Groups, CategoryGroup{Category: c, Services: byCategory[c]})
	}
	return cat, nil
}

// mergeEntry folds an entry into an existing one with the same name,
// accumulating initiators. Returns false when no such entry exists.
func mergeEntry(entries []ServiceEntry, entry ServiceEntry) bool {
	for i := range entries {
		if entries[i].Name != entry.Name {
			continue
		}
		for _, init := range entry.Initiators {
			if !contains(entries[i].Initiators, init) {
				entries[i].Initiators = append(entries[i].Initiators, init)
			}
		}
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Summary renders the whole catalog as a compact text block for direct
// inclusion in the generation prompt.
func (s *Store) Summary(ctx context.Context) (string, error) {
	cat, err := s.current(ctx)
	if err != nil {
		return "", err
	}

	lines := []string{"AVAILABLE SERVICES (use [service] step):"}
	for _, group := range cat.Groups {
		var serviceParts []string
		for _, svc := range group.Services {
			serviceParts = append(serviceParts, fmt.Sprintf("%s (%s)", svc.Name, strings.Join(svc.Initiators, "|")))
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", group.Category, strings.Join(serviceParts, " | ")))
	}

	return strings.Join(lines, "\n"), nil
}

// FindService resolves a category and optional initiator to an entry.
// An empty initiator or an initiator no entry supports both resolve to
// the category's first entry; an unknown category resolves to nil.
func (s *Store) FindService(ctx context.Context, category, initiator string) (*ServiceEntry, error) {
	cat, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	group := cat.group(category)
	if group == nil || len(group.Services) == 0 {
		return nil, nil
	}

	if initiator == "" {
		return &group.Services[0], nil
	}
	for i := range group.Services {
		if contains(group.Services[i].Initiators, initiator) {
			return &group.Services[i], nil
		}
	}
	// Fallback: first service in category
	return &group.Services[0], nil
}

// ListCategories returns every category with the sorted union of its
// entries' initiators.
func (s *Store) ListCategories(ctx context.Context) ([]CategoryListing, error) {
	cat, err := s.current(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CategoryListing, 0, len(cat.Groups))
	for _, group := range cat.Groups {
		union := map[string]bool{}
		for _, svc := range group.Services {
			for _, init := range svc.Initiators {
				union[init] = true
			}
		}
		initiators := make([]string, 0, len(union))
		for init := range union {
			initiators = append(initiators, init)
		}
		sort.Strings(initiators)

		result = append(result, CategoryListing{
			Category:   group.Category,
			Services:   group.Services,
			Initiators: initiators,
		})
	}

	return result, nil
}
