package tmdb

import "context"

// fetchPages calls fetch for pages 1..maxPages, stopping early once the
// reported total page count is reached or a page comes back empty.
func fetchPages[T any](
	ctx context.Context,
	fetch func(ctx context.Context, page int) ([]T, int, error),
	maxPages int,
) ([]T, error) {
	if maxPages <= 0 {
		maxPages = 1
	}

	var all []T
	for page := 1; page <= maxPages; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		items, totalPages, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if len(items) == 0 || page >= totalPages {
			break
		}
	}

	return all, nil
}

// dedupe keeps the first occurrence of each key. Lists shift between
// page requests, so a title can appear on two consecutive pages.
func dedupe[T any, K comparable](items []T, key func(T) K) []T {
	seen := make(map[K]struct{}, len(items))
	out := items[:0]
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}
