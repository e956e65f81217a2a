// Package paginate splits ordered content into pages.
//
// Two modes exist. [Chunk] cuts a flat list into pages of exactly n items,
// the last one possibly shorter. [Pack] walks whole groups and fills pages up
// to a capacity counted in items. It never splits a group, so a group larger
// than the capacity ends up alone on its own page.
//
// Packing is greedy and single-pass. Given capacity 20 and groups of 12, 10
// and 5 items, the second group does not fit next to the first (22 > 20) and
// opens a new page, giving [[12] [10 5]].
package paginate

// Defaults used by the pipelines.
const (
	CardsPerPage  = 6
	StocksPerPage = 20
)

// Chunk splits items into consecutive pages of n. A non-positive n yields
// a single page holding every item. Empty input yields no pages.
func Chunk[T any](items []T, n int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if n <= 0 {
		return [][]T{items}
	}
	pages := make([][]T, 0, (len(items)+n-1)/n)
	for start := 0; start < len(items); start += n {
		end := min(start+n, len(items))
		pages = append(pages, items[start:end:end])
	}
	return pages
}

// Pack distributes groups over pages of at most capacity items, where size
// reports the item count of one group. A group that would overflow a
// non-empty page starts the next page.
func Pack[T any](groups []T, capacity int, size func(T) int) [][]T {
	var (
		pages   [][]T
		current []T
		used    int
	)
	for _, g := range groups {
		n := size(g)
		if len(current) > 0 && used+n > capacity {
			pages = append(pages, current)
			current, used = nil, 0
		}
		current = append(current, g)
		used += n
	}
	if len(current) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// Count returns the total size of groups.
func Count[T any](groups []T, size func(T) int) int {
	n := 0
	for _, g := range groups {
		n += size(g)
	}
	return n
}
