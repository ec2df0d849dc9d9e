// Package pagination walks paginated WADM listings one page at a time.
//
// WADM reports its position in every page (currentPage / totalPages), so the
// next request can only be decided after the previous response arrived. The
// collector therefore fetches strictly sequentially:
//
//	collector := pagination.NewCollector(pagination.DefaultConfig())
//	items, err := pagination.Collect(ctx, collector, "artworks", fetchPage)
//
// The collector:
//   - starts at page 1 and appends each page's items in fetch order
//   - stops on the last page, or when a fetch reports no data
//   - stops with the error when a fetch fails
//   - checks the context before every request
//   - gives up after Config.MaxPages pages, returning ErrPageLimit with the items
package pagination
