package services

// PageSize is the number of roster entries shown per selection page.
const PageSize = 10

// Paginate splits labels into consecutive pages of at most size entries,
// preserving order. The last page may be shorter.
func Paginate(labels []string, size int) [][]string {
	if size <= 0 || len(labels) == 0 {
		return nil
	}
	pages := make([][]string, 0, (len(labels)+size-1)/size)
	for start := 0; start < len(labels); start += size {
		end := min(start+size, len(labels))
		pages = append(pages, labels[start:end])
	}
	return pages
}

// Ordinal converts a zero-based pick on a zero-based page into the 1-based
// position of that entry in the flattened listing.
func Ordinal(page, index, size int) int {
	return page*size + index + 1
}
