package crawler

// frontier is the FIFO queue of site-relative paths waiting to be
// crawled. Pages are visited in discovery order, so the mirror fans out
// breadth-first from the entry points.
//
// Deduplication is not the frontier's job: the scheduler marks a path
// visited before pushing it, so a path is pushed at most once.
type frontier struct {
	items []string
}

// Push appends a path to the back of the queue.
func (f *frontier) Push(path string) {
	f.items = append(f.items, path)
}

// Pop removes and returns the path at the front of the queue.
// The second return value is false when the queue is empty.
func (f *frontier) Pop() (string, bool) {
	if len(f.items) == 0 {
		return "", false
	}
	path := f.items[0]
	f.items[0] = ""
	f.items = f.items[1:]
	return path, true
}

// Len returns the number of queued paths.
func (f *frontier) Len() int {
	return len(f.items)
}
