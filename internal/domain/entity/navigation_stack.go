package entity

import "net/url"

// NavigationStack is the back-history of previewed URLs, most recent last.
// It is owned by a single preview session and is not safe for concurrent use.
type NavigationStack struct {
	items []*url.URL
}

// Push appends u to the top of the stack.
func (s *NavigationStack) Push(u *url.URL) {
	if u == nil {
		return
	}
	s.items = append(s.items, u)
}

// Pop removes and returns the most recent URL.
// Returns false when the stack is empty.
func (s *NavigationStack) Pop() (*url.URL, bool) {
	n := len(s.items)
	if n == 0 {
		return nil, false
	}
	top := s.items[n-1]
	s.items[n-1] = nil
	s.items = s.items[:n-1]
	return top, true
}

// Len returns the number of stored URLs.
func (s *NavigationStack) Len() int {
	return len(s.items)
}

// Clear drops every stored URL.
func (s *NavigationStack) Clear() {
	s.items = nil
}

// Hrefs returns the stored URLs as strings, oldest first.
func (s *NavigationStack) Hrefs() []string {
	out := make([]string, len(s.items))
	for i, u := range s.items {
		out[i] = u.String()
	}
	return out
}
