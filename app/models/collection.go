package models

// NewCollection copies posts into a new collection.
func NewCollection(posts []Post) Collection {
	cp := make([]Post, len(posts))
	copy(cp, posts)
	return Collection{posts: cp}
}

// FailedCollection returns the empty collection used when loading failed.
func FailedCollection() Collection {
	return Collection{failed: true}
}

// Len returns the number of posts.
func (c Collection) Len() int {
	return len(c.posts)
}

// Failed reports whether the collection stands in for a failed load, as
// opposed to a document that simply listed no posts.
func (c Collection) Failed() bool {
	return c.failed
}

// Posts returns a copy of the posts in document order.
func (c Collection) Posts() []Post {
	cp := make([]Post, len(c.posts))
	copy(cp, c.posts)
	return cp
}

// Each calls fn for every post in document order until fn returns false.
func (c Collection) Each(fn func(Post) bool) {
	for _, p := range c.posts {
		if !fn(p) {
			return
		}
	}
}
