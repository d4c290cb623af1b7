package models

// Post is a single blog entry as listed in the posts document.
type Post struct {
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	Date     Date   `json:"date"`
	Category string `json:"category,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Image    string `json:"image,omitempty"`
	Body     string `json:"body,omitempty"`
}

// Document is the top-level shape of the posts document.
type Document struct {
	Posts []Post `json:"posts"`
}

// Collection is the immutable set of posts loaded for one session.
// The zero value is an empty collection that loaded successfully.
type Collection struct {
	posts  []Post
	failed bool
}
