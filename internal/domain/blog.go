package domain

import "time"

// Owner is the public view of the user that created a blog.
type Owner struct {
	ID       string
	Username string
	Name     string
}

// Blog is a single bookmarked blog entry.
type Blog struct {
	ID        string
	Title     string
	Author    string
	URL       string
	Likes     int
	UserID    string
	Owner     *Owner
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlogPatch carries the mutable fields of a blog. Nil fields are left untouched.
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}
