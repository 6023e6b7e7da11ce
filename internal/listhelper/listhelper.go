// Package listhelper computes summary statistics over a list of blogs.
// Every function is pure; callers supply the snapshot.
package listhelper

import "bloglist/internal/domain"

// Favorite is the reduced view of the most liked blog.
type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// AuthorCount pairs an author with the number of blogs attributed to them.
type AuthorCount struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// Dummy always returns 1.
func Dummy(blogs []domain.Blog) int {
	return 1
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []domain.Blog) int {
	sum := 0
	for _, blog := range blogs {
		sum += blog.Likes
	}
	return sum
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty list.
// Ties keep the earliest blog.
func FavoriteBlog(blogs []domain.Blog) *Favorite {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, blog := range blogs[1:] {
		if blog.Likes > fav.Likes {
			fav = blog
		}
	}
	return &Favorite{
		Title:  fav.Title,
		Author: fav.Author,
		Likes:  fav.Likes,
	}
}

// MostBlogs picks the lexicographically greatest author name and counts the
// blogs carrying exactly that name. It does not search for the most frequent
// author: for [X, X, Y] it reports Y with 1 blog.
// Returns nil for an empty list.
func MostBlogs(blogs []domain.Blog) *AuthorCount {
	if len(blogs) == 0 {
		return nil
	}

	name := blogs[0].Author
	for _, blog := range blogs[1:] {
		if blog.Author > name {
			name = blog.Author
		}
	}

	count := 0
	for _, blog := range blogs {
		if blog.Author == name {
			count++
		}
	}
	return &AuthorCount{
		Author: name,
		Blogs:  count,
	}
}
