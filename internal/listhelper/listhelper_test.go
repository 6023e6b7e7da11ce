package listhelper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bloglist/internal/domain"
)

var testBlogs = []domain.Blog{
	{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7},
	{Title: "Go To Statement Considered Harmful", Author: "Edsger W. Dijkstra", URL: "http://www.u.arizona.edu/~rubinson/copyright_violations/Go_To_Considered_Harmful.html", Likes: 5},
	{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", URL: "http://www.cs.utexas.edu/~EWD/transcriptions/EWD08xx/EWD808.html", Likes: 12},
	{Title: "First class tests", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/05/05/TestDefinitions.htmll", Likes: 10},
	{Title: "TDD harms architecture", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2017/03/03/TDD-Harms-Architecture.html", Likes: 0},
	{Title: "Type wars", Author: "Robert C. Martin", URL: "http://blog.cleancoder.com/uncle-bob/2016/05/01/TypeWars.html", Likes: 2},
}

func TestDummy(t *testing.T) {
	require.Equal(t, 1, Dummy(nil))
	require.Equal(t, 1, Dummy(testBlogs))
}

func TestTotalLikes(t *testing.T) {
	tests := []struct {
		name  string
		blogs []domain.Blog
		want  int
	}{
		{name: "empty list", blogs: nil, want: 0},
		{name: "single blog", blogs: testBlogs[:1], want: 7},
		{name: "two blogs", blogs: []domain.Blog{{Likes: 5}, {Likes: 10}}, want: 15},
		{name: "bigger list", blogs: testBlogs, want: 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, TotalLikes(tt.blogs))
		})
	}
}

func TestFavoriteBlog(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		require.Nil(t, FavoriteBlog(nil))
	})

	t.Run("bigger list", func(t *testing.T) {
		require.Equal(t, &Favorite{
			Title:  "Canonical string reduction",
			Author: "Edsger W. Dijkstra",
			Likes:  12,
		}, FavoriteBlog(testBlogs))
	})

	t.Run("first maximum wins ties", func(t *testing.T) {
		got := FavoriteBlog([]domain.Blog{
			{Title: "A", Likes: 3},
			{Title: "B", Likes: 7},
			{Title: "C", Likes: 7},
		})
		require.Equal(t, "B", got.Title)
		require.Equal(t, 7, got.Likes)
	})

	t.Run("all zero likes keeps first", func(t *testing.T) {
		got := FavoriteBlog([]domain.Blog{{Title: "A"}, {Title: "B"}})
		require.Equal(t, "A", got.Title)
	})
}

func TestMostBlogs(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		require.Nil(t, MostBlogs(nil))
	})

	t.Run("bigger list", func(t *testing.T) {
		require.Equal(t, &AuthorCount{Author: "Robert C. Martin", Blogs: 3}, MostBlogs(testBlogs))
	})

	t.Run("selects greatest name not most frequent", func(t *testing.T) {
		got := MostBlogs([]domain.Blog{{Author: "X"}, {Author: "X"}, {Author: "Y"}})
		require.Equal(t, &AuthorCount{Author: "Y", Blogs: 1}, got)
	})

	t.Run("count matches selected name", func(t *testing.T) {
		blogs := []domain.Blog{{Author: "b"}, {Author: "a"}, {Author: "b"}, {Author: "a"}, {Author: "a"}}
		got := MostBlogs(blogs)
		require.Equal(t, "b", got.Author)
		require.Equal(t, 2, got.Blogs)
	})
}
