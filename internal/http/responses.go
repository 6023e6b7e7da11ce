package http

import (
	"time"

	"bloglist/internal/domain"
	"bloglist/internal/storage"
)

// OwnerResponse exposes only the public fields of a blog's owner.
type OwnerResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogResponse struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Author string         `json:"author"`
	URL    string         `json:"url"`
	Likes  int            `json:"likes"`
	User   *OwnerResponse `json:"user"`
}

type UserBlogResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type UserResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Blogs    []UserBlogResponse `json:"blogs"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type StorageObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func blogToResponse(blog domain.Blog) BlogResponse {
	resp := BlogResponse{
		ID:     blog.ID,
		Title:  blog.Title,
		Author: blog.Author,
		URL:    blog.URL,
		Likes:  blog.Likes,
	}
	if blog.Owner != nil {
		resp.User = &OwnerResponse{
			Username: blog.Owner.Username,
			Name:     blog.Owner.Name,
		}
	}
	return resp
}

func userToResponse(user domain.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Blogs:    make([]UserBlogResponse, len(user.Blogs)),
	}
	for i, blog := range user.Blogs {
		resp.Blogs[i] = UserBlogResponse{
			ID:     blog.ID,
			Title:  blog.Title,
			Author: blog.Author,
			URL:    blog.URL,
			Likes:  blog.Likes,
		}
	}
	return resp
}

func objectToResponse(obj storage.ObjectInfo) StorageObjectResponse {
	resp := StorageObjectResponse{
		Key:  obj.Key,
		Size: obj.Size,
	}
	if obj.LastModified != nil && !obj.LastModified.IsZero() {
		v := obj.LastModified.Format(time.RFC3339)
		resp.LastModified = &v
	}
	return resp
}
