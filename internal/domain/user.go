package domain

import "time"

// User represents a registered user of the system.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	// BlogIDs lists owned blogs in creation order. Entries may point at deleted blogs.
	BlogIDs   []string
	Blogs     []Blog
	CreatedAt time.Time
	UpdatedAt time.Time
}
