// Package model defines domain entities for the application.
package model

import "time"

// Post represents a blog entry owned by exactly one user.
// AuthorID is immutable after creation; only title and body may change.
type Post struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Created  time.Time `json:"created"`
	AuthorID int64     `json:"author_id"`

	// Author is the owning user's username, materialized by the
	// post/user join on reads. Not a column on the posts table.
	Author string `json:"author"`
}
