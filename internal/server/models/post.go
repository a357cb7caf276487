package models

import "time"

// PostStatusDraft marks posts hidden from public listings.
const PostStatusDraft = "draft"

// Post is a blog entry. WriterID is the subject that created it and the
// only one allowed to change it.
type Post struct {
	ID          string            `json:"post_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PublishedAt string            `json:"published_at"`
	Content     string            `json:"content"`
	Status      string            `json:"status"`
	WriterID    string            `json:"writer_id"`
	Tags        []TagWithCategory `json:"tags"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PostInput carries the client-editable fields of a post.
type PostInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	PublishedAt string            `json:"published_at"`
	Content     string            `json:"content"`
	Status      string            `json:"status"`
	Tags        []TagWithCategory `json:"tags"`
}

// PostFilter narrows public post listings by tag name.
type PostFilter struct {
	Include string
	Exclude string
}
