// Package entity defines posts and their likes and comments.
package entity

import (
	"time"

	"devsocial_backend/internal/feature/post/domain"
)

// Like records that a user likes a post.
type Like struct {
	User string `json:"user"`
}

// Comment is a reply on a post. Name and Avatar are copied from the author at creation.
type Comment struct {
	ID     string    `json:"_id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is a short message. Name and Avatar are copied from the author at creation.
type Post struct {
	ID       string    `json:"_id"`
	User     string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// LikedBy reports whether userID is among the likes.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

// Like puts userID at the front of the likes. A user can like a post once.
func (p *Post) Like(userID string) error {
	if p.LikedBy(userID) {
		return domain.ErrAlreadyLiked
	}
	p.Likes = append([]Like{{User: userID}}, p.Likes...)
	return nil
}

// Unlike removes userID from the likes.
func (p *Post) Unlike(userID string) error {
	if !p.LikedBy(userID) {
		return domain.ErrNotLiked
	}
	kept := make([]Like, 0, len(p.Likes)-1)
	for _, l := range p.Likes {
		if l.User != userID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept
	return nil
}

// AddComment appends c to the comments.
func (p *Post) AddComment(c Comment) {
	p.Comments = append(p.Comments, c)
}

// RemoveComment deletes the comment with commentID if userID wrote it.
func (p *Post) RemoveComment(userID, commentID string) error {
	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrCommentNotFound
	}
	if p.Comments[idx].User != userID {
		return domain.ErrNotAuthorized
	}

	kept := make([]Comment, 0, len(p.Comments)-1)
	for _, c := range p.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	p.Comments = kept
	return nil
}
