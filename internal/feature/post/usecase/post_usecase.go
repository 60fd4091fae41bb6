// Package usecase implements creating, reading and interacting with posts.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	authentity "devsocial_backend/internal/feature/auth/domain/entity"
	authusecase "devsocial_backend/internal/feature/auth/usecase"
	"devsocial_backend/internal/feature/post/domain"
	"devsocial_backend/internal/feature/post/domain/entity"
	"devsocial_backend/internal/shared/apperror"
	"devsocial_backend/internal/shared/validation"
)

// PostRepository persists posts.
// Following Go convention: interfaces are defined by the consumer.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	// FindByID returns domain.ErrPostNotFound when no post has the id.
	FindByID(ctx context.Context, id string) (*entity.Post, error)
	// List returns every post, most recent first.
	List(ctx context.Context) ([]entity.Post, error)
	// Save overwrites an existing post; domain.ErrPostNotFound if it was deleted.
	Save(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id string) error
}

// AuthorFinder resolves the user whose name and avatar are copied onto posts and comments.
type AuthorFinder interface {
	FindByID(ctx context.Context, id string) (*authentity.User, error)
}

// textInput is the validated body of a post or comment.
type textInput struct {
	Text string `json:"text" validate:"required"`
}

type postUsecase struct {
	posts    PostRepository
	authors  AuthorFinder
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewPostUsecase wires the post operations to their stores.
func NewPostUsecase(posts PostRepository, authors AuthorFinder) *postUsecase {
	return &postUsecase{
		posts:    posts,
		authors:  authors,
		validate: validation.NewValidator(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create publishes text as a new post by userID.
func (u *postUsecase) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	if err := validation.Struct(u.validate, textInput{Text: text}); err != nil {
		return nil, err
	}
	author, err := u.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &entity.Post{
		ID:       u.newID(),
		User:     userID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []entity.Like{},
		Comments: []entity.Comment{},
		Date:     u.now(),
	}
	if err := u.posts.Create(ctx, p); err != nil {
		return nil, apperror.Storage(ctx, "post.create", err)
	}
	return p, nil
}

// List returns every post, most recent first.
func (u *postUsecase) List(ctx context.Context) ([]entity.Post, error) {
	posts, err := u.posts.List(ctx)
	if err != nil {
		return nil, apperror.Storage(ctx, "post.list", err)
	}
	return posts, nil
}

// Get returns one post. A malformed id is reported as not found.
func (u *postUsecase) Get(ctx context.Context, postID string) (*entity.Post, error) {
	return u.load(ctx, postID)
}

// Delete removes a post. Only its author may delete it.
func (u *postUsecase) Delete(ctx context.Context, userID, postID string) error {
	p, err := u.load(ctx, postID)
	if err != nil {
		return err
	}
	if p.User != userID {
		return domain.ErrNotAuthorized
	}
	if err := u.posts.Delete(ctx, p.ID); err != nil {
		return apperror.Storage(ctx, "post.delete", err)
	}
	return nil
}

// Like adds userID to the post's likes and returns them.
func (u *postUsecase) Like(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.Like(userID); err != nil {
		return nil, err
	}
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes userID from the post's likes and returns them.
func (u *postUsecase) Unlike(ctx context.Context, userID, postID string) ([]entity.Like, error) {
	p, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.Unlike(userID); err != nil {
		return nil, err
	}
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment appends a comment by userID and returns the post's comments.
func (u *postUsecase) AddComment(ctx context.Context, userID, postID, text string) ([]entity.Comment, error) {
	if err := validation.Struct(u.validate, textInput{Text: text}); err != nil {
		return nil, err
	}
	p, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	author, err := u.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.AddComment(entity.Comment{
		ID:     u.newID(),
		User:   userID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   u.now(),
	})
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment deletes a comment written by userID and returns the post's comments.
func (u *postUsecase) RemoveComment(ctx context.Context, userID, postID, commentID string) ([]entity.Comment, error) {
	p, err := u.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := p.RemoveComment(userID, commentID); err != nil {
		return nil, err
	}
	if err := u.save(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (u *postUsecase) load(ctx context.Context, postID string) (*entity.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, domain.ErrPostNotFound
	}
	p, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return nil, err
		}
		return nil, apperror.Storage(ctx, "post.find", err)
	}
	return p, nil
}

func (u *postUsecase) save(ctx context.Context, p *entity.Post) error {
	if err := u.posts.Save(ctx, p); err != nil {
		if errors.Is(err, domain.ErrPostNotFound) {
			return err
		}
		return apperror.Storage(ctx, "post.save", err)
	}
	return nil
}

// author returns the caller's account. A token for a deleted account is not authorized.
func (u *postUsecase) author(ctx context.Context, userID string) (*authentity.User, error) {
	user, err := u.authors.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authusecase.ErrUserNotFound) {
			return nil, domain.ErrNotAuthorized
		}
		return nil, apperror.Storage(ctx, "user.find_by_id", err)
	}
	return user, nil
}
