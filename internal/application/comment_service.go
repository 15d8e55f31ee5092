package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/pkg/helpers"
	"github.com/oksasatya/blogicum/pkg/mailer"
	"github.com/oksasatya/blogicum/pkg/mailer/templates"
)

// CreateComment adds a comment by actor to an existing post. The post only
// needs to exist; it does not have to be visible.
func (s *BlogService) CreateComment(ctx context.Context, actor *entity.User, postID int64, text string) (Result, error) {
	if err := blog.RequireActor(actor); err != nil {
		return Result{}, err
	}
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		return Result{}, err
	}
	text = helpers.SanitizeComment(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}
	c := &entity.Comment{PostID: p.ID, AuthorID: actor.ID, Text: text}
	if err := s.Comments.Create(ctx, c); err != nil {
		return Result{}, err
	}
	s.notifyAuthor(ctx, actor, p, c)
	return Result{ID: c.ID, Redirect: blog.PostDetailPath(p.ID)}, nil
}

// ownedComment loads a comment of the given post and runs the ownership guard.
// A comment attached to another post is reported as not found.
func (s *BlogService) ownedComment(ctx context.Context, actor *entity.User, postID, commentID int64) (*entity.Comment, error) {
	if err := blog.RequireActor(actor); err != nil {
		return nil, err
	}
	c, err := s.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c.PostID != postID {
		return nil, blog.ErrNotFound
	}
	if err := blog.Authorize(actor, c.AuthorID); err != nil {
		return nil, err
	}
	return c, nil
}

// CheckCommentOwner runs the guard alone, so callers can deny before validating input.
func (s *BlogService) CheckCommentOwner(ctx context.Context, actor *entity.User, postID, commentID int64) error {
	_, err := s.ownedComment(ctx, actor, postID, commentID)
	return err
}

func (s *BlogService) UpdateComment(ctx context.Context, actor *entity.User, postID, commentID int64, text string) (Result, error) {
	c, err := s.ownedComment(ctx, actor, postID, commentID)
	if err != nil {
		return Result{}, err
	}
	text = helpers.SanitizeComment(text)
	if text == "" {
		return Result{}, ErrEmptyText
	}
	c.Text = text
	if err := s.Comments.Update(ctx, c); err != nil {
		return Result{}, err
	}
	return Result{ID: c.ID, Redirect: blog.PostDetailPath(c.PostID)}, nil
}

func (s *BlogService) DeleteComment(ctx context.Context, actor *entity.User, postID, commentID int64) (Result, error) {
	c, err := s.ownedComment(ctx, actor, postID, commentID)
	if err != nil {
		return Result{}, err
	}
	if err := s.Comments.Delete(ctx, c.ID); err != nil {
		return Result{}, err
	}
	return Result{ID: c.ID, Redirect: blog.PostDetailPath(c.PostID)}, nil
}

// notifyAuthor enqueues an e-mail to the post author. Own comments are skipped.
func (s *BlogService) notifyAuthor(ctx context.Context, actor *entity.User, p *entity.Post, c *entity.Comment) {
	if s.Publisher == nil || p.AuthorID == actor.ID {
		return
	}
	author, err := s.Users.GetByID(ctx, p.AuthorID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("comment notification: author lookup failed")
		}
		return
	}
	data := templates.CommentData{
		RecipientName: author.Username,
		CommenterName: actor.Username,
		PostTitle:     p.Title,
		PostURL:       s.PublicBaseURL + blog.PostDetailPath(p.ID),
		Comment:       c.Text,
		CreatedAt:     c.CreatedAt,
	}
	job := mailer.EmailJob{To: author.Email, Template: templates.CommentNotification, Data: templates.ToMap(data)}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"post_id": p.ID, "comment_id": c.ID}).Warn("failed to publish comment notification")
	}
}
