package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	repo "github.com/oksasatya/blogicum/internal/domain/repository"
	"github.com/oksasatya/blogicum/pkg/helpers"
)

// searchLimit caps how many index hits are considered before pagination.
const searchLimit = 200

// BlogService implements the post, category, profile and comment views.
// Index, Publisher and Images are optional; when nil the related side
// effect is skipped.
type BlogService struct {
	Posts      repo.PostRepository
	Categories repo.CategoryRepository
	Comments   repo.CommentRepository
	Users      repo.UserRepository

	Index     PostIndex
	Publisher Publisher
	Images    ImageStore
	Logger    *logrus.Logger

	// PublicBaseURL prefixes links in notification e-mails.
	PublicBaseURL string

	// Now is read on every query; visibility is never cached.
	Now func() time.Time
}

func NewBlogService(posts repo.PostRepository, categories repo.CategoryRepository, comments repo.CommentRepository, users repo.UserRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{
		Posts:      posts,
		Categories: categories,
		Comments:   comments,
		Users:      users,
		Logger:     logger,
		Now:        time.Now,
	}
}

// PostFields are the validated, user-editable post attributes.
type PostFields struct {
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  int64
	IsPublished bool
}

type PostDetail struct {
	Post     entity.Post
	Comments []entity.Comment
}

type CategoryPage struct {
	Category entity.Category
	Posts    blog.Page[entity.PostSummary]
}

type ProfilePage struct {
	User  entity.User
	Posts blog.Page[entity.PostSummary]
}

// Result is returned by every successful mutation.
type Result struct {
	ID       int64
	Redirect string
}

func (s *BlogService) visibility() *blog.Visibility {
	v := blog.VisibleAt(s.Now())
	return &v
}

// summaries counts, pages and aggregates one post listing.
func (s *BlogService) summaries(ctx context.Context, f repo.PostFilter, page string) (blog.Page[entity.PostSummary], error) {
	total, err := s.Posts.Count(ctx, f)
	if err != nil {
		return blog.Page[entity.PostSummary]{}, err
	}
	meta := blog.NewPageMeta(page, total, blog.PageSize)
	posts, err := s.Posts.List(ctx, f, meta.Limit(), meta.Offset())
	if err != nil {
		return blog.Page[entity.PostSummary]{}, err
	}
	counts, err := s.Comments.CountByPosts(ctx, blog.PostIDs(posts))
	if err != nil {
		return blog.Page[entity.PostSummary]{}, err
	}
	return blog.Page[entity.PostSummary]{
		Items: blog.AttachCommentCounts(posts, counts),
		Meta:  meta,
	}, nil
}

// ListPosts returns one page of visible posts, newest first.
func (s *BlogService) ListPosts(ctx context.Context, page string) (blog.Page[entity.PostSummary], error) {
	return s.summaries(ctx, repo.PostFilter{Visibility: s.visibility()}, page)
}

// PostDetail returns a visible post with its comments in creation order.
// Hidden and missing posts both yield blog.ErrNotFound.
func (s *BlogService) PostDetail(ctx context.Context, id int64) (*PostDetail, error) {
	p, err := s.Posts.FindOne(ctx, repo.PostFilter{ID: id, Visibility: s.visibility()})
	if err != nil {
		return nil, err
	}
	comments, err := s.Comments.ListByPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	blog.SortComments(comments)
	return &PostDetail{Post: *p, Comments: comments}, nil
}

// CategoryPosts lists visible posts of a published category.
func (s *BlogService) CategoryPosts(ctx context.Context, slug, page string) (*CategoryPage, error) {
	c, err := s.Categories.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !c.IsPublished {
		return nil, blog.ErrNotFound
	}
	posts, err := s.summaries(ctx, repo.PostFilter{CategorySlug: slug, Visibility: s.visibility()}, page)
	if err != nil {
		return nil, err
	}
	return &CategoryPage{Category: *c, Posts: posts}, nil
}

// Profile lists a user's posts. The owner sees drafts and scheduled posts;
// everyone else sees only visible ones.
func (s *BlogService) Profile(ctx context.Context, viewer *entity.User, username, page string) (*ProfilePage, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	f := repo.PostFilter{AuthorID: u.ID}
	if blog.Check(viewer, u.ID) != blog.Allow {
		f.Visibility = s.visibility()
	}
	posts, err := s.summaries(ctx, f, page)
	if err != nil {
		return nil, err
	}
	return &ProfilePage{User: *u, Posts: posts}, nil
}

// SearchPosts matches the query against the index and returns visible hits.
func (s *BlogService) SearchPosts(ctx context.Context, q, page string) (blog.Page[entity.PostSummary], error) {
	if s.Index == nil {
		return blog.Page[entity.PostSummary]{}, ErrSearchUnavailable
	}
	ids, err := s.Index.SearchPostIDs(ctx, strings.TrimSpace(q), searchLimit)
	if err != nil {
		return blog.Page[entity.PostSummary]{}, fmt.Errorf("search posts: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	// the index can lag behind edits, so hits are re-checked here
	hits, err := s.Posts.List(ctx, repo.PostFilter{IDs: ids}, len(ids), 0)
	if err != nil {
		return blog.Page[entity.PostSummary]{}, err
	}
	res := blog.Paginate(s.visibility().Filter(hits), page)
	counts, err := s.Comments.CountByPosts(ctx, blog.PostIDs(res.Items))
	if err != nil {
		return blog.Page[entity.PostSummary]{}, err
	}
	return blog.Page[entity.PostSummary]{
		Items: blog.AttachCommentCounts(res.Items, counts),
		Meta:  res.Meta,
	}, nil
}

func (s *BlogService) checkCategory(ctx context.Context, id int64) error {
	if _, err := s.Categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, blog.ErrNotFound) {
			return ErrInvalidCategory
		}
		return err
	}
	return nil
}

// CreatePost stores a post authored by actor and redirects to the actor's profile.
func (s *BlogService) CreatePost(ctx context.Context, actor *entity.User, in PostFields) (Result, error) {
	if err := blog.RequireActor(actor); err != nil {
		return Result{}, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return Result{}, err
	}
	p := &entity.Post{AuthorID: actor.ID}
	applyPostFields(p, in)
	if err := s.Posts.Create(ctx, p); err != nil {
		return Result{}, err
	}
	s.reindex(ctx, p.ID)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": p.ID, "user_id": actor.ID}).Info("post created")
	}
	return Result{ID: p.ID, Redirect: blog.ProfilePath(actor.Username)}, nil
}

// ownedPost loads a post regardless of visibility and runs the ownership guard.
func (s *BlogService) ownedPost(ctx context.Context, actor *entity.User, id int64) (*entity.Post, error) {
	if err := blog.RequireActor(actor); err != nil {
		return nil, err
	}
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := blog.Authorize(actor, p.AuthorID); err != nil {
		return nil, err
	}
	return p, nil
}

// CheckPostOwner runs the guard alone, so callers can deny before validating input.
func (s *BlogService) CheckPostOwner(ctx context.Context, actor *entity.User, id int64) error {
	_, err := s.ownedPost(ctx, actor, id)
	return err
}

func (s *BlogService) UpdatePost(ctx context.Context, actor *entity.User, id int64, in PostFields) (Result, error) {
	p, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return Result{}, err
	}
	applyPostFields(p, in)
	if err := s.Posts.Update(ctx, p); err != nil {
		return Result{}, err
	}
	s.reindex(ctx, p.ID)
	return Result{ID: p.ID, Redirect: blog.PostDetailPath(p.ID)}, nil
}

func (s *BlogService) DeletePost(ctx context.Context, actor *entity.User, id int64) (Result, error) {
	p, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if err := s.Posts.Delete(ctx, p.ID); err != nil {
		return Result{}, err
	}
	if s.Index != nil {
		if err := s.Index.DeletePost(ctx, p.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("search index delete failed")
		}
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": p.ID, "user_id": actor.ID}).Info("post deleted")
	}
	return Result{ID: p.ID, Redirect: blog.IndexPath()}, nil
}

// UploadPostImage stores an image for the actor's post and records its URL.
func (s *BlogService) UploadPostImage(ctx context.Context, actor *entity.User, id int64, r io.Reader, filename, contentType string) (Result, error) {
	p, err := s.ownedPost(ctx, actor, id)
	if err != nil {
		return Result{}, err
	}
	if s.Images == nil {
		return Result{}, ErrImagesUnavailable
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("posts", strconv.FormatInt(p.ID, 10), uuid.NewString()+ext))
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return Result{}, fmt.Errorf("upload image: %w", err)
	}
	p.ImageURL = url
	if err := s.Posts.Update(ctx, p); err != nil {
		return Result{}, err
	}
	return Result{ID: p.ID, Redirect: blog.PostDetailPath(p.ID)}, nil
}

func applyPostFields(p *entity.Post, in PostFields) {
	p.Title = strings.TrimSpace(in.Title)
	p.Text = helpers.SanitizePostText(in.Text)
	p.PubDate = in.PubDate
	p.CategoryID = in.CategoryID
	p.IsPublished = in.IsPublished
}

// reindex pushes the stored post to the search index. Failures are logged only.
func (s *BlogService) reindex(ctx context.Context, id int64) {
	if s.Index == nil {
		return
	}
	p, err := s.Posts.GetByID(ctx, id)
	if err == nil {
		err = s.Index.IndexPost(ctx, *p)
	}
	if err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("post_id", id).Warn("search index update failed")
	}
}
