package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/infrastructure/memory"
	"github.com/oksasatya/blogicum/pkg/mailer"
)

type fixture struct {
	store  *memory.Store
	svc    *BlogService
	now    time.Time
	alice  *entity.User
	bob    *entity.User
	travel *entity.Category
	hidden *entity.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	store := memory.NewStore()
	clock := now
	store.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	alice := &entity.User{Username: "alice", Email: "alice@example.com"}
	bob := &entity.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, store.Users().Create(ctx, alice))
	require.NoError(t, store.Users().Create(ctx, bob))

	travel := &entity.Category{Title: "Travel", Slug: "travel", IsPublished: true}
	hidden := &entity.Category{Title: "Hidden", Slug: "hidden", IsPublished: false}
	store.AddCategory(travel)
	store.AddCategory(hidden)

	svc := NewBlogService(store.Posts(), store.Categories(), store.Comments(), store.Users(), nil)
	svc.Now = func() time.Time { return now }

	return &fixture{store: store, svc: svc, now: now, alice: alice, bob: bob, travel: travel, hidden: hidden}
}

func (f *fixture) createPost(t *testing.T, author *entity.User, in PostFields) int64 {
	t.Helper()
	res, err := f.svc.CreatePost(context.Background(), author, in)
	require.NoError(t, err)
	return res.ID
}

func (f *fixture) visibleFields(title string, age time.Duration) PostFields {
	return PostFields{Title: title, Text: "body", PubDate: f.now.Add(-age), CategoryID: f.travel.ID, IsPublished: true}
}

func TestListPostsVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	visible := f.createPost(t, f.alice, f.visibleFields("visible", time.Hour))
	f.createPost(t, f.alice, PostFields{Title: "draft", PubDate: f.now.Add(-time.Hour), CategoryID: f.travel.ID, IsPublished: false})
	f.createPost(t, f.alice, PostFields{Title: "future", PubDate: f.now.Add(time.Hour), CategoryID: f.travel.ID, IsPublished: true})
	f.createPost(t, f.alice, PostFields{Title: "exactly now", PubDate: f.now, CategoryID: f.travel.ID, IsPublished: true})
	f.createPost(t, f.alice, PostFields{Title: "hidden category", PubDate: f.now.Add(-time.Hour), CategoryID: f.hidden.ID, IsPublished: true})

	page, err := f.svc.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible, page.Items[0].ID)
	assert.Equal(t, 1, page.Meta.TotalItems)
}

func TestListPostsPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		f.createPost(t, f.alice, f.visibleFields(fmt.Sprintf("post %d", i), time.Duration(i+1)*time.Hour))
	}

	first, err := f.svc.ListPosts(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.True(t, first.Meta.HasNext)
	assert.Equal(t, "post 0", first.Items[0].Title, "newest first")

	third, err := f.svc.ListPosts(ctx, "3")
	require.NoError(t, err)
	assert.Len(t, third.Items, 5)
	assert.False(t, third.Meta.HasNext)

	clamped, err := f.svc.ListPosts(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, 3, clamped.Meta.Number)
}

func TestListPostsCommentCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.alice, f.visibleFields("p", time.Hour))
	other := f.createPost(t, f.alice, f.visibleFields("q", 2*time.Hour))
	for i := 0; i < 3; i++ {
		_, err := f.svc.CreateComment(ctx, f.bob, id, "hi")
		require.NoError(t, err)
	}

	page, err := f.svc.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, id, page.Items[0].ID)
	assert.Equal(t, 3, page.Items[0].CommentCount)
	assert.Equal(t, other, page.Items[1].ID)
	assert.Equal(t, 0, page.Items[1].CommentCount)
}

func TestPostDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	visible := f.createPost(t, f.alice, f.visibleFields("v", time.Hour))
	draft := f.createPost(t, f.alice, PostFields{Title: "d", PubDate: f.now.Add(-time.Hour), CategoryID: f.travel.ID})
	inHidden := f.createPost(t, f.alice, PostFields{Title: "h", PubDate: f.now.Add(-time.Hour), CategoryID: f.hidden.ID, IsPublished: true})

	d, err := f.svc.PostDetail(ctx, visible)
	require.NoError(t, err)
	assert.Equal(t, "v", d.Post.Title)
	assert.Empty(t, d.Comments)

	for _, id := range []int64{draft, inHidden, 9999} {
		d, err := f.svc.PostDetail(ctx, id)
		assert.ErrorIs(t, err, blog.ErrNotFound)
		assert.Nil(t, d)
	}
}

func TestCategoryPosts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	food := &entity.Category{Title: "Food", Slug: "food", IsPublished: true}
	f.store.AddCategory(food)

	inTravel := f.createPost(t, f.alice, f.visibleFields("travel", time.Hour))
	f.createPost(t, f.alice, PostFields{Title: "food", PubDate: f.now.Add(-time.Hour), CategoryID: food.ID, IsPublished: true})

	page, err := f.svc.CategoryPosts(ctx, "travel", "")
	require.NoError(t, err)
	assert.Equal(t, "travel", page.Category.Slug)
	require.Len(t, page.Posts.Items, 1)
	assert.Equal(t, inTravel, page.Posts.Items[0].ID)

	_, err = f.svc.CategoryPosts(ctx, "hidden", "")
	assert.ErrorIs(t, err, blog.ErrNotFound)

	_, err = f.svc.CategoryPosts(ctx, "nope", "")
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createPost(t, f.alice, f.visibleFields("public", time.Hour))
	f.createPost(t, f.alice, PostFields{Title: "draft", PubDate: f.now.Add(-time.Hour), CategoryID: f.travel.ID})
	f.createPost(t, f.bob, f.visibleFields("bob's", time.Hour))

	own, err := f.svc.Profile(ctx, f.alice, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, 2, own.Posts.Meta.TotalItems)

	seen, err := f.svc.Profile(ctx, f.bob, "alice", "")
	require.NoError(t, err)
	require.Len(t, seen.Posts.Items, 1)
	assert.Equal(t, "public", seen.Posts.Items[0].Title)

	_, err = f.svc.Profile(ctx, f.bob, "carol", "")
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.CreatePost(ctx, f.alice, PostFields{
		Title:       "  Hello  ",
		Text:        "<p>ok</p><script>x()</script>",
		PubDate:     f.now.Add(-time.Minute),
		CategoryID:  f.travel.ID,
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "/profile/alice/", res.Redirect)

	p, err := f.store.Posts().GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, p.AuthorID)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, "<p>ok</p>", p.Text)

	_, err = f.svc.CreatePost(ctx, nil, f.visibleFields("x", time.Hour))
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)

	bad := f.visibleFields("x", time.Hour)
	bad.CategoryID = 404
	_, err = f.svc.CreatePost(ctx, f.alice, bad)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestUpdatePostOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.bob, f.visibleFields("bob's", time.Hour))

	valid := f.visibleFields("changed", time.Hour)
	invalid := PostFields{CategoryID: 404}
	for _, in := range []PostFields{valid, invalid} {
		_, err := f.svc.UpdatePost(ctx, f.alice, id, in)
		assert.ErrorIs(t, err, blog.ErrForbidden)
	}
	assert.ErrorIs(t, f.svc.CheckPostOwner(ctx, f.alice, id), blog.ErrForbidden)

	_, err := f.svc.UpdatePost(ctx, nil, id, valid)
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)

	_, err = f.svc.UpdatePost(ctx, f.bob, 9999, valid)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	res, err := f.svc.UpdatePost(ctx, f.bob, id, valid)
	require.NoError(t, err)
	assert.Equal(t, blog.PostDetailPath(id), res.Redirect)
	p, err := f.store.Posts().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "changed", p.Title)
	assert.Equal(t, f.bob.ID, p.AuthorID)
}

func TestUpdatePostAllowsDraftOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.alice, PostFields{Title: "draft", PubDate: f.now.Add(time.Hour), CategoryID: f.travel.ID})

	_, err := f.svc.UpdatePost(ctx, f.alice, id, f.visibleFields("live", time.Hour))
	require.NoError(t, err)

	d, err := f.svc.PostDetail(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "live", d.Post.Title)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.alice, f.visibleFields("p", time.Hour))

	_, err := f.svc.DeletePost(ctx, f.bob, id)
	assert.ErrorIs(t, err, blog.ErrForbidden)

	res, err := f.svc.DeletePost(ctx, f.alice, id)
	require.NoError(t, err)
	assert.Equal(t, "/", res.Redirect)

	_, err = f.svc.DeletePost(ctx, f.alice, id)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

type recordingPublisher struct {
	jobs []mailer.EmailJob
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func TestCreateCommentAppearsInDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pub := &recordingPublisher{}
	f.svc.Publisher = pub
	f.svc.PublicBaseURL = "https://blog.example.com"
	id := f.createPost(t, f.alice, f.visibleFields("p", time.Hour))

	first, err := f.svc.CreateComment(ctx, f.bob, id, "hello")
	require.NoError(t, err)
	assert.Equal(t, blog.PostDetailPath(id), first.Redirect)
	_, err = f.svc.CreateComment(ctx, f.alice, id, "thanks")
	require.NoError(t, err)

	d, err := f.svc.PostDetail(ctx, id)
	require.NoError(t, err)
	require.Len(t, d.Comments, 2)
	assert.Equal(t, "hello", d.Comments[0].Text)
	assert.Equal(t, f.bob.ID, d.Comments[0].AuthorID)
	assert.Equal(t, id, d.Comments[0].PostID)
	assert.Equal(t, "thanks", d.Comments[1].Text)

	require.Len(t, pub.jobs, 1, "own comments do not notify")
	assert.Equal(t, "alice@example.com", pub.jobs[0].To)
	assert.Equal(t, "https://blog.example.com/posts/1/", pub.jobs[0].Data["PostURL"])
}

func TestCreateCommentErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.createPost(t, f.alice, PostFields{Title: "d", PubDate: f.now.Add(time.Hour), CategoryID: f.travel.ID})

	_, err := f.svc.CreateComment(ctx, nil, draft, "x")
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)

	_, err = f.svc.CreateComment(ctx, f.bob, 9999, "x")
	assert.ErrorIs(t, err, blog.ErrNotFound)

	_, err = f.svc.CreateComment(ctx, f.bob, draft, "  <b></b> ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = f.svc.CreateComment(ctx, f.bob, draft, "existing post is enough")
	assert.NoError(t, err)
}

func TestCommentMutations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.alice, f.visibleFields("p", time.Hour))
	otherPost := f.createPost(t, f.alice, f.visibleFields("q", time.Hour))
	c, err := f.svc.CreateComment(ctx, f.bob, id, "first")
	require.NoError(t, err)

	_, err = f.svc.UpdateComment(ctx, f.alice, id, c.ID, "hijack")
	assert.ErrorIs(t, err, blog.ErrForbidden)
	_, err = f.svc.DeleteComment(ctx, f.alice, id, c.ID)
	assert.ErrorIs(t, err, blog.ErrForbidden)
	_, err = f.svc.UpdateComment(ctx, f.bob, otherPost, c.ID, "wrong post")
	assert.ErrorIs(t, err, blog.ErrNotFound)
	_, err = f.svc.UpdateComment(ctx, nil, id, c.ID, "anon")
	assert.ErrorIs(t, err, blog.ErrUnauthenticated)

	res, err := f.svc.UpdateComment(ctx, f.bob, id, c.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, blog.PostDetailPath(id), res.Redirect)
	got, err := f.store.Comments().GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	res, err = f.svc.DeleteComment(ctx, f.bob, id, c.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.PostDetailPath(id), res.Redirect)
	_, err = f.store.Comments().GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

type fakeIndex struct {
	ids     []int64
	indexed map[int64]string
	deleted []int64
}

func (x *fakeIndex) IndexPost(_ context.Context, p entity.Post) error {
	if x.indexed == nil {
		x.indexed = map[int64]string{}
	}
	x.indexed[p.ID] = p.Title
	return nil
}

func (x *fakeIndex) DeletePost(_ context.Context, id int64) error {
	x.deleted = append(x.deleted, id)
	return nil
}

func (x *fakeIndex) SearchPostIDs(context.Context, string, int) ([]int64, error) {
	return x.ids, nil
}

func TestSearchPostsRechecksVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SearchPosts(ctx, "x", "")
	assert.ErrorIs(t, err, ErrSearchUnavailable)

	idx := &fakeIndex{}
	f.svc.Index = idx
	visible := f.createPost(t, f.alice, f.visibleFields("visible", time.Hour))
	draft := f.createPost(t, f.alice, PostFields{Title: "draft", PubDate: f.now.Add(-time.Hour), CategoryID: f.travel.ID})
	assert.Equal(t, "visible", idx.indexed[visible])

	idx.ids = []int64{draft, visible}
	page, err := f.svc.SearchPosts(ctx, "anything", "")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, visible, page.Items[0].ID)

	idx.ids = nil
	page, err = f.svc.SearchPosts(ctx, "nothing", "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	_, err = f.svc.DeletePost(ctx, f.alice, visible)
	require.NoError(t, err)
	assert.Equal(t, []int64{visible}, idx.deleted)
}

func TestSearchPostsPagesFilteredHits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := &fakeIndex{}
	f.svc.Index = idx

	for i := 0; i < 12; i++ {
		idx.ids = append(idx.ids, f.createPost(t, f.alice, f.visibleFields("hit", time.Duration(i+1)*time.Hour)))
	}
	scheduled := f.createPost(t, f.alice, PostFields{Title: "later", PubDate: f.now.Add(time.Hour), IsPublished: true, CategoryID: f.travel.ID})
	idx.ids = append([]int64{scheduled}, idx.ids...)

	page, err := f.svc.SearchPosts(ctx, "hit", "2")
	require.NoError(t, err)
	assert.Equal(t, 12, page.Meta.TotalItems)
	assert.Equal(t, 2, page.Meta.Number)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.Meta.HasNext)

	page, err = f.svc.SearchPosts(ctx, "hit", "")
	require.NoError(t, err)
	require.Len(t, page.Items, blog.PageSize)
	assert.Equal(t, idx.ids[1], page.Items[0].ID)
}

type fakeImages struct {
	path string
	body string
}

func (x *fakeImages) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	x.path, x.body = objectPath, string(b)
	return "https://storage.example.com/" + objectPath, nil
}

func TestUploadPostImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.createPost(t, f.alice, f.visibleFields("p", time.Hour))

	_, err := f.svc.UploadPostImage(ctx, f.alice, id, strings.NewReader("img"), "a.PNG", "image/png")
	assert.ErrorIs(t, err, ErrImagesUnavailable)

	images := &fakeImages{}
	f.svc.Images = images

	_, err = f.svc.UploadPostImage(ctx, f.bob, id, strings.NewReader("img"), "a.png", "image/png")
	assert.ErrorIs(t, err, blog.ErrForbidden)

	res, err := f.svc.UploadPostImage(ctx, f.alice, id, strings.NewReader("img"), "a.PNG", "image/png")
	require.NoError(t, err)
	assert.Equal(t, blog.PostDetailPath(id), res.Redirect)
	assert.True(t, strings.HasPrefix(images.path, fmt.Sprintf("posts/%d/", id)))
	assert.True(t, strings.HasSuffix(images.path, ".png"))
	assert.Equal(t, "img", images.body)

	p, err := f.store.Posts().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example.com/"+images.path, p.ImageURL)
}
