package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/blogicum/internal/domain/blog"
	"github.com/oksasatya/blogicum/internal/domain/entity"
	"github.com/oksasatya/blogicum/internal/domain/repository"
)

const postSelect = `
	SELECT p.id, p.author_id, p.category_id, p.title, p.text, p.pub_date, p.is_published, p.image_url, p.created_at,
	       c.id, c.title, c.description, c.slug, c.is_published, c.created_at,
	       u.id, u.username, u.first_name, u.last_name
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.author_id`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// postWhere renders the filter as a WHERE clause with positional args.
func postWhere(f repository.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.ID != 0 {
		add("p.id = $%d", f.ID)
	}
	if f.AuthorID != "" {
		add("p.author_id = $%d", f.AuthorID)
	}
	if f.CategorySlug != "" {
		add("c.slug = $%d", f.CategorySlug)
	}
	if f.IDs != nil {
		add("p.id = ANY($%d)", f.IDs)
	}
	if v := f.Visibility; v != nil {
		conds = append(conds, "p.is_published")
		add("p.pub_date < $%d", v.Now)
		add("c.is_published = $%d", v.CategoryPublished)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanPost(row pgx.Row) (*entity.Post, error) {
	p := &entity.Post{Category: &entity.Category{}, Author: &entity.User{}}
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Text, &p.PubDate, &p.IsPublished, &p.ImageURL, &p.CreatedAt,
		&p.Category.ID, &p.Category.Title, &p.Category.Description, &p.Category.Slug, &p.Category.IsPublished, &p.Category.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.FirstName, &p.Author.LastName,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, category_id, title, text, pub_date, is_published, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, p.AuthorID, p.CategoryID, p.Title, p.Text, p.PubDate, p.IsPublished, p.ImageURL)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	return r.FindOne(ctx, repository.PostFilter{ID: id})
}

func (r *PostRepository) FindOne(ctx context.Context, f repository.PostFilter) (*entity.Post, error) {
	where, args := postWhere(f)
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+where+` LIMIT 1`, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.ErrNotFound
		}
		return nil, fmt.Errorf("select post: %w", err)
	}
	return p, nil
}

func (r *PostRepository) Count(ctx context.Context, f repository.PostFilter) (int, error) {
	where, args := postWhere(f)
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM posts p
		JOIN categories c ON c.id = p.category_id`+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) List(ctx context.Context, f repository.PostFilter, limit, offset int) ([]entity.Post, error) {
	where, args := postWhere(f)
	args = append(args, limit, offset)
	query := postSelect + where +
		fmt.Sprintf(` ORDER BY p.pub_date DESC, p.id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]entity.Post, 0, limit)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, p *entity.Post) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE posts
		SET category_id = $1, title = $2, text = $3, pub_date = $4, is_published = $5, image_url = $6
		WHERE id = $7
	`, p.CategoryID, p.Title, p.Text, p.PubDate, p.IsPublished, p.ImageURL, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if res.RowsAffected() == 0 {
		return blog.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.RowsAffected() == 0 {
		return blog.ErrNotFound
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
