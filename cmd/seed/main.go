package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/oksasatya/blogicum/config"
	"github.com/oksasatya/blogicum/internal/domain/repository"
	pginfra "github.com/oksasatya/blogicum/internal/infrastructure/postgres"
	"github.com/oksasatya/blogicum/internal/infrastructure/search"
	"github.com/oksasatya/blogicum/pkg/helpers"
)

type seedCategory struct {
	Title       string
	Description string
	Published   bool
}

var categories = []seedCategory{
	{"Путешествия", "Заметки о поездках и маршрутах", true},
	{"Кулинария", "Рецепты и гастрономические открытия", true},
	{"Черновики", "Скрытая категория: её посты не видны в ленте", false},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	email := "demo@blogicum.local"
	password := "password123"
	username := "demo"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, 'Demo', 'User')
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", userID, username, email, password)

	catIDs := make([]int64, 0, len(categories))
	for _, c := range categories {
		id, err := upsertCategory(ctx, pool, c)
		if err != nil {
			log.Fatalf("failed to seed category %q: %v", c.Title, err)
		}
		catIDs = append(catIDs, id)
		fmt.Printf("category: id=%d slug=%s published=%v\n", id, helpers.Slugify(c.Title), c.Published)
	}

	var existing int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, userID).Scan(&existing); err != nil {
		log.Fatalf("failed to count posts: %v", err)
	}
	if existing == 0 {
		now := time.Now()
		posts := []struct {
			title     string
			category  int64
			pubDate   time.Time
			published bool
		}{
			{"Казань за выходные", catIDs[0], now.Add(-48 * time.Hour), true},
			{"Пельмени по-уральски", catIDs[1], now.Add(-24 * time.Hour), true},
			{"Отложенный пост", catIDs[0], now.Add(72 * time.Hour), true},
			{"Снятый с публикации", catIDs[1], now.Add(-time.Hour), false},
			{"Пост в скрытой категории", catIDs[2], now.Add(-time.Hour), true},
		}
		for _, p := range posts {
			if _, err := pool.Exec(ctx, `
				INSERT INTO posts (author_id, category_id, title, text, pub_date, is_published)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, userID, p.category, p.title, "Текст поста «"+p.title+"».", p.pubDate, p.published); err != nil {
				log.Fatalf("failed to seed post %q: %v", p.title, err)
			}
		}
		fmt.Printf("seeded %d posts (2 visible)\n", len(posts))
	}

	if cfg.SearchEnabled {
		if err := reindexAll(ctx, cfg, pool); err != nil {
			log.Fatalf("failed to index posts: %v", err)
		}
	}
}

func upsertCategory(ctx context.Context, pool *pgxpool.Pool, c seedCategory) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO categories (title, description, slug, is_published)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description
		RETURNING id
	`, c.Title, c.Description, helpers.Slugify(c.Title), c.Published).Scan(&id)
	return id, err
}

// reindexAll pushes every stored post into the search index.
func reindexAll(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return err
	}
	index := search.NewPostIndex(es, cfg.ESPostsIndex)
	posts := pginfra.NewPostRepository(pool)

	const batch = 100
	for offset := 0; ; offset += batch {
		list, err := posts.List(ctx, repository.PostFilter{}, batch, offset)
		if err != nil {
			return err
		}
		for _, p := range list {
			if err := index.IndexPost(ctx, p); err != nil {
				return fmt.Errorf("index post %d: %w", p.ID, err)
			}
		}
		if len(list) < batch {
			fmt.Printf("indexed %d posts into %q\n", offset+len(list), cfg.ESPostsIndex)
			return nil
		}
	}
}
