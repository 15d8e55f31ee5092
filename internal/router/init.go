package router

import (
	app "github.com/oksasatya/blogicum/internal/application"
	"github.com/oksasatya/blogicum/internal/container"
	repo "github.com/oksasatya/blogicum/internal/domain/repository"
	"github.com/oksasatya/blogicum/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/blogicum/internal/infrastructure/postgres"
	"github.com/oksasatya/blogicum/internal/infrastructure/search"
	handlers "github.com/oksasatya/blogicum/internal/interface/http"
	"github.com/oksasatya/blogicum/internal/router/modules"
)

type Repositories struct {
	Users      repo.UserRepository
	Categories repo.CategoryRepository
	Posts      repo.PostRepository
	Comments   repo.CommentRepository
}

// buildRepositories prefers Postgres and falls back to the in-memory store
// when no pool was configured.
func buildRepositories() Repositories {
	if pool := container.GetPGPool(); pool != nil {
		return Repositories{
			Users:      pginfra.NewUserRepository(pool),
			Categories: pginfra.NewCategoryRepository(pool),
			Posts:      pginfra.NewPostRepository(pool),
			Comments:   pginfra.NewCommentRepository(pool),
		}
	}
	store := container.GetMemoryStore()
	if store == nil {
		store = memory.NewStore()
		container.SetMemoryStore(store)
	}
	return Repositories{
		Users:      store.Users(),
		Categories: store.Categories(),
		Posts:      store.Posts(),
		Comments:   store.Comments(),
	}
}

type UserModuleDeps struct {
	Service *app.Service
	Handler *handlers.UserHandler
}

func buildUserDeps(repos Repositories) UserModuleDeps {
	cfg := container.GetConfig()
	service := app.NewService(
		repos.Users,
		container.GetJWT(),
		container.GetRedis(),
		container.GetLogger(),
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)

	return UserModuleDeps{Service: service, Handler: handler}
}

type BlogModuleDeps struct {
	Service *app.BlogService
	Handler *handlers.BlogHandler
}

// buildBlogDeps attaches the optional search index, notification publisher
// and image store only when they were configured.
func buildBlogDeps(repos Repositories, users *app.Service) BlogModuleDeps {
	cfg := container.GetConfig()
	service := app.NewBlogService(repos.Posts, repos.Categories, repos.Comments, repos.Users, container.GetLogger())
	service.PublicBaseURL = cfg.PublicBaseURL

	if es := container.GetES(); es != nil && cfg.SearchEnabled {
		service.Index = search.NewPostIndex(es, cfg.ESPostsIndex)
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.NotifyEnabled {
		service.Publisher = pub
	}
	if up := container.GetUploader(); up != nil {
		service.Images = up
	}

	return BlogModuleDeps{
		Service: service,
		Handler: handlers.NewBlogHandler(service, users, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	repos := buildRepositories()
	userDeps := buildUserDeps(repos)
	blogDeps := buildBlogDeps(repos, userDeps.Service)

	r.Add(modules.NewUserModule(userDeps.Handler, container.GetJWT()))
	r.Add(modules.NewBlogModule(blogDeps.Handler, container.GetJWT()))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
