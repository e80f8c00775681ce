package router

import (
	"blog-backend/internal/application"
	"blog-backend/internal/container"
	"blog-backend/internal/infrastructure/media"
	pginfra "blog-backend/internal/infrastructure/postgres"
	handlers "blog-backend/internal/interface/http"
	"blog-backend/internal/router/modules"
	"blog-backend/pkg/helpers"
)

func buildMediaGateway() *media.GCSGateway {
	return media.NewGCSGateway(container.GetGCS(), container.GetConfig().GCSBucket)
}

func buildUserHandler(users *pginfra.UserRepository) *handlers.UserHandler {
	cfg := container.GetConfig()

	// a typed nil *RabbitPublisher must not end up inside the interface
	var jobs application.EmailQueue
	if pub := container.GetRabbitPub(); pub != nil {
		jobs = pub
	}

	adminEmail := cfg.ContactEmail
	if adminEmail == "" {
		adminEmail = cfg.MailgunSender
	}

	service := application.NewUserService(
		users,
		container.GetJWT(),
		buildMediaGateway(),
		container.GetMailgun(),
		jobs,
		container.GetLogger(),
		cfg.AppName,
		cfg.FrontendURL,
		adminEmail,
		cfg.MailSendEnabled,
	)

	cookies := helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	return handlers.NewUserHandler(service, cookies, container.GetLogger())
}

func buildBlogHandler(users *pginfra.UserRepository) *handlers.BlogHandler {
	cfg := container.GetConfig()

	service := application.NewBlogService(
		pginfra.NewBlogRepository(container.GetPGPool()),
		users,
		buildMediaGateway(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESBlogsIndex,
	)

	return handlers.NewBlogHandler(service, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())

	r.Add(modules.NewUserModule(buildUserHandler(users), container.GetJWT()))
	r.Add(modules.NewBlogModule(buildBlogHandler(users), container.GetJWT()))
}
