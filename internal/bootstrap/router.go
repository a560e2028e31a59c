package bootstrap

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"

	httpapi "github.com/portfolio-website/portfolio-server/internal/api/http"
	"github.com/portfolio-website/portfolio-server/internal/api/http/middleware"
	"github.com/portfolio-website/portfolio-server/internal/api/http/view"
	contacthttp "github.com/portfolio-website/portfolio-server/internal/contact/http"
	"github.com/portfolio-website/portfolio-server/internal/metrics"
	projectshttp "github.com/portfolio-website/portfolio-server/internal/projects/http"
	"github.com/portfolio-website/portfolio-server/web"
)

const sessionName = "portfolio_session"

type RouterDeps struct {
	ServiceName    string
	Version        string
	Production     bool
	SessionSecret  string
	TrustedProxies []string
	CORSOrigins    []string
	ImageOrigin    string

	Projects projectshttp.Projects
	Contact  contacthttp.Relay
	Metrics  *metrics.Metrics
	Checks   map[string]httpapi.Check
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	if dep.SessionSecret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if dep.Metrics == nil {
		dep.Metrics = metrics.New()
	}

	tmpl, err := view.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	pages := httpapi.NewPagesHandler(web.RobotsTxt)

	r.Use(gin.CustomRecovery(pages.Recover))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(dep.Metrics.Middleware())
	r.Use(middleware.SecurityHeaders(dep.ImageOrigin))

	store := cookie.NewStore([]byte(dep.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   dep.Production,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.StaticFS("/static", http.FS(static))
	r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))

	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Checks).RegisterRoutes(r)
	pages.RegisterRoutes(r)

	projects := projectshttp.New(dep.Projects, dep.Metrics.StoreError)
	projects.RegisterPages(r)

	api := r.Group("/api/v1")
	if len(dep.CORSOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: dep.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "X-Request-Id"},
			MaxAge:       12 * time.Hour,
		}))
	}
	projects.RegisterAPI(api)

	contact := contacthttp.New(dep.Contact, csrf.GetToken)
	contact.Register(r, csrf.Middleware(csrf.Options{
		Secret:    dep.SessionSecret,
		ErrorFunc: contacthttp.CSRFFailure,
	}))

	r.NoRoute(pages.NotFound)
	return r, nil
}
