package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/triptale-app/triptale-backend/internal/api/http"
	apimw "github.com/triptale-app/triptale-backend/internal/api/http/middleware"
	"github.com/triptale-app/triptale-backend/internal/applications"
	"github.com/triptale-app/triptale-backend/internal/auth"
	authhttp "github.com/triptale-app/triptale-backend/internal/auth/http"
	"github.com/triptale-app/triptale-backend/internal/auth/middleware"
	"github.com/triptale-app/triptale-backend/internal/bookings"
	"github.com/triptale-app/triptale-backend/internal/packages"
	"github.com/triptale-app/triptale-backend/internal/payments"
	"github.com/triptale-app/triptale-backend/internal/stories"
	"github.com/triptale-app/triptale-backend/internal/users/domain"
	userhttp "github.com/triptale-app/triptale-backend/internal/users/http"
	userrepo "github.com/triptale-app/triptale-backend/internal/users/repository"
)

// RouterDeps carries the process-wide collaborators, built once in main.
type RouterDeps struct {
	ServiceName string
	Version     string
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Tokens      *auth.TokenService
	Provider    auth.ProviderVerifier
	Intents     payments.IntentCreator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(apimw.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "tripTale server is running.")
	})

	userRepo := userrepo.NewRepo(dep.DB)
	pkgRepo := packages.NewRepo(dep.DB)
	pkgCache := packages.NewCache(dep.Redis)
	bookingRepo := bookings.NewRepo(dep.DB)
	paymentRepo := payments.NewRepo(dep.DB)
	storyRepo := stories.NewRepo(dep.DB)
	applicationRepo := applications.NewRepo(dep.DB)

	// Guards. Authentication always runs before any of them; admin and
	// staff re-read the stored role on every request.
	authn := middleware.Authenticate(dep.Tokens, dep.Provider)
	owner := middleware.RequireOwner("email")
	admin := middleware.RequireAdmin(userRepo)
	staff := middleware.RequireRole(userRepo, domain.RoleAdmin, domain.RoleGuide)

	limiter := apimw.NewRateLimiter(apimw.DefaultRateLimiterConfig())
	authhttp.New(dep.Tokens).Register(r, limiter.Middleware())

	userhttp.New(userRepo).Register(r, authn, owner, admin)
	packages.NewHandler(pkgRepo, pkgCache).Register(r, authn, staff)
	bookings.NewHandler(bookingRepo).Register(r, authn)
	payments.NewHandler(paymentRepo, dep.Intents).Register(r, authn, admin)
	stories.NewHandler(storyRepo).Register(r, authn)
	applications.NewHandler(applicationRepo).Register(r, authn, admin)

	return r
}
