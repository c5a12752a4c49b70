package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"flixnet/internal/auth"
	"flixnet/internal/logging"
	"flixnet/internal/ratelimit"
	"flixnet/internal/watchlist"
	"flixnet/internal/websocket"
)

// Deps is everything the HTTP layer needs. Hub and AuthLimiter are optional.
// Forwarding headers are honored only from TrustedProxies.
type Deps struct {
	DB             *sql.DB
	Tokens         *auth.Tokens
	Watchlist      *watchlist.Service
	Hub            *websocket.Hub
	AuthLimiter    *ratelimit.Limiter
	CORSOrigins    []string
	TrustedProxies []string
	Logger         zerolog.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		d.Logger.Warn().Err(err).Msg("ignoring trusted proxies")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(d.Logger))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	h := &handlers{db: d.DB, tokens: d.Tokens, watchlist: d.Watchlist, log: d.Logger}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Flixnet backend is running"})
	})
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// AUTH
	authRoutes := r.Group("/")
	if d.AuthLimiter != nil {
		authRoutes.Use(d.AuthLimiter.Middleware())
	}
	authRoutes.POST("/signup", h.signup)
	authRoutes.POST("/login", h.login)

	// PUBLIC MOVIES
	r.GET("/movies", h.listMovies)
	r.GET("/movies/:id", h.getMovie)

	// PROTECTED
	authed := r.Group("/")
	authed.Use(auth.RequireJWT(d.Tokens))
	authed.GET("/me", h.me)
	authed.POST("/movies", h.createMovie)

	authed.GET("/watchlist", h.listWatchlist)
	authed.GET("/watchlist/:movieId", h.watchlistEntry((*watchlist.Service).Get))
	authed.POST("/watchlist/:movieId", h.watchlistEntry((*watchlist.Service).Add))
	authed.DELETE("/watchlist/:movieId", h.watchlistEntry((*watchlist.Service).Remove))
	authed.POST("/watchlist/toggle/:movieId", h.watchlistEntry((*watchlist.Service).Toggle))

	if d.Hub != nil {
		authed.GET("/ws/watchlist", websocket.HandleWebSocket(d.Hub))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        5 * time.Minute,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
