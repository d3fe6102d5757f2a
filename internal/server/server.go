package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/daicaxom/tactics-server/internal/auth"
	"github.com/daicaxom/tactics-server/internal/battle"
	"github.com/daicaxom/tactics-server/internal/database"
	"github.com/daicaxom/tactics-server/internal/equipment"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/gacha"
	"github.com/daicaxom/tactics-server/internal/handler"
	"github.com/daicaxom/tactics-server/internal/hero"
	"github.com/daicaxom/tactics-server/internal/logger"
	"github.com/daicaxom/tactics-server/internal/metrics"
	"github.com/daicaxom/tactics-server/internal/player"
	"github.com/daicaxom/tactics-server/internal/story"
	"github.com/daicaxom/tactics-server/internal/team"
)

// Server wraps the chi router and services behind the tactics HTTP API.
type Server struct {
	httpServer       *http.Server
	dbPool           database.Pool
	authService      auth.Service
	playerService    player.Service
	heroService      hero.Service
	equipmentService equipment.Service
	teamService      team.Service
	storyService     story.Service
	gachaService     gacha.Service
	battleService    battle.Service
}

// Dependencies wires every service NewServer needs to build its route tree.
type Dependencies struct {
	Port           int
	TrustedProxies []string
	Version        string
	DBPool         database.Pool
	EventBus       event.Bus
	AuthService    auth.Service
	PlayerService  player.Service
	HeroService    hero.Service
	EquipService   equipment.Service
	TeamService    team.Service
	StoryService   story.Service
	GachaService   gacha.Service
	BattleService  battle.Service
}

// NewServer builds the chi route tree, wires the security/logging/metrics
// middleware stack ahead of it, and returns a Server ready to Start.
func NewServer(deps Dependencies) *Server {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(deps.AuthService, deps.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(deps.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion(deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(deps.AuthService)
	playerHandler := handler.NewPlayerHandler(deps.PlayerService)
	heroHandler := handler.NewHeroHandler(deps.HeroService)
	equipmentHandler := handler.NewEquipmentHandler(deps.EquipService)
	teamHandler := handler.NewTeamHandler(deps.TeamService)
	storyHandler := handler.NewStoryHandler(deps.StoryService)
	gachaHandler := handler.NewGachaHandler(deps.GachaService)
	battleHandler := handler.NewBattleHandler(deps.BattleService)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/refresh", authHandler.HandleRefresh)
		})

		r.Route("/player", func(r chi.Router) {
			r.Get("/profile", playerHandler.HandleGetProfile)
		})

		r.Route("/heroes", func(r chi.Router) {
			r.Get("/", heroHandler.HandleList)
			r.Route("/{heroID}", func(r chi.Router) {
				r.Get("/", heroHandler.HandleGet)
				r.Post("/level-up", heroHandler.HandleLevelUp)
				r.Post("/ascend", heroHandler.HandleAscend)
				r.Post("/awaken", heroHandler.HandleAwaken)
				r.Post("/equip", heroHandler.HandleEquip)
				r.Post("/unequip", heroHandler.HandleUnequip)
			})
		})

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", equipmentHandler.HandleList)
			r.Post("/fuse", equipmentHandler.HandleFuse)
			r.Post("/{equipmentID}/enhance", equipmentHandler.HandleEnhance)
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.HandleList)
			r.Post("/", teamHandler.HandleCreate)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Put("/", teamHandler.HandleUpdate)
				r.Delete("/", teamHandler.HandleDelete)
				r.Get("/power", teamHandler.HandlePower)
			})
		})

		r.Route("/story", func(r chi.Router) {
			r.Get("/progress", storyHandler.HandleGetProgress)
			r.Route("/stages/{stageID}", func(r chi.Router) {
				r.Get("/unlocked", storyHandler.HandleIsStageUnlocked)
				r.Post("/start", storyHandler.HandleStartStage)
			})
		})

		r.Route("/gacha", func(r chi.Router) {
			r.Get("/history", gachaHandler.HandleGetHistory)
			r.Route("/{bannerID}", func(r chi.Router) {
				r.Post("/pull", gachaHandler.HandlePull)
				r.Get("/pity", gachaHandler.HandleGetPity)
			})
		})

		r.Route("/battles", func(r chi.Router) {
			r.Post("/", battleHandler.HandleStart)
			r.Route("/{battleID}", func(r chi.Router) {
				r.Post("/attack", battleHandler.HandleAttack)
				r.Post("/skill", battleHandler.HandleSkill)
				r.Post("/heal", battleHandler.HandleHeal)
				r.Post("/advance-turn", battleHandler.HandleAdvanceTurn)
				r.Get("/actors/{actorID}/ai-action", battleHandler.HandleAIChooseAction)
				r.Get("/check-end", battleHandler.HandleCheckEnd)
				r.Post("/rewards", battleHandler.HandleCalculateRewards)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", deps.Port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:           deps.DBPool,
		authService:      deps.AuthService,
		playerService:    deps.PlayerService,
		heroService:      deps.HeroService,
		equipmentService: deps.EquipService,
		teamService:      deps.TeamService,
		storyService:     deps.StoryService,
		gachaService:     deps.GachaService,
		battleService:    deps.BattleService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code and error message
type responseWriter struct {
	http.ResponseWriter
	statusCode   int
	written      bool
	errorMessage string
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}

	// Capture error message from JSON error responses (status >= 400)
	if rw.statusCode >= 400 && rw.errorMessage == "" && len(b) > 0 {
		var errorResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(b, &errorResp); err == nil && errorResp.Error != "" {
			rw.errorMessage = errorResp.Error
		}
	}

	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, path := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, path) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := logger.GenerateRequestID()

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		logFields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration,
		}
		if rw.errorMessage != "" {
			logFields = append(logFields, "error", rw.errorMessage)
		}
		log.Info(LogMsgRequestCompleted, logFields...)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
