package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"festreg/internal/auth"
	"festreg/internal/badge"
	"festreg/internal/config"
	"festreg/internal/contact"
	"festreg/internal/httpmiddleware"
	"festreg/internal/metrics"
	"festreg/internal/queue"
	"festreg/internal/registration"
	"festreg/internal/store"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := runHTTP(cfg); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Printf("warning: db not reachable: %v", err)
	}
	defer func() {
		if db != nil {
			_ = db.Close()
		}
	}()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "festreg:decisions")
	}

	regRepo := registration.NewRepository(db.Client)
	regSvc := registration.NewService(regRepo)
	msgRepo := contact.NewRepository(db.Client)
	gen := badge.NewGenerator()
	m := metrics.New()
	ctx := context.Background()

	r := gin.New()

	// Recovery middleware
	r.Use(gin.Recovery())

	// Custom logger
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))

	// CORS middleware
	r.Use(corsMiddleware())

	// Security headers
	r.Use(securityHeaders())

	limiter := httpmiddleware.NewSimpleTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		redisHealthy := redisClient.Healthy(c.Request.Context())
		dbHealthy := db != nil
		status := http.StatusOK
		if !redisHealthy || !dbHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisHealthy, "db": dbHealthy})
	})

	r.POST("/api/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := auth.CheckCredentials(req.Username, req.Password, cfg.AdminUser, cfg.AdminPassHash); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		tokens, err := auth.Issue(req.Username, "admin", cfg.JWTIssuer, cfg.JWTSigningKey, cfg.AccessTTL, cfg.RefreshTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":         tokens.AccessToken,
			"refresh_token": tokens.RefreshToken,
			"expires_at":    tokens.AccessExp.Unix(),
		})
	})

	// Public endpoints, rate limited to keep form spam out of the review queue.
	pub := r.Group("/api", limiter.GinMiddleware())

	pub.POST("/inscriptions", func(c *gin.Context) {
		var req registration.Registrant
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reg, err := regSvc.Register(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m.Registrations.Inc()
		c.JSON(http.StatusCreated, gin.H{"message": "inscription created", "data": reg})
	})

	pub.GET("/inscriptions/check", func(c *gin.Context) {
		reg, err := regSvc.CheckStatus(c.Request.Context(), c.Query("email"))
		if err != nil {
			if err == registration.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": reg})
	})

	pub.GET("/badges/:badgeID", func(c *gin.Context) {
		reg, err := regRepo.GetByBadgeID(c.Request.Context(), c.Param("badgeID"))
		if err != nil {
			if err == registration.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "badge not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		serveBadge(c, gen, m, reg)
	})

	pub.POST("/messages", func(c *gin.Context) {
		var req contact.Message
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		msg, err := msgRepo.Insert(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "message sent", "data": msg})
	})

	// Admin endpoints.
	admin := r.Group("/api", auth.AdminAuth(cfg.JWTSigningKey, cfg.JWTIssuer))

	admin.GET("/inscriptions", func(c *gin.Context) {
		limit, offset := 50, 0
		if v := c.Query("limit"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				limit = parsed
			}
		}
		if v := c.Query("offset"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil {
				offset = parsed
			}
		}
		regs, err := regRepo.List(c.Request.Context(), registration.Status(c.Query("status")), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"inscriptions": regs})
	})

	admin.GET("/messages", func(c *gin.Context) {
		msgs, err := msgRepo.List(c.Request.Context(), 100, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	})

	admin.PATCH("/inscriptions/:id/status", func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		decision, err := registration.ParseDecision(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		reg, err := regSvc.Decide(c.Request.Context(), c.Param("id"), decision)
		if err != nil {
			switch err {
			case registration.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "inscription not found"})
			case registration.ErrAlreadyDecided:
				c.JSON(http.StatusConflict, gin.H{"error": "inscription already decided"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
			}
			return
		}

		m.Decisions.WithLabelValues(string(decision)).Inc()

		// The decision is committed; notification delivery is best effort.
		// A failed publish leaves email_sent false for a manual resend.
		if err := publishDecision(ctx, q, reg.ID); err != nil {
			log.Printf("queue publish failed for %s: %v", reg.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("status updated to %s", decision), "data": reg})
	})

	admin.POST("/inscriptions/:id/resend", func(c *gin.Context) {
		reg, err := regRepo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == registration.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "inscription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if !reg.Status.Decided() {
			c.JSON(http.StatusConflict, gin.H{"error": "inscription not decided yet"})
			return
		}
		if err := publishDecision(ctx, q, reg.ID); err != nil {
			log.Printf("queue publish failed for %s: %v", reg.ID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notification queue unavailable"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"message": "notification queued"})
	})

	admin.GET("/inscriptions/:id/badge", func(c *gin.Context) {
		reg, err := regRepo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			if err == registration.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "inscription not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		serveBadge(c, gen, m, reg)
	})

	// Entry-desk scan: decode a QR payload and validate it against the
	// stored record. Legacy verbose payloads are accepted.
	admin.POST("/scan", func(c *gin.Context) {
		var req struct {
			Data string `json:"data" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		payload, err := badge.ParsePayload([]byte(req.Data))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid QR payload"})
			return
		}
		reg, err := regRepo.GetByID(c.Request.Context(), payload.ID)
		if err != nil {
			if err == registration.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "badge not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"valid":    reg.Status.Valid(),
			"name":     reg.FullName(),
			"profile":  reg.Profile,
			"badge_id": reg.BadgeID,
		})
	})

	// Graceful shutdown
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 10 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	log.Println("Server exited")
	return nil
}

// serveBadge streams a freshly rendered badge PDF to the response.
func serveBadge(c *gin.Context, gen *badge.Generator, m *metrics.Metrics, reg registration.Registrant) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reg.BadgeFilename()))
	if err := gen.RenderTo(c.Writer, reg); err != nil {
		log.Printf("badge render failed for %s: %v", reg.ID, err)
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "badge generation failed"})
		}
		return
	}
	m.BadgesRendered.Inc()
}

func publishDecision(ctx context.Context, q queue.Queue, id string) error {
	body, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}
	return q.Publish(ctx, queue.Message{Type: "decision", Body: body})
}

// CORS middleware for browser requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Security headers middleware
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS in production
		if gin.Mode() == gin.ReleaseMode {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
