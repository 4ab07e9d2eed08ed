package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"school/internal/api"
	"school/internal/config"
	"school/internal/mail"
	"school/internal/model"
	"school/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		return
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	repo, err := model.InitRepository(&cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise repository")
		return
	}

	if repo != nil {
		if err := model.SeedOwnerAccount(context.Background(), repo, cfg); err != nil {
			logrus.WithError(err).Warn("failed to seed owner account")
		}
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise storage")
		return
	}

	mailer := mail.NewSMTPSender(cfg)
	if mailer == nil {
		logrus.Info("smtp not configured, outgoing email disabled")
	}

	httpHandler, err := api.NewHTTPHandler(cfg, repo, store, mailer)
	if err != nil {
		logrus.WithError(err).Error("failed to initialise http handler")
		return
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	apiGroup := r.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/signup", httpHandler.Signup)
	authGroup.POST("/login", httpHandler.Login)
	authGroup.GET("/me", httpHandler.AuthMiddleware(), httpHandler.Me)
	authGroup.PATCH("/profile", httpHandler.AuthMiddleware(), httpHandler.UpdateProfile)
	authGroup.POST("/picture", httpHandler.AuthMiddleware(), httpHandler.UploadPicture)

	// Everything below requires an approved account; pending and rejected
	// users only reach the auth endpoints above.
	approved := apiGroup.Group("")
	approved.Use(httpHandler.AuthMiddleware(), httpHandler.RequireApproved())

	approved.POST("/messages", httpHandler.SendMessage)
	approved.GET("/messages", httpHandler.ListMessages)
	approved.POST("/messages/:id/read", httpHandler.MarkMessageRead)

	approved.GET("/majors", httpHandler.ListMajors)
	approved.GET("/subjects", httpHandler.ListSubjects)

	students := approved.Group("/students/:student_id")
	students.GET("/grades", httpHandler.ListGrades)
	students.GET("/absences", httpHandler.ListAbsences)
	students.GET("/payments", httpHandler.ListPayments)
	students.GET("/payments/:id/receipt", httpHandler.PaymentReceipt)

	staff := approved.Group("/students/:student_id")
	staff.Use(httpHandler.RequireStaff())
	staff.POST("/grades", httpHandler.CreateGrade)
	staff.POST("/absences", httpHandler.CreateAbsence)

	records := approved.Group("")
	records.Use(httpHandler.RequireStaff())
	records.PATCH("/grades/:id", httpHandler.UpdateGrade)
	records.DELETE("/grades/:id", httpHandler.DeleteGrade)
	records.PATCH("/absences/:id", httpHandler.UpdateAbsence)
	records.DELETE("/absences/:id", httpHandler.DeleteAbsence)

	admin := approved.Group("/admin")
	admin.Use(httpHandler.RequireAdmin())
	admin.GET("/notifications", httpHandler.ListNotifications)
	admin.GET("/pending-users", httpHandler.PendingUsers)
	admin.POST("/approve", httpHandler.ApproveUser)
	admin.POST("/reject", httpHandler.RejectUser)
	admin.POST("/emails", httpHandler.SendEmail)
	admin.GET("/emails", httpHandler.ListEmailLogs)

	admin.GET("/users", httpHandler.ListUsers)
	admin.GET("/users/:id", httpHandler.GetUser)
	admin.POST("/users", httpHandler.CreateStudent)
	admin.PATCH("/users/:id", httpHandler.UpdateStudent)
	admin.DELETE("/users/:id", httpHandler.DeleteStudent)

	admin.POST("/students/:student_id/payments", httpHandler.CreatePayment)
	admin.PATCH("/payments/:id", httpHandler.UpdatePayment)
	admin.DELETE("/payments/:id", httpHandler.DeletePayment)

	admin.POST("/majors", httpHandler.CreateMajor)
	admin.PATCH("/majors/:id", httpHandler.UpdateMajor)
	admin.DELETE("/majors/:id", httpHandler.DeleteMajor)
	admin.POST("/subjects", httpHandler.CreateSubject)
	admin.PATCH("/subjects/:id", httpHandler.UpdateSubject)
	admin.DELETE("/subjects/:id", httpHandler.DeleteSubject)

	if localProvider, ok := store.(storage.LocalBaseDirProvider); ok {
		publicPrefix := strings.TrimSpace(cfg.StoragePublicBaseURL)
		if publicPrefix == "" {
			publicPrefix = "/files"
		}
		if !strings.HasPrefix(publicPrefix, "http://") && !strings.HasPrefix(publicPrefix, "https://") {
			if !strings.HasPrefix(publicPrefix, "/") {
				publicPrefix = "/" + publicPrefix
			}
			r.Static(publicPrefix, localProvider.LocalBaseDir())
		}
	}

	serverHost := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	logger.WithField("host", serverHost).Info("server starting")
	httpServer := &http.Server{
		Addr:         serverHost,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	err = httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Error("server failed to start")
	}
}

// CORSMiddleware handles cross origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// LoggingMiddleware records one structured log line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		logrus.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"duration":  duration.String(),
			"size":      c.Writer.Size(),
			"client_ip": c.ClientIP(),
		}).Info("http_request")
	}
}
