package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"finresearch/internal/ai"
	"finresearch/internal/classify"
	"finresearch/internal/store"
)

const (
	errCodeValidation = "validation_error"
	errCodeInternal   = "internal_server_error"
	internalDetail    = "An unexpected error occurred."
)

// Config defines server dependencies. It is constructed once at process
// start and injected; nothing reads ambient globals.
type Config struct {
	AppName        string
	Debug          bool
	AllowedOrigins []string
	AIConfig       ai.Config
	DisableAI      bool
	DBPath         string
	SilentDB       bool
}

// Server wires HTTP handlers with the classifier and the optional query log.
type Server struct {
	appName        string
	debug          bool
	allowedOrigins []string
	classifier     *classify.Classifier
	validate       *validator.Validate
	db             *store.Database
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.AppName) == "" {
		cfg.AppName = "Financial Research AI"
	}

	var backends []classify.Backend
	if cfg.DisableAI {
		logrus.Info("model-backed classifier disabled via configuration")
	} else if client, err := ai.NewClient(cfg.AIConfig); err == nil {
		backends = append(backends, client)
		logrus.WithField("model", cfg.AIConfig.Model).Info("model-backed classifier enabled")
	} else if errors.Is(err, ai.ErrDisabled) {
		logrus.Info("model-backed classifier disabled - no API key configured")
	} else {
		return nil, fmt.Errorf("ai client: %w", err)
	}
	backends = append(backends, classify.NewKeywordBackend())

	var db *store.Database
	if path := strings.TrimSpace(cfg.DBPath); path != "" {
		opened, err := store.Open(path, cfg.SilentDB)
		if err != nil {
			return nil, err
		}
		db = opened
		logrus.WithField("path", path).Info("query log enabled")
	} else {
		logrus.Info("query log disabled - no database path configured")
	}

	return &Server{
		appName:        cfg.AppName,
		debug:          cfg.Debug,
		allowedOrigins: cfg.AllowedOrigins,
		classifier:     classify.NewClassifier(backends...),
		validate:       newValidator(),
		db:             db,
	}, nil
}

// Close releases the query log handle, if one was opened.
func (s *Server) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	if s.debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(s.handlePanic))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.handleHealth)

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		if s.db != nil {
			api.GET("/queries", s.handleListQueries)
		}
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", App: s.appName})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("reject malformed request body")
		s.renderValidationError(c, []FieldViolation{{Field: "body", Reason: "request body must be a JSON object"}})
		return
	}

	if violations := checkRequest(s.validate, req); len(violations) > 0 {
		logrus.WithField("violations", len(violations)).Warn("reject invalid analyze request")
		s.renderValidationError(c, violations)
		return
	}

	category := s.classifier.Classify(c.Request.Context(), req.Question)

	s.recordQuery(req.Question, category)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Category: category,
		Summary:  fmt.Sprintf("Query classified as %q. Analysis pipeline not yet connected.", category),
		Data:     map[string]any{"question": req.Question},
	})
}

func (s *Server) handleListQueries(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 25
	}

	rows, total, err := s.db.ListQueries(page*pageSize, pageSize)
	if err != nil {
		logrus.WithError(err).Error("list query log")
		c.JSON(http.StatusInternalServerError, InternalErrorBody{Error: errCodeInternal, Detail: internalDetail})
		return
	}
	dtos := make([]QueryDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, QueryFromModel(row))
	}
	c.JSON(http.StatusOK, QueriesResponse{Items: dtos, Total: total})
}

// recordQuery appends to the query log when one is configured. Log
// failures never affect the analyze response.
func (s *Server) recordQuery(question string, category classify.Category) {
	if s.db == nil {
		return
	}
	record := store.QueryRecord{Question: question, Category: string(category)}
	if err := s.db.SaveQuery(&record); err != nil {
		logrus.WithError(err).Warn("record query")
	}
}

func (s *Server) renderValidationError(c *gin.Context, violations []FieldViolation) {
	c.JSON(http.StatusUnprocessableEntity, ValidationErrorBody{
		Error:  errCodeValidation,
		Detail: violations,
	})
}

func (s *Server) handlePanic(c *gin.Context, recovered any) {
	logrus.WithField("panic", recovered).Error("unhandled failure in request path")
	c.AbortWithStatusJSON(http.StatusInternalServerError, InternalErrorBody{
		Error:  errCodeInternal,
		Detail: internalDetail,
	})
}
