package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cyberglobes/querybuilder/internal/assembler"
	"github.com/cyberglobes/querybuilder/internal/catalog"
	"github.com/cyberglobes/querybuilder/internal/config"
	"github.com/cyberglobes/querybuilder/internal/driver"
	"github.com/cyberglobes/querybuilder/internal/llm"
	"github.com/cyberglobes/querybuilder/internal/planner"
	"github.com/cyberglobes/querybuilder/internal/store"
)

type Server struct {
	Generator *planner.Generator
	Catalog   *catalog.Store
	Feedback  *store.FeedbackStore
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Could not load %s: %v. Using defaults", cfgPath, err)
		cfg = config.Default()
	}

	applyEnvOverrides(cfg)

	d, err := driver.NewMemgraphDriver(cfg.Catalog.URI, cfg.Catalog.User, cfg.Catalog.Password)
	if err != nil {
		log.Fatalf("Failed to connect to catalog source: %v", err)
	}

	cat := catalog.NewStore(d, time.Duration(cfg.Catalog.TTLMinutes)*time.Minute, cfg.Catalog.PageSize, cfg.Catalog.RecordShape)

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	feedback, err := store.NewFeedbackStore(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open feedback store: %v", err)
	}

	return &Server{
		Generator: planner.NewGenerator(llmClient, cat),
		Catalog:   cat,
		Feedback:  feedback,
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("CATALOG_URI"); v != "" {
		cfg.Catalog.URI = v
	}
	if v := os.Getenv("CATALOG_USER"); v != "" {
		cfg.Catalog.User = v
	}
	if v := os.Getenv("CATALOG_PASSWORD"); v != "" {
		cfg.Catalog.Password = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.Health)
	r.POST("/generate", s.Generate)
	r.POST("/feedback", s.PostFeedback)
	r.GET("/services", s.Services)
	r.POST("/catalog/reload", s.ReloadCatalog)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type GenerateRequest struct {
	Prompt  string                 `json:"prompt"`
	Options map[string]interface{} `json:"options"`
}

func (s *Server) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	requestID := uuid.New().String()
	log.Printf("[%s] Generate request: %s", requestID, req.Prompt)

	p, err := s.Generator.Generate(c.Request.Context(), req.Prompt, req.Options)
	if err != nil {
		log.Printf("[%s] Failed to generate query: %v", requestID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, catalog.ErrUnavailable) || errors.Is(err, planner.ErrBackendUnavailable) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	message := assembler.BuildMessage(p)
	c.JSON(http.StatusOK, assembler.BuildResponse(p, message))
}

type FeedbackRequest struct {
	UserID           int64  `json:"user_id"`
	InputPrompt      string `json:"input_prompt"`
	GeneratedMessage string `json:"generated_message"`
	FinalMessage     string `json:"final_message"`
	Rating           int    `json:"rating"`
}

func (s *Server) PostFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}

	id, err := s.Feedback.LogFeedback(req.UserID, req.InputPrompt, req.GeneratedMessage, req.FinalMessage, req.Rating)
	if err != nil {
		log.Printf("Failed to log feedback: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to store feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (s *Server) Services(c *gin.Context) {
	listings, err := s.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list services: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": listings})
}

func (s *Server) ReloadCatalog(c *gin.Context) {
	if err := s.Catalog.ForceReload(c.Request.Context()); err != nil {
		log.Printf("Failed to reload catalog: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
