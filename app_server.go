package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AppServer exposes the operational API: health, run status and a manual
// trigger. It never drives the browser itself; triggers go through the same
// service (and browser manager) as the scheduler.
type AppServer struct {
	service *StreakService
	nextRun func() time.Time
	engine  *gin.Engine
}

func NewAppServer(service *StreakService, nextRun func() time.Time) *AppServer {
	gin.SetMode(gin.ReleaseMode)
	s := &AppServer{
		service: service,
		nextRun: nextRun,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *AppServer) registerRoutes() {
	s.engine.GET("/health", s.handleHealth)

	api := s.engine.Group("/api/v1")
	{
		api.GET("/status", s.handleStatus)
		api.POST("/run", s.handleRun)
	}
}

func (s *AppServer) Start(addr string) error {
	logrus.Infof("status API listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *AppServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *AppServer) handleStatus(c *gin.Context) {
	running, last := s.service.Status()
	resp := gin.H{
		"running":  running,
		"next_run": s.nextRun().Format(time.RFC3339),
	}
	if last != nil {
		resp["last_summary"] = last
	}
	c.JSON(http.StatusOK, resp)
}

// handleRun triggers a batch outside the daily schedule. Refused while a run
// is in progress so the single browser session is never contended.
func (s *AppServer) handleRun(c *gin.Context) {
	running, _ := s.service.Status()
	if running {
		c.JSON(http.StatusConflict, gin.H{"error": "a run is already in progress"})
		return
	}

	go s.service.RunJob(context.Background())
	c.JSON(http.StatusAccepted, gin.H{"status": "run started"})
}
