package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ppiankov/lovewall/internal/insight"
	"github.com/ppiankov/lovewall/internal/model"
)

// GET /api/v1/proof?category=&q=
func (s *Server) listProof(c *gin.Context) {
	result, err := s.wall.Filter(c.Query("category"), c.Query("q"))
	if errors.Is(err, model.ErrUnknownCategory) {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/proof/:id
func (s *Server) getProof(c *gin.Context) {
	item, ok := s.wall.Item(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("proof item not found"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// GET /api/v1/categories
func (s *Server) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.wall.Categories()})
}

// GET /api/v1/insight
func (s *Server) getInsight(c *gin.Context) {
	status := s.wall.Insight()
	if status.State != insight.StateReady.String() {
		c.JSON(http.StatusAccepted, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GET /health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "lovewall",
		"insight": s.wall.Insight().State,
	})
}
