package web

import (
	_ "embed"
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"github.com/osintlab/deepscope/internal/models"
	"github.com/osintlab/deepscope/internal/osint"
	"github.com/osintlab/deepscope/internal/report"
	"github.com/osintlab/deepscope/internal/session"
	ws "github.com/osintlab/deepscope/internal/websocket"
)

//go:embed static/index.html
var indexPage []byte

// Server is the HTTP surface of the investigation UI. All investigation
// semantics live in the controllers; handlers only translate between HTTP
// and controller calls.
type Server struct {
	session  *session.Controller
	sub      *session.SubController
	renderer *report.Renderer
	hub      *ws.Hub
}

func NewServer(sess *session.Controller, sub *session.SubController, renderer *report.Renderer, hub *ws.Hub) *Server {
	return &Server{
		session:  sess,
		sub:      sub,
		renderer: renderer,
		hub:      hub,
	}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.index)
	r.GET("/ws", s.serveWS)
	r.GET("/api/health", s.health)
	r.GET("/api/state", s.state)
	r.POST("/api/investigate", s.investigate)
	r.POST("/api/investigate-username", s.investigateUsername)

	return r
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

func (s *Server) serveWS(c *gin.Context) {
	s.hub.ServeWS(c.Writer, c.Request)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session":           s.session.Snapshot(),
		"sub_investigation": s.sub.Snapshot(),
	})
}

// investigate runs the primary flow to settlement and answers with the
// rendered report. The call blocks as long as the backend takes; the UI
// watches the websocket for progress meanwhile.
func (s *Server) investigate(c *gin.Context) {
	var req models.InvestigationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Errorf("bad investigate payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read JSON input."})
		return
	}

	result, err := s.session.Submit(c.Request.Context(), req)
	switch {
	case errors.Is(err, session.ErrMissingCriteria):
		c.JSON(http.StatusBadRequest, gin.H{"error": session.MissingCriteriaMessage})
	case errors.Is(err, session.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer submission"})
	case err != nil:
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"error": msg})
	default:
		html, rerr := s.renderer.Report(result)
		if rerr != nil {
			log.Errorf("render report: %v", rerr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render the report."})
			return
		}
		s.hub.Publish(ws.EventReport, gin.H{"html": html})
		c.JSON(http.StatusOK, gin.H{"html": html})
	}
}

func (s *Server) investigateUsername(c *gin.Context) {
	var body struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		log.Errorf("bad username payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read JSON input."})
		return
	}

	reportData, err := s.sub.Investigate(c.Request.Context(), body.Username)
	switch {
	case errors.Is(err, session.ErrMissingUsername):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username required"})
	case errors.Is(err, session.ErrSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": "superseded by a newer probe"})
	case err != nil:
		status, msg := errorStatus(err)
		c.JSON(status, gin.H{"error": msg})
	default:
		html, rerr := s.renderer.UsernameCard(reportData)
		if rerr != nil {
			log.Errorf("render username card: %v", rerr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render the report."})
			return
		}
		s.hub.Publish(ws.EventUsernameReport, gin.H{"html": html})
		c.JSON(http.StatusOK, gin.H{"html": html})
	}
}

// errorStatus maps controller errors to a response. Backend messages pass
// through verbatim; transport details never leave the logs.
func errorStatus(err error) (int, string) {
	var svcErr *osint.ServiceError
	if errors.As(err, &svcErr) {
		return http.StatusBadRequest, svcErr.Message
	}
	return http.StatusBadGateway, osint.UnreachableMessage
}
