package chat

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the reply to POST /api/chat.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Error     string `json:"error,omitempty"`
}

type wsIncoming struct {
	Message string `json:"message"`
}

// Server is the web chat UI.
type Server struct {
	svc      *Service
	ui       UI
	log      zerolog.Logger
	upgrader websocket.Upgrader
	engine   *gin.Engine
}

// NewServer builds the gin engine for svc.
func NewServer(svc *Service, ui UI, log zerolog.Logger) *Server {
	s := &Server{
		svc: svc,
		ui:  ui,
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: sameHost,
		},
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.SetHTMLTemplate(indexTemplate)

	r.GET("/", s.IndexHandler)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ws", s.WebSocketHandler)
	api := r.Group("/api")
	{
		api.POST("/chat", s.ChatHandler)
		api.GET("/sessions/:id/messages", s.MessagesHandler)
	}

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.log.Info().Str("addr", addr).Msg("chat server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// IndexHandler renders the chat page with a fresh session id.
func (s *Server) IndexHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":     s.ui.Title,
		"Icon":      s.ui.Icon,
		"SessionID": NewSessionID(),
	})
}

// ChatHandler answers one message. A missing session id starts a new
// session.
func (s *Server) ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = NewSessionID()
	}

	reply, err := s.svc.Ask(c.Request.Context(), req.SessionID, req.Message)
	resp := ChatResponse{SessionID: req.SessionID, Reply: reply}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// MessagesHandler returns a session's history.
func (s *Server) MessagesHandler(c *gin.Context) {
	msgs, ok := s.svc.Sessions().History(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": c.Param("id"), "messages": msgs})
}

// WebSocketHandler upgrades the connection and answers each
// {"message": "..."} frame with a {"role", "content"} frame.
func (s *Server) WebSocketHandler(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx := c.Request.Context()
	for {
		var in wsIncoming
		if err := conn.ReadJSON(&in); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Str("session", sessionID).Msg("websocket closed")
			}
			return
		}
		if in.Message == "" {
			continue
		}
		reply, _ := s.svc.Ask(ctx, sessionID, in.Message)
		if err := conn.WriteJSON(Message{Role: RoleAssistant, Content: reply, Time: time.Now()}); err != nil {
			return
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// sameHost accepts websocket upgrades without an Origin header or from the
// page this server rendered.
func sameHost(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}
