package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/aretw0/incorporate/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const catalogURI = "incorporate://catalog"

// ConversationResponse is the result of every session tool.
type ConversationResponse struct {
	Session  *domain.Session  `json:"session" jsonschema_description:"The session snapshot after the call"`
	Current  *domain.Question `json:"current_question,omitempty" jsonschema_description:"The question awaiting an answer, absent once completed"`
	Progress string           `json:"progress,omitempty" jsonschema_description:"Question N of M, absent before a flow is chosen"`
	Selected []string         `json:"selected,omitempty" jsonschema_description:"In-progress selection of the current multi-select question"`
}

type startArgs struct {
	SessionID string `json:"session_id"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type answerArgs struct {
	SessionID  string `json:"session_id"`
	QuestionID string `json:"question_id"`
	OptionID   string `json:"option_id"`
}

type submitArgs struct {
	SessionID  string `json:"session_id"`
	QuestionID string `json:"question_id"`
}

type leadArgs struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Server exposes the questionnaire as MCP tools.
type Server struct {
	conv      ports.Conversation
	sessions  *session.Manager
	leads     *leads.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithLeadService registers the capture_lead tool.
func WithLeadService(svc *leads.Service) Option {
	return func(s *Server) {
		s.leads = svc
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(conv ports.Conversation, sessions *session.Manager, opts ...Option) *Server {
	s := &Server{
		conv:      conv,
		sessions:  sessions,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("incorporate-mcp", strings.TrimSpace(incorporate.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over SSE until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("start_session",
		mcp.WithDescription("Start a new incorporation questionnaire. Returns the first question."),
		mcp.WithString("session_id", mcp.Description("Optional session ID; generated when omitted")),
		mcp.WithOutputSchema[ConversationResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get the current snapshot of a session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[ConversationResponse](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("answer",
		mcp.WithDescription("Answer the current single-select question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("ID of the current question")),
		mcp.WithString("option_id", mcp.Required(), mcp.Description("ID of the chosen option")),
		mcp.WithOutputSchema[ConversationResponse](),
	), mcp.NewStructuredToolHandler(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("toggle_option",
		mcp.WithDescription("Toggle an option of the current multi-select question. Does not advance."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("ID of the current question")),
		mcp.WithString("option_id", mcp.Required(), mcp.Description("ID of the option to toggle")),
		mcp.WithOutputSchema[ConversationResponse](),
	), mcp.NewStructuredToolHandler(s.handleToggle))

	s.mcpServer.AddTool(mcp.NewTool("submit_selection",
		mcp.WithDescription("Submit the selection of the current multi-select question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("question_id", mcp.Required(), mcp.Description("ID of the current question")),
		mcp.WithOutputSchema[ConversationResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("get_progress",
		mcp.WithDescription("Get the question N of M indicator for the current question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("session_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sess, err := s.sessions.Load(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		label := s.conv.CurrentProgress(sess).Label()
		if label == "" {
			label = "no progress yet"
		}
		return mcp.NewToolResultText(label), nil
	})

	if s.leads != nil {
		s.mcpServer.AddTool(mcp.NewTool("capture_lead",
			mcp.WithDescription("Submit contact details for a completed session."),
			mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
			mcp.WithString("email", mcp.Required(), mcp.Description("Email address")),
			mcp.WithString("phone", mcp.Required(), mcp.Description("Phone number in international format")),
			mcp.WithOutputSchema[domain.Lead](),
		), mcp.NewStructuredToolHandler(s.handleCaptureLead))
	}
}

func (s *Server) handleStart(ctx context.Context, _ mcp.CallToolRequest, args startArgs) (ConversationResponse, error) {
	sess, err := s.conv.Start(ctx, args.SessionID)
	if err != nil {
		return ConversationResponse{}, fmt.Errorf("start failed: %w", err)
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return ConversationResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return s.respond(sess), nil
}

func (s *Server) handleGet(ctx context.Context, _ mcp.CallToolRequest, args sessionArgs) (ConversationResponse, error) {
	sess, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return ConversationResponse{}, err
	}
	return s.respond(sess), nil
}

func (s *Server) handleAnswer(ctx context.Context, _ mcp.CallToolRequest, args answerArgs) (ConversationResponse, error) {
	return s.update(ctx, args.SessionID, func(sess *domain.Session) (*domain.Session, error) {
		return s.conv.SubmitSingle(ctx, sess, args.QuestionID, args.OptionID)
	})
}

func (s *Server) handleToggle(ctx context.Context, _ mcp.CallToolRequest, args answerArgs) (ConversationResponse, error) {
	return s.update(ctx, args.SessionID, func(sess *domain.Session) (*domain.Session, error) {
		return s.conv.ToggleMulti(ctx, sess, args.QuestionID, args.OptionID)
	})
}

func (s *Server) handleSubmit(ctx context.Context, _ mcp.CallToolRequest, args submitArgs) (ConversationResponse, error) {
	return s.update(ctx, args.SessionID, func(sess *domain.Session) (*domain.Session, error) {
		return s.conv.SubmitMulti(ctx, sess, args.QuestionID)
	})
}

func (s *Server) handleCaptureLead(ctx context.Context, _ mcp.CallToolRequest, args leadArgs) (domain.Lead, error) {
	sess, err := s.sessions.Load(ctx, args.SessionID)
	if err != nil {
		return domain.Lead{}, err
	}
	lead, err := s.leads.Capture(ctx, sess, leads.Contact{Name: args.Name, Email: args.Email, Phone: args.Phone})
	if err != nil {
		return domain.Lead{}, err
	}
	return *lead, nil
}

func (s *Server) update(ctx context.Context, id string, fn func(*domain.Session) (*domain.Session, error)) (ConversationResponse, error) {
	next, err := s.sessions.Update(ctx, id, fn)
	if err != nil {
		if domain.IsRejected(err) {
			s.logger.Warn("MCP event rejected", "session_id", id, "err", err)
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Error("MCP event failed", "session_id", id, "err", err)
		}
		return ConversationResponse{}, err
	}
	return s.respond(next), nil
}

func (s *Server) respond(sess *domain.Session) ConversationResponse {
	resp := ConversationResponse{
		Session:  sess,
		Progress: s.conv.CurrentProgress(sess).Label(),
	}
	if sess.CurrentQuestionID == "" {
		return resp
	}
	if q, err := s.conv.Catalog().Question(sess.CurrentQuestionID); err == nil {
		resp.Current = &q
		if a, ok := sess.Answers.Get(q.ID); ok && q.MultiSelect {
			resp.Selected = a.Values()
		}
	}
	return resp
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(catalogURI, "Question catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.conv.Catalog().Definition())
		if err != nil {
			return nil, fmt.Errorf("failed to encode catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      catalogURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
