// Package a2a serves the strategist as an A2A agent over JSON-RPC 2.0.
package a2a

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BerylCAtieno/artisan-content-agent/internal/logging"
	"github.com/BerylCAtieno/artisan-content-agent/internal/models"
	"github.com/BerylCAtieno/artisan-content-agent/internal/strategist"
)

const maxBodyBytes = 1 << 20

type Options struct {
	// BaseURL is the public address advertised in the agent card.
	BaseURL      string
	CalendarDays int
}

type Handler struct {
	svc          *strategist.Service
	card         AgentCard
	calendarDays int
	log          zerolog.Logger
}

func NewHandler(svc *strategist.Service, opts Options) *Handler {
	if opts.CalendarDays <= 0 {
		opts.CalendarDays = strategist.StrategyCalendarDays
	}
	return &Handler{
		svc:          svc,
		card:         newAgentCard(strings.TrimRight(opts.BaseURL, "/")),
		calendarDays: opts.CalendarDays,
		log:          logging.With("a2a"),
	}
}

func newAgentCard(baseURL string) AgentCard {
	return AgentCard{
		Name:        "Artisan Content Strategist",
		Description: "Plans social media content for Indian craft artisans: ranked post ideas, seasonal angles and posting calendars built from an artisan profile.",
		URL:         baseURL + "/a2a/strategist",
		Version:     "1.0.0",
		Capabilities: Capabilities{
			Streaming:         false,
			PushNotifications: false,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text"},
		Skills: []Skill{
			{
				ID:          "content-strategy",
				Name:        "Content strategy",
				Description: "Ranked general and skill-specific content ideas for an artisan profile, optionally for a given season.",
				Tags:        []string{"social-media", "crafts", "marketing"},
				Examples:    []string{"strategy for meera_devi_1", "festival ideas for asha_kumari_2"},
			},
			{
				ID:          "content-calendar",
				Name:        "Content calendar",
				Description: "Spreads the ranked ideas over a posting calendar starting today.",
				Tags:        []string{"calendar", "planning"},
				Examples:    []string{"calendar 14 for meera_devi_1", "monsoon calendar for ravi_kumar_3"},
			},
		},
	}
}

// ServeAgentCard serves the agent card.
func (h *Handler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleStrategist processes A2A messages.
func (h *Handler) HandleStrategist(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.sendError(c, nil, "failed to read request body", CodeParseError)
		return
	}

	var req JSONRPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.log.Warn().Err(err).Msg("malformed JSON-RPC body")
		h.sendError(c, nil, "parse error", CodeParseError)
		return
	}

	h.log.Debug().Interface("id", req.ID).Str("method", req.Method).Msg("rpc request")

	if req.JSONRPC != "2.0" {
		h.sendError(c, req.ID, "invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch req.Method {
	case "message/send", "agent/task":
		h.handleTask(c, req)
	default:
		h.sendError(c, req.ID, fmt.Sprintf("method not found: %s", req.Method), CodeMethodNotFound)
	}
}

func (h *Handler) handleTask(c *gin.Context, req JSONRPCRequest) {
	var params MessageParams
	if len(req.Params) == 0 {
		h.sendError(c, req.ID, "params are required", CodeInvalidParams)
		return
	}
	if err := json.Unmarshal(req.Params, &params); err != nil {
		h.sendError(c, req.ID, "invalid params", CodeInvalidParams)
		return
	}

	taskID := taskIDFor(req.ID, params.Message)
	text := extractText(params.Message)
	if text == "" {
		h.sendResult(c, req.ID, failedTask(taskID, "Send an artisan profile id, for example `meera_devi_1`, to get a content strategy."))
		return
	}

	cmd := parseCommand(text)
	if cmd.profileID == "" {
		h.sendResult(c, req.ID, failedTask(taskID, "I could not find an artisan profile id in your message. Profile ids look like `meera_devi_1`."))
		return
	}

	reply, err := h.respond(cmd)
	if err != nil {
		h.log.Info().Err(err).Str("profile_id", cmd.profileID).Msg("task failed")
		h.sendResult(c, req.ID, failedTask(taskID, describe(cmd, err)))
		return
	}

	h.log.Info().Str("profile_id", cmd.profileID).Bool("calendar", cmd.calendar).Msg("task completed")
	h.sendResult(c, req.ID, completedTask(taskID, reply))
}

func (h *Handler) respond(cmd command) (string, error) {
	q := strategist.Query{Season: cmd.season}
	if !cmd.calendar {
		st, err := h.svc.Strategy(cmd.profileID, q)
		if err != nil {
			return "", err
		}
		return renderStrategy(st), nil
	}

	days := cmd.days
	if days == 0 {
		days = h.calendarDays
	}
	p, err := h.svc.Profiles().Get(cmd.profileID)
	if err != nil {
		return "", err
	}
	entries, err := h.svc.Calendar(cmd.profileID, days, q)
	if err != nil {
		return "", err
	}
	return renderCalendar(p, entries), nil
}

func describe(cmd command, err error) string {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return fmt.Sprintf("No artisan profile with id `%s`.", cmd.profileID)
	case errors.Is(err, models.ErrValidation):
		return fmt.Sprintf("Invalid request: %v", err)
	default:
		return "The strategist could not complete this request."
	}
}

func taskIDFor(rpcID any, msg Message) string {
	if msg.TaskID != nil && *msg.TaskID != "" {
		return *msg.TaskID
	}
	if s, ok := rpcID.(string); ok && s != "" {
		return s
	}
	return uuid.NewString()
}

func agentMessage(taskID, text string) *Message {
	return &Message{
		Kind:      "message",
		Role:      RoleAgent,
		MessageID: uuid.NewString(),
		TaskID:    &taskID,
		Parts:     []MessagePart{TextPart(text)},
	}
}

func completedTask(taskID, text string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message:   agentMessage(taskID, text),
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.NewString(),
				Name:       "Content Strategy",
				Parts:      []MessagePart{TextPart(text)},
			},
		},
	}
}

func failedTask(taskID, text string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message:   agentMessage(taskID, text),
		},
	}
}

func (h *Handler) sendResult(c *gin.Context, id any, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

// JSON-RPC errors are sent with 200 OK.
func (h *Handler) sendError(c *gin.Context, id any, message string, code int) {
	h.log.Warn().Int("code", code).Str("message", message).Msg("rpc error")
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
