package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"

	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
	"github.com/minhyannv/property-assistant-go/pkg/poll"
)

// State tracks where a Session is in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateAssistantReady
	StateThreadReady
	StateAwaitingAnswer
	StateAnswerReady
)

func (s State) String() string {
	switch s {
	case StateAssistantReady:
		return "assistant_ready"
	case StateThreadReady:
		return "thread_ready"
	case StateAwaitingAnswer:
		return "awaiting_answer"
	case StateAnswerReady:
		return "answer_ready"
	default:
		return "uninitialized"
	}
}

// Message is one role-tagged entry of the conversation thread.
type Message struct {
	Role string
	Text string
}

// Turn is the result of one question: the full thread, oldest first.
type Turn struct {
	Question string
	RunID    string
	Messages []Message
}

// RunError reports a run that ended without completing.
type RunError struct {
	RunID   string
	Status  openai.RunStatus
	Code    string
	Message string
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("run %s ended with status %s", e.RunID, e.Status)
	if e.Code != "" || e.Message != "" {
		msg += fmt.Sprintf(": %s: %s", e.Code, e.Message)
	}
	return msg
}

// Session owns the one assistant and one thread created for a process run.
// Ask reuses them for every question.
type Session struct {
	client      openai.Client
	id          string
	fileID      string
	assistantID string
	threadID    string
	state       State

	pollOpts poll.Options
	out      io.Writer
	logger   loggerpkg.Logger
	verbose  bool
}

// NewSession creates the assistant with the code interpreter tool bound to
// fileID, then creates the conversation thread.
func NewSession(ctx context.Context, cfg configpkg.Config, fileID string, opts ...SessionOption) (*Session, error) {
	cfg = configpkg.Normalize(cfg)
	deps := sessionDeps{logger: loggerpkg.NopLogger{}, out: io.Discard}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	deps.logger = loggerpkg.OrNop(deps.logger)
	if deps.out == nil {
		deps.out = io.Discard
	}

	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New("file id is required")
	}
	if deps.client == nil {
		if err := configpkg.Validate(cfg); err != nil {
			return nil, err
		}
		client := NewClient(cfg)
		deps.client = &client
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := &Session{
		client: *deps.client,
		id:     uuid.NewString(),
		fileID: fileID,
		state:  StateUninitialized,
		pollOpts: poll.Options{
			Interval:    cfg.PollInterval,
			MaxAttempts: cfg.MaxPollAttempts,
			Timeout:     cfg.PollTimeout,
		},
		out:     deps.out,
		logger:  deps.logger,
		verbose: cfg.Verbose,
	}

	asst, err := s.client.Beta.Assistants.New(ctx, openai.BetaAssistantNewParams{
		Model:        openai.ChatModel(cfg.Profile.Model),
		Name:         openai.String(cfg.Profile.Name),
		Instructions: openai.String(cfg.Profile.Instructions),
		Metadata:     map[string]string{"session_id": s.id},
		Tools: []openai.AssistantToolUnionParam{
			{OfCodeInterpreter: &openai.CodeInterpreterToolParam{}},
		},
		ToolResources: openai.BetaAssistantNewParamsToolResources{
			CodeInterpreter: openai.BetaAssistantNewParamsToolResourcesCodeInterpreter{
				FileIDs: []string{fileID},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create assistant: %w", err)
	}
	s.assistantID = asst.ID
	s.state = StateAssistantReady
	loggerpkg.Debug(s.verbose, s.logger, "assistant created", map[string]any{
		"assistant_id": s.assistantID,
		"model":        cfg.Profile.Model,
		"session_id":   s.id,
	})

	thread, err := s.client.Beta.Threads.New(ctx, openai.BetaThreadNewParams{})
	if err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	s.threadID = thread.ID
	s.state = StateThreadReady
	loggerpkg.Debug(s.verbose, s.logger, "thread created", map[string]any{
		"thread_id": s.threadID,
	})
	return s, nil
}

func (s *Session) ID() string          { return s.id }
func (s *Session) FileID() string      { return s.fileID }
func (s *Session) AssistantID() string { return s.assistantID }
func (s *Session) ThreadID() string    { return s.threadID }
func (s *Session) State() State        { return s.state }

// Ask posts question to the thread, starts a run, waits for it to complete
// and returns every message of the thread. Each polled run status and the
// final transcript are printed to the session output.
func (s *Session) Ask(ctx context.Context, question string) (Turn, error) {
	if s.state != StateThreadReady && s.state != StateAnswerReady {
		return Turn{}, fmt.Errorf("session is not ready (state %s)", s.state)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	turn := Turn{Question: question}

	s.state = StateAwaitingAnswer
	defer func() {
		if s.state == StateAwaitingAnswer {
			s.state = StateThreadReady
		}
	}()

	_, err := s.client.Beta.Threads.Messages.New(ctx, s.threadID, openai.BetaThreadMessageNewParams{
		Role: openai.BetaThreadMessageNewParamsRoleUser,
		Content: openai.BetaThreadMessageNewParamsContentUnion{
			OfString: openai.String(question),
		},
	})
	if err != nil {
		return turn, fmt.Errorf("create message: %w", err)
	}

	run, err := s.client.Beta.Threads.Runs.New(ctx, s.threadID, openai.BetaThreadRunNewParams{
		AssistantID: s.assistantID,
	})
	if err != nil {
		return turn, fmt.Errorf("create run: %w", err)
	}
	turn.RunID = run.ID
	loggerpkg.Debug(s.verbose, s.logger, "run started", map[string]any{
		"run_id": run.ID,
		"status": run.Status,
	})

	if err := s.waitForRun(ctx, run.ID); err != nil {
		return turn, err
	}

	turn.Messages, err = s.listMessages(ctx)
	if err != nil {
		return turn, err
	}
	s.state = StateAnswerReady

	_, _ = fmt.Fprintln(s.out, "\nOutput:")
	for _, m := range turn.Messages {
		_, _ = fmt.Fprintf(s.out, "%s: %s\n", m.Role, m.Text)
	}
	return turn, nil
}

func (s *Session) waitForRun(ctx context.Context, runID string) error {
	err := poll.Until(ctx, s.pollOpts, func(ctx context.Context, attempt int) (bool, error) {
		run, err := s.client.Beta.Threads.Runs.Get(ctx, s.threadID, runID)
		if err != nil {
			return false, fmt.Errorf("retrieve run: %w", err)
		}
		_, _ = fmt.Fprintln(s.out, run.Status)
		loggerpkg.Debug(s.verbose, s.logger, "run polled", map[string]any{
			"run_id":  runID,
			"attempt": attempt,
			"status":  run.Status,
		})

		switch run.Status {
		case openai.RunStatusCompleted:
			return true, nil
		case openai.RunStatusFailed, openai.RunStatusCancelled, openai.RunStatusExpired, openai.RunStatusIncomplete:
			return false, &RunError{
				RunID:   runID,
				Status:  run.Status,
				Code:    run.LastError.Code,
				Message: run.LastError.Message,
			}
		default:
			return false, nil
		}
	})
	if err != nil {
		var runErr *RunError
		if !errors.As(err, &runErr) {
			return fmt.Errorf("wait for run %s: %w", runID, err)
		}
		return err
	}
	return nil
}

func (s *Session) listMessages(ctx context.Context) ([]Message, error) {
	iter := s.client.Beta.Threads.Messages.ListAutoPaging(ctx, s.threadID, openai.BetaThreadMessageListParams{
		Order: openai.BetaThreadMessageListParamsOrderAsc,
	})
	out := []Message{}
	for iter.Next() {
		msg := iter.Current()
		out = append(out, Message{Role: string(msg.Role), Text: firstText(msg.Content)})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return out, nil
}

func firstText(content []openai.MessageContentUnion) string {
	for _, c := range content {
		if c.Type == "text" {
			return c.Text.Value
		}
	}
	return ""
}
