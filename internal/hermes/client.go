package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	SubjectAnalysisRequested = "petrosight.analysis.requested"
	SubjectAnalysisCompleted = "petrosight.analysis.completed"
	SubjectAnalysisFailed    = "petrosight.analysis.failed"
	SubjectAgentRegistered   = "petrosight.agent.registered"
)

// AnalysisEvent reports the outcome of one analysis, successful or not.
type AnalysisEvent struct {
	AnalysisID   string    `json:"analysisId"`
	AnalysisType string    `json:"analysisType"`
	Basin        string    `json:"basin,omitempty"`
	Trigger      string    `json:"trigger"`
	Success      bool      `json:"success"`
	Data         any       `json:"data,omitempty"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// AgentRegistered announces the service on startup.
type AgentRegistered struct {
	Agent         string    `json:"agent"`
	Model         string    `json:"model"`
	AnalysisTypes []string  `json:"analysisTypes"`
	StartedAt     time.Time `json:"startedAt"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(ctx context.Context, url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.Name("petrosight"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

// Subscribe joins a queue group so that several replicas share the
// subject's messages instead of each handling every one.
func (c *Client) Subscribe(subject, queue string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject, "queue", queue)
	return nil
}

// Drain lets in-flight handlers finish before the connection closes.
func (c *Client) Drain() error {
	return c.conn.Drain()
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
