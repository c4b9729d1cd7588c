package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/eventscout/internal/format"
	"github.com/iliyamo/eventscout/internal/repository"
	"github.com/iliyamo/eventscout/internal/search"
	reply_publisher "github.com/iliyamo/eventscout/internal/service"
)

const (
	incomingQueueName = "chat.incoming"
	// replyTimeout bounds one message's processing; the cascade has no
	// deadline of its own, and an upstream outage must not wedge the
	// consumer across its six sequential stages.
	replyTimeout = 60 * time.Second
)

// Consumer answers chat messages from the messaging gateway.  Logs and
// Prefs may be nil when the corresponding backend is not configured.
type Consumer struct {
	URL      string
	Resolver *search.Resolver
	Prefs    *repository.PreferenceRepo
	Logs     *repository.SearchLogRepo
}

// Start connects to RabbitMQ, declares the chat.incoming queue (durable)
// and consumes it until the process exits.  It runs a reconnect loop with
// backoff: broker trouble is logged and retried, never fatal.
func (c *Consumer) Start() {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			log.Printf("chat-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := c.consumeLoop(conn); err != nil {
			log.Printf("chat-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func (c *Consumer) consumeLoop(conn *amqp.Connection) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// One message at a time: replies involve up to six sequential
	// upstream calls, prefetching more would just hold them hostage.
	if err := ch.Qos(1, 0, false); err != nil {
		log.Printf("chat-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(incomingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(incomingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.handle(d.Body); err != nil {
			log.Printf("chat-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

var cityDeclaration = regexp.MustCompile(`(?i)\b(?:my city is|i live in)\s+([^.!?]+)`)

func (c *Consumer) handle(body []byte) error {
	var msg IncomingMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	text := strings.TrimSpace(msg.Text)
	if msg.Sender == "" || text == "" {
		return errors.New("message missing sender or text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
	defer cancel()

	// "My city is X" / "I live in X" updates the memory instead of
	// searching.
	if m := cityDeclaration.FindStringSubmatch(text); m != nil {
		city := strings.TrimSpace(m[1])
		if c.Prefs != nil {
			if err := c.Prefs.SetCity(ctx, msg.Sender, city); err != nil {
				log.Printf("chat-consumer: remember city for %s failed: %v", msg.Sender, err)
			}
		}
		return c.reply(ctx, msg.Sender, fmt.Sprintf("Got it! I'll remember you're in %s. What would you like to see?", city), "", 0)
	}

	var hint string
	if c.Prefs != nil {
		remembered, err := c.Prefs.City(ctx, msg.Sender)
		if err != nil {
			log.Printf("chat-consumer: city lookup for %s failed: %v", msg.Sender, err)
		}
		hint = remembered
	}

	res := c.Resolver.Resolve(ctx, text, hint)

	if c.Logs != nil {
		if err := c.Logs.Insert(ctx, msg.Sender, text, string(res.Strategy), len(res.Events)); err != nil {
			log.Printf("chat-consumer: history insert failed: %v", err)
		}
	}
	return c.reply(ctx, msg.Sender, format.Reply(res), string(res.Strategy), len(res.Events))
}

func (c *Consumer) reply(ctx context.Context, sender, text, strategy string, eventCount int) error {
	return reply_publisher.PublishReply(ctx, c.URL, OutgoingReply{
		Sender:     sender,
		Text:       text,
		Strategy:   strategy,
		EventCount: eventCount,
		RepliedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
