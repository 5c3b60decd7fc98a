// Package worker consumes queued generation requests from Kafka and
// renders them. Render failures leave the message unmarked so the
// group redelivers it.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"codereel/config"
	"codereel/publish"
	"codereel/types"
)

// Worker renders requests arriving on the render topic as part of a
// consumer group.
type Worker struct {
	group     sarama.ConsumerGroup
	publisher *publish.Publisher
	topic     string
	groupID   string
	ready     chan bool
}

// New connects to the brokers and joins the render consumer group.
func New(s config.Settings, publisher *publish.Publisher) (*Worker, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(s.KafkaBrokers, s.KafkaGroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to join consumer group: %w", err)
	}

	return &Worker{
		group:     group,
		publisher: publisher,
		topic:     s.KafkaTopic,
		groupID:   s.KafkaGroupID,
		ready:     make(chan bool),
	}, nil
}

// Start begins consuming in the background and returns once the group
// session is established.
func (w *Worker) Start(ctx context.Context) error {
	handler := &claimHandler{
		worker: w,
		ready:  w.ready,
	}

	go func() {
		for {
			if err := w.group.Consume(ctx, []string{w.topic}, handler); err != nil {
				if err == context.Canceled {
					log.Println("Render queue consumer context canceled")
					return
				}
				log.Printf("Error from render queue consumer: %v", err)
			}

			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	<-w.ready
	log.Printf("✅ Render queue consumer started (group: %s, topic: %s)", w.groupID, w.topic)

	go func() {
		for err := range w.group.Errors() {
			log.Printf("❌ Render queue consumer error: %v", err)
		}
	}()

	return nil
}

// Close leaves the consumer group.
func (w *Worker) Close() error {
	log.Println("Closing render queue consumer...")
	return w.group.Close()
}

// Run consumes until SIGINT or SIGTERM, then drains briefly before
// leaving the group.
func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		return err
	}

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	cancel()

	// Give the in-flight render a moment to settle.
	time.Sleep(2 * time.Second)

	return w.Close()
}

// handleMessage decides each message's fate: malformed or incomplete
// payloads are marked so they never redeliver, render failures stay
// unmarked for retry.
func (w *Worker) handleMessage(ctx context.Context, payload []byte) (shouldMark bool, err error) {
	var req types.GenerationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Printf("❌ Failed to unmarshal render request: %v", err)
		return true, nil
	}

	if !req.Valid() {
		log.Printf("⚠️ Skipping render request without question or code")
		return true, nil
	}

	log.Printf("🎬 Rendering queued request: %q", req.Question)
	res := w.publisher.PublishRequest(ctx, req)
	if res.Error != "" {
		return false, fmt.Errorf("queued render failed: %s", res.Error)
	}

	return true, nil
}

// claimHandler implements sarama.ConsumerGroupHandler.
type claimHandler struct {
	worker *Worker
	ready  chan bool
}

// Setup runs at the beginning of a new session, before ConsumeClaim.
func (h *claimHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

// Cleanup runs at the end of a session, after the claim loops exit.
func (h *claimHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim loops over one partition claim.
func (h *claimHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			log.Printf("📥 Received render request: partition=%d, offset=%d",
				message.Partition, message.Offset)

			shouldMark, err := h.worker.handleMessage(session.Context(), message.Value)
			if err != nil {
				log.Printf("❌ Failed to handle render request: %v", err)
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}
