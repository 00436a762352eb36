package main

import (
	"context"
	"fmt"
	"time"

	natscore "arena-stats/internal/core/nats"
	"arena-stats/internal/shared/logs"
	"arena-stats/internal/tasks/refresh"

	"github.com/nats-io/nats.go/jetstream"
	antslib "github.com/panjf2000/ants/v2"
)

// TaskFunc is a function that processes a message
type TaskFunc func(natsMessage refresh.MessageInterface)

// SubscriberConfig holds the configuration for a subscriber
type SubscriberConfig struct {
	Subject      string
	ConsumerName string
	StreamName   string
	TaskName     string // For logging purposes (e.g., "player matches refresh")
	TaskFunc     TaskFunc
}

// SubscribeToSubject sets up a JetStream pull consumer for a specific subject.
// Returns a cleanup function and an error if subscription fails.
func SubscribeToSubject(js jetstream.JetStream, pool *antslib.Pool, config SubscriberConfig) (func(context.Context), error) {
	ctx := context.Background()

	stream, err := js.Stream(ctx, config.StreamName)
	if err != nil {
		return nil, err
	}

	// DeliverNew so redeployed workers pick up where the stream is, not at its
	// start; FilterSubject keeps each consumer on its own subject.
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       config.ConsumerName,
		FilterSubject: config.Subject,
		DeliverPolicy: jetstream.DeliverNewPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       30 * time.Second,
		MaxDeliver:    5,
	}

	consumer, err := natscore.GetOrCreateConsumer(ctx, stream, consumerConfig)
	if err != nil {
		return nil, err
	}

	stopChan := make(chan struct{})
	go func() {
		for {
			select {
			case <-stopChan:
				return
			default:
				msgs, err := consumer.Fetch(10, jetstream.FetchMaxWait(5*time.Second))
				if err != nil {
					if err == context.DeadlineExceeded {
						continue
					}
					logs.Error("failed to fetch messages", "subject", config.Subject, "error", err)
					time.Sleep(time.Second)
					continue
				}

				for msg := range msgs.Messages() {
					jetstreamMsg := msg
					deliveryCount, sequence := getMessageMetadata(jetstreamMsg)
					logs.Info(fmt.Sprintf("received %s message", config.TaskName), "subject", config.Subject, "sequence", sequence, "delivery_count", deliveryCount)

					// Acknowledge receipt immediately to prevent redelivery while waiting for pool
					if err := jetstreamMsg.InProgress(); err != nil {
						logs.Warn("failed to send InProgress for message", "subject", config.Subject, "sequence", sequence, "error", err)
					}
					err := pool.Submit(func() {
						// Recover from panics to ensure message is always acknowledged
						defer func() {
							if r := recover(); r != nil {
								logs.Error(fmt.Sprintf("panic in %s task", config.TaskName), "error", r, "subject", config.Subject, "sequence", sequence, "delivery_count", deliveryCount)
								if err := jetstreamMsg.Nak(); err != nil {
									logs.Warn("failed to nack message after panic", "subject", config.Subject, "sequence", sequence, "error", err)
								}
							}
						}()
						config.TaskFunc(wrapJetStreamMsg(jetstreamMsg))
					})
					if err != nil {
						logs.Error("failed to submit task to pool", "subject", config.Subject, "sequence", sequence, "error", err)
						if err := jetstreamMsg.Nak(); err != nil {
							logs.Warn("failed to nack message", "subject", config.Subject, "sequence", sequence, "error", err)
						}
					}
				}
			}
		}
	}()

	logs.Info(fmt.Sprintf("subscribed to %s", config.TaskName), "subject", config.Subject, "consumer", config.ConsumerName, "type", "pull")

	cleanup := func(ctx context.Context) {
		close(stopChan)
	}

	return cleanup, nil
}

// getMessageMetadata extracts delivery count and stream sequence for logging.
func getMessageMetadata(msg jetstream.Msg) (uint64, uint64) {
	md, err := msg.Metadata()
	if err != nil {
		return 1, 0
	}
	return md.NumDelivered, md.Sequence.Stream
}
