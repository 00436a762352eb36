package scheduler

import (
	"context"
	"encoding/json"

	natscore "arena-stats/internal/core/nats"

	"github.com/nats-io/nats.go/jetstream"
)

// PublishEmptyMessage publishes an EmptyMessage to the specified subject.
// Used for simple trigger messages where no data is needed.
func PublishEmptyMessage(js jetstream.JetStream, subject string) error {
	msg := natscore.EmptyMessage{}
	msgData, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = js.Publish(context.Background(), subject, msgData)
	return err
}

// PublishPlayerRefresh publishes a RefreshPlayerRequest for one tracked
// player to the match refresh subject.
func PublishPlayerRefresh(js jetstream.JetStream, req natscore.RefreshPlayerRequest) error {
	msgData, err := json.Marshal(req)
	if err != nil {
		return err
	}
	_, err = js.Publish(context.Background(), natscore.SubjectRefreshPlayerMatches, msgData)
	return err
}
