package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesTopicSubscribers(t *testing.T) {
	hub := NewHub()

	admins, cleanupAdmins := hub.Subscribe(TopicAdmins)
	defer cleanupAdmins()
	other, cleanupOther := hub.Subscribe("employee-1")
	defer cleanupOther()

	hub.Publish(TopicAdmins, Event{Event: "alert", Data: "delay"})

	require.Len(t, admins, 1)
	got := <-admins
	assert.Equal(t, TopicAdmins, got.Topic)
	assert.Equal(t, "alert", got.Event)
	assert.Empty(t, other)
}

func TestHub_CleanupIsIdempotent(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe(TopicAdmins)
	assert.Equal(t, 1, hub.SubscriberCount(TopicAdmins))

	cleanup()
	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount(TopicAdmins))

	hub.Publish(TopicAdmins, Event{Event: "alert"})
}
