package server

import (
	"context"
	"encoding/json"
	"log"

	"statusworld/internal/observability"
)

// Event type constants prevent typos in event names.
const (
	EventStatusCreated         = "status_created"
	EventStatusReactionUpdated = "status_reaction_updated"
	EventStatusModerated       = "status_moderated"
	EventStatusDeleted         = "status_deleted"
	EventCommentCreated        = "comment_created"
)

// publishFeedEvent fans an event out to every connected client: locally via
// the hub and cross-instance via Redis pub/sub.
func (s *Server) publishFeedEvent(eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	observability.FeedEventsTotal.WithLabelValues(eventType).Inc()

	// With Redis available, delivery goes through pub/sub and comes back in
	// via the hub wiring; publishing both ways would double-deliver locally.
	if s.notifier != nil {
		if err := s.notifier.PublishFeedEvent(context.Background(), string(eventJSON)); err != nil {
			log.Printf("failed to publish %s feed event: %v", eventType, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.BroadcastAll(eventJSON)
	}
}

// publishUserEvent delivers an event to a single user's connections.
func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUser(context.Background(), userID, string(eventJSON)); err != nil {
			log.Printf("failed to publish %s event to user %d: %v", eventType, userID, err)
		}
		return
	}
	if s.hub != nil {
		s.hub.Broadcast(userID, eventJSON)
	}
}
