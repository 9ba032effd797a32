// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/komi-attractions/internal/model"
)

// ReviewCreatedQueue is the durable queue review events are routed to.
const ReviewCreatedQueue = "review.created"

// ReviewCreatedEvent is published after a visitor review has been stored.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ReviewCreatedEvent struct {
	ReviewID  uint64 `json:"review_id"`
	PlaceID   uint64 `json:"place_id"`
	Author    string `json:"author"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
}

// NewReviewCreatedEvent builds the event for a stored review.
func NewReviewCreatedEvent(r model.Review) ReviewCreatedEvent {
	return ReviewCreatedEvent{
		ReviewID:  r.ID,
		PlaceID:   r.PlaceID,
		Author:    r.Author,
		Rating:    r.Rating,
		Comment:   r.Comment,
		Date:      r.Date.UTC().Format(time.RFC3339),
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// LogLine renders the event as a single line for logs/reviews.log.  Line
// breaks in the comment are flattened and long comments are cut.
func (ev ReviewCreatedEvent) LogLine() string {
	comment := strings.Join(strings.Fields(ev.Comment), " ")
	if r := []rune(comment); len(r) > 120 {
		comment = string(r[:117]) + "..."
	}
	return fmt.Sprintf("[%s] Review created | review_id=%d | place_id=%d | author=%q | rating=%d | date=%s | comment=%q\n",
		ev.CreatedAt, ev.ReviewID, ev.PlaceID, ev.Author, ev.Rating, ev.Date, comment)
}
