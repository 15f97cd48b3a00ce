package model

import (
	"time"

	"telegram-weather-bot/internal/domain"
)

// Subscriber is a domain entity representing a chat subscribed to daily
// weather updates. Active=false means the record is soft-deleted: the chat
// stopped receiving broadcasts (self-unsubscribe or admin block) but the
// record is retained and stays visible to admin tooling.
type Subscriber struct {
	ChatID       int64
	DisplayName  string
	City         string
	Active       bool
	SubscribedAt time.Time
}

func NewSubscriber(chatID int64, displayName, city string) (*Subscriber, error) {
	if chatID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if city == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Subscriber{
		ChatID:       chatID,
		DisplayName:  displayName,
		City:         city,
		Active:       true,
		SubscribedAt: time.Now(),
	}, nil
}

func (s *Subscriber) IsZero() bool { return s == nil || s.ChatID == 0 }
