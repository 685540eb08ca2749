package service

import (
	"context"
	"sync"

	converter "github.com/fleetworks/fleet-maintenance/internal/notifier/converter/telegram"
	"github.com/fleetworks/fleet-maintenance/internal/notifier/model"
)

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type service struct {
	client  MessageSender
	mu      sync.RWMutex
	storage map[int64]struct{}
}

func NewTgService(client MessageSender) *service {
	return &service{client: client, storage: map[int64]struct{}{}}
}

// NotifyPartAlert broadcasts one alert to every registered chat.
func (svc *service) NotifyPartAlert(ctx context.Context, event model.PartAlert) error {
	msg, err := converter.BuildPartAlert(event)
	if err != nil {
		return err
	}

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for chatID := range svc.storage {
		if err := svc.client.SendMessage(ctx, chatID, msg); err != nil {
			return err
		}
	}

	return nil
}

func (svc *service) AddChatID(ctx context.Context, chatID int64) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.storage[chatID] = struct{}{}
}
