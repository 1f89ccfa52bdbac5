package services

import (
	"context"

	"dispatch/models"
	"dispatch/storage"
	"dispatch/utils"

	log "github.com/sirupsen/logrus"
)

// Actor identifies who performed an operation.
type Actor struct {
	UserID   string
	UserName string
	IP       string
	HostName string
}

// ActivityRecorder writes audit entries. A failed write is logged and never
// fails the operation that triggered it.
type ActivityRecorder struct {
	store storage.ActivityStore
}

func NewActivityRecorder(store storage.ActivityStore) *ActivityRecorder {
	if store == nil {
		store = storage.NewLogActivityStore()
	}
	return &ActivityRecorder{store: store}
}

func (a *ActivityRecorder) Record(ctx context.Context, actor Actor, entry models.ActivityEntry) {
	entry.UserID = actor.UserID
	entry.UserName = actor.UserName
	entry.IPAddress = actor.IP
	entry.HostName = actor.HostName
	if entry.UserName == "" {
		entry.UserName = "system"
	}

	ctx, cancel := utils.GetFastRequestContext(context.WithoutCancel(ctx))
	defer cancel()
	if err := a.store.Record(ctx, entry); err != nil {
		log.WithError(err).Warnf("failed to record activity %s/%s", entry.EventContext, entry.EventName)
	}
}

func (a *ActivityRecorder) List(ctx context.Context, q storage.ActivityQuery) ([]models.ActivityLogGorm, int64, error) {
	ctx, cancel := utils.GetFastRequestContext(ctx)
	defer cancel()
	return a.store.List(ctx, q)
}
