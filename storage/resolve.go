package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex-pricope/roomvote/config"
	"github.com/alex-pricope/roomvote/logging"
)

// NewIdentityStorage builds the backend selected by storage.backend.
func NewIdentityStorage(ctx context.Context, conf *config.Config) (IdentityStorage, error) {
	switch conf.Backend {
	case config.StorageBackendFile:
		return &FileIdentityStorage{Path: conf.StorageConfig.File, TTL: conf.IdentityTTL}, nil
	case config.StorageBackendDynamo:
		client, err := NewDynamoClient(ctx, conf.Region, conf.Endpoint)
		if err != nil {
			return nil, err
		}
		return &DynamoIdentityStorage{
			Client:    client,
			TableName: conf.TableNameIdentities,
			TTL:       conf.IdentityTTL,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", conf.Backend)
}

// ResolveParticipant picks the participant identity for a room once: an
// explicit id wins, otherwise the persisted one. An empty result with a nil
// error means the viewer is anonymous and has not joined.
func ResolveParticipant(ctx context.Context, store IdentityStorage, roomID, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if store == nil {
		return "", nil
	}

	identity, err := store.Get(ctx, roomID)
	if errors.Is(err, ErrIdentityNotFound) {
		logging.Log.Infof("IDENTITY: no stored guest for room %s", roomID)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve participant for room %s: %w", roomID, err)
	}
	return identity.GuestUserID, nil
}
