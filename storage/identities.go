package storage

import (
	"context"
	"time"

	"github.com/alex-pricope/roomvote/logging"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

type IdentityStorage interface {
	Get(ctx context.Context, roomID string) (*Identity, error)
	Put(ctx context.Context, identity *Identity) error
	Delete(ctx context.Context, roomID string) error
}

// DynamoAPI is the part of *dynamodb.Client the identity table needs.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type DynamoIdentityStorage struct {
	Client    DynamoAPI
	TableName string
	TTL       time.Duration
	Now       func() time.Time
}

func (s *DynamoIdentityStorage) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DynamoIdentityStorage) Get(ctx context.Context, roomID string) (*Identity, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": roomID})
	if err != nil {
		logging.Log.Errorf("IDENTITY: failed to marshal key: %v", err)
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            key,
		ConsistentRead: boolPtr(true),
	})
	if err != nil {
		logging.Log.Errorf("IDENTITY: get failed for room %s: %v", roomID, err)
		return nil, err
	}
	if out.Item == nil {
		return nil, ErrIdentityNotFound
	}

	var identity *Identity
	if err := attributevalue.UnmarshalMap(out.Item, &identity); err != nil {
		logging.Log.Errorf("IDENTITY: failed to unmarshal identity: %v", err)
		return nil, err
	}

	// TTL deletion lags behind expiry, so expired rows can still be read.
	if identity.Expired(s.now()) {
		return nil, ErrIdentityNotFound
	}
	return identity, nil
}

func (s *DynamoIdentityStorage) Put(ctx context.Context, identity *Identity) error {
	if identity == nil || identity.RoomID == "" || identity.GuestUserID == "" {
		return ErrInvalidIdentity
	}
	stamp(identity, s.now(), s.TTL)

	item, err := attributevalue.MarshalMap(identity)
	if err != nil {
		logging.Log.Errorf("IDENTITY: failed to marshal identity: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.TableName,
		Item:      item,
	})
	if err != nil {
		logging.Log.Errorf("IDENTITY: put failed for room %s: %v", identity.RoomID, err)
		return err
	}
	logging.Log.Infof("IDENTITY: stored guest %s for room %s", identity.GuestUserID, identity.RoomID)
	return nil
}

func (s *DynamoIdentityStorage) Delete(ctx context.Context, roomID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": roomID})
	if err != nil {
		logging.Log.Errorf("IDENTITY: failed to marshal key: %v", err)
		return err
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &s.TableName,
		Key:       key,
	})
	if err != nil {
		logging.Log.Errorf("IDENTITY: delete failed for room %s: %v", roomID, err)
		return err
	}
	return nil
}

// stamp fills in creation time and expiry when the caller left them empty.
func stamp(identity *Identity, now time.Time, ttl time.Duration) {
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = now.UTC()
	}
	if identity.ExpiresAt == 0 && ttl > 0 {
		identity.ExpiresAt = identity.CreatedAt.Add(ttl).Unix()
	}
}

func boolPtr(v bool) *bool { return &v }
