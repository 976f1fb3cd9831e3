package mongodb

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	usersCollection         = "users"
	tokensCollection        = "caregiver_tokens"
	formsCollection         = "forms"
	refreshTokensCollection = "refresh_tokens"
	medicationsCollection   = "medications"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// NewRegistry returns the default BSON registry extended to store uuid.UUID
// as binary subtype 4 instead of a 16 element array.
func NewRegistry() *bson.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(uuidType, bson.ValueEncoderFunc(encodeUUID))
	reg.RegisterTypeDecoder(uuidType, bson.ValueDecoderFunc(decodeUUID))
	return reg
}

func encodeUUID(_ bson.EncodeContext, vw bson.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != uuidType {
		return fmt.Errorf("uuid encoder: unexpected type %v", val.Type())
	}
	id := val.Interface().(uuid.UUID)
	return vw.WriteBinaryWithSubtype(id[:], bson.TypeBinaryUUID)
}

func decodeUUID(_ bson.DecodeContext, vr bson.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != uuidType {
		return fmt.Errorf("uuid decoder: unexpected type %v", val.Type())
	}

	var id uuid.UUID
	switch vr.Type() {
	case bson.TypeBinary:
		data, subtype, err := vr.ReadBinary()
		if err != nil {
			return err
		}
		if subtype != bson.TypeBinaryUUID && subtype != bson.TypeBinaryUUIDOld {
			return fmt.Errorf("uuid decoder: unsupported binary subtype %#x", subtype)
		}
		if id, err = uuid.FromBytes(data); err != nil {
			return err
		}
	case bson.TypeString:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if id, err = uuid.Parse(s); err != nil {
			return err
		}
	case bson.TypeNull:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("uuid decoder: cannot decode %v", vr.Type())
	}

	val.Set(reflect.ValueOf(id))
	return nil
}

// Connect opens a client with the uuid registry and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetRegistry(NewRegistry())

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "caregivers", Value: 1}}},
		},
		tokensCollection: {
			{Keys: bson.D{{Key: "expires_by", Value: 1}}},
		},
		formsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		refreshTokensCollection: {
			{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		medicationsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return storageErr("create indexes on "+name, err)
		}
	}
	return nil
}

func storageErr(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", domain.ErrStorage, action, err)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
