package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type medicationDocument struct {
	ID             uuid.UUID `bson:"_id"`
	UserID         uuid.UUID `bson:"user_id"`
	MedicationName string    `bson:"medication_name"`
	Dose           string    `bson:"dose"`
	Timing         string    `bson:"timing"`
	CreatedAt      time.Time `bson:"created_at"`
}

func (d *medicationDocument) toDomain() *domain.Medication {
	return &domain.Medication{
		ID:             d.ID,
		UserID:         d.UserID,
		MedicationName: d.MedicationName,
		Dose:           d.Dose,
		Timing:         d.Timing,
		CreatedAt:      d.CreatedAt,
	}
}

type MedicationRepository struct {
	meds *mongo.Collection
}

func NewMedicationRepository(db *mongo.Database) *MedicationRepository {
	return &MedicationRepository{meds: db.Collection(medicationsCollection)}
}

func ownedBy(userID, id uuid.UUID) bson.D {
	return bson.D{{Key: "_id", Value: id}, {Key: "user_id", Value: userID}}
}

func (r *MedicationRepository) Save(ctx context.Context, m *domain.Medication) error {
	doc := medicationDocument{
		ID:             m.ID,
		UserID:         m.UserID,
		MedicationName: m.MedicationName,
		Dose:           m.Dose,
		Timing:         m.Timing,
		CreatedAt:      m.CreatedAt,
	}
	if _, err := r.meds.InsertOne(ctx, doc); err != nil {
		return storageErr("insert medication", err)
	}
	return nil
}

func (r *MedicationRepository) Find(ctx context.Context, userID, id uuid.UUID) (*domain.Medication, error) {
	var doc medicationDocument
	if err := r.meds.FindOne(ctx, ownedBy(userID, id)).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrMedicationNotFound
		}
		return nil, storageErr("get medication", err)
	}
	return doc.toDomain(), nil
}

func (r *MedicationRepository) FindAll(ctx context.Context, userID uuid.UUID) ([]*domain.Medication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.meds.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, storageErr("list medications", err)
	}
	var docs []medicationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("list medications", err)
	}

	meds := make([]*domain.Medication, 0, len(docs))
	for i := range docs {
		meds = append(meds, docs[i].toDomain())
	}
	return meds, nil
}

func (r *MedicationRepository) Update(ctx context.Context, m *domain.Medication) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "medication_name", Value: m.MedicationName},
		{Key: "dose", Value: m.Dose},
		{Key: "timing", Value: m.Timing},
	}}}
	res, err := r.meds.UpdateOne(ctx, ownedBy(m.UserID, m.ID), update)
	if err != nil {
		return storageErr("update medication", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}

func (r *MedicationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.meds.DeleteOne(ctx, ownedBy(userID, id))
	if err != nil {
		return storageErr("delete medication", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}
