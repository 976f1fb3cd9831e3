package mongodb

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/pulse/internal/core/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// RelationshipRepository keeps caregiver ids in the patient's user document.
type RelationshipRepository struct {
	users *mongo.Collection
}

func NewRelationshipRepository(db *mongo.Database) *RelationshipRepository {
	return &RelationshipRepository{users: db.Collection(usersCollection)}
}

var infoProjection = bson.D{
	{Key: "_id", Value: 1},
	{Key: "first_name", Value: 1},
	{Key: "last_name", Value: 1},
	{Key: "email", Value: 1},
	{Key: "created_at", Value: 1},
}

func (r *RelationshipRepository) AddCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	if patientID == caregiverID {
		return domain.ErrSelfCaregiver
	}

	n, err := r.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: caregiverID}})
	if err != nil {
		return storageErr("check caregiver", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}

	update := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "caregivers", Value: caregiverID}}}}
	res, err := r.users.UpdateByID(ctx, patientID, update)
	if err != nil {
		return storageErr("add caregiver", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *RelationshipRepository) RemoveCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) error {
	update := bson.D{{Key: "$pull", Value: bson.D{{Key: "caregivers", Value: caregiverID}}}}
	if _, err := r.users.UpdateByID(ctx, patientID, update); err != nil {
		return storageErr("remove caregiver", err)
	}
	return nil
}

// ListCaregivers returns the caregivers in the order they were added.
func (r *RelationshipRepository) ListCaregivers(ctx context.Context, patientID uuid.UUID) ([]domain.CaregiverInfo, error) {
	var patient userDocument
	opts := options.FindOne().SetProjection(bson.D{{Key: "caregivers", Value: 1}})
	if err := r.users.FindOne(ctx, bson.D{{Key: "_id", Value: patientID}}, opts).Decode(&patient); err != nil {
		if isNoDocuments(err) {
			return []domain.CaregiverInfo{}, nil
		}
		return nil, storageErr("list caregivers", err)
	}
	if len(patient.Caregivers) == 0 {
		return []domain.CaregiverInfo{}, nil
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: patient.Caregivers}}}}
	docs, err := r.findInfos(ctx, filter, options.Find().SetProjection(infoProjection))
	if err != nil {
		return nil, storageErr("list caregivers", err)
	}

	byID := make(map[uuid.UUID]userDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	infos := make([]domain.CaregiverInfo, 0, len(docs))
	for _, id := range patient.Caregivers {
		if d, ok := byID[id]; ok {
			infos = append(infos, toInfo(d))
		}
	}
	return infos, nil
}

func (r *RelationshipRepository) ListPatients(ctx context.Context, caregiverID uuid.UUID) ([]domain.CaregiverInfo, error) {
	filter := bson.D{{Key: "caregivers", Value: caregiverID}}
	opts := options.Find().
		SetProjection(infoProjection).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := r.findInfos(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("list patients", err)
	}

	infos := make([]domain.CaregiverInfo, 0, len(docs))
	for _, d := range docs {
		infos = append(infos, toInfo(d))
	}
	return infos, nil
}

func (r *RelationshipRepository) IsCaregiver(ctx context.Context, patientID, caregiverID uuid.UUID) (bool, error) {
	filter := bson.D{{Key: "_id", Value: patientID}, {Key: "caregivers", Value: caregiverID}}
	n, err := r.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, storageErr("check caregiver", err)
	}
	return n > 0, nil
}

func (r *RelationshipRepository) findInfos(ctx context.Context, filter bson.D, opts *options.FindOptionsBuilder) ([]userDocument, error) {
	cur, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func toInfo(d userDocument) domain.CaregiverInfo {
	return domain.CaregiverInfo{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}
