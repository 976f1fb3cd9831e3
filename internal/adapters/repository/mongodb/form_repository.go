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

type formDocument struct {
	ID          uuid.UUID               `bson:"_id"`
	UserID      uuid.UUID               `bson:"user_id"`
	CreatedBy   uuid.UUID               `bson:"created_by"`
	Title       string                  `bson:"title"`
	Description *string                 `bson:"description,omitempty"`
	Questions   []domain.QuestionRecord `bson:"questions"`
	Events      []domain.EventRecord    `bson:"events"`
	CreatedAt   time.Time               `bson:"created_at"`
}

func newFormDocument(f *domain.Form) formDocument {
	return formDocument{
		ID:          f.ID,
		UserID:      f.UserID,
		CreatedBy:   f.CreatedBy,
		Title:       f.Title,
		Description: f.Description,
		Questions:   f.Questions.Records(),
		Events:      f.Events.Records(),
		CreatedAt:   f.CreatedAt,
	}
}

func (d *formDocument) toDomain() (*domain.Form, error) {
	questions, err := domain.QuestionsFromRecords(d.Questions)
	if err != nil {
		return nil, storageErr("decode questions", err)
	}
	events, err := domain.EventsFromRecords(d.Events)
	if err != nil {
		return nil, storageErr("decode form events", err)
	}
	return &domain.Form{
		ID:          d.ID,
		UserID:      d.UserID,
		CreatedBy:   d.CreatedBy,
		Title:       d.Title,
		Description: d.Description,
		Questions:   questions,
		Events:      events,
		CreatedAt:   d.CreatedAt,
	}, nil
}

type FormRepository struct {
	forms *mongo.Collection
}

func NewFormRepository(db *mongo.Database) *FormRepository {
	return &FormRepository{forms: db.Collection(formsCollection)}
}

func (r *FormRepository) Save(ctx context.Context, form *domain.Form) error {
	if _, err := r.forms.InsertOne(ctx, newFormDocument(form)); err != nil {
		return storageErr("insert form", err)
	}
	return nil
}

func (r *FormRepository) FindForm(ctx context.Context, userID, formID uuid.UUID) (*domain.Form, error) {
	return r.getOne(ctx, bson.D{{Key: "_id", Value: formID}, {Key: "user_id", Value: userID}})
}

func (r *FormRepository) GetByID(ctx context.Context, formID uuid.UUID) (*domain.Form, error) {
	return r.getOne(ctx, bson.D{{Key: "_id", Value: formID}})
}

func (r *FormRepository) FindFormsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Form, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.forms.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, storageErr("list forms", err)
	}

	var docs []formDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("list forms", err)
	}

	forms := make([]*domain.Form, 0, len(docs))
	for i := range docs {
		form, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// AppendEvent pushes onto the events array of the form matching both id and owner.
func (r *FormRepository) AppendEvent(ctx context.Context, formID, ownerID uuid.UUID, event domain.Event) error {
	filter := bson.D{{Key: "_id", Value: formID}, {Key: "user_id", Value: ownerID}}
	update := bson.D{{Key: "$push", Value: bson.D{{Key: "events", Value: domain.NewEventRecord(event)}}}}
	res, err := r.forms.UpdateOne(ctx, filter, update)
	if err != nil {
		return storageErr("append form event", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFormNotFound
	}
	return nil
}

func (r *FormRepository) getOne(ctx context.Context, filter bson.D) (*domain.Form, error) {
	var doc formDocument
	if err := r.forms.FindOne(ctx, filter).Decode(&doc); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrFormNotFound
		}
		return nil, storageErr("get form", err)
	}
	return doc.toDomain()
}
