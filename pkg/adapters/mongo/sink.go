package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/incorporate/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultCollection receives the leads.
const DefaultCollection = "leads"

// LeadSink implements ports.LeadSink and ports.LeadReader on MongoDB.
// Submissions upsert by lead ID, so a retried Submit stores one document.
type LeadSink struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// Connect dials uri and returns a sink writing to database.collection.
// An empty collection uses DefaultCollection.
func Connect(ctx context.Context, uri, database, collection string) (*LeadSink, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping error: %w", err)
	}

	s := &LeadSink{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// NewFromCollection wraps an existing collection. Close is then a no-op.
func NewFromCollection(c *mongo.Collection) *LeadSink {
	return &LeadSink{collection: c}
}

func (s *LeadSink) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "session_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("mongodb index error: %w", err)
	}
	return nil
}

// Submit upserts the lead document.
func (s *LeadSink) Submit(ctx context.Context, lead *domain.Lead) error {
	if lead == nil {
		return fmt.Errorf("lead is nil")
	}
	doc := toDocument(lead)
	_, err := s.collection.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: doc.ID}},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// Lead returns the lead with the given ID.
func (s *LeadSink) Lead(ctx context.Context, id string) (*domain.Lead, error) {
	var doc leadDocument
	err := s.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	return fromDocument(doc)
}

// Ping checks connectivity, used by health checks.
func (s *LeadSink) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client opened by Connect.
func (s *LeadSink) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// leadDocument is the stored shape: answers are plain strings or string
// arrays so the collection stays queryable.
type leadDocument struct {
	ID           string         `bson:"_id"`
	SessionID    string         `bson:"session_id"`
	Flow         string         `bson:"flow"`
	ContactName  string         `bson:"contact_name"`
	ContactEmail string         `bson:"contact_email"`
	ContactPhone string         `bson:"contact_phone"`
	Answers      map[string]any `bson:"answers"`
	CapturedAt   time.Time      `bson:"captured_at"`
}

func toDocument(l *domain.Lead) leadDocument {
	return leadDocument{
		ID:           l.ID,
		SessionID:    l.SessionID,
		Flow:         string(l.Flow),
		ContactName:  l.ContactName,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
		Answers:      l.Answers.Values(),
		CapturedAt:   l.CapturedAt,
	}
}

func fromDocument(d leadDocument) (*domain.Lead, error) {
	answers := make(domain.AnswerStore, len(d.Answers))
	for qid, raw := range d.Answers {
		a, err := decodeAnswer(raw)
		if err != nil {
			return nil, fmt.Errorf("lead %s: answer %q: %w", d.ID, qid, err)
		}
		answers[qid] = a
	}
	return &domain.Lead{
		ID:           d.ID,
		SessionID:    d.SessionID,
		Flow:         domain.Flow(d.Flow),
		ContactName:  d.ContactName,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Answers:      answers,
		CapturedAt:   d.CapturedAt,
	}, nil
}

func decodeAnswer(raw any) (domain.Answer, error) {
	var items []any
	switch v := raw.(type) {
	case string:
		return domain.SingleAnswer(v), nil
	case []string:
		return domain.MultiAnswer(v...), nil
	case bson.A:
		items = v
	case []any:
		items = v
	default:
		return domain.Answer{}, fmt.Errorf("unexpected type %T", raw)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		id, ok := item.(string)
		if !ok {
			return domain.Answer{}, fmt.Errorf("unexpected option type %T", item)
		}
		ids = append(ids, id)
	}
	return domain.MultiAnswer(ids...), nil
}
