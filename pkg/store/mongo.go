package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/votecloud/votecloud/pkg/errors"
)

// Collection names used by MongoStore.
const (
	ContactsCollection  = "contacts"
	QuestionsCollection = "questions"
	VotesCollection     = "votes"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI      string
	Database string
}

// MongoStore keeps the roster, questions and votes in MongoDB.
//
// Votes use the stored employee ID as _id, so the unique index on _id
// enforces one vote per employee across instances.
type MongoStore struct {
	client    *mongo.Client
	contacts  *mongo.Collection
	questions *mongo.Collection
	votes     *mongo.Collection
}

// contactDoc adds the import position and the lookup key to a Contact.
type contactDoc struct {
	Contact `bson:",inline"`
	Seq     int    `bson:"seq"`
	Key     string `bson:"employee_key"`
}

type questionDoc struct {
	Question `bson:",inline"`
	Seq      int `bson:"seq"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a
// primary ping, retrying transient failures with backoff.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "mongo uri")
	}

	err = errors.Retry(ctx, errors.DefaultAttempts, errors.DefaultDelay, func() error {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return errors.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo"))
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	s := NewMongoStoreFromClient(client, cfg.Database)
	_, err = s.contacts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "employee_key", Value: 1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create contacts index")
	}
	return s, nil
}

// NewMongoStoreFromClient wraps an existing client without pinging it.
func NewMongoStoreFromClient(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:    client,
		contacts:  db.Collection(ContactsCollection),
		questions: db.Collection(QuestionsCollection),
		votes:     db.Collection(VotesCollection),
	}
}

func (s *MongoStore) Contacts(ctx context.Context) ([]Contact, error) {
	var docs []contactDoc
	if err := findAll(ctx, s.contacts, bson.D{{Key: "seq", Value: 1}}, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load contacts")
	}
	contacts := make([]Contact, len(docs))
	for i, d := range docs {
		contacts[i] = d.Contact
	}
	return contacts, nil
}

func (s *MongoStore) ReplaceContacts(ctx context.Context, contacts []Contact) error {
	docs := make([]any, len(contacts))
	for i, c := range contacts {
		docs[i] = contactDoc{Contact: c, Seq: i, Key: voterKey(c.EmployeeID)}
	}
	if err := replaceAll(ctx, s.contacts, docs); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "replace contacts")
	}
	return nil
}

func (s *MongoStore) Questions(ctx context.Context) ([]Question, error) {
	var docs []questionDoc
	if err := findAll(ctx, s.questions, bson.D{{Key: "seq", Value: 1}}, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load questions")
	}
	questions := make([]Question, len(docs))
	for i, d := range docs {
		questions[i] = d.Question
	}
	return questions, nil
}

func (s *MongoStore) SaveQuestions(ctx context.Context, questions []Question) error {
	docs := make([]any, len(questions))
	for i, q := range questions {
		docs[i] = questionDoc{Question: q, Seq: i}
	}
	if err := replaceAll(ctx, s.questions, docs); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save questions")
	}
	return nil
}

func (s *MongoStore) Votes(ctx context.Context) ([]Vote, error) {
	var votes []Vote
	sort := bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}
	if err := findAll(ctx, s.votes, sort, &votes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load votes")
	}
	return votes, nil
}

func (s *MongoStore) CastVote(ctx context.Context, employeeID, votedFor string) (Vote, error) {
	votedFor, err := checkBallot(employeeID, votedFor)
	if err != nil {
		return Vote{}, err
	}

	var voter contactDoc
	err = s.contacts.FindOne(ctx, bson.D{{Key: "employee_key", Value: voterKey(employeeID)}}).Decode(&voter)
	if err == mongo.ErrNoDocuments {
		return Vote{}, errors.New(errors.ErrCodeInvalidVoter, "invalid employee id %q", employeeID)
	}
	if err != nil {
		return Vote{}, errors.Wrap(errors.ErrCodeStorage, err, "look up voter")
	}

	// BSON dates carry millisecond precision.
	vote := Vote{
		EmployeeID: voter.EmployeeID,
		VotedFor:   votedFor,
		Timestamp:  time.UnixMilli(time.Now().UnixMilli()),
	}
	if _, err := s.votes.InsertOne(ctx, vote); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Vote{}, errors.New(errors.ErrCodeAlreadyVoted, "you have already voted")
		}
		return Vote{}, errors.Wrap(errors.ErrCodeStorage, err, "record vote")
	}
	return vote, nil
}

func (s *MongoStore) ClearVotes(ctx context.Context) error {
	if _, err := s.votes.DeleteMany(ctx, bson.D{}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "clear votes")
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func findAll(ctx context.Context, coll *mongo.Collection, sort bson.D, out any) error {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func replaceAll(ctx context.Context, coll *mongo.Collection, docs []any) error {
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

var _ Store = (*MongoStore)(nil)
