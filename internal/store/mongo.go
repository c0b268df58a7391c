package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Password     string             `bson:"password"`
	RefreshToken string             `bson:"refreshToken,omitempty"`
}

type mongoLesson struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
}

type mongoExercise struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Title    string             `bson:"title"`
	Question string             `bson:"question"`
	Answer   string             `bson:"answer"`
}

// MongoStore persists users, lessons and exercises as documents in three
// collections. Record ids are ObjectID hex strings.
type MongoStore struct {
	client    *mongo.Client
	users     *mongo.Collection
	lessons   *mongo.Collection
	exercises *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database("study")
	return &MongoStore{
		client:    client,
		users:     db.Collection("users"),
		lessons:   db.Collection("lessons"),
		exercises: db.Collection("exercises"),
	}, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	doc := mongoUser{Username: username, Password: passwordHash}
	res, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toUser(), nil
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.findUser(ctx, bson.M{"username": username})
}

func (s *MongoStore) FindUserByRefreshToken(ctx context.Context, refreshToken string) (*User, error) {
	return s.findUser(ctx, bson.M{"refreshToken": refreshToken})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*User, error) {
	var doc mongoUser
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toUser(), nil
}

func (s *MongoStore) SetRefreshToken(ctx context.Context, userID, refreshToken string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	res, err := s.users.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"refreshToken": refreshToken}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListLessons(ctx context.Context) ([]Lesson, error) {
	cursor, err := s.lessons.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []mongoLesson
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	lessons := make([]Lesson, 0, len(docs))
	for _, d := range docs {
		lessons = append(lessons, *d.toLesson())
	}
	return lessons, nil
}

func (s *MongoStore) CreateLesson(ctx context.Context, lesson Lesson) (*Lesson, error) {
	doc := mongoLesson{Title: lesson.Title, Content: lesson.Content}
	res, err := s.lessons.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toLesson(), nil
}

func (s *MongoStore) UpdateLesson(ctx context.Context, id string, lesson Lesson) (*Lesson, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{"title": lesson.Title, "content": lesson.Content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoLesson
	if err := s.lessons.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toLesson(), nil
}

func (s *MongoStore) DeleteLesson(ctx context.Context, id string) (*Lesson, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc mongoLesson
	if err := s.lessons.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toLesson(), nil
}

func (s *MongoStore) ListExercises(ctx context.Context) ([]Exercise, error) {
	cursor, err := s.exercises.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []mongoExercise
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	exercises := make([]Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, *d.toExercise())
	}
	return exercises, nil
}

func (s *MongoStore) CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error) {
	doc := mongoExercise{Title: exercise.Title, Question: exercise.Question, Answer: exercise.Answer}
	res, err := s.exercises.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toExercise(), nil
}

func (s *MongoStore) UpdateExercise(ctx context.Context, id string, exercise Exercise) (*Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	update := bson.M{"$set": bson.M{
		"title":    exercise.Title,
		"question": exercise.Question,
		"answer":   exercise.Answer,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoExercise
	if err := s.exercises.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toExercise(), nil
}

func (s *MongoStore) DeleteExercise(ctx context.Context, id string) (*Exercise, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var doc mongoExercise
	if err := s.exercises.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toExercise(), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (d mongoUser) toUser() *User {
	return &User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		PasswordHash: d.Password,
		RefreshToken: d.RefreshToken,
	}
}

func (d mongoLesson) toLesson() *Lesson {
	return &Lesson{ID: d.ID.Hex(), Title: d.Title, Content: d.Content}
}

func (d mongoExercise) toExercise() *Exercise {
	return &Exercise{ID: d.ID.Hex(), Title: d.Title, Question: d.Question, Answer: d.Answer}
}
