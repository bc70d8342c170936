package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edumatch-server/apperrors"
	"edumatch-server/models"
)

// Mongo implements Store on top of the hosted document database.
type Mongo struct {
	students     *mongo.Collection
	colleges     *mongo.Collection
	courses      *mongo.Collection
	questions    *mongo.Collection
	tests        *mongo.Collection
	applications *mongo.Collection
	results      *mongo.Collection
	appIndex     *mongo.Collection
}

func OpenMongo(ctx context.Context, uri, dbName string) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	db := client.Database(dbName)
	m := &Mongo{
		students:     db.Collection("students"),
		colleges:     db.Collection("colleges"),
		courses:      db.Collection("courses"),
		questions:    db.Collection("questions"),
		tests:        db.Collection("aptitude_tests"),
		applications: db.Collection("applications"),
		results:      db.Collection("test_results"),
		appIndex:     db.Collection("application_index"),
	}

	// One graded attempt per (test, student, application). Retries surface as
	// duplicate key errors and are rejected in InsertResult.
	_, err = m.results.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "test_id", Value: 1},
			{Key: "student_id", Value: 1},
			{Key: "application_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("creating test_results index: %w", err)
	}
	return m, nil
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return primitive.NewObjectID().Hex()
}

func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperrors.NewNotFound(entity, id)
	}
	return err
}

func (m *Mongo) InsertStudent(ctx context.Context, s *models.Student) error {
	s.ID = newID(s.ID)
	_, err := m.students.InsertOne(ctx, s)
	return err
}

func (m *Mongo) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var s models.Student
	err := m.students.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err != nil {
		return nil, notFoundOr(err, "student", id)
	}
	return &s, nil
}

func (m *Mongo) FindStudentByAuthUID(ctx context.Context, uid string) (*models.Student, error) {
	var s models.Student
	err := m.students.FindOne(ctx, bson.M{"auth_uid": uid}).Decode(&s)
	if err != nil {
		return nil, notFoundOr(err, "student", uid)
	}
	return &s, nil
}

func (m *Mongo) ListStudentIDs(ctx context.Context) ([]string, error) {
	cursor, err := m.students.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func (m *Mongo) InsertCollege(ctx context.Context, c *models.College) error {
	c.ID = newID(c.ID)
	_, err := m.colleges.InsertOne(ctx, c)
	return err
}

func (m *Mongo) GetCollege(ctx context.Context, id string) (*models.College, error) {
	var c models.College
	err := m.colleges.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		return nil, notFoundOr(err, "college", id)
	}
	return &c, nil
}

func (m *Mongo) InsertCourse(ctx context.Context, c *models.Course) error {
	c.ID = newID(c.ID)
	_, err := m.courses.InsertOne(ctx, c)
	return err
}

func (m *Mongo) InsertQuestion(ctx context.Context, q *models.Question) error {
	q.ID = newID(q.ID)
	_, err := m.questions.InsertOne(ctx, q)
	return err
}

func (m *Mongo) QuestionsByCollege(ctx context.Context, collegeID string) ([]models.Question, error) {
	cursor, err := m.questions.Find(ctx, bson.M{"college_id": collegeID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []models.Question
	for cursor.Next(ctx) {
		var q models.Question
		if err := cursor.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, cursor.Err()
}

func (m *Mongo) FindQuestion(ctx context.Context, id string) (*models.Question, error) {
	var q models.Question
	err := m.questions.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if err != nil {
		return nil, notFoundOr(err, "question", id)
	}
	return &q, nil
}

func (m *Mongo) InsertTest(ctx context.Context, t *models.AptitudeTest) error {
	t.ID = newID(t.ID)
	_, err := m.tests.InsertOne(ctx, t)
	return err
}

func (m *Mongo) GetTest(ctx context.Context, id string) (*models.AptitudeTest, error) {
	var t models.AptitudeTest
	err := m.tests.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		return nil, notFoundOr(err, "test", id)
	}
	return &t, nil
}

func (m *Mongo) ListElectiveTests(ctx context.Context) ([]models.AptitudeTest, error) {
	cursor, err := m.tests.Find(ctx, bson.M{"elective": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tests []models.AptitudeTest
	for cursor.Next(ctx) {
		var t models.AptitudeTest
		if err := cursor.Decode(&t); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, cursor.Err()
}

func (m *Mongo) InsertApplication(ctx context.Context, a *models.Application) error {
	a.ID = newID(a.ID)
	if _, err := m.applications.InsertOne(ctx, a); err != nil {
		return err
	}
	// Owner index row. A failure here is tolerated: reconciliation falls back
	// to scanning students when the index has no row.
	if _, err := m.appIndex.InsertOne(ctx, bson.M{"_id": a.ID, "student_id": a.StudentID}); err != nil {
		log.Printf("application %s: owner index write failed: %v", a.ID, err)
	}
	return nil
}

func (m *Mongo) GetApplication(ctx context.Context, studentID, applicationID string) (*models.Application, error) {
	var a models.Application
	err := m.applications.FindOne(ctx,
		bson.M{"_id": applicationID, "student_id": studentID}).Decode(&a)
	if err != nil {
		return nil, notFoundOr(err, "application", applicationID)
	}
	return &a, nil
}

func (m *Mongo) ApplicationsByStudent(ctx context.Context, studentID string, status models.ApplicationStatus) ([]models.Application, error) {
	filter := bson.M{"student_id": studentID}
	if status != "" {
		filter["status"] = status
	}
	cursor, err := m.applications.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var apps []models.Application
	for cursor.Next(ctx) {
		var a models.Application
		if err := cursor.Decode(&a); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, cursor.Err()
}

func (m *Mongo) SetApplicationStatus(ctx context.Context, studentID, applicationID string, status models.ApplicationStatus) error {
	res, err := m.applications.UpdateOne(ctx,
		bson.M{"_id": applicationID, "student_id": studentID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFound("application", applicationID)
	}
	return nil
}

func (m *Mongo) ApplyTestOutcome(ctx context.Context, studentID, applicationID string, snapshot models.TestResultSnapshot, status models.ApplicationStatus) error {
	res, err := m.applications.UpdateOne(ctx,
		bson.M{"_id": applicationID, "student_id": studentID},
		bson.M{"$set": bson.M{
			"test_result": snapshot,
			"status":      status,
			"updated_at":  time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NewNotFound("application", applicationID)
	}
	return nil
}

func (m *Mongo) LookupApplicationOwner(ctx context.Context, applicationID string) (string, error) {
	var doc struct {
		StudentID string `bson:"student_id"`
	}
	err := m.appIndex.FindOne(ctx, bson.M{"_id": applicationID}).Decode(&doc)
	if err != nil {
		return "", notFoundOr(err, "application", applicationID)
	}
	return doc.StudentID, nil
}

func (m *Mongo) InsertResult(ctx context.Context, r *models.TestResult) error {
	r.ID = newID(r.ID)
	_, err := m.results.InsertOne(ctx, r)
	if mongo.IsDuplicateKeyError(err) {
		return apperrors.ErrDuplicateResult
	}
	return err
}

func (m *Mongo) ResultsByStudent(ctx context.Context, studentID string) ([]models.TestResult, error) {
	cursor, err := m.results.Find(ctx, bson.M{"student_id": studentID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.TestResult
	for cursor.Next(ctx) {
		var r models.TestResult
		if err := cursor.Decode(&r); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, cursor.Err()
}
