package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoJob struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Company     string               `bson:"company"`
	Location    string               `bson:"location"`
	Description string               `bson:"description"`
	PostedBy    primitive.ObjectID   `bson:"postedBy"`
	Applicants  []primitive.ObjectID `bson:"applicants"`
	CreatedAt   time.Time            `bson:"createdAt"`
}

func (mj *mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:          mj.ID.Hex(),
		Title:       mj.Title,
		Company:     mj.Company,
		Location:    mj.Location,
		Description: mj.Description,
		PostedBy:    mj.PostedBy.Hex(),
		Applicants:  hexIDs(mj.Applicants),
		CreatedAt:   mj.CreatedAt.UTC(),
	}
}

// Create inserts a new job with an empty applicant set.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	poster, err := primitive.ObjectIDFromHex(job.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("insert job: invalid poster id %q", job.PostedBy)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoJob{
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		PostedBy:    poster,
		Applicants:  []primitive.ObjectID{},
		CreatedAt:   job.CreatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert job: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mj mongoJob
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mj); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return mj.toDomain(), nil
}

// List returns jobs matching filter, newest first.
func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	return r.find(ctx, jobFilterQuery(filter))
}

func (r *JobRepository) ListByPoster(ctx context.Context, posterID string) ([]*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(posterID)
	if err != nil {
		return nil, nil
	}
	return r.find(ctx, bson.M{"postedBy": oid})
}

func (r *JobRepository) ListByApplicant(ctx context.Context, userID string) ([]*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, nil
	}
	return r.find(ctx, bson.M{"applicants": oid})
}

// AddApplicant appends userID in a single conditional update. The filter
// excludes jobs already containing the user, so of any number of concurrent
// calls exactly one matches.
func (r *JobRepository) AddApplicant(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("add applicant: invalid user id %q", userID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := addApplicantQuery(jid, uid)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mj mongoJob
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mj)
	if err == nil {
		return mj.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("add applicant: %w", err)
	}

	// No match: either the job is gone or the user is already in the set.
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": jid})
	if err != nil {
		return nil, fmt.Errorf("add applicant: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrJobNotFound
	}
	return nil, domain.ErrAlreadyApplied
}

// addApplicantQuery matches the job only while uid is absent from its
// applicants, and pushes uid onto the set.
func addApplicantQuery(jid, uid primitive.ObjectID) (filter, update bson.M) {
	filter = bson.M{"_id": jid, "applicants": bson.M{"$ne": uid}}
	update = bson.M{"$push": bson.M{"applicants": uid}}
	return filter, update
}

// DeleteOwned removes the job only when ownerID posted it.
func (r *JobRepository) DeleteOwned(ctx context.Context, jobID, ownerID string) error {
	jid, err := primitive.ObjectIDFromHex(jobID)
	if err != nil {
		return domain.ErrJobNotFound
	}
	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": jid, "postedBy": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "postedBy", Value: 1}}},
		{Keys: bson.D{{Key: "applicants", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *JobRepository) find(ctx context.Context, filter bson.M) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoJob
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	out := make([]*domain.Job, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

// jobFilterQuery turns a JobFilter into an anchored, case-insensitive match
// per field. User input is quoted so it never acts as a pattern.
func jobFilterQuery(f domain.JobFilter) bson.M {
	q := bson.M{}
	add := func(field, value string) {
		if value == "" {
			return
		}
		q[field] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
	}
	add("title", f.Title)
	add("location", f.Location)
	add("company", f.Company)
	return q
}
