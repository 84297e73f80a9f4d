package mongo

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/jobportal/jobboard-api/internal/core/domain"
)

func TestJobFilterQuery_Empty(t *testing.T) {
	assert.Empty(t, jobFilterQuery(domain.JobFilter{}))
}

func TestJobFilterQuery_AnchoredCaseInsensitive(t *testing.T) {
	q := jobFilterQuery(domain.JobFilter{Company: "Acme", Location: "New York"})

	require.Len(t, q, 2)
	company, ok := q["company"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "i", company.Options)

	re := regexp.MustCompile("(?i)" + company.Pattern)
	assert.True(t, re.MatchString("acme"))
	assert.True(t, re.MatchString("ACME"))
	assert.False(t, re.MatchString("Acme Corp"))
	assert.NotContains(t, q, "title")
}

func TestJobFilterQuery_QuotesMetacharacters(t *testing.T) {
	q := jobFilterQuery(domain.JobFilter{Title: "C++ (Senior).*"})

	title := q["title"].(primitive.Regex)
	re := regexp.MustCompile("(?i)" + title.Pattern)
	assert.True(t, re.MatchString("c++ (senior).*"))
	assert.False(t, re.MatchString("C++ Senior developer"))
}

func TestMongoJob_ToDomain(t *testing.T) {
	poster := primitive.NewObjectID()
	applicant := primitive.NewObjectID()
	mj := mongoJob{
		ID:         primitive.NewObjectID(),
		Title:      "Go Dev",
		PostedBy:   poster,
		Applicants: []primitive.ObjectID{applicant},
	}

	job := mj.toDomain()
	assert.Equal(t, poster.Hex(), job.PostedBy)
	assert.Equal(t, []string{applicant.Hex()}, job.Applicants)
	assert.True(t, job.IsOwnedBy(poster.Hex()))
}

func TestObjectIDs_DropsMalformed(t *testing.T) {
	oid := primitive.NewObjectID()
	got := objectIDs([]string{oid.Hex(), "not-an-id", ""})
	assert.Equal(t, []primitive.ObjectID{oid}, got)
}

func TestAddApplicantQuery_ExcludesExistingApplicant(t *testing.T) {
	jid := primitive.NewObjectID()
	uid := primitive.NewObjectID()

	filter, update := addApplicantQuery(jid, uid)

	assert.Equal(t, bson.M{"_id": jid, "applicants": bson.M{"$ne": uid}}, filter)
	assert.Equal(t, bson.M{"$push": bson.M{"applicants": uid}}, update)
}

func TestJobRepository_AddApplicant(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	jid := primitive.NewObjectID()
	uid := primitive.NewObjectID()
	poster := primitive.NewObjectID()

	noMatch := mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil})
	countOf := func(mt *mtest.T, n int64) bson.D {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		if n == 0 {
			return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch)
		}
		return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: n}})
	}

	mt.Run("appends applicant", func(mt *mtest.T) {
		repo := &JobRepository{col: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: jid},
			{Key: "title", Value: "Go Dev"},
			{Key: "postedBy", Value: poster},
			{Key: "applicants", Value: bson.A{uid}},
		}}))

		job, err := repo.AddApplicant(context.Background(), jid.Hex(), uid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, jid.Hex(), job.ID)
		assert.Equal(mt, []string{uid.Hex()}, job.Applicants)
	})

	mt.Run("job missing", func(mt *mtest.T) {
		repo := &JobRepository{col: mt.Coll}
		mt.AddMockResponses(noMatch, countOf(mt, 0))

		_, err := repo.AddApplicant(context.Background(), jid.Hex(), uid.Hex())
		assert.ErrorIs(mt, err, domain.ErrJobNotFound)
	})

	mt.Run("already applied", func(mt *mtest.T) {
		repo := &JobRepository{col: mt.Coll}
		mt.AddMockResponses(noMatch, countOf(mt, 1))

		_, err := repo.AddApplicant(context.Background(), jid.Hex(), uid.Hex())
		assert.ErrorIs(mt, err, domain.ErrAlreadyApplied)
	})

	mt.Run("malformed job id", func(mt *mtest.T) {
		repo := &JobRepository{col: mt.Coll}

		_, err := repo.AddApplicant(context.Background(), "not-an-id", uid.Hex())
		assert.ErrorIs(mt, err, domain.ErrJobNotFound)
	})
}
