package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogplatform/blog/internal/core/domain"
)

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	sort := bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	return r.find(ctx, bson.M{"post_id": postID}, options.Find().SetSort(sort))
}

func (r *CommentRepository) ListAll(ctx context.Context) ([]domain.Comment, error) {
	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	return r.find(ctx, bson.M{}, options.Find().SetSort(sort))
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Comment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, storeErr("find comment", err)
	}
	return &c, nil
}

// Save upserts the comment. created_at is only written on insert.
func (r *CommentRepository) Save(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := comment.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	set := bson.M{
		"content":       comment.Content,
		"author_email":  comment.AuthorEmail,
		"author_name":   comment.AuthorName,
		"post_id":       comment.PostID,
		"inappropriate": comment.Inappropriate,
	}
	if comment.ParentID != "" {
		set["parent_id"] = comment.ParentID
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"created_at": createdAt},
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true)); err != nil {
		return nil, storeErr("save comment", err)
	}
	return r.FindByID(ctx, id)
}

func (r *CommentRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete comment", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return 0, storeErr("delete post comments", err)
	}
	return res.DeletedCount, nil
}

func (r *CommentRepository) SetInappropriate(ctx context.Context, id string, flagged bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"inappropriate": flagged}})
	if err != nil {
		return storeErr("flag comment", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) RewriteAuthorEmail(ctx context.Context, oldEmail, newEmail string) (int64, error) {
	if skipRewrite(oldEmail, newEmail) {
		return 0, nil
	}
	return rewrite(ctx, r.col, bson.M{"author_email": sameEmail(oldEmail)}, bson.M{"author_email": newEmail})
}

func (r *CommentRepository) RewriteAuthorName(ctx context.Context, email, newName string) (int64, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(newName) == "" {
		return 0, nil
	}
	return rewrite(ctx, r.col,
		bson.M{"author_email": sameEmail(email), "author_name": bson.M{"$ne": newName}},
		bson.M{"author_name": newName})
}

func (r *CommentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("find comments", err)
	}
	comments := []domain.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, storeErr("decode comments", err)
	}
	return comments, nil
}
