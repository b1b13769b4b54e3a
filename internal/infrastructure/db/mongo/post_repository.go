package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/blogplatform/blog/internal/core/domain"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

var newestFirst = bson.D{{Key: "published_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *PostRepository) ListAll(ctx context.Context) ([]domain.Post, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPostNotFound
		}
		return nil, storeErr("find post", err)
	}
	return &p, nil
}

// Search returns one 1-based page of posts whose title or content contains
// keyword, ignoring case.
func (r *PostRepository) Search(ctx context.Context, keyword string, page, pageSize int) (*domain.PostPage, error) {
	if page < 1 {
		page = 1
	}
	filter := keywordFilter(keyword)

	countCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	total, err := r.col.CountDocuments(countCtx, filter)
	cancel()
	if err != nil {
		return nil, storeErr("count posts", err)
	}

	opts := options.Find().SetSort(newestFirst)
	if pageSize > 0 {
		opts.SetSkip(int64((page - 1) * pageSize)).SetLimit(int64(pageSize))
	}
	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	out := &domain.PostPage{Items: items, Total: total, Page: page, PageSize: pageSize}
	if pageSize > 0 {
		out.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return out, nil
}

func (r *PostRepository) SearchAll(ctx context.Context, keyword string) ([]domain.Post, error) {
	return r.find(ctx, keywordFilter(keyword), options.Find().SetSort(newestFirst))
}

// Save upserts the post. published_at is only written on insert.
func (r *PostRepository) Save(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := post.ID
	if id == "" {
		id = uuid.NewString()
	}
	publishedAt := post.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now().UTC()
	}

	update := bson.M{
		"$set": bson.M{
			"title":        post.Title,
			"content":      post.Content,
			"author_email": post.AuthorEmail,
			"author_name":  post.AuthorName,
		},
		"$setOnInsert": bson.M{"published_at": publishedAt},
	}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true)); err != nil {
		return nil, storeErr("save post", err)
	}
	return r.FindByID(ctx, id)
}

// Delete removes the post document only; comments are removed by the
// caller through CommentRepository.DeleteByPost.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr("delete post", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) RewriteAuthorEmail(ctx context.Context, oldEmail, newEmail string) (int64, error) {
	if skipRewrite(oldEmail, newEmail) {
		return 0, nil
	}
	return rewrite(ctx, r.col, bson.M{"author_email": sameEmail(oldEmail)}, bson.M{"author_email": newEmail})
}

func (r *PostRepository) RewriteAuthorName(ctx context.Context, email, newName string) (int64, error) {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(newName) == "" {
		return 0, nil
	}
	return rewrite(ctx, r.col,
		bson.M{"author_email": sameEmail(email), "author_name": bson.M{"$ne": newName}},
		bson.M{"author_name": newName})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("find posts", err)
	}
	posts := []domain.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, storeErr("decode posts", err)
	}
	return posts, nil
}

// keywordFilter matches title OR content case-insensitively; a blank keyword
// matches everything.
func keywordFilter(keyword string) bson.M {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return bson.M{}
	}
	pattern := containsPattern(keyword)
	return bson.M{"$or": bson.A{
		bson.M{"title": pattern},
		bson.M{"content": pattern},
	}}
}

func containsPattern(keyword string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
}

func rewrite(ctx context.Context, col *mongo.Collection, filter, set bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, storeErr("rewrite "+col.Name(), err)
	}
	return res.ModifiedCount, nil
}
