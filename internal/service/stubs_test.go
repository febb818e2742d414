package service

import (
	"context"
	"sort"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// In-memory repository stubs. Each one implements the corresponding
// repository interface over a map so service rules can be tested
// without a database.

type stubUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *stubUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) EmailTaken(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type stubTokenRepo struct {
	tokens map[uint]*models.Token
	nextID uint
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{tokens: map[uint]*models.Token{}, nextID: 1}
}

func (r *stubTokenRepo) Create(_ context.Context, token *models.Token) error {
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *stubTokenRepo) GetByHash(_ context.Context, hash string) (*models.Token, error) {
	for _, token := range r.tokens {
		if token.TokenHash == hash {
			clone := *token
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubTokenRepo) Touch(_ context.Context, id uint, at time.Time) error {
	if token, ok := r.tokens[id]; ok {
		token.LastUsedAt = &at
	}
	return nil
}

func (r *stubTokenRepo) DeleteByID(_ context.Context, id uint) error {
	delete(r.tokens, id)
	return nil
}

func (r *stubTokenRepo) DeleteByUserAndName(_ context.Context, userID uint, name string) error {
	for id, token := range r.tokens {
		if token.UserID == userID && token.Name == name {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *stubTokenRepo) Rotate(ctx context.Context, old *models.Token, fresh *models.Token) error {
	if _, ok := r.tokens[old.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.tokens, old.ID)
	return r.Create(ctx, fresh)
}

func (r *stubTokenRepo) byUser(userID uint) []*models.Token {
	var out []*models.Token
	for _, token := range r.tokens {
		if token.UserID == userID {
			out = append(out, token)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type stubPostRepo struct {
	posts  map[uint]*models.Post
	nextID uint
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: map[uint]*models.Post{}, nextID: 1}
}

func (r *stubPostRepo) Create(_ context.Context, post *models.Post) error {
	post.ID = r.nextID
	r.nextID++
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) GetByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *post
	return &clone, nil
}

func (r *stubPostRepo) List(_ context.Context, limit, offset int) ([]*models.Post, error) {
	all := make([]*models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		clone := *post
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PublishedAt.After(*all[j].PublishedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubPostRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *stubPostRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.posts[id]
	return ok, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *models.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id uint) error {
	delete(r.posts, id)
	return nil
}

type stubCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1}
}

func (r *stubCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	comment.ID = r.nextID
	r.nextID++
	comment.CreatedAt = time.Now()
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *comment
	return &clone, nil
}

func (r *stubCommentRepo) List(_ context.Context, limit, offset int) ([]*models.Comment, error) {
	all := make([]*models.Comment, 0, len(r.comments))
	for _, comment := range r.comments {
		clone := *comment
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubCommentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.comments)), nil
}

func (r *stubCommentRepo) Update(_ context.Context, comment *models.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *stubCommentRepo) Delete(_ context.Context, id uint) error {
	delete(r.comments, id)
	return nil
}
