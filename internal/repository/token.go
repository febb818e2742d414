package repository

import (
	"context"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TokenRepository defines the interface for the token registry.
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	// GetByHash resolves a token by the SHA-256 hash of its secret,
	// with the owning user preloaded.
	GetByHash(ctx context.Context, hash string) (*models.Token, error)
	Touch(ctx context.Context, id uint, at time.Time) error
	DeleteByID(ctx context.Context, id uint) error
	DeleteByUserAndName(ctx context.Context, userID uint, name string) error
	// Rotate deletes old and persists fresh inside a single transaction
	// so a failure never leaves the user without a committed deletion
	// and no replacement.
	Rotate(ctx context.Context, old *models.Token, fresh *models.Token) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.Token) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) GetByHash(ctx context.Context, hash string) (*models.Token, error) {
	var token models.Token
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token_hash = ?", hash).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Token{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}

func (r *tokenRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Token{}, id).Error
}

func (r *tokenRepository) DeleteByUserAndName(ctx context.Context, userID uint, name string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		Delete(&models.Token{}).Error
}

func (r *tokenRepository) Rotate(ctx context.Context, old *models.Token, fresh *models.Token) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Token{}, old.ID)
		if res.Error != nil {
			return res.Error
		}
		// A concurrent logout or refresh already consumed the token.
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(fresh).Error
	})
}
