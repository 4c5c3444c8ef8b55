package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jandervidros/internal/apperror"
	"jandervidros/internal/model"
)

// CredentialRepository reads and replaces the single login row.
type CredentialRepository interface {
	Get(ctx context.Context) (*model.Credential, error)
	Save(ctx context.Context, username, passwordHash string) error
	// EnsureDefault inserts the row only when none exists; it reports whether it did.
	EnsureDefault(ctx context.Context, username, passwordHash string) (bool, error)
}

type credentialRepo struct{ store *Store }

func NewCredentialRepository(store *Store) CredentialRepository {
	return &credentialRepo{store: store}
}

func (r *credentialRepo) Get(ctx context.Context) (*model.Credential, error) {
	var c model.Credential
	err := r.store.DB(ctx).First(&c, model.CredentialID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("credential", model.CredentialID)
	}
	if err != nil {
		return nil, classify("get credential", err)
	}
	return &c, nil
}

func (r *credentialRepo) Save(ctx context.Context, username, passwordHash string) error {
	c := model.Credential{ID: model.CredentialID, Username: username, PasswordHash: passwordHash}
	return classify("save credential", r.store.DB(ctx).Save(&c).Error)
}

func (r *credentialRepo) EnsureDefault(ctx context.Context, username, passwordHash string) (bool, error) {
	var n int64
	if err := r.store.DB(ctx).Model(&model.Credential{}).Where("id = ?", model.CredentialID).Count(&n).Error; err != nil {
		return false, classify("seed credential", err)
	}
	if n > 0 {
		return false, nil
	}
	c := model.Credential{ID: model.CredentialID, Username: username, PasswordHash: passwordHash}
	if err := r.store.DB(ctx).Create(&c).Error; err != nil {
		return false, classify("seed credential", err)
	}
	return true, nil
}
