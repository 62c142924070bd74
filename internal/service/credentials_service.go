package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/gcoelho/carteira-manager-backend/internal/apperrors"
	"github.com/gcoelho/carteira-manager-backend/internal/repository"
)

const internalAPIKeySetting = "internal_api_key"

// CredentialsService stores operational secrets fernet-encrypted in the
// system_setting table. Today that is the internal API key guarding the
// job-trigger endpoints.
type CredentialsService struct {
	systemRepo *repository.SystemRepository
	key        *fernet.Key
}

// NewCredentialsService creates a CredentialsService. encodedKey is a
// base64 fernet key; when empty, a key is generated for this process,
// which invalidates stored secrets on restart.
func NewCredentialsService(systemRepo *repository.SystemRepository, encodedKey string) (*CredentialsService, error) {
	var key *fernet.Key

	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("generating fernet key: %w", err)
		}
	} else {
		keys, err := fernet.DecodeKeys(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("decoding fernet key: %w", err)
		}
		key = keys[0]
	}

	return &CredentialsService{
		systemRepo: systemRepo,
		key:        key,
	}, nil
}

// StoreInternalAPIKey encrypts and persists the internal API key.
func (s *CredentialsService) StoreInternalAPIKey(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("internal API key cannot be empty")
	}

	token, err := fernet.EncryptAndSign([]byte(apiKey), s.key)
	if err != nil {
		return fmt.Errorf("encrypting internal API key: %w", err)
	}

	return s.systemRepo.SetSetting(ctx, internalAPIKeySetting, string(token))
}

// VerifyInternalAPIKey reports whether the provided key matches the
// stored one. A missing stored key means no request can be authorised.
func (s *CredentialsService) VerifyInternalAPIKey(provided string) (bool, error) {
	stored, err := s.systemRepo.GetSetting(internalAPIKeySetting)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return false, nil
		}
		return false, err
	}

	// ttl 0: stored keys do not expire
	plaintext := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{s.key})
	if plaintext == nil {
		return false, nil
	}

	return subtle.ConstantTimeCompare(plaintext, []byte(provided)) == 1, nil
}
