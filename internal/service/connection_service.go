package service

import (
	"context"
	"fmt"

	"adboard/internal/domain"
	"adboard/internal/repository"
)

// CodeExchanger trades an OAuth authorization code for an access token.
// InstagramService satisfies it; tests substitute a fake.
type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*OAuthToken, error)
}

// ConnectionService links user accounts to external platform accounts.
type ConnectionService interface {
	Connect(ctx context.Context, userID, platformID int64, code string) (*domain.Connection, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Connection, error)
	Disconnect(ctx context.Context, userID, platformID int64) error
}

type connectionService struct {
	connections repository.ConnectionRepository
	platforms   repository.PlatformRepository
	exchanger   CodeExchanger
}

func NewConnectionService(connections repository.ConnectionRepository, platforms repository.PlatformRepository, exchanger CodeExchanger) ConnectionService {
	return &connectionService{
		connections: connections,
		platforms:   platforms,
		exchanger:   exchanger,
	}
}

// Connect exchanges the code and upserts the connection, so reconnecting a
// platform refreshes the stored token rather than duplicating the link.
func (s *connectionService) Connect(ctx context.Context, userID, platformID int64, code string) (*domain.Connection, error) {
	if _, err := s.platforms.Get(ctx, platformID); err != nil {
		return nil, fmt.Errorf("platform %d: %w", platformID, err)
	}

	token, err := s.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	conn := &domain.Connection{
		UserID:        userID,
		PlatformID:    platformID,
		AccountHandle: token.UserID,
		AccessToken:   token.AccessToken,
	}
	if _, err := s.connections.Upsert(ctx, conn); err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *connectionService) ListByUser(ctx context.Context, userID int64) ([]domain.Connection, error) {
	return s.connections.ListByUser(ctx, userID)
}

func (s *connectionService) Disconnect(ctx context.Context, userID, platformID int64) error {
	conn, err := s.connections.GetByUserAndPlatform(ctx, userID, platformID)
	if err != nil {
		return err
	}
	return s.connections.Delete(ctx, conn.ID)
}
