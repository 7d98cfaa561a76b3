package services

import (
	"context"
	"database/sql"

	"github.com/kcaldiary/kcaldiary/internal/server/models"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/repomanager"
)

type MemberService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewMemberService(db *sql.DB, m repomanager.RepositoryManager) *MemberService {
	return &MemberService{db: db, repomanager: m}
}

// GetByID returns the member for an authenticated token subject, or
// common.ErrorNotFound when the id is unknown.
func (s *MemberService) GetByID(ctx context.Context, id string) (*models.Member, error) {
	return s.repomanager.Members(s.db).GetByID(ctx, id)
}
