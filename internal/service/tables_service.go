package service

import (
	"context"

	"boutiqueCMS/internal/repository"
)

type Readiness struct {
	Database string `json:"database"`
	Tables   int    `json:"tables"`
}

type TablesService interface {
	Ready(ctx context.Context) (*Readiness, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Ready(ctx context.Context) (*Readiness, error) {
	if err := t.tablesRepo.Ping(ctx); err != nil {
		return &Readiness{Database: "unreachable"}, err
	}

	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return &Readiness{Database: "unreachable"}, err
	}

	return &Readiness{Database: "ok", Tables: countTables}, nil
}
