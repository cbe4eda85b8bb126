// Package workspace keeps workbooks between requests. The default
// store is in-process memory; setting REDIS_ADDR switches to Redis so
// multiple API instances can share state.
package workspace

import (
	"context"
	"log"
	"os"
	"sort"

	"dealdesk/pkg/models"
)

// Store is the workbook persistence surface the API depends on.
type Store interface {
	Get(ctx context.Context, id string) (*models.CompanyWorkbook, error)
	Put(ctx context.Context, wb *models.CompanyWorkbook) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.CompanyWorkbook, error)
}

// NewFromEnv picks the store from the environment.
func NewFromEnv() Store {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		log.Printf("[WORKSPACE] Using Redis store at %s", addr)
		return NewRedisStore(addr)
	}
	log.Printf("[WORKSPACE] Using in-memory store")
	return NewMemoryStore()
}

// byRecency orders workbooks newest-first for listings.
func byRecency(workbooks []*models.CompanyWorkbook) {
	sort.Slice(workbooks, func(i, j int) bool {
		return workbooks[i].UpdatedAt.After(workbooks[j].UpdatedAt)
	})
}
