package ports

import (
	"context"

	"github.com/bnema/ppl/internal/domain"
)

// PersonFetcher returns one page of persons per call. Pages are not
// addressed; every call yields a fresh page.
type PersonFetcher interface {
	FetchPersons(ctx context.Context) ([]domain.Person, error)
}
