package ports

import (
	"context"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

// DetailsStore provides static commentary for hexagrams.
type DetailsStore interface {
	GetDetails(ctx context.Context, number int) (domain.HexagramDetails, error)
}
