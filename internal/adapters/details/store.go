package details

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/nathankoerschner/threecoins/internal/domain"
)

//go:embed data/*.yaml
var detailsFS embed.FS

const detailsFile = "data/hexagrams.yaml"

// EmbeddedStore serves hexagram commentary from embedded YAML.
type EmbeddedStore struct {
	once    sync.Once
	details map[int]domain.HexagramDetails
	err     error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := detailsFS.ReadFile(detailsFile)
	if err != nil {
		s.err = fmt.Errorf("read embedded details: %w", err)
		return
	}
	var entries []domain.HexagramDetails
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		s.err = fmt.Errorf("parse embedded details: %w", err)
		return
	}
	s.details = make(map[int]domain.HexagramDetails, len(entries))
	for _, d := range entries {
		if _, dup := s.details[d.Number]; dup {
			s.err = fmt.Errorf("%w: duplicate details for hexagram %d", domain.ErrDataIntegrity, d.Number)
			return
		}
		s.details[d.Number] = d
	}
}

func (s *EmbeddedStore) GetDetails(_ context.Context, number int) (domain.HexagramDetails, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return domain.HexagramDetails{}, s.err
	}
	d, ok := s.details[number]
	if !ok {
		return domain.HexagramDetails{}, fmt.Errorf("%w: no details for %d", domain.ErrHexagramNotFound, number)
	}
	return d, nil
}

// Count reports how many hexagrams have commentary.
func (s *EmbeddedStore) Count() (int, error) {
	s.once.Do(s.init)
	return len(s.details), s.err
}
