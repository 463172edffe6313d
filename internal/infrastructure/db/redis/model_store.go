package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

const modelKey = "model:price_regressor"

// ModelStore persists the fitted price model as JSON under a fixed key,
// so it survives restarts and is shared across replicas.
type ModelStore struct {
	client *redis.Client
}

func NewModelStore(client *redis.Client) *ModelStore {
	return &ModelStore{client: client}
}

func (s *ModelStore) Save(ctx context.Context, model *domain.PriceModel) error {
	payload, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := s.client.Set(ctx, modelKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

func (s *ModelStore) Load(ctx context.Context) (*domain.PriceModel, error) {
	payload, err := s.client.Get(ctx, modelKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrModelNotTrained
		}
		return nil, fmt.Errorf("load model: %w", err)
	}

	var model domain.PriceModel
	if err := json.Unmarshal(payload, &model); err != nil {
		return nil, fmt.Errorf("unmarshal model: %w", err)
	}
	return &model, nil
}
