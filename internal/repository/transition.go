package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

type TransitionRepository interface {
	Append(ctx context.Context, transition *entity.Transition) error
	ListByEpisode(ctx context.Context, episodeID string) ([]*entity.Transition, error)
	DeleteByEpisode(ctx context.Context, episodeID string) error
}

type dbTransition struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTransitionRepository - stores transitions in one redis list per episode.
// A zero ttl keeps the lists until they are deleted.
func NewTransitionRepository(client *redis.Client, ttl time.Duration) TransitionRepository {
	return &dbTransition{
		client: client,
		ttl:    ttl,
	}
}

func episodeKey(episodeID string) string {
	return "episode:" + episodeID
}

func (that *dbTransition) Append(ctx context.Context, transition *entity.Transition) error {
	transitionJSON, err := json.Marshal(transition)
	if err != nil {
		return fmt.Errorf("could not marshal transition: %w", err)
	}

	key := episodeKey(transition.EpisodeID)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, transitionJSON)
		if that.ttl > 0 {
			pipe.Expire(ctx, key, that.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to append transition: %w", err)
	}

	return nil
}

func (that *dbTransition) ListByEpisode(ctx context.Context, episodeID string) ([]*entity.Transition, error) {
	response, err := that.client.LRange(ctx, episodeKey(episodeID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}

	if len(response) == 0 {
		return nil, apperror.ErrEpisodeNotFound
	}

	transitions := make([]*entity.Transition, 0, len(response))
	for _, raw := range response {
		var transition entity.Transition
		if err = json.Unmarshal([]byte(raw), &transition); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transition: %w", err)
		}
		transitions = append(transitions, &transition)
	}

	return transitions, nil
}

func (that *dbTransition) DeleteByEpisode(ctx context.Context, episodeID string) error {
	deleted, err := that.client.Del(ctx, episodeKey(episodeID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete episode: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrEpisodeNotFound
	}

	return nil
}

type nopTransition struct{}

// NewNopTransitionRepository - discards every transition. Used when recording is disabled.
func NewNopTransitionRepository() TransitionRepository {
	return nopTransition{}
}

func (nopTransition) Append(context.Context, *entity.Transition) error {
	return nil
}

func (nopTransition) ListByEpisode(context.Context, string) ([]*entity.Transition, error) {
	return nil, apperror.ErrEpisodeNotFound
}

// DeleteByEpisode - nothing is ever stored, so every episode is unknown.
func (nopTransition) DeleteByEpisode(context.Context, string) error {
	return apperror.ErrEpisodeNotFound
}
