package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

var (
	ErrWorkspaceNotFound = errors.New("no workspace in progress for this session and flow")
	ErrGenerateInFlight  = errors.New("a generate request for this workspace is already running")
)

// Store keeps per-user workspace snapshots in redis so an in-progress
// configuration survives restarts and browser reloads. Snapshots expire
// after the configured TTL.
type Store struct {
	rdb     *redis.Client
	snapTTL time.Duration
	lockTTL time.Duration
}

func NewStore(rdb *redis.Client, snapshotTTL, lockTTL time.Duration) *Store {
	return &Store{rdb: rdb, snapTTL: snapshotTTL, lockTTL: lockTTL}
}

func snapshotKey(username string, sessionID int64, flow domain.Flow) string {
	return fmt.Sprintf("workspace_%s_%d_%s", username, sessionID, flow)
}

func lockKey(username string, sessionID int64, flow domain.Flow) string {
	return fmt.Sprintf("workspace_generate_lock_%s_%d_%s", username, sessionID, flow)
}

func (s *Store) Save(ctx context.Context, username string, ws domain.Workspace) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, snapshotKey(username, ws.SessionID, ws.Flow), data, s.snapTTL).Err()
}

func (s *Store) Load(ctx context.Context, username string, sessionID int64, flow domain.Flow) (domain.Workspace, error) {
	data, err := s.rdb.Get(ctx, snapshotKey(username, sessionID, flow)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Workspace{}, ErrWorkspaceNotFound
		}
		return domain.Workspace{}, err
	}

	var ws domain.Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return domain.Workspace{}, err
	}
	return ws, nil
}

func (s *Store) Delete(ctx context.Context, username string, sessionID int64, flow domain.Flow) error {
	return s.rdb.Del(ctx, snapshotKey(username, sessionID, flow)).Err()
}

// AcquireGenerateLock stops double-submits of the generate button. The
// lock expires on its own, so a crashed request cannot wedge the
// workspace for longer than the TTL.
func (s *Store) AcquireGenerateLock(ctx context.Context, username string, sessionID int64, flow domain.Flow) error {
	ok, err := s.rdb.SetNX(ctx, lockKey(username, sessionID, flow), 1, s.lockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrGenerateInFlight
	}
	return nil
}

func (s *Store) ReleaseGenerateLock(ctx context.Context, username string, sessionID int64, flow domain.Flow) error {
	return s.rdb.Del(ctx, lockKey(username, sessionID, flow)).Err()
}
