package workspace

import (
	"encoding/json"
	"fmt"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// exportVersion stamps exported snapshots so old files fail fast instead
// of silently half-loading after a format change.
const exportVersion = 1

type exportEnvelope struct {
	Version           int                    `json:"version"`
	SessionID         int64                  `json:"sessionId"`
	Flow              domain.Flow            `json:"flow"`
	NumberOfWeeks     int                    `json:"numberOfWeeks"`
	SessionDefaults   domain.SessionDefaults `json:"sessionDefaults"`
	WeekConfigs       []domain.WeekConfig    `json:"weekConfigs"`
	CapacityOverrides map[int64]bool         `json:"capacityOverrides,omitempty"`
	NextAdhocID       int64                  `json:"nextAdhocId"`
}

// Export serializes the full workspace, ad-hoc id counter included, so an
// import continues minting where the export left off.
func Export(ws domain.Workspace) ([]byte, error) {
	env := exportEnvelope{
		Version:           exportVersion,
		SessionID:         ws.SessionID,
		Flow:              ws.Flow,
		NumberOfWeeks:     ws.NumberOfWeeks,
		SessionDefaults:   ws.SessionDefaults,
		WeekConfigs:       ws.WeekConfigs,
		CapacityOverrides: ws.CapacityOverrides,
		NextAdhocID:       ws.NextAdhocID,
	}
	return json.MarshalIndent(env, "", "  ")
}

// Import parses and validates an exported snapshot. Whole-file replace:
// either every check passes and the returned workspace is complete, or
// an error describes the first violation and nothing is applied.
func Import(data []byte) (domain.Workspace, error) {
	var env exportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.Workspace{}, fmt.Errorf("failed to parse workspace file: %w", err)
	}

	if env.Version != exportVersion {
		return domain.Workspace{}, fmt.Errorf("unsupported workspace file version %d", env.Version)
	}
	if env.SessionID <= 0 {
		return domain.Workspace{}, fmt.Errorf("invalid session id %d", env.SessionID)
	}
	if !env.Flow.Valid() {
		return domain.Workspace{}, fmt.Errorf("invalid flow %q", env.Flow)
	}
	if env.NumberOfWeeks != len(env.WeekConfigs) {
		return domain.Workspace{}, fmt.Errorf("numberOfWeeks is %d but the file has %d week configs", env.NumberOfWeeks, len(env.WeekConfigs))
	}
	for i, week := range env.WeekConfigs {
		if week.WeekNumber != i+1 {
			return domain.Workspace{}, fmt.Errorf("week configs are not contiguous: position %d has week number %d", i+1, week.WeekNumber)
		}
	}
	if err := validatePools(env.SessionDefaults.Pools); err != nil {
		return domain.Workspace{}, fmt.Errorf("session defaults: %w", err)
	}
	for _, week := range env.WeekConfigs {
		if err := validatePools(week.Pools); err != nil {
			return domain.Workspace{}, fmt.Errorf("week %d: %w", week.WeekNumber, err)
		}
	}
	if env.NextAdhocID < firstAdhocID {
		env.NextAdhocID = firstAdhocID
	}

	ws := domain.Workspace{
		SessionID:         env.SessionID,
		Flow:              env.Flow,
		NumberOfWeeks:     env.NumberOfWeeks,
		SessionDefaults:   env.SessionDefaults,
		WeekConfigs:       env.WeekConfigs,
		CapacityOverrides: env.CapacityOverrides,
		NextAdhocID:       env.NextAdhocID,
	}
	if ws.SessionDefaults.Pools == nil {
		ws.SessionDefaults.Pools = map[domain.PoolType]domain.DutyPool{}
	}
	for i := range ws.WeekConfigs {
		if ws.WeekConfigs[i].Pools == nil {
			ws.WeekConfigs[i].Pools = map[domain.PoolType]domain.DutyPool{}
		}
	}
	return ws, nil
}

func validatePools(pools map[domain.PoolType]domain.DutyPool) error {
	for pool, members := range pools {
		switch pool {
		case domain.PoolArtsAndCrafts, domain.PoolCardTrading:
		default:
			return fmt.Errorf("unknown pool type %q", pool)
		}
		if len(members) > domain.MaxPoolSize {
			return fmt.Errorf("pool %q has %d members, the limit is %d", pool, len(members), domain.MaxPoolSize)
		}
		seen := make(map[int64]struct{}, len(members))
		for _, staffID := range members {
			if _, dup := seen[staffID]; dup {
				return fmt.Errorf("pool %q lists staff %d twice", pool, staffID)
			}
			seen[staffID] = struct{}{}
		}
	}
	return nil
}
