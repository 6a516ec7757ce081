package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"thunee/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// FindMatchRequest optionally narrows the search to a table size.
type FindMatchRequest struct {
	TableSize int `json:"table_size,omitempty"`
}

// FindMatchResponse is returned to clients looking for a table.
type FindMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	return initializer.RegisterRpc(RpcFindMatch, rpcFindMatch)
}

// rpcFindMatch returns a waiting table with an open seat, creating one when
// none exists.
func rpcFindMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	request := FindMatchRequest{}
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &request); err != nil {
			logger.Warn("rpcFindMatch [User:%s]: bad payload: %v", userID, err)
		}
	}
	tableSize := config.GetDefaultTableSize()
	if request.TableSize == 2 || request.TableSize == 4 {
		tableSize = request.TableSize
	}

	query := "+label.game:thunee +label.phase:waiting +label.open:>=1"
	limit := 1
	authoritative := true
	minSize := 0
	maxSize := tableSize

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		resp, _ := json.Marshal(FindMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(resp), nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameThunee, map[string]interface{}{
		"table_size": tableSize,
	})
	if err != nil {
		logger.Error("rpcFindMatch [User:%s]: failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcFindMatch [User:%s]: created match %s", userID, matchID)
	resp, _ := json.Marshal(FindMatchResponse{MatchID: matchID, IsNew: true})
	return string(resp), nil
}
