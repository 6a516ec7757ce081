package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"thunee/internal/app"
	"thunee/internal/bot"
	"thunee/internal/config"
	"thunee/internal/domain"
	"thunee/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const tickRate = 4

// matchLabel is the JSON label advertised for match listing queries.
type matchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the authoritative runtime state for one table.
type MatchState struct {
	Game      *domain.GameState
	Presences map[string]runtime.Presence
	App       *app.Service
	Tokens    *app.SeatTokenService
	Store     ports.SnapshotStore
	Economy   ports.EconomyPort
	Bots      map[string]*bot.Agent

	TableSize   int
	Tick        int64
	BotsEnabled bool

	// Tick deadlines. Zero means the timer is not armed.
	SoloSinceTick   int64
	TrickPauseUntil int64
	RoundRestartAt  int64
	BotActAt        int64

	// PendingRejoins maps a joining user to the seat its token proved
	// ownership of. Entries are consumed by MatchJoin.
	PendingRejoins map[string]string

	// Seats maps a connection's user id to the seat it is bound to. The two
	// differ when a seat was reclaimed with a token from a new account.
	Seats map[string]string

	Settled bool
	dirty   bool
}

func (ms *MatchState) humanSeatCount() int {
	count := 0
	for _, p := range ms.Game.Players {
		if !p.IsBot {
			count++
		}
	}
	return count
}

// seatFor resolves a connection to its seat id. Connections without an
// explicit binding play under their own user id.
func (ms *MatchState) seatFor(userID string) string {
	if seat, ok := ms.Seats[userID]; ok {
		return seat
	}
	return userID
}

func (ms *MatchState) openSeatCount() int {
	open := ms.Game.PlayerCount - len(ms.Game.Players)
	if open < 0 {
		return 0
	}
	return open
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created. A previously persisted
// snapshot for the same room is restored so a restarted server picks the
// table up where it left off.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: could not load game config: %v", err)
	}
	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: could not load bot identities: %v", err)
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	tableSize := config.GetDefaultTableSize()
	switch v := params["table_size"].(type) {
	case float64:
		if int(v) == 2 || int(v) == 4 {
			tableSize = int(v)
		}
	case int:
		if v == 2 || v == 4 {
			tableSize = v
		}
	}

	service := app.NewService(nil)
	service.SetBidTimer(time.Duration(config.GetBidTimerSeconds()) * time.Second)
	service.SetWinThreshold(config.GetWinThresholdBalls())

	state := &MatchState{
		Presences:      make(map[string]runtime.Presence),
		App:            service,
		Store:          NewNakamaSnapshotStore(nk),
		Economy:        NewNakamaEconomyAdapter(nk),
		Bots:           make(map[string]*bot.Agent),
		TableSize:      tableSize,
		BotsEnabled:    true,
		PendingRejoins: make(map[string]string),
		Seats:          make(map[string]string),
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["thunee_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if secret, ok := env["thunee_seat_token_secret"]; ok && secret != "" {
		state.Tokens = app.NewSeatTokenService(secret, 0)
	}

	if data, err := state.Store.LoadSnapshot(ctx, matchID); err != nil {
		logger.Warn("MatchInit: could not read snapshot: %v", err)
	} else if data != nil {
		if restored, err := domain.UnmarshalSnapshot(data); err != nil {
			logger.Warn("MatchInit: corrupt snapshot discarded: %v", err)
		} else {
			state.Game = restored
			logger.Info("MatchInit: restored room %s at phase %s", matchID, restored.Phase)
		}
	}
	if state.Game == nil {
		state.Game = domain.NewGameState(matchID, tableSize)
	}
	for _, p := range state.Game.Players {
		if p.IsBot {
			state.Bots[p.ID] = bot.NewAgent(p.ID, p.Name)
		}
	}

	label := mh.labelJSON(state, logger)
	return state, tickRate, label
}

// MatchJoinAttempt admits everyone; the lobby decides between a seat and
// spectator standing. A seat token presented in the metadata is verified
// here so MatchJoin can rebind the returning connection.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if token := metadata["seat_token"]; token != "" && matchState.Tokens != nil {
		playerID, err := matchState.Tokens.Verify(token, matchState.Game.ID)
		if err != nil {
			logger.Warn("MatchJoinAttempt: rejected seat token from %s: %v", presence.GetUserId(), err)
		} else {
			matchState.PendingRejoins[presence.GetUserId()] = playerID
		}
	}

	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		existingID := matchState.PendingRejoins[userID]
		delete(matchState.PendingRejoins, userID)

		result := matchState.App.Join(matchState.Game, userID, p.GetUsername(), matchState.TableSize, existingID)
		matchState.Seats[userID] = result.Player.ID
		logger.Info("MatchJoin: %s joined as %s", userID, result.Outcome)

		if result.Outcome != app.JoinSpectator {
			mh.sendSeatToken(matchState, dispatcher, logger, p, result.Player.ID)
		}
	}

	matchState.dirty = true
	mh.flush(ctx, matchState, dispatcher, logger)
	return matchState
}

// MatchLeave flips seats to disconnected and drops spectators. The match
// terminates once no human connection remains; the snapshot keeps the table
// restorable.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		matchState.App.Leave(matchState.Game, matchState.seatFor(userID))
		delete(matchState.Seats, userID)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: no connections left, closing room %s", matchState.Game.ID)
		mh.persist(ctx, matchState, logger)
		return nil
	}

	matchState.dirty = true
	mh.flush(ctx, matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg)
	}

	mh.runTimers(matchState, logger)

	if matchState.BotsEnabled {
		mh.processBots(matchState, logger)
	}

	mh.settleIfOver(ctx, matchState, logger)
	mh.flush(ctx, matchState, dispatcher, logger)
	return matchState
}

// handleMessage routes one client command into the game service. Rejected
// commands leave the state untouched and answer the sender privately.
func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	seatID := state.seatFor(senderID)
	game := state.Game

	var err error
	switch msg.GetOpCode() {
	case OpStartGame:
		err = state.App.Start(game)
	case OpBid:
		var req bidMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			err = state.App.Bid(game, seatID, req.Amount)
		}
	case OpPass:
		err = state.App.Pass(game, seatID)
	case OpPreselectTrump:
		var req suitMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			err = state.App.PreselectTrump(game, seatID, req.Suit)
		}
	case OpSetTrump:
		var req suitMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			err = state.App.SetTrump(game, seatID, req.Suit, req.LastCard)
		}
	case OpCallThunee:
		err = state.App.CallThunee(game, seatID)
	case OpPlayCard:
		var req playCardMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			_, err = state.App.PlayCard(game, seatID, req.Card)
		}
	case OpCallJodhi:
		var req jodhiMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			err = state.App.CallJodhi(game, seatID, req.Suit, req.WithJack)
		}
	case OpCallKhanaak:
		err = state.App.CallKhanaak(game, seatID)
	case OpChallengePlay:
		var req challengeMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			_, err = state.App.ChallengePlay(game, seatID, req.AccusedID)
		}
	case OpChallengeJodhi:
		var req challengeMessage
		if err = json.Unmarshal(msg.GetData(), &req); err == nil {
			_, err = state.App.ChallengeJodhi(game, seatID, req.AccusedID, req.Suit)
		}
	default:
		logger.Warn("MatchLoop: unknown opcode %d from %s", msg.GetOpCode(), senderID)
		return
	}

	if err != nil {
		logger.Debug("MatchLoop: rejected op %d from %s: %v", msg.GetOpCode(), senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err.Error())
		return
	}
	state.dirty = true
}

// runTimers drives the phases that advance on the clock rather than on a
// player command.
func (mh *matchHandler) runTimers(state *MatchState, logger runtime.Logger) {
	game := state.Game
	pauseTicks := int64(config.GetTrickPauseSeconds()) * tickRate

	if game.Phase == domain.PhaseBidding {
		deadline := game.Bid.TimerEndsAt
		if deadline > 0 && time.Now().UnixMilli() >= deadline {
			state.App.BiddingExpired(game)
			state.dirty = true
		}
	}

	if game.Phase == domain.PhaseTrickComplete {
		if state.TrickPauseUntil == 0 {
			state.TrickPauseUntil = state.Tick + pauseTicks
		} else if state.Tick >= state.TrickPauseUntil {
			state.TrickPauseUntil = 0
			state.App.TrickPauseElapsed(game)
			state.dirty = true
		}
	} else {
		state.TrickPauseUntil = 0
	}

	if game.Phase == domain.PhaseRoundEnd {
		if state.RoundRestartAt == 0 {
			state.RoundRestartAt = state.Tick + 3*pauseTicks
		} else if state.Tick >= state.RoundRestartAt {
			state.RoundRestartAt = 0
			if err := state.App.Start(game); err != nil {
				logger.Warn("MatchLoop: could not start next deal: %v", err)
			} else {
				state.dirty = true
			}
		}
	} else {
		state.RoundRestartAt = 0
	}
}

// processBots fills a waiting table with bot seats after a grace period and
// paces pending bot moves.
func (mh *matchHandler) processBots(state *MatchState, logger runtime.Logger) {
	game := state.Game

	if game.Phase == domain.PhaseWaiting {
		if state.humanSeatCount() >= 1 && state.openSeatCount() > 0 {
			if state.SoloSinceTick == 0 {
				state.SoloSinceTick = state.Tick
			}
			fillAt := state.SoloSinceTick + int64(config.GetBotAutoFillDelaySeconds())*tickRate
			if state.Tick >= fillAt {
				mh.fillWithBots(state, logger)
				state.SoloSinceTick = 0
			}
		} else {
			state.SoloSinceTick = 0
		}

		if len(game.Players) == game.PlayerCount {
			if err := state.App.Start(game); err == nil {
				state.dirty = true
			}
		}
		return
	}

	actor := bot.NextActor(game)
	if actor == nil {
		state.BotActAt = 0
		return
	}
	// Bidding moves land immediately so the live countdown stays honest;
	// everything else waits a short beat.
	if game.Phase != domain.PhaseBidding {
		if state.BotActAt == 0 {
			state.BotActAt = state.Tick + int64(config.GetBotActionDelayTicks())
			return
		}
		if state.Tick < state.BotActAt {
			return
		}
	}
	state.BotActAt = 0

	agent, ok := state.Bots[actor.ID]
	if !ok {
		agent = bot.NewAgent(actor.ID, actor.Name)
		state.Bots[actor.ID] = agent
	}
	decision := agent.Act(game)
	if decision == nil {
		return
	}
	if err := mh.applyDecision(state, actor.ID, decision); err != nil {
		logger.Warn("processBots: bot %s move %s rejected: %v", actor.ID, decision.Type, err)
		return
	}
	state.dirty = true
}

func (mh *matchHandler) fillWithBots(state *MatchState, logger runtime.Logger) {
	game := state.Game
	for i := len(game.Players); i < game.PlayerCount; i++ {
		identity := bot.GetBotIdentity(i)
		result := state.App.Join(game, identity.UserID, identity.DisplayName, state.TableSize, "")
		if result.Outcome != app.JoinSeated {
			logger.Warn("fillWithBots: could not seat bot %s: %s", identity.UserID, result.Outcome)
			continue
		}
		result.Player.IsBot = true
		state.Bots[identity.UserID] = bot.NewAgent(identity.UserID, identity.DisplayName)
		logger.Info("fillWithBots: seated bot %s (%s)", identity.DisplayName, identity.UserID)
	}
	state.dirty = true
}

func (mh *matchHandler) applyDecision(state *MatchState, playerID string, d *bot.Decision) error {
	game := state.Game
	switch d.Type {
	case bot.DecisionBid:
		return state.App.Bid(game, playerID, d.Amount)
	case bot.DecisionPass:
		return state.App.Pass(game, playerID)
	case bot.DecisionPreselectTrump:
		return state.App.PreselectTrump(game, playerID, d.Suit)
	case bot.DecisionSetTrump:
		return state.App.SetTrump(game, playerID, d.Suit, d.LastCard)
	case bot.DecisionCallThunee:
		return state.App.CallThunee(game, playerID)
	case bot.DecisionCallJodhi:
		return state.App.CallJodhi(game, playerID, d.Suit, d.WithJack)
	case bot.DecisionCallKhanaak:
		return state.App.CallKhanaak(game, playerID)
	case bot.DecisionPlayCard:
		_, err := state.App.PlayCard(game, playerID, d.Card)
		return err
	}
	return nil
}

// settleIfOver pays the win reward to every human on the winning team, once.
func (mh *matchHandler) settleIfOver(ctx context.Context, state *MatchState, logger runtime.Logger) {
	game := state.Game
	if game.Phase != domain.PhaseGameOver || state.Settled {
		return
	}
	state.Settled = true

	winner := state.App.Winner(game)
	if winner < 0 {
		return
	}

	var updates []ports.WalletUpdate
	for _, p := range game.Players {
		if p.Team != winner || p.IsBot {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: p.ID,
			Amount: config.GetWinRewardCoins(),
			Metadata: map[string]interface{}{
				"reason":  "match_win",
				"room_id": game.ID,
			},
		})
	}
	if len(updates) > 0 && state.Economy != nil {
		if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
			logger.Error("settleIfOver: failed to pay win rewards: %v", err)
		}
	}

	if state.Store != nil {
		if err := state.Store.DeleteSnapshot(ctx, game.ID); err != nil {
			logger.Warn("settleIfOver: could not delete snapshot: %v", err)
		}
	}
	state.dirty = true
}

// flush broadcasts each connection its own masked view and persists the
// authoritative snapshot, when anything changed this tick.
func (mh *matchHandler) flush(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if !state.dirty {
		return
	}
	state.dirty = false

	for userID, presence := range state.Presences {
		view := state.Game.ViewFor(state.seatFor(userID))
		data, err := json.Marshal(view)
		if err != nil {
			logger.Error("flush: failed to marshal view for %s: %v", userID, err)
			continue
		}
		dispatcher.BroadcastMessage(OpStateUpdate, data, []runtime.Presence{presence}, nil, true)
	}

	if state.Game.Phase != domain.PhaseGameOver {
		mh.persist(ctx, state, logger)
	}

	if err := dispatcher.MatchLabelUpdate(mh.labelJSON(state, logger)); err != nil {
		logger.Error("flush: failed to update label: %v", err)
	}
}

func (mh *matchHandler) persist(ctx context.Context, state *MatchState, logger runtime.Logger) {
	if state.Store == nil {
		return
	}
	data, err := domain.MarshalSnapshot(state.Game)
	if err != nil {
		logger.Error("persist: failed to marshal snapshot: %v", err)
		return
	}
	if err := state.Store.SaveSnapshot(ctx, state.Game.ID, data); err != nil {
		logger.Error("persist: failed to save snapshot: %v", err)
	}
}

func (mh *matchHandler) sendSeatToken(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, presence runtime.Presence, playerID string) {
	if state.Tokens == nil {
		return
	}
	token, err := state.Tokens.Issue(state.Game.ID, playerID)
	if err != nil {
		logger.Warn("sendSeatToken: %v", err)
		return
	}
	data, err := json.Marshal(seatTokenMessage{PlayerID: playerID, Token: token})
	if err != nil {
		logger.Error("sendSeatToken: marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpSeatToken, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		return
	}
	data, err := json.Marshal(errorMessage{Code: 400, Message: message})
	if err != nil {
		logger.Error("sendError: marshal: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) labelJSON(state *MatchState, logger runtime.Logger) string {
	label := matchLabel{
		Open:  state.openSeatCount(),
		Game:  "thunee",
		Phase: string(state.Game.Phase),
	}
	data, err := json.Marshal(label)
	if err != nil {
		logger.Error("labelJSON: %v", err)
		return ""
	}
	return string(data)
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.persist(ctx, matchState, logger)
	}
	logger.Debug("MatchTerminate: reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
