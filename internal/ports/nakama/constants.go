package nakama

const (
	// RpcFindMatch is the Nakama RPC id clients call to find or create a
	// joinable table.
	RpcFindMatch = "find_match"

	// MatchNameThunee is the authoritative match handler name registered
	// with Nakama.
	MatchNameThunee = "thunee_match"

	// snapshotCollection is the storage collection holding room snapshots.
	snapshotCollection = "thunee_snapshots"
	snapshotKey        = "state"
)

// Op codes for client commands and server events.
const (
	// Client -> Server
	OpStartGame      int64 = 1
	OpBid            int64 = 2
	OpPass           int64 = 3
	OpPreselectTrump int64 = 4
	OpSetTrump       int64 = 5
	OpCallThunee     int64 = 6
	OpPlayCard       int64 = 7
	OpCallJodhi      int64 = 8
	OpCallKhanaak    int64 = 9
	OpChallengePlay  int64 = 10
	OpChallengeJodhi int64 = 11

	// Server -> Client
	OpStateUpdate int64 = 101
	OpError       int64 = 102
	OpSeatToken   int64 = 103
)
