package nakama

// RPC ids registered with Nakama.
const (
	RpcSessionNew   = "guandan_session_new"
	RpcHandSet      = "guandan_hand_set"
	RpcHandScan     = "guandan_hand_scan"
	RpcOpponentPlay = "guandan_opponent_play"
	RpcMyPlay       = "guandan_my_play"
	RpcRoundReset   = "guandan_round_reset"
	RpcReset        = "guandan_reset"
	RpcSuggest      = "guandan_suggest"
	RpcClassify     = "guandan_classify"
	RpcState        = "guandan_state"
)

// gRPC status codes used with runtime.NewError.
const (
	codeInvalidArgument = 3
	codeNotFound        = 5
	codeInternal        = 13
	codeUnauthenticated = 16
)

// Runtime environment keys read in InitModule.
const (
	EnvConfigPath  = "guandan_config"
	EnvTokenSecret = "guandan_token_secret"
)

// DefaultMaxSessions caps the session store; the least recently used session is evicted.
const DefaultMaxSessions = 1024
