package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"

	"guandan/internal/app"
	"guandan/internal/config"
	"guandan/internal/domain"
	"guandan/internal/ports"
)

type rpcHandler = func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// Module holds the state shared by the assistant RPCs.
type Module struct {
	store      *SessionStore
	tokens     *app.SessionTokens
	recognizer ports.RecognizerPort
	rules      domain.Rules
}

// NewModule builds the RPC module from cfg. Sessions use the configured strategy.
func NewModule(cfg *config.AssistantConfig, recognizer ports.RecognizerPort) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	newSession := func() (*app.Session, error) {
		b, err := cfg.NewBrain()
		if err != nil {
			return nil, err
		}
		return app.NewSession(b, cfg.Decks), nil
	}
	return &Module{
		store:      NewSessionStore(DefaultMaxSessions, newSession),
		tokens:     app.NewSessionTokens(cfg.Token.Secret, cfg.Token.Issuer, cfg.Token.TTL),
		recognizer: recognizer,
		rules:      cfg.Tuning().Rules,
	}, nil
}

// RegisterRPCs registers every assistant RPC with Nakama.
func (m *Module) RegisterRPCs(initializer runtime.Initializer) error {
	rpcs := []struct {
		id      string
		handler rpcHandler
	}{
		{RpcSessionNew, m.rpcSessionNew},
		{RpcHandSet, m.rpcHandSet},
		{RpcHandScan, m.rpcHandScan},
		{RpcOpponentPlay, m.rpcOpponentPlay},
		{RpcMyPlay, m.rpcMyPlay},
		{RpcRoundReset, m.rpcRoundReset},
		{RpcReset, m.rpcReset},
		{RpcSuggest, m.rpcSuggest},
		{RpcClassify, m.rpcClassify},
		{RpcState, m.rpcState},
	}
	for _, rpc := range rpcs {
		if err := initializer.RegisterRpc(rpc.id, rpc.handler); err != nil {
			return err
		}
	}
	return nil
}

type sessionNewRequest struct {
	Scan string `json:"scan"`
}

type sessionNewResponse struct {
	SessionID string   `json:"session_id"`
	Token     string   `json:"token"`
	Hand      []string `json:"hand"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type cardsRequest struct {
	Token string   `json:"token"`
	Cards []string `json:"cards"`
}

type scanRequest struct {
	Token string `json:"token"`
	Image string `json:"image"`
}

type suggestRequest struct {
	Token string `json:"token"`
	Force bool   `json:"force"`
}

func decodePayload(payload string, v any) error {
	if payload == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	return nil
}

func userIDFrom(ctx context.Context) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("No user ID in context", codeUnauthenticated)
	}
	return userID, nil
}

// authenticate checks token against the calling user and returns the session it names.
func (m *Module) authenticate(ctx context.Context, logger runtime.Logger, rpc, token string) (*app.SafeSession, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	claims, err := m.tokens.VerifyFor(token, userID)
	if err != nil {
		logger.Warn("%s [User:%s]: rejected session token: %v", rpc, userID, err)
		return nil, runtime.NewError("Invalid session token", codeUnauthenticated)
	}

	safe, err := m.store.Get(claims.SessionID)
	if err != nil {
		logger.Info("%s [User:%s]: session %s not found", rpc, userID, claims.SessionID)
		return nil, runtime.NewError("Session not found", codeNotFound)
	}
	return safe, nil
}

// withSession authenticates token against the calling user and runs fn on the session.
func (m *Module) withSession(ctx context.Context, logger runtime.Logger, rpc, token string, fn func(*app.Session) error) error {
	safe, err := m.authenticate(ctx, logger, rpc, token)
	if err != nil {
		return err
	}
	return safe.Do(fn)
}

func (m *Module) summaryResponse(ctx context.Context, logger runtime.Logger, rpc, token string, fn func(*app.Session) error) (string, error) {
	var summary app.StateSummary
	err := m.withSession(ctx, logger, rpc, token, func(s *app.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		summary = s.StateSummary()
		return nil
	})
	if err != nil {
		return "", err
	}
	return marshal(summaryToJSON(summary))
}

func handError(logger runtime.Logger, rpc string, err error) error {
	if errors.Is(err, domain.ErrInvalidHand) {
		return runtime.NewError(err.Error(), codeInvalidArgument)
	}
	logger.Error("%s: %v", rpc, err)
	return runtime.NewError("Internal error", codeInternal)
}

func (m *Module) rpcSessionNew(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, err := userIDFrom(ctx)
	if err != nil {
		return "", err
	}
	var req sessionNewRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}

	safe, err := m.store.Create(userID)
	if err != nil {
		logger.Error("%s [User:%s]: failed to create session: %v", RpcSessionNew, userID, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}
	token, err := m.tokens.Issue(safe.ID, userID)
	if err != nil {
		m.store.Delete(safe.ID)
		logger.Error("%s [User:%s]: failed to issue token: %v", RpcSessionNew, userID, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}

	resp := sessionNewResponse{SessionID: safe.ID, Token: token, Hand: []string{}}
	if req.Scan != "" {
		cards, err := m.recognizer.Recognize(ctx, req.Scan)
		if err != nil {
			logger.Error("%s [User:%s]: recognize %q: %v", RpcSessionNew, userID, req.Scan, err)
			return "", runtime.NewError("Failed to recognize cards", codeInternal)
		}
		err = safe.Do(func(s *app.Session) error {
			if err := s.SetHand(cards); err != nil {
				return err
			}
			resp.Hand = domain.CardStrings(s.Hand())
			return nil
		})
		if err != nil {
			return "", handError(logger, RpcSessionNew, err)
		}
	}

	logger.Info("%s [User:%s]: created session %s", RpcSessionNew, userID, safe.ID)
	return marshal(resp)
}

func (m *Module) rpcHandSet(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardsRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	cards := domain.CardsFromStrings(req.Cards)
	return m.summaryResponse(ctx, logger, RpcHandSet, req.Token, func(s *app.Session) error {
		if err := s.SetHand(cards); err != nil {
			return handError(logger, RpcHandSet, err)
		}
		return nil
	})
}

func (m *Module) rpcHandScan(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req scanRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if req.Image == "" {
		return "", runtime.NewError("Image reference required", codeInvalidArgument)
	}
	if _, err := m.authenticate(ctx, logger, RpcHandScan, req.Token); err != nil {
		return "", err
	}

	// Capture runs outside the session lock.
	cards, err := m.recognizer.Recognize(ctx, req.Image)
	if err != nil {
		logger.Error("%s: recognize %q: %v", RpcHandScan, req.Image, err)
		return "", runtime.NewError("Failed to recognize cards", codeInternal)
	}
	return m.summaryResponse(ctx, logger, RpcHandScan, req.Token, func(s *app.Session) error {
		if err := s.SetHand(cards); err != nil {
			return handError(logger, RpcHandScan, err)
		}
		return nil
	})
}

func (m *Module) rpcOpponentPlay(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardsRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	var combo combinationJSON
	err := m.withSession(ctx, logger, RpcOpponentPlay, req.Token, func(s *app.Session) error {
		combo = combinationToJSON(s.RecordOpponentPlay(domain.CardsFromStrings(req.Cards)))
		return nil
	})
	if err != nil {
		return "", err
	}
	return marshal(combo)
}

func (m *Module) rpcMyPlay(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardsRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	return m.summaryResponse(ctx, logger, RpcMyPlay, req.Token, func(s *app.Session) error {
		s.RecordMyPlay(domain.CardsFromStrings(req.Cards))
		return nil
	})
}

func (m *Module) rpcRoundReset(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req tokenRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	return m.summaryResponse(ctx, logger, RpcRoundReset, req.Token, func(s *app.Session) error {
		s.ResetRound()
		return nil
	})
}

func (m *Module) rpcReset(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req tokenRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	return m.summaryResponse(ctx, logger, RpcReset, req.Token, func(s *app.Session) error {
		s.Reset()
		return nil
	})
}

func (m *Module) rpcSuggest(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req suggestRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	var move moveJSON
	err := m.withSession(ctx, logger, RpcSuggest, req.Token, func(s *app.Session) error {
		suggestion, err := s.Suggest(req.Force)
		if err != nil {
			// The session already degraded to a pass; report it rather than fail the call.
			logger.Error("%s: %v", RpcSuggest, err)
		}
		move = moveToJSON(suggestion, suggestion.Pass || s.OpponentMayBeat(suggestion.Combo))
		return nil
	})
	if err != nil {
		return "", err
	}
	return marshal(move)
}

func (m *Module) rpcClassify(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req cardsRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	return marshal(combinationToJSON(domain.Classify(domain.CardsFromStrings(req.Cards), m.rules)))
}

func (m *Module) rpcState(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req tokenRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	return m.summaryResponse(ctx, logger, RpcState, req.Token, func(*app.Session) error {
		return nil
	})
}
