package nakama

import (
	"errors"
	"testing"
	"time"

	"guandan/internal/domain"
)

func newSession(t *testing.T, m *Module, userID, payload string) sessionNewResponse {
	t.Helper()
	raw, err := m.rpcSessionNew(userCtx(userID), noopLogger{}, nil, nil, payload)
	if err != nil {
		t.Fatalf("session new: %v", err)
	}
	var resp sessionNewResponse
	decodeInto(t, raw, &resp)
	if resp.SessionID == "" || resp.Token == "" {
		t.Fatalf("response = %+v", resp)
	}
	return resp
}

func TestRegisterRPCs(t *testing.T) {
	initializer := &recordingInitializer{}
	if err := newTestModule(t, fixedRecognizer{}).RegisterRPCs(initializer); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, id := range []string{
		RpcSessionNew, RpcHandSet, RpcHandScan, RpcOpponentPlay, RpcMyPlay,
		RpcRoundReset, RpcReset, RpcSuggest, RpcClassify, RpcState,
	} {
		if _, ok := initializer.rpcs[id]; !ok {
			t.Errorf("rpc %s not registered", id)
		}
	}
}

func TestRpcFlow_CounterPair(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	ctx := userCtx("user1")
	sess := newSession(t, m, "user1", "")

	hand := []string{"H3", "S3", "H4", "S4", "H5", "S5", "H6", "S6", "H7", "S7"}
	raw, err := m.rpcHandSet(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token, Cards: hand}))
	if err != nil {
		t.Fatalf("hand set: %v", err)
	}
	var summary summaryJSON
	decodeInto(t, raw, &summary)
	if summary.HandSize != 10 || summary.State != "lead" {
		t.Fatalf("summary = %+v", summary)
	}

	raw, err = m.rpcOpponentPlay(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token, Cards: []string{"H3", "S3"}}))
	if err != nil {
		t.Fatalf("opponent play: %v", err)
	}
	var combo combinationJSON
	decodeInto(t, raw, &combo)
	if combo.Kind != "pair" || combo.Strength.Value != 3 {
		t.Fatalf("combo = %+v", combo)
	}

	raw, err = m.rpcSuggest(ctx, noopLogger{}, nil, nil, mustJSON(t, suggestRequest{Token: sess.Token}))
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	var move moveJSON
	decodeInto(t, raw, &move)
	if move.Pass || move.Kind != "pair" || len(move.Cards) != 2 || move.Cards[0] != "H4" {
		t.Fatalf("move = %+v, want pair of 4s", move)
	}

	raw, err = m.rpcMyPlay(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token, Cards: move.Cards}))
	if err != nil {
		t.Fatalf("my play: %v", err)
	}
	decodeInto(t, raw, &summary)
	if summary.RoundCount != 1 || summary.HandSize != 8 || summary.Turn != "opponent" || summary.ActiveOpponentPlay != nil {
		t.Fatalf("summary after play = %+v", summary)
	}
}

func TestRpcSessionNewWithScan(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{cards: domain.CardsFromStrings([]string{"红桃K", "黑桃3"})})
	resp := newSession(t, m, "user1", `{"scan":"table.png"}`)
	if len(resp.Hand) != 2 || resp.Hand[0] != "黑桃3" {
		t.Fatalf("hand = %v", resp.Hand)
	}
}

func TestRpcHandScan(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{cards: domain.CardsFromStrings([]string{"H9", "S9"})})
	sess := newSession(t, m, "user1", "")

	raw, err := m.rpcHandScan(userCtx("user1"), noopLogger{}, nil, nil, mustJSON(t, scanRequest{Token: sess.Token, Image: "x.png"}))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	var summary summaryJSON
	decodeInto(t, raw, &summary)
	if summary.HandSize != 2 || summary.Profile.Pairs != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	_, err = m.rpcHandScan(userCtx("user1"), noopLogger{}, nil, nil, mustJSON(t, scanRequest{Token: sess.Token}))
	if code := errorCode(t, err); code != codeInvalidArgument {
		t.Fatalf("code = %d, want %d", code, codeInvalidArgument)
	}
}

func TestRpcHandScanDoesNotHoldSessionDuringCapture(t *testing.T) {
	rec := blockingRecognizer{
		cards:   domain.CardsFromStrings([]string{"H9", "S9", "D3"}),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	m := newTestModule(t, rec)
	sess := newSession(t, m, "user1", "")
	ctx := userCtx("user1")

	scanPayload := mustJSON(t, scanRequest{Token: sess.Token, Image: "x.png"})
	statePayload := mustJSON(t, tokenRequest{Token: sess.Token})

	scanned := make(chan error, 1)
	go func() {
		_, err := m.rpcHandScan(ctx, noopLogger{}, nil, nil, scanPayload)
		scanned <- err
	}()
	<-rec.started

	stated := make(chan error, 1)
	go func() {
		_, err := m.rpcState(ctx, noopLogger{}, nil, nil, statePayload)
		stated <- err
	}()
	select {
	case err := <-stated:
		if err != nil {
			t.Fatalf("state: %v", err)
		}
	case <-time.After(2 * time.Second):
		close(rec.release)
		t.Fatal("state blocked while the scan was capturing")
	}

	close(rec.release)
	if err := <-scanned; err != nil {
		t.Fatalf("scan: %v", err)
	}
	raw, err := m.rpcState(ctx, noopLogger{}, nil, nil, statePayload)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	var summary summaryJSON
	decodeInto(t, raw, &summary)
	if summary.HandSize != 3 {
		t.Fatalf("hand size = %d, want 3", summary.HandSize)
	}
}

func TestRpcStateReportsOpponentHistory(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	ctx := userCtx("user1")
	sess := newSession(t, m, "user1", "")

	hand := []string{"H3", "HQ", "SQ", "HK", "SK"}
	if _, err := m.rpcHandSet(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token, Cards: hand})); err != nil {
		t.Fatalf("hand set: %v", err)
	}
	if _, err := m.rpcMyPlay(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token, Cards: []string{"HQ", "SQ"}})); err != nil {
		t.Fatalf("my play: %v", err)
	}
	if _, err := m.rpcOpponentPlay(ctx, noopLogger{}, nil, nil, mustJSON(t, cardsRequest{Token: sess.Token})); err != nil {
		t.Fatalf("opponent pass: %v", err)
	}

	raw, err := m.rpcState(ctx, noopLogger{}, nil, nil, mustJSON(t, tokenRequest{Token: sess.Token}))
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	var summary summaryJSON
	decodeInto(t, raw, &summary)
	if summary.OpponentPasses != 1 {
		t.Fatalf("opponent passes = %d, want 1", summary.OpponentPasses)
	}
	if got := summary.OpponentWeaknesses["pair"]; got != (strengthJSON{Size: 2, Value: 12}) {
		t.Fatalf("pair weakness = %+v", got)
	}
	if summary.BossCards == nil || summary.ExhaustedRanks == nil {
		t.Fatalf("boss and exhausted lists should encode as arrays: %s", raw)
	}

	raw, err = m.rpcSuggest(ctx, noopLogger{}, nil, nil, mustJSON(t, suggestRequest{Token: sess.Token}))
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	var move moveJSON
	decodeInto(t, raw, &move)
	if move.Kind != "pair" || move.Cards[0] != "HK" {
		t.Fatalf("move = %+v, want pair of kings", move)
	}
	if move.OpponentMayBeat {
		t.Errorf("kings outrank the queens the opponent passed on")
	}
}

func TestRpcHandScanRecognizerFailure(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{err: errors.New("camera offline")})
	sess := newSession(t, m, "user1", "")

	_, err := m.rpcHandScan(userCtx("user1"), noopLogger{}, nil, nil, mustJSON(t, scanRequest{Token: sess.Token, Image: "x.png"}))
	if code := errorCode(t, err); code != codeInternal {
		t.Fatalf("code = %d, want %d", code, codeInternal)
	}
}

func TestRpcErrors(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	sess := newSession(t, m, "owner", "")

	tests := []struct {
		name    string
		userID  string
		payload string
		want    int
	}{
		{name: "Token of another user", userID: "intruder", payload: mustJSON(t, cardsRequest{Token: sess.Token, Cards: []string{"H3"}}), want: codeUnauthenticated},
		{name: "Missing token", userID: "owner", payload: `{"cards":["H3"]}`, want: codeUnauthenticated},
		{name: "No user in context", userID: "", payload: mustJSON(t, cardsRequest{Token: sess.Token}), want: codeUnauthenticated},
		{name: "Malformed payload", userID: "owner", payload: `{"cards":`, want: codeInvalidArgument},
		{name: "Duplicate cards", userID: "owner", payload: mustJSON(t, cardsRequest{Token: sess.Token, Cards: []string{"H3", "H3"}}), want: codeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.rpcHandSet(userCtx(tt.userID), noopLogger{}, nil, nil, tt.payload)
			if code := errorCode(t, err); code != tt.want {
				t.Fatalf("code = %d, want %d", code, tt.want)
			}
		})
	}
}

func TestRpcUnknownSession(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	sess := newSession(t, m, "user1", "")
	m.store.Delete(sess.SessionID)

	_, err := m.rpcState(userCtx("user1"), noopLogger{}, nil, nil, mustJSON(t, tokenRequest{Token: sess.Token}))
	if code := errorCode(t, err); code != codeNotFound {
		t.Fatalf("code = %d, want %d", code, codeNotFound)
	}
}

func TestRpcRoundResetAndReset(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	ctx := userCtx("user1")
	sess := newSession(t, m, "user1", "")
	token := mustJSON(t, tokenRequest{Token: sess.Token})

	raw, err := m.rpcRoundReset(ctx, noopLogger{}, nil, nil, token)
	if err != nil {
		t.Fatalf("round reset: %v", err)
	}
	var summary summaryJSON
	decodeInto(t, raw, &summary)
	if summary.Turn != "opponent" {
		t.Fatalf("turn = %s, want opponent", summary.Turn)
	}

	raw, err = m.rpcReset(ctx, noopLogger{}, nil, nil, token)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	decodeInto(t, raw, &summary)
	if summary.Turn != "mine" || summary.RoundCount != 0 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestRpcClassifyIsStateless(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	raw, err := m.rpcClassify(userCtx(""), noopLogger{}, nil, nil, `{"cards":["H3","S4","D5","C6","H7"]}`)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	var combo combinationJSON
	decodeInto(t, raw, &combo)
	if combo.Kind != "straight" || combo.Strength.Size != 5 || combo.Strength.Value != 7 {
		t.Fatalf("combo = %+v", combo)
	}
	if combo.Description != "5-card straight (top 7)" {
		t.Fatalf("description = %q", combo.Description)
	}
}

func TestRpcSuggestLeadOnEmptyHandPasses(t *testing.T) {
	m := newTestModule(t, fixedRecognizer{})
	sess := newSession(t, m, "user1", "")

	raw, err := m.rpcSuggest(userCtx("user1"), noopLogger{}, nil, nil, mustJSON(t, suggestRequest{Token: sess.Token, Force: true}))
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	var move moveJSON
	decodeInto(t, raw, &move)
	if !move.Pass || move.Kind != "pass" || len(move.Cards) != 0 {
		t.Fatalf("move = %+v", move)
	}
}
