package nakama

import (
	"encoding/json"

	"guandan/internal/app"
	"guandan/internal/bot"
	"guandan/internal/domain"
)

type strengthJSON struct {
	Size  int `json:"size"`
	Value int `json:"value"`
}

type combinationJSON struct {
	Kind        string       `json:"kind"`
	Cards       []string     `json:"cards"`
	Strength    strengthJSON `json:"strength"`
	Description string       `json:"description"`
}

type moveJSON struct {
	Pass        bool         `json:"pass"`
	Kind        string       `json:"kind"`
	Cards       []string     `json:"cards"`
	Strength    strengthJSON `json:"strength"`
	Rule        string       `json:"rule"`
	Description string       `json:"description"`

	// OpponentMayBeat is false once the opponent has passed on an equal or stronger play of this kind.
	OpponentMayBeat bool `json:"opponent_may_beat"`
}

type profileJSON struct {
	Pairs           int `json:"pairs"`
	Straights       int `json:"straights"`
	LongestStraight int `json:"longest_straight"`
	Bombs           int `json:"bombs"`
	Unplayable      int `json:"unplayable"`
}

type summaryJSON struct {
	RoundCount         int                     `json:"round_count"`
	Turn               string                  `json:"turn"`
	State              string                  `json:"state"`
	HandSize           int                     `json:"hand_size"`
	PlayedCount        int                     `json:"played_count"`
	ActiveOpponentPlay *combinationJSON        `json:"active_opponent_play,omitempty"`
	Hand               []string                `json:"hand"`
	Profile            profileJSON             `json:"profile"`
	OpponentStats      map[string]int          `json:"opponent_stats"`
	OpponentCards      int                     `json:"opponent_cards"`
	OpponentPasses     int                     `json:"opponent_passes"`
	OpponentWeaknesses map[string]strengthJSON `json:"opponent_weaknesses"`
	Unseen             map[string]int          `json:"unseen"`
	BossCards          []string                `json:"boss_cards"`
	ExhaustedRanks     []string                `json:"exhausted_ranks"`
	Text               string                  `json:"text"`
}

func combinationToJSON(c domain.Combination) combinationJSON {
	return combinationJSON{
		Kind:        c.Kind.String(),
		Cards:       domain.CardStrings(c.Cards),
		Strength:    strengthJSON{Size: c.Strength.Size, Value: c.Strength.Value},
		Description: c.String(),
	}
}

func moveToJSON(m bot.Move, opponentMayBeat bool) moveJSON {
	out := moveJSON{
		Pass:            m.Pass,
		Kind:            domain.Pass.String(),
		Cards:           []string{},
		Rule:            m.Rule,
		Description:     m.String(),
		OpponentMayBeat: opponentMayBeat,
	}
	if !m.Pass {
		out.Kind = m.Combo.Kind.String()
		out.Cards = domain.CardStrings(m.Cards())
		out.Strength = strengthJSON{Size: m.Combo.Strength.Size, Value: m.Combo.Strength.Value}
	}
	return out
}

func summaryToJSON(s app.StateSummary) summaryJSON {
	out := summaryJSON{
		RoundCount:  s.RoundCount,
		Turn:        s.Turn.String(),
		State:       s.State.String(),
		HandSize:    s.HandSize,
		PlayedCount: s.PlayedCount,
		Hand:        domain.CardStrings(s.Hand),
		Profile: profileJSON{
			Pairs:           s.Profile.Pairs,
			Straights:       s.Profile.Straights,
			LongestStraight: s.Profile.LongestStraight,
			Bombs:           s.Profile.Bombs,
			Unplayable:      s.Profile.Unplayable,
		},
		OpponentStats:      make(map[string]int, len(s.OpponentStats)),
		OpponentCards:      s.OpponentCards,
		OpponentPasses:     s.OpponentPasses,
		OpponentWeaknesses: make(map[string]strengthJSON, len(s.OpponentWeaknesses)),
		Unseen:             s.Unseen,
		BossCards:          domain.CardStrings(s.BossCards),
		ExhaustedRanks:     []string{},
		Text:               s.String(),
	}
	out.ExhaustedRanks = append(out.ExhaustedRanks, s.ExhaustedRanks...)
	if s.ActiveOpponentPlay != nil {
		active := combinationToJSON(*s.ActiveOpponentPlay)
		out.ActiveOpponentPlay = &active
	}
	for kind, n := range s.OpponentStats {
		out.OpponentStats[kind.String()] = n
	}
	for kind, st := range s.OpponentWeaknesses {
		out.OpponentWeaknesses[kind.String()] = strengthJSON{Size: st.Size, Value: st.Value}
	}
	return out
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
