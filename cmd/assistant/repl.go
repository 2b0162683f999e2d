package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"guandan/internal/app"
	"guandan/internal/bot"
	"guandan/internal/domain"
	"guandan/internal/ports"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  new                 start a new game
  scan [image]        capture the hand through the recognizer
  hand <cards>        set the hand manually, e.g. "hand H3 S3 红桃10"
  opp <cards>         record the opponent's play (empty = opponent passed)
  play <cards>        record my play
  pass                record an explicit pass
  accept              play the current suggestion
  suggest [!]         show the suggestion ("!" forces a recompute)
  classify <cards>    classify cards without touching the game
  skip                swap the turn (skipped turn detected)
  state               show the game state
  history             show the game journal
  quit                exit`

type repl struct {
	session    *app.Session
	recognizer ports.RecognizerPort
	logger     *slog.Logger
	out        io.Writer
}

func newREPL(session *app.Session, recognizer ports.RecognizerPort, logger *slog.Logger, out io.Writer) *repl {
	return &repl{session: session, recognizer: recognizer, logger: logger, out: out}
}

// Run reads commands line by line until EOF or quit.
func (r *repl) Run(in io.Reader) error {
	fmt.Fprintln(r.out, `Guandan assistant. Type "help" for commands.`)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if err := r.exec(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *repl) exec(line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	cards := domain.ParseCards(rest)
	r.logger.Debug("Command", "cmd", cmd, "args", rest)

	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "new":
		r.session.Reset()
		fmt.Fprintln(r.out, "new game")
	case "scan":
		return r.scan(strings.TrimSpace(rest))
	case "hand":
		if err := r.session.SetHand(cards); err != nil {
			return err
		}
		r.printHand()
	case "opp":
		combo := r.session.RecordOpponentPlay(cards)
		if combo.IsPass() {
			fmt.Fprintln(r.out, "opponent passed, your lead")
			return nil
		}
		fmt.Fprintf(r.out, "opponent played %s\n", combo)
		return r.suggest(false)
	case "play":
		if len(cards) == 0 {
			return errors.New("play needs cards; use pass to pass")
		}
		r.play(cards)
	case "pass":
		r.play(nil)
	case "accept":
		move, err := r.session.Suggest(false)
		if err != nil {
			return err
		}
		r.play(move.Cards())
	case "suggest":
		return r.suggest(strings.TrimSpace(rest) == "!")
	case "classify":
		fmt.Fprintln(r.out, r.session.Classify(cards))
	case "skip":
		r.session.ResetRound()
		fmt.Fprintf(r.out, "turn: %s\n", r.session.Turn())
	case "state":
		r.printState()
	case "history":
		for _, ev := range r.session.Journal() {
			fmt.Fprintln(r.out, ev)
		}
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (r *repl) scan(imageRef string) error {
	if imageRef == "" {
		imageRef = "screen"
	}
	cards, err := r.recognizer.Recognize(context.Background(), imageRef)
	if err != nil {
		return fmt.Errorf("recognize %s: %w", imageRef, err)
	}
	if err := r.session.SetHand(cards); err != nil {
		return err
	}
	r.logger.Info("Hand captured", "image", imageRef, "cards", len(cards))
	r.printHand()
	return r.suggest(false)
}

func (r *repl) play(cards []domain.Card) {
	r.session.RecordMyPlay(cards)
	if len(cards) == 0 {
		fmt.Fprintln(r.out, "passed")
	} else {
		fmt.Fprintf(r.out, "played %s\n", strings.Join(domain.CardStrings(cards), " "))
	}
	fmt.Fprintln(r.out, r.session.StateSummary())
}

func (r *repl) suggest(force bool) error {
	move, err := r.session.Suggest(force)
	if err != nil {
		r.logger.Error("Suggestion failed", "error", err)
	}
	line := describeMove(move)
	if !move.Pass && !r.session.OpponentMayBeat(move.Combo) {
		line += "  opponent already passed on this"
	}
	fmt.Fprintln(r.out, line)
	return nil
}

func describeMove(m bot.Move) string {
	if m.Pass {
		return fmt.Sprintf("suggest: pass (%s)", m.Rule)
	}
	return fmt.Sprintf("suggest: %s  [%s] (%s)", strings.Join(domain.CardStrings(m.Cards()), " "), m.Combo, m.Rule)
}

func (r *repl) printHand() {
	fmt.Fprintf(r.out, "hand (%d): %s\n", r.session.Size(), strings.Join(domain.CardStrings(r.session.Hand()), " "))
}

func (r *repl) printState() {
	summary := r.session.StateSummary()
	fmt.Fprintln(r.out, summary)
	fmt.Fprintf(r.out, "hand: %s\n", strings.Join(domain.CardStrings(summary.Hand), " "))
	p := summary.Profile
	fmt.Fprintf(r.out, "shapes: %d pairs, %d straights (longest %d), %d bombs\n", p.Pairs, p.Straights, p.LongestStraight, p.Bombs)

	if len(summary.OpponentStats) > 0 {
		kinds := make([]domain.Kind, 0, len(summary.OpponentStats))
		for k := range summary.OpponentStats {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		parts := make([]string, 0, len(kinds))
		for _, k := range kinds {
			parts = append(parts, fmt.Sprintf("%s=%d", k, summary.OpponentStats[k]))
		}
		fmt.Fprintf(r.out, "opponent played: %s\n", strings.Join(parts, " "))
	}
	if summary.OpponentPasses > 0 {
		kinds := make([]domain.Kind, 0, len(summary.OpponentWeaknesses))
		for k := range summary.OpponentWeaknesses {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
		parts := []string{fmt.Sprintf("%d passes", summary.OpponentPasses)}
		for _, k := range kinds {
			st := summary.OpponentWeaknesses[k]
			parts = append(parts, fmt.Sprintf("%s<=%d/%d", k, st.Size, st.Value))
		}
		fmt.Fprintf(r.out, "opponent: %s\n", strings.Join(parts, " "))
	}
	if len(summary.BossCards) > 0 {
		fmt.Fprintf(r.out, "boss: %s\n", strings.Join(domain.CardStrings(summary.BossCards), " "))
	}
	if len(summary.ExhaustedRanks) > 0 {
		fmt.Fprintf(r.out, "exhausted: %s\n", strings.Join(summary.ExhaustedRanks, " "))
	}

	unseen := make([]string, 0, len(domain.RankTokens))
	for _, rank := range domain.RankTokens {
		unseen = append(unseen, fmt.Sprintf("%s:%d", rank, summary.Unseen[rank]))
	}
	fmt.Fprintf(r.out, "unseen: %s\n", strings.Join(unseen, " "))
}
