package match

import (
	"time"

	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/crease/internal/commentary"
	"github.com/DhavalSuthar-24/crease/internal/rules"
)

// Options tune the engine's policy decisions.
type Options struct {
	// AllOutWickets overrides the all-out threshold. Zero means roster size - 1.
	AllOutWickets int
	// RotateStrikeAtOverEnd swaps the batsmen when an over completes.
	RotateStrikeAtOverEnd bool
	Commentary            *commentary.Generator
	Now                   func() time.Time
}

// Engine applies scoring operations to one match state. It is not safe
// for concurrent use; callers serialize access per match.
type Engine struct {
	state *State
	opts  Options
}

// NewEngine wraps state. The engine mutates state in place.
func NewEngine(state *State, opts Options) (*Engine, error) {
	if state == nil || state.Current == nil {
		return nil, &Error{Kind: KindStateNotFound, Message: "match state not loaded"}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Commentary == nil {
		opts.Commentary = commentary.NewSeeded(uint64(opts.Now().UnixNano()))
	}
	return &Engine{state: state, opts: opts}, nil
}

// State returns the state the engine is operating on.
func (e *Engine) State() *State { return e.state }

// Snapshot returns the current snapshot.
func (e *Engine) Snapshot() *Snapshot { return e.state.Current }

// AllOutThreshold is the wicket count that ends an innings for team.
func (e *Engine) AllOutThreshold(team *TeamState) int {
	if e.opts.AllOutWickets > 0 {
		return e.opts.AllOutWickets
	}
	if n := len(team.Players) - 1; n > 0 {
		return n
	}
	return 1
}

// TeamSetup describes one side at match creation.
type TeamSetup struct {
	ID      string
	Name    string
	Players []Player
}

// Setup is everything needed to create a match. Team1 bats first.
type Setup struct {
	MatchID      string
	TotalOvers   int
	Team1        TeamSetup
	Team2        TeamSetup
	StrikerID    string
	NonStrikerID string
	BowlerID     string
	CreatedBy    string
	Venue        string
}

// NewMatch builds a not-started snapshot with innings 1 preloaded.
func NewMatch(setup Setup, now time.Time) (*Snapshot, error) {
	if setup.TotalOvers <= 0 {
		return nil, invalidf("total overs must be positive, got %d", setup.TotalOvers)
	}
	if setup.Team1.ID == "" || setup.Team2.ID == "" {
		return nil, invalidf("both teams need an id")
	}
	if setup.Team1.ID == setup.Team2.ID {
		return nil, invalidf("a team cannot play itself")
	}
	seen := map[string]bool{}
	for _, t := range []TeamSetup{setup.Team1, setup.Team2} {
		if len(t.Players) < 2 {
			return nil, invalidf("team %s needs at least 2 players", t.ID)
		}
		for _, p := range t.Players {
			if p.ID == "" {
				return nil, invalidf("team %s has a player without an id", t.ID)
			}
			if seen[p.ID] {
				return nil, invalidf("player %s appears more than once", p.ID)
			}
			seen[p.ID] = true
		}
	}

	s := &Snapshot{
		MatchID:        setup.MatchID,
		CreatedBy:      setup.CreatedBy,
		Venue:          setup.Venue,
		TotalOvers:     setup.TotalOvers,
		CurrentInnings: 1,
		Team1:          TeamState{ID: setup.Team1.ID, Name: setup.Team1.Name, Players: setup.Team1.Players},
		Team2:          TeamState{ID: setup.Team2.ID, Name: setup.Team2.Name, Players: setup.Team2.Players},
		Status:         StatusNotStarted,
		Batting:        []BattingStatRow{},
		Bowling:        []BowlingStatRow{},
		Balls:          []BallRecord{},
		CreatedAt:      now,
	}
	if s.MatchID == "" {
		s.MatchID = uuid.NewString()
	}

	if setup.StrikerID == "" || setup.NonStrikerID == "" || setup.BowlerID == "" {
		return nil, invalidf("opening batsmen and bowler are required")
	}
	if setup.StrikerID == setup.NonStrikerID {
		return nil, invalidf("opening batsmen must differ")
	}
	for _, id := range []string{setup.StrikerID, setup.NonStrikerID} {
		if !s.Team1.HasPlayer(id) {
			return nil, playerNotFound(id)
		}
		s.Batting = append(s.Batting, BattingStatRow{PlayerID: id, TeamID: s.Team1.ID, InningsNumber: 1})
	}
	if !s.Team2.HasPlayer(setup.BowlerID) {
		return nil, playerNotFound(setup.BowlerID)
	}
	s.Bowling = append(s.Bowling, BowlingStatRow{PlayerID: setup.BowlerID, TeamID: s.Team2.ID, InningsNumber: 1})
	s.Crease = Crease{StrikerID: setup.StrikerID, NonStrikerID: setup.NonStrikerID, BowlerID: setup.BowlerID}
	return s, nil
}

// Start moves a match from not_started to live.
func (e *Engine) Start() error {
	s := e.state.Current
	if s.Status != StatusNotStarted {
		return invalidf("match %s is already %s", s.MatchID, s.Status)
	}
	now := e.opts.Now()
	s.Status = StatusLive
	s.StartedAt = &now
	return nil
}

// RecordRuns records a legal delivery off which the striker scored runs.
func (e *Engine) RecordRuns(runs int, strikerID, nonStrikerID, bowlerID string) error {
	if runs < 0 {
		return invalidf("runs cannot be negative")
	}
	if err := e.checkDelivery(strikerID, nonStrikerID, bowlerID); err != nil {
		return err
	}
	s := e.state.Current
	batter, bowler := e.begin(strikerID, nonStrikerID, bowlerID)
	team := s.BattingTeam()
	over, ball := team.Overs, team.Balls

	batter.Runs += runs
	batter.BallsFaced++
	countBoundary(batter, runs)
	bowler.RunsConceded += runs
	bowler.RunsThisOver += runs
	team.Score += runs
	overDone := advanceBall(team, bowler)
	refresh(batter, bowler)

	e.appendBall(BallRecord{
		OverNumber:   over,
		BallNumber:   ball,
		BatsmanID:    strikerID,
		NonStrikerID: nonStrikerID,
		BowlerID:     bowlerID,
		RunsScored:   runs,
		BallType:     BallLegal,
		IsBoundary:   runs == 4,
		IsSix:        runs == 6,
	})
	if rules.StrikeRotates(runs) {
		e.rotateStrike()
	}
	e.endOfBall(overDone, bowlerID)
	return nil
}

// RecordWide records a wide plus any runs taken off it. The striker is
// never credited.
func (e *Engine) RecordWide(strikerID, nonStrikerID, bowlerID string, additionalRuns int) error {
	return e.recordExtra(BallWide, strikerID, nonStrikerID, bowlerID, additionalRuns)
}

// RecordNoBall records a no-ball. Runs off the bat are credited to the
// striker, who is not charged a ball faced.
func (e *Engine) RecordNoBall(strikerID, nonStrikerID, bowlerID string, additionalRuns int) error {
	return e.recordExtra(BallNoBall, strikerID, nonStrikerID, bowlerID, additionalRuns)
}

func (e *Engine) recordExtra(kind BallType, strikerID, nonStrikerID, bowlerID string, additionalRuns int) error {
	if additionalRuns < 0 {
		return invalidf("additional runs cannot be negative")
	}
	if err := e.checkDelivery(strikerID, nonStrikerID, bowlerID); err != nil {
		return err
	}
	s := e.state.Current
	batter, bowler := e.begin(strikerID, nonStrikerID, bowlerID)
	team := s.BattingTeam()
	total := 1 + additionalRuns

	team.Score += total
	bowler.RunsConceded += total
	bowler.RunsThisOver += total
	if kind == BallNoBall {
		batter.Runs += additionalRuns
		countBoundary(batter, additionalRuns)
	}
	refresh(batter, bowler)

	e.appendBall(BallRecord{
		OverNumber:   team.Overs,
		BallNumber:   team.Balls,
		BatsmanID:    strikerID,
		NonStrikerID: nonStrikerID,
		BowlerID:     bowlerID,
		RunsScored:   additionalRuns,
		Extras:       1,
		BallType:     kind,
		IsBoundary:   additionalRuns == 4,
		IsSix:        kind == BallNoBall && additionalRuns == 6,
	})
	if rules.StrikeRotates(additionalRuns) {
		e.rotateStrike()
	}
	e.checkInningsEnd()
	return nil
}

// RecordWicket dismisses the striker. A retired_hurt dismissal is
// handled exactly like RetireHurt.
func (e *Engine) RecordWicket(strikerID, nonStrikerID, bowlerID string, wicketType WicketType) error {
	if wicketType == WicketRetiredHurt {
		return e.RetireHurt(strikerID)
	}
	if !wicketType.Valid() {
		return invalidf("unknown wicket type %q", wicketType)
	}
	if err := e.checkDelivery(strikerID, nonStrikerID, bowlerID); err != nil {
		return err
	}
	s := e.state.Current
	batter, bowler := e.begin(strikerID, nonStrikerID, bowlerID)
	team := s.BattingTeam()
	over, ball := team.Overs, team.Balls

	batter.IsOut = true
	batter.DismissalType = wicketType
	batter.BallsFaced++
	if wicketType.CreditsBowler() {
		bowler.Wickets++
	}
	team.Wickets++
	overDone := advanceBall(team, bowler)
	refresh(batter, bowler)

	e.appendBall(BallRecord{
		OverNumber:   over,
		BallNumber:   ball,
		BatsmanID:    strikerID,
		NonStrikerID: nonStrikerID,
		BowlerID:     bowlerID,
		BallType:     BallWicket,
		WicketType:   wicketType,
	})
	e.vacate(strikerID)
	e.endOfBall(overDone, bowlerID)
	return nil
}

// RetireHurt marks the striker retired hurt. Nothing else changes and no
// ball is logged.
func (e *Engine) RetireHurt(strikerID string) error {
	s := e.state.Current
	if s.Status != StatusLive {
		return invalidf("match %s is not live", s.MatchID)
	}
	row := s.BattingRow(strikerID, s.CurrentInnings)
	if row == nil {
		if !s.BattingTeam().HasPlayer(strikerID) {
			return playerNotFound(strikerID)
		}
		return invalidf("player %s is not batting", strikerID)
	}
	if row.IsOut {
		return invalidf("player %s is already out", strikerID)
	}
	row.IsOut = true
	row.DismissalType = WicketRetiredHurt
	e.vacate(strikerID)
	return nil
}

// AddBatsman brings a player to the crease. A retired-hurt player's row
// is reinstated rather than duplicated.
func (e *Engine) AddBatsman(playerID string, innings int) error {
	s := e.state.Current
	if s.Status == StatusCompleted {
		return invalidf("match %s is completed", s.MatchID)
	}
	if innings != s.CurrentInnings {
		return invalidf("innings %d is not in progress", innings)
	}
	if !s.battingTeamFor(innings).HasPlayer(playerID) {
		return playerNotFound(playerID)
	}
	row := s.BattingRow(playerID, innings)
	if row != nil && row.IsOut && row.DismissalType != WicketRetiredHurt {
		return invalidf("player %s has already been dismissed", playerID)
	}
	if row == nil || row.IsOut {
		others := 0
		for _, id := range s.ActiveBatsmen(innings) {
			if id != playerID {
				others++
			}
		}
		if others >= 2 {
			return invalidf("two batsmen are already at the crease")
		}
	}

	if row == nil {
		s.Batting = append(s.Batting, BattingStatRow{PlayerID: playerID, TeamID: s.battingTeamFor(innings).ID, InningsNumber: innings})
	} else {
		row.IsOut = false
		row.DismissalType = ""
	}
	e.occupy(playerID)
	return nil
}

// AddBowler registers a bowler for the innings and makes them the current bowler.
func (e *Engine) AddBowler(playerID string, innings int) error {
	s := e.state.Current
	if s.Status == StatusCompleted {
		return invalidf("match %s is completed", s.MatchID)
	}
	if innings != s.CurrentInnings {
		return invalidf("innings %d is not in progress", innings)
	}
	team := s.bowlingTeamFor(innings)
	if !team.HasPlayer(playerID) {
		return playerNotFound(playerID)
	}
	if s.BowlingRow(playerID, innings) == nil {
		s.Bowling = append(s.Bowling, BowlingStatRow{PlayerID: playerID, TeamID: team.ID, InningsNumber: innings})
	}
	s.Crease.BowlerID = playerID
	return nil
}

// UndoLastBall restores the snapshot saved before the last delivery.
func (e *Engine) UndoLastBall() error {
	st := e.state
	if st.Previous == nil {
		if len(st.Current.InningsBalls(st.Current.CurrentInnings)) == 0 {
			return &Error{Kind: KindNothingToUndo, Message: "nothing to undo"}
		}
		return &Error{Kind: KindNothingToUndo, Message: "no previous state"}
	}
	st.Current = st.Previous
	st.Previous = nil
	return nil
}

// EndInnings closes the current innings by hand, for when no replacement
// batsman is available. Ending innings 2 completes the match.
func (e *Engine) EndInnings() error {
	s := e.state.Current
	if s.Status != StatusLive {
		return invalidf("match %s is not live", s.MatchID)
	}
	e.state.Previous = s.Clone()
	if s.CurrentInnings == 1 {
		e.closeFirstInnings()
		return nil
	}
	e.complete()
	return nil
}

func (e *Engine) checkDelivery(strikerID, nonStrikerID, bowlerID string) error {
	s := e.state.Current
	switch s.Status {
	case StatusCompleted:
		return invalidf("match %s is completed", s.MatchID)
	case StatusNotStarted:
		return invalidf("match %s has not started", s.MatchID)
	}
	if strikerID == "" || nonStrikerID == "" {
		return invalidf("two batsmen are required at the crease")
	}
	if strikerID == nonStrikerID {
		return invalidf("striker and non-striker must differ")
	}
	if bowlerID == "" {
		return invalidf("no bowler assigned")
	}
	bat, bowl := s.BattingTeam(), s.BowlingTeam()
	for _, id := range []string{strikerID, nonStrikerID} {
		if !bat.HasPlayer(id) {
			return playerNotFound(id)
		}
	}
	if !bowl.HasPlayer(bowlerID) {
		return playerNotFound(bowlerID)
	}
	for _, id := range []string{strikerID, nonStrikerID} {
		row := s.BattingRow(id, s.CurrentInnings)
		if row == nil {
			return invalidf("batsman %s has not been added to innings %d", id, s.CurrentInnings)
		}
		if row.IsOut {
			return invalidf("batsman %s is out", id)
		}
	}
	if s.BowlingRow(bowlerID, s.CurrentInnings) == nil {
		return invalidf("bowler %s has not been added to innings %d", bowlerID, s.CurrentInnings)
	}
	return nil
}

// begin saves the undo slot and syncs the crease with the batsmen the
// caller named. Only called after checkDelivery has passed.
func (e *Engine) begin(strikerID, nonStrikerID, bowlerID string) (*BattingStatRow, *BowlingStatRow) {
	s := e.state.Current
	e.state.Previous = s.Clone()
	innings := s.CurrentInnings

	c := &s.Crease
	samePair := (c.StrikerID == strikerID && c.NonStrikerID == nonStrikerID) ||
		(c.StrikerID == nonStrikerID && c.NonStrikerID == strikerID)
	if !samePair {
		c.StrikerID, c.NonStrikerID = strikerID, nonStrikerID
	}
	c.BowlerID = bowlerID
	return s.BattingRow(strikerID, innings), s.BowlingRow(bowlerID, innings)
}

func (e *Engine) appendBall(b BallRecord) {
	s := e.state.Current
	b.ID = uuid.NewString()
	b.InningsNumber = s.CurrentInnings
	b.TeamID = s.BattingTeam().ID
	b.CreatedAt = e.opts.Now()
	b.Commentary = e.opts.Commentary.Generate(
		commentary.ShortName(s.PlayerName(b.BowlerID)),
		commentary.ShortName(s.PlayerName(b.BatsmanID)),
		b.RunsScored, commentary.Kind(b.BallType), b.OverNumber, b.BallNumber, string(b.WicketType),
	)
	s.Balls = append(s.Balls, b)
}

func (e *Engine) endOfBall(overDone bool, bowlerID string) {
	if overDone {
		e.state.Current.Crease.LastOverBowlerID = bowlerID
		if e.opts.RotateStrikeAtOverEnd {
			e.rotateStrike()
		}
	}
	e.checkInningsEnd()
}

func (e *Engine) rotateStrike() {
	c := &e.state.Current.Crease
	c.StrikerID, c.NonStrikerID = c.NonStrikerID, c.StrikerID
}

func (e *Engine) vacate(playerID string) {
	c := &e.state.Current.Crease
	switch playerID {
	case c.StrikerID:
		c.StrikerID = ""
	case c.NonStrikerID:
		c.NonStrikerID = ""
	}
}

func (e *Engine) occupy(playerID string) {
	s := e.state.Current
	c := &s.Crease
	if c.StrikerID == playerID || c.NonStrikerID == playerID {
		return
	}
	free := func(id string) bool {
		if id == "" {
			return true
		}
		row := s.BattingRow(id, s.CurrentInnings)
		return row == nil || row.IsOut
	}
	switch {
	case free(c.StrikerID):
		c.StrikerID = playerID
	case free(c.NonStrikerID):
		c.NonStrikerID = playerID
	}
}

func (e *Engine) checkInningsEnd() {
	s := e.state.Current
	bat := s.BattingTeam()
	allOut := bat.Wickets >= e.AllOutThreshold(bat)
	oversDone := bat.Overs >= s.TotalOvers && bat.Balls == 0
	if s.CurrentInnings == 1 {
		if allOut || oversDone {
			e.closeFirstInnings()
		}
		return
	}
	chased := s.Target != nil && bat.Score >= *s.Target
	if chased || allOut || oversDone {
		e.complete()
	}
}

func (e *Engine) closeFirstInnings() {
	s := e.state.Current
	target := rules.Target(s.Team1.Score)
	s.Target = &target
	s.CurrentInnings = 2
	s.Crease = Crease{}
}

func (e *Engine) complete() {
	s := e.state.Current
	res := rules.MatchResult(rules.ResultInput{
		Team1Name:        teamLabel(&s.Team1),
		Team2Name:        teamLabel(&s.Team2),
		Team1Score:       s.Team1.Score,
		Team2Score:       s.Team2.Score,
		Team2Wickets:     s.Team2.Wickets,
		WicketsAvailable: e.AllOutThreshold(&s.Team2),
	})
	s.Status = StatusCompleted
	s.ResultText = res.Text
	switch res.Winner {
	case rules.Team1Won:
		id := s.Team1.ID
		s.WinnerTeamID = &id
	case rules.Team2Won:
		id := s.Team2.ID
		s.WinnerTeamID = &id
	default:
		s.WinnerTeamID = nil
	}
	now := e.opts.Now()
	s.CompletedAt = &now
}

func teamLabel(t *TeamState) string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// advanceBall counts one legal delivery against the team and the bowler
// and reports whether the team's over completed.
func advanceBall(team *TeamState, bowler *BowlingStatRow) bool {
	overDone := false
	team.Balls++
	if team.Balls == rules.BallsPerOver {
		team.Overs++
		team.Balls = 0
		overDone = true
	}
	bowler.BallsBowled++
	if bowler.BallsBowled == rules.BallsPerOver {
		bowler.OversCompleted++
		bowler.BallsBowled = 0
		if bowler.RunsThisOver == 0 {
			bowler.Maidens++
		}
		bowler.RunsThisOver = 0
	}
	return overDone
}

func countBoundary(r *BattingStatRow, runs int) {
	switch runs {
	case 4:
		r.Fours++
	case 6:
		r.Sixes++
	}
}

func refresh(batter *BattingStatRow, bowler *BowlingStatRow) {
	batter.StrikeRate = rules.StrikeRate(batter.Runs, batter.BallsFaced)
	bowler.EconomyRate = rules.EconomyRate(bowler.RunsConceded, bowler.OversCompleted, bowler.BallsBowled)
}
