package scoring

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/DhavalSuthar-24/crease/internal/common"
	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/pkg/responses"
)

// ScoringController handles match scoring HTTP requests
type ScoringController struct {
	service *Service
}

func NewScoringController(service *Service) *ScoringController {
	return &ScoringController{service: service}
}

// --- DTOs for requests ---

// PlayerRequest is one roster entry
type PlayerRequest struct {
	ID   string `json:"id" binding:"required,max=64"`
	Name string `json:"name,omitempty" binding:"max=100"`
}

// TeamRequest is one side at match creation
type TeamRequest struct {
	ID      string          `json:"id" binding:"required,max=64"`
	Name    string          `json:"name" binding:"required,max=100"`
	Players []PlayerRequest `json:"players" binding:"required,min=2,max=15,dive"`
}

// CreateMatchRequest defines the request payload for creating a match. Team1 bats first.
type CreateMatchRequest struct {
	MatchID      string      `json:"match_id,omitempty" binding:"omitempty,max=64"`
	TotalOvers   int         `json:"total_overs" binding:"required,min=1,max=50"`
	Venue        string      `json:"venue,omitempty" binding:"max=255"`
	Team1        TeamRequest `json:"team1" binding:"required"`
	Team2        TeamRequest `json:"team2" binding:"required"`
	StrikerID    string      `json:"striker_id" binding:"required"`
	NonStrikerID string      `json:"non_striker_id" binding:"required,nefield=StrikerID"`
	BowlerID     string      `json:"bowler_id" binding:"required"`
}

// DeliveryRequest names the players on a ball. Omitted ids come from the crease.
type DeliveryRequest struct {
	StrikerID    string `json:"striker_id,omitempty" binding:"max=64"`
	NonStrikerID string `json:"non_striker_id,omitempty" binding:"max=64"`
	BowlerID     string `json:"bowler_id,omitempty" binding:"max=64"`
}

func (d DeliveryRequest) delivery() Delivery {
	return Delivery{StrikerID: d.StrikerID, NonStrikerID: d.NonStrikerID, BowlerID: d.BowlerID}
}

// RunsRequest records a legal delivery
type RunsRequest struct {
	DeliveryRequest
	Runs *int `json:"runs" binding:"required,min=0"`
}

// ExtraRequest records a wide or a no-ball
type ExtraRequest struct {
	DeliveryRequest
	AdditionalRuns int `json:"additional_runs" binding:"min=0"`
}

// WicketRequest records a dismissal of the striker
type WicketRequest struct {
	DeliveryRequest
	WicketType string `json:"wicket_type" binding:"required,oneof=bowled caught lbw run_out stumped hit_wicket retired_hurt"`
}

// RetireHurtRequest retires a batsman, the striker when omitted
type RetireHurtRequest struct {
	StrikerID string `json:"striker_id,omitempty" binding:"max=64"`
}

// AddPlayerRequest brings a batsman or bowler into the innings
type AddPlayerRequest struct {
	PlayerID string `json:"player_id" binding:"required,max=64"`
	Innings  int    `json:"innings,omitempty" binding:"omitempty,min=1,max=2"`
}

// ScoreResponse is returned by every scoring operation
type ScoreResponse struct {
	Match   *match.Snapshot `json:"match"`
	Warning string          `json:"warning,omitempty"`
}

func toTeamSetup(t TeamRequest) match.TeamSetup {
	players := make([]match.Player, len(t.Players))
	for i, p := range t.Players {
		players[i] = match.Player{ID: p.ID, Name: p.Name}
	}
	return match.TeamSetup{ID: t.ID, Name: t.Name, Players: players}
}

// handleError maps service errors onto the response envelope
func handleError(c *gin.Context, err error) {
	var me *match.Error
	switch {
	case errors.Is(err, ErrNotScorer):
		responses.Forbidden(c, err.Error())
	case errors.Is(err, ErrArchiveDisabled):
		responses.ServiceUnavailable(c, err.Error())
	case errors.As(err, &me):
		switch me.Kind {
		case match.KindMatchNotFound, match.KindStateNotFound:
			responses.NotFound(c, "Match")
		case match.KindPlayerNotFound:
			responses.SendError(c, http.StatusNotFound, me.Error())
		case match.KindNothingToUndo:
			responses.Conflict(c, me.Error())
		default:
			responses.UnprocessableEntity(c, me.Error())
		}
	default:
		responses.InternalServerError(c, "")
	}
}

func (sc *ScoringController) scorer(c *gin.Context) (string, bool) {
	userID, err := common.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return "", false
	}
	sc.service.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    common.GetUserRoleFromContext(c),
		"route":   c.FullPath(),
	}).Debug("Scorer request")
	return userID, true
}

// CreateMatch godoc
// @Summary Create a match
// @Description Creates a not-started match with both rosters, the openers and the opening bowler. The caller becomes the scorer.
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match setup"
// @Success 201 {object} responses.SuccessResponse{data=match.Snapshot}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 422 {object} responses.ErrorResponse "Invalid setup"
// @Router /matches [post]
// @Security BearerAuth
func (sc *ScoringController) CreateMatch(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	snap, err := sc.service.CreateMatch(c.Request.Context(), match.Setup{
		MatchID:      req.MatchID,
		TotalOvers:   req.TotalOvers,
		Team1:        toTeamSetup(req.Team1),
		Team2:        toTeamSetup(req.Team2),
		StrikerID:    req.StrikerID,
		NonStrikerID: req.NonStrikerID,
		BowlerID:     req.BowlerID,
		CreatedBy:    userID,
		Venue:        req.Venue,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Match created successfully", snap)
}

// GetMatch godoc
// @Summary Get a match
// @Description Returns the live snapshot, or the archived one for a completed match
// @Tags Matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=match.Snapshot}
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{id} [get]
func (sc *ScoringController) GetMatch(c *gin.Context) {
	snap, err := sc.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match retrieved successfully", snap)
}

// GetScorecard godoc
// @Summary Get a scorecard
// @Tags Matches
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=stats.Scorecard}
// @Failure 404 {object} responses.ErrorResponse "Match not found"
// @Router /matches/{id}/scorecard [get]
func (sc *ScoringController) GetScorecard(c *gin.Context) {
	card, err := sc.service.Scorecard(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Scorecard retrieved successfully", card)
}

// GetCareer godoc
// @Summary Get a player's career
// @Tags Players
// @Produce json
// @Param id path string true "Player ID"
// @Success 200 {object} responses.SuccessResponse{data=archive.CareerStat}
// @Failure 404 {object} responses.ErrorResponse "Player has no archived matches"
// @Failure 503 {object} responses.ErrorResponse "Archive not configured"
// @Router /players/{id}/career [get]
func (sc *ScoringController) GetCareer(c *gin.Context) {
	career, err := sc.service.Career(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Career retrieved successfully", career)
}

// StartMatch godoc
// @Summary Start a match
// @Tags Scoring
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 403 {object} responses.ErrorResponse "Not the scorer"
// @Failure 422 {object} responses.ErrorResponse "Match already started"
// @Router /matches/{id}/start [post]
// @Security BearerAuth
func (sc *ScoringController) StartMatch(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	snap, err := sc.service.Start(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match started", ScoreResponse{Match: snap})
}

// RecordRuns godoc
// @Summary Record runs off a legal delivery
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param ball body RunsRequest true "Delivery"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 403 {object} responses.ErrorResponse "Not the scorer"
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/runs [post]
// @Security BearerAuth
func (sc *ScoringController) RecordRuns(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req RunsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	snap, err := sc.service.RecordRuns(c.Request.Context(), c.Param("id"), userID, req.delivery(), *req.Runs)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Runs recorded", ScoreResponse{Match: snap})
}

// RecordWide godoc
// @Summary Record a wide
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param ball body ExtraRequest true "Delivery"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/wide [post]
// @Security BearerAuth
func (sc *ScoringController) RecordWide(c *gin.Context) {
	sc.recordExtra(c, "Wide recorded", sc.service.RecordWide)
}

// RecordNoBall godoc
// @Summary Record a no-ball
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param ball body ExtraRequest true "Delivery"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/no-ball [post]
// @Security BearerAuth
func (sc *ScoringController) RecordNoBall(c *gin.Context) {
	sc.recordExtra(c, "No-ball recorded", sc.service.RecordNoBall)
}

type extraFunc func(ctx context.Context, matchID, actorID string, d Delivery, additionalRuns int) (*match.Snapshot, error)

func (sc *ScoringController) recordExtra(c *gin.Context, message string, record extraFunc) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req ExtraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	snap, err := record(c.Request.Context(), c.Param("id"), userID, req.delivery(), req.AdditionalRuns)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, message, ScoreResponse{Match: snap})
}

// RecordWicket godoc
// @Summary Record a wicket
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param ball body WicketRequest true "Dismissal"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 400 {object} responses.ErrorResponse "Validation error"
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/wicket [post]
// @Security BearerAuth
func (sc *ScoringController) RecordWicket(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req WicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	snap, err := sc.service.RecordWicket(c.Request.Context(), c.Param("id"), userID, req.delivery(), match.WicketType(req.WicketType))
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Wicket recorded", ScoreResponse{Match: snap})
}

// RetireHurt godoc
// @Summary Retire a batsman hurt
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param body body RetireHurtRequest false "Batsman, the striker when omitted"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/retire-hurt [post]
// @Security BearerAuth
func (sc *ScoringController) RetireHurt(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req RetireHurtRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}
	snap, err := sc.service.RetireHurt(c.Request.Context(), c.Param("id"), userID, req.StrikerID)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Batsman retired hurt", ScoreResponse{Match: snap})
}

// AddBatsman godoc
// @Summary Bring in a batsman
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param body body AddPlayerRequest true "Batsman"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 404 {object} responses.ErrorResponse "Player not on the batting side"
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/batsmen [post]
// @Security BearerAuth
func (sc *ScoringController) AddBatsman(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	snap, err := sc.service.AddBatsman(c.Request.Context(), c.Param("id"), userID, req.PlayerID, req.Innings)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Batsman added", ScoreResponse{Match: snap})
}

// AddBowler godoc
// @Summary Set the bowler
// @Description Registers the bowler for the innings. The response carries a warning when they also bowled the previous over.
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path string true "Match ID"
// @Param body body AddPlayerRequest true "Bowler"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 404 {object} responses.ErrorResponse "Player not on the bowling side"
// @Failure 422 {object} responses.ErrorResponse "Invalid operation"
// @Router /matches/{id}/bowlers [post]
// @Security BearerAuth
func (sc *ScoringController) AddBowler(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	snap, warning, err := sc.service.AddBowler(c.Request.Context(), c.Param("id"), userID, req.PlayerID, req.Innings)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bowler set", ScoreResponse{Match: snap, Warning: warning})
}

// Undo godoc
// @Summary Undo the last ball
// @Tags Scoring
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 409 {object} responses.ErrorResponse "Nothing to undo"
// @Router /matches/{id}/undo [post]
// @Security BearerAuth
func (sc *ScoringController) Undo(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	snap, err := sc.service.Undo(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Last ball undone", ScoreResponse{Match: snap})
}

// EndInnings godoc
// @Summary End the current innings
// @Tags Scoring
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 422 {object} responses.ErrorResponse "Match not live"
// @Router /matches/{id}/end-innings [post]
// @Security BearerAuth
func (sc *ScoringController) EndInnings(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	snap, err := sc.service.EndInnings(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Innings ended", ScoreResponse{Match: snap})
}

// Sync godoc
// @Summary Retry archiving a completed match
// @Tags Scoring
// @Produce json
// @Param id path string true "Match ID"
// @Success 200 {object} responses.SuccessResponse{data=ScoreResponse}
// @Failure 422 {object} responses.ErrorResponse "Match not completed"
// @Failure 503 {object} responses.ErrorResponse "Archive not configured"
// @Router /matches/{id}/sync [post]
// @Security BearerAuth
func (sc *ScoringController) Sync(c *gin.Context) {
	userID, ok := sc.scorer(c)
	if !ok {
		return
	}
	snap, err := sc.service.Sync(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Match archived", ScoreResponse{Match: snap})
}
