package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/usecase"
)

type gameUseCase interface {
	StartNewGame(ctx context.Context) error
	MakeMoveAt(ctx context.Context, figure string, position int) (*usecase.MoveResult, error)
	MakeMove(ctx context.Context, figure string) (*usecase.MoveResult, error)
	Train(ctx context.Context, games int) (int, error)
	Stats(ctx context.Context) (*usecase.Stats, error)
}

type MakeMoveRequest struct {
	Figure   *string `json:"figure"`
	Position *string `json:"position,omitempty"`
}

type GameResponse struct {
	Status   string `json:"status"`
	Position string `json:"position"`
}

type TrainingResponse struct {
	Games int `json:"games"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type GameHandlers struct {
	logger        *slog.Logger
	game          gameUseCase
	trainingGames int
}

func NewGameHandlers(logger *slog.Logger, game gameUseCase, trainingGames int) *GameHandlers {
	return &GameHandlers{
		logger:        logger.With("component", "rest"),
		game:          game,
		trainingGames: trainingGames,
	}
}

func (that *GameHandlers) StartNewGame(w http.ResponseWriter, r *http.Request) {
	if err := that.game.StartNewGame(r.Context()); err != nil {
		that.writeError(w, "StartNewGame", err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (that *GameHandlers) MakeNewMoveWithPosition(w http.ResponseWriter, r *http.Request) {
	request, err := decodeMoveRequest(r)
	if err != nil {
		that.writeError(w, "MakeNewMoveWithPosition", err)
		return
	}

	if request.Position == nil {
		that.writeError(w, "MakeNewMoveWithPosition", fmt.Errorf("%w: position parameter is empty", apperror.ErrEmptyRequest))
		return
	}

	position, err := strconv.Atoi(*request.Position)
	if err != nil {
		that.writeError(w, "MakeNewMoveWithPosition", fmt.Errorf("%w: position %q", apperror.ErrInvalidCell, *request.Position))
		return
	}

	result, err := that.game.MakeMoveAt(r.Context(), entity.ParseFigure(*request.Figure), position)
	if err != nil {
		that.writeError(w, "MakeNewMoveWithPosition", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(result))
}

func (that *GameHandlers) MakeNewMove(w http.ResponseWriter, r *http.Request) {
	request, err := decodeMoveRequest(r)
	if err != nil {
		that.writeError(w, "MakeNewMove", err)
		return
	}

	result, err := that.game.MakeMove(r.Context(), entity.ParseFigure(*request.Figure))
	if err != nil {
		that.writeError(w, "MakeNewMove", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(result))
}

func (that *GameHandlers) MakeComputerSmart(w http.ResponseWriter, r *http.Request) {
	played, err := that.game.Train(r.Context(), that.trainingGames)
	if err != nil {
		that.writeError(w, "MakeComputerSmart", err)
		return
	}

	writeJSON(w, http.StatusOK, TrainingResponse{Games: played})
}

func (that *GameHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.game.Stats(r.Context())
	if err != nil {
		that.writeError(w, "Stats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func decodeMoveRequest(r *http.Request) (*MakeMoveRequest, error) {
	var request MakeMoveRequest

	if r.Body == nil || r.ContentLength == 0 {
		return nil, apperror.ErrEmptyRequest
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	if request.Figure == nil {
		return nil, fmt.Errorf("%w: figure parameter is empty", apperror.ErrEmptyRequest)
	}

	return &request, nil
}

func newGameResponse(result *usecase.MoveResult) GameResponse {
	return GameResponse{
		Status:   string(result.Status),
		Position: strconv.Itoa(result.Position),
	}
}

func (that *GameHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)

	log := that.logger.With("method", method)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Info("request rejected", "error", err)
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrEmptyRequest),
		errors.Is(err, apperror.ErrMalformedRequest),
		errors.Is(err, apperror.ErrInvalidCell):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
