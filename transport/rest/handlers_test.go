package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-trainer/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/entity"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/game"
	"github.com/rocketscienceinc/tictactoe-trainer/internal/usecase"
)

type mockGameUseCase struct {
	mock.Mock
}

func (that *mockGameUseCase) StartNewGame(ctx context.Context) error {
	return that.Called(ctx).Error(0)
}

func (that *mockGameUseCase) MakeMoveAt(ctx context.Context, figure string, position int) (*usecase.MoveResult, error) {
	args := that.Called(ctx, figure, position)
	result, _ := args.Get(0).(*usecase.MoveResult)
	return result, args.Error(1)
}

func (that *mockGameUseCase) MakeMove(ctx context.Context, figure string) (*usecase.MoveResult, error) {
	args := that.Called(ctx, figure)
	result, _ := args.Get(0).(*usecase.MoveResult)
	return result, args.Error(1)
}

func (that *mockGameUseCase) Train(ctx context.Context, games int) (int, error) {
	args := that.Called(ctx, games)
	return args.Int(0), args.Error(1)
}

func (that *mockGameUseCase) Stats(ctx context.Context) (*usecase.Stats, error) {
	args := that.Called(ctx)
	stats, _ := args.Get(0).(*usecase.Stats)
	return stats, args.Error(1)
}

func newTestRouter(uc *mockGameUseCase) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewRouter(NewGameHandlers(logger, uc, 39000))
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))

	return recorder
}

func TestPing(t *testing.T) {
	recorder := serve(newTestRouter(&mockGameUseCase{}), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestGameHandlers_MakeNewMoveWithPosition(t *testing.T) {
	t.Run("Maps the figure and returns the status", func(t *testing.T) {
		// Given: the use case accepts O at 4
		uc := &mockGameUseCase{}
		uc.On("MakeMoveAt", mock.Anything, entity.PlayerO, 4).
			Return(&usecase.MoveResult{Status: game.StatusContinue, Position: 4}, nil).Once()

		// When: a lowercase o is sent
		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/makeNewMoveWithPosition",
			`{"figure":"o","position":"4"}`)

		// Then: the response carries status and position as strings
		require.Equal(t, http.StatusOK, recorder.Code)

		var response GameResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, GameResponse{Status: "CONTINUE", Position: "4"}, response)
		uc.AssertExpectations(t)
	})

	t.Run("Rejects requests without figure or position", func(t *testing.T) {
		uc := &mockGameUseCase{}
		router := newTestRouter(uc)

		for _, body := range []string{"", `{"position":"1"}`, `{"figure":"X"}`, `{"figure":"X","position":"one"}`} {
			recorder := serve(router, http.MethodPost, "/tictactoe/makeNewMoveWithPosition", body)

			assert.Equal(t, http.StatusBadRequest, recorder.Code, body)
		}

		uc.AssertNotCalled(t, "MakeMoveAt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Reports a malformed body as malformed", func(t *testing.T) {
		// Given: a body that is not valid JSON
		uc := &mockGameUseCase{}

		// When: it is posted
		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/makeNewMoveWithPosition", `{"figure":`)

		// Then: 400 with a malformed request error
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, response.Error, "request is malformed")
		assert.NotContains(t, response.Error, "request is empty")
		uc.AssertNotCalled(t, "MakeMoveAt", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Maps game conflicts to 409", func(t *testing.T) {
		uc := &mockGameUseCase{}
		uc.On("MakeMoveAt", mock.Anything, entity.PlayerX, 0).Return(nil, apperror.ErrCellOccupied).Once()

		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/makeNewMoveWithPosition",
			`{"figure":"X","position":"0"}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "cell is already occupied")
	})
}

func TestGameHandlers_MakeNewMove(t *testing.T) {
	t.Run("Returns the position chosen by the computer", func(t *testing.T) {
		uc := &mockGameUseCase{}
		uc.On("MakeMove", mock.Anything, entity.PlayerX).
			Return(&usecase.MoveResult{Status: game.StatusWin, Position: 8}, nil).Once()

		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/makeNewMove", `{"figure":"X"}`)

		require.Equal(t, http.StatusOK, recorder.Code)

		var response GameResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, GameResponse{Status: "WIN", Position: "8"}, response)
	})

	t.Run("Rejects a request without figure", func(t *testing.T) {
		recorder := serve(newTestRouter(&mockGameUseCase{}), http.MethodPost, "/tictactoe/makeNewMove", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGameHandlers_Training(t *testing.T) {
	t.Run("Trains with the configured number of games", func(t *testing.T) {
		uc := &mockGameUseCase{}
		uc.On("Train", mock.Anything, 39000).Return(39000, nil).Once()

		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/makeComputerSmart", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"games":39000}`, recorder.Body.String())
	})

	t.Run("StartNewGame", func(t *testing.T) {
		uc := &mockGameUseCase{}
		uc.On("StartNewGame", mock.Anything).Return(nil).Once()

		recorder := serve(newTestRouter(uc), http.MethodPost, "/tictactoe/startNewGame", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Stats", func(t *testing.T) {
		uc := &mockGameUseCase{}
		uc.On("Stats", mock.Anything).Return(&usecase.Stats{BoardSize: game.BoardSmall, Regime: game.RegimeBattle, Nodes: 10, RootStatus: "UNKNOWN"}, nil).Once()

		recorder := serve(newTestRouter(uc), http.MethodGet, "/tictactoe/stats", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"board_size":"small","regime":"battle","nodes":10,"root_status":"UNKNOWN"}`, recorder.Body.String())
	})
}
