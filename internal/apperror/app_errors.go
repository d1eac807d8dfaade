package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameNotOver       = errors.New("game is not over")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownBoardSize  = errors.New("unknown board size")
	ErrUnknownRegime     = errors.New("unknown game regime")
	ErrEmptyRequest      = errors.New("request is empty")
	ErrMalformedRequest  = errors.New("request is malformed")
	ErrKnowledgeNotFound = errors.New("knowledge not found")
)
