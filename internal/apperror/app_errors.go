package apperror

import "errors"

var (
	ErrOutOfBounds        = errors.New("square is out of bounds")
	ErrSquareOccupied     = errors.New("square is already occupied")
	ErrPieceNotFound      = errors.New("piece not found")
	ErrIllegalSelection   = errors.New("no own piece on selected square")
	ErrIllegalDestination = errors.New("destination is not a legal move")
	ErrGameFinished       = errors.New("game is already finished")
	ErrUnknownMode        = errors.New("unknown driver mode")
	ErrInvalidConfig      = errors.New("invalid config")
	ErrInvalidColor       = errors.New("piece color must be blue or grey")
	ErrBoardFull          = errors.New("no piece ids left on board")
)
