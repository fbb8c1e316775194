package tictactoe

import (
	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
	"gonum.org/v1/gonum/mat"
)

const (
	planeCount = 3 // empty, O, X
	// EncodedLen is the length of an encoded observation: one-hot cells plus the side to move.
	EncodedLen = entity.BoardSize*planeCount + 1
)

// EncodeObservation - turns an observation into a network input vector.
//
// Cell i occupies entries 3*i..3*i+2 as a one-hot of (empty, O, X); unknown
// cell values leave their slot all zero. The last entry is 1 when O is to move
// and 0 otherwise.
func EncodeObservation(obs Observation) *mat.VecDense {
	data := make([]float64, EncodedLen)

	for i, cell := range obs.Board {
		switch cell {
		case entity.EmptyCell, entity.CellO, entity.CellX:
			data[i*planeCount+int(cell)] = 1
		}
	}

	if obs.Mark == entity.MarkO {
		data[EncodedLen-1] = 1
	}

	return mat.NewVecDense(EncodedLen, data)
}
