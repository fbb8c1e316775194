package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-env/internal/entity"
)

const rowSeparator = "-------"

// Console prints board snapshots and episode banners as plain text.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (that *Console) ShowEpisode(episode int) error {
	return that.printf("==== Episode %d ====\n", episode)
}

func (that *Console) ShowTurn(mark entity.Mark) error {
	return that.printf("%s's turn.\n", mark)
}

// ShowBoard - draws the board row by row.
func (that *Console) ShowBoard(board entity.Board) error {
	var sb strings.Builder

	for row := 0; row < entity.BoardSize; row += 3 {
		sb.WriteString(rowSeparator + "\n")
		for col := range 3 {
			sb.WriteRune('|')
			sb.WriteRune(board[row+col].Token())
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(rowSeparator + "\n")

	return that.printf("%s", sb.String())
}

// ShowResult - prints the outcome of a finished episode followed by a blank line.
func (that *Console) ShowResult(status entity.GameStatus) error {
	if status.IsDraw() {
		return that.printf("==== Finished: Draw ====\n\n")
	}

	return that.printf("==== Finished: Winner is '%s'! ====\n\n", status.Winner)
}

func (that *Console) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}

	return nil
}
