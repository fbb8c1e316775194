package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-env/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-env/internal/tictactoe"
)

var ErrPlayerQuit = errors.New("player quit")

type consoleLine struct {
	text string
	err  error
}

// ConsoleMover reads cell indices typed by a person.
type ConsoleMover struct {
	in     io.Reader
	prompt io.Writer

	readOnce sync.Once
	lines    chan consoleLine
}

func NewConsoleMover(in io.Reader, prompt io.Writer) *ConsoleMover {
	return &ConsoleMover{
		in:     in,
		prompt: prompt,
		lines:  make(chan consoleLine),
	}
}

// readLines - feeds input lines to NextMove until the reader is exhausted.
// A blocked read outlives a cancelled NextMove; the goroutine ends with the reader.
func (that *ConsoleMover) readLines() {
	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- consoleLine{text: scanner.Text()}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	that.lines <- consoleLine{err: err}
	close(that.lines)
}

// NextMove - reads one line; "q" quits, anything that is not a number is an invalid action.
// It returns ctx.Err() as soon as ctx is done, without waiting for input.
func (that *ConsoleMover) NextMove(ctx context.Context, obs tictactoe.Observation, _ []int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if _, err := fmt.Fprintf(that.prompt, "Enter location[0-8] for %s, q for quit: ", obs.Mark); err != nil {
		return 0, fmt.Errorf("failed to write prompt: %w", err)
	}

	that.readOnce.Do(func() {
		go that.readLines()
	})

	var input consoleLine
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			return 0, io.EOF
		}
		input = line
	}

	if input.err != nil {
		if errors.Is(input.err, io.EOF) {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("failed to read move: %w", input.err)
	}

	line := strings.TrimSpace(input.text)
	if strings.EqualFold(line, "q") {
		return 0, ErrPlayerQuit
	}

	action, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidAction, line)
	}

	return action, nil
}

type sampler interface {
	SampleAction() (int, error)
}

// SamplingMover plays uniformly random legal moves drawn from the environment.
type SamplingMover struct {
	sampler sampler
}

func NewSamplingMover(sampler sampler) *SamplingMover {
	return &SamplingMover{sampler: sampler}
}

func (that *SamplingMover) NextMove(context.Context, tictactoe.Observation, []int) (int, error) {
	action, err := that.sampler.SampleAction()
	if err != nil {
		return 0, fmt.Errorf("failed to sample action: %w", err)
	}

	return action, nil
}
