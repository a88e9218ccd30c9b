package screen

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Progress animates a spinner with a message until stopped.
type Progress struct {
	out     io.Writer
	message string
	frames  []string
	fps     time.Duration

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

// StartProgress begins animating on out. Nothing else may write to out until Stop returns.
func StartProgress(out io.Writer, message string) *Progress {
	p := &Progress{
		out:     out,
		message: message,
		frames:  spinner.Line.Frames,
		fps:     spinner.Line.FPS,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Progress) run() {
	defer close(p.done)
	ticker := time.NewTicker(p.fps)
	defer ticker.Stop()

	frame := 0
	for {
		_, _ = fmt.Fprintf(p.out, "%s%s %s", clearLine, p.frames[frame], p.message)
		frame = (frame + 1) % len(p.frames)
		select {
		case <-p.stop:
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation, waits for it to finish, and erases its line. It is safe to call more than once.
func (p *Progress) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		close(p.stop)
		<-p.done
		err = ClearLine(p.out)
	})
	return err
}

// WithProgress runs fn while a spinner is shown on out.
func WithProgress[T any](out io.Writer, message string, fn func() (T, error)) (T, error) {
	p := StartProgress(out, message)
	result, err := fn()
	if stopErr := p.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	return result, err
}
