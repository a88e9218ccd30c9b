package screen

import (
	"fmt"
	"io"
	"time"

	"github.com/saylorsolutions/sphragis/pkg/secure"
)

// ackLimit bounds how much of an acknowledgment line is buffered.
const ackLimit = 4096

// Transient displays a passphrase until a timeout elapses or the user acknowledges it.
type Transient struct {
	out io.Writer
	in  io.Reader
}

func NewTransient(out io.Writer, in io.Reader) *Transient {
	return &Transient{out: out, in: in}
}

// Show clears the screen, writes the passphrase with a hint, then waits for either d to elapse or one line of input.
// The screen is cleared again before Show returns, and the passphrase is always destroyed.
//
// The goroutine reading input may stay blocked after Show returns if no line arrives.
func (t *Transient) Show(passphrase *secure.Buffer, d time.Duration) error {
	defer passphrase.Destroy()

	if err := t.display(passphrase, d); err != nil {
		_ = Clear(t.out)
		return err
	}

	acked := make(chan struct{}, 1)
	go func() {
		line, _ := secure.ReadLine(secure.Heap, t.in, ackLimit)
		line.Destroy()
		acked <- struct{}{}
	}()

	select {
	case <-acked:
	case <-time.After(d):
	}
	return Clear(t.out)
}

func (t *Transient) display(passphrase *secure.Buffer, d time.Duration) error {
	if err := Clear(t.out); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(t.out, "%s\n\n", Banner("Derived Passphrase")); err != nil {
		return err
	}
	if _, err := t.out.Write(passphrase.Bytes()); err != nil {
		return err
	}
	seconds := int64(d.Round(time.Second) / time.Second)
	_, err := fmt.Fprintf(t.out, "\n\n%s\n", Hint(fmt.Sprintf("You have %d seconds to copy it. Press Enter to clear early.", seconds)))
	return err
}
