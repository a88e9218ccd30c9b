// Package secret obtains the user's secret from a terminal or an input stream.
package secret

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saylorsolutions/sphragis/pkg/screen"
	"github.com/saylorsolutions/sphragis/pkg/secure"
)

// MaxLineLength is the longest line accepted, in bytes, excluding the newline.
const MaxLineLength = 4096

const (
	privacyNotice = `Before proceeding, ensure that you are alone and no one is observing your screen.

You will now enter your secret phrase. For accuracy, it will be displayed as you type.
The screen will be cleared after input is complete.
Type your secret phrase and press Enter when finished.

> `
	reviewNotice = `Please double-check the above.
    - Leading/trailing whitespaces have been removed automatically.
    - Make sure all intended characters are present.
    - If you used backspace to edit your input, review carefully.

Is this correct? [Y/n]: `
)

// Acquirer reads a single secret, either interactively with confirmation or as one line from a stream.
type Acquirer struct {
	in          io.Reader
	out         io.Writer
	alloc       secure.Allocator
	interactive bool
	state       State
}

type AcquirerOpt = func(*Acquirer) error

// UseAllocator sets the Allocator for the secret and any response lines.
func UseAllocator(alloc secure.Allocator) AcquirerOpt {
	return func(a *Acquirer) error {
		if alloc == nil {
			return errors.New("nil allocator")
		}
		a.alloc = alloc
		return nil
	}
}

// Interactive enables the prompt and confirmation flow, writing to out.
func Interactive(out io.Writer) AcquirerOpt {
	return func(a *Acquirer) error {
		if out == nil {
			return errors.New("nil output for interactive mode")
		}
		a.out = out
		a.interactive = true
		return nil
	}
}

// NewAcquirer creates an Acquirer reading from in. It runs in batch mode unless Interactive is given.
func NewAcquirer(in io.Reader, opts ...AcquirerOpt) (*Acquirer, error) {
	if in == nil {
		return nil, errors.New("nil input")
	}
	a := &Acquirer{
		in:    in,
		alloc: secure.Locked,
	}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// State returns the most recent state reached.
func (a *Acquirer) State() State {
	return a.state
}

// Acquire returns the trimmed secret, which the caller must destroy. The secret may be empty.
// Closed input reads as an empty line, so it confirms in interactive mode.
// Every buffer created along the way is destroyed before an error is returned.
func (a *Acquirer) Acquire() (*secure.Buffer, error) {
	a.state = Prompting
	if a.interactive {
		return a.acquireInteractive()
	}
	secret, err := a.readSecret()
	if err != nil {
		return nil, err
	}
	a.state = Accepted
	return secret, nil
}

func (a *Acquirer) acquireInteractive() (*secure.Buffer, error) {
	if err := a.showPrompt(); err != nil {
		return nil, a.fail(err)
	}
	secret, err := a.readSecret()
	if err != nil {
		return nil, err
	}

	a.state = Confirming
	if err := a.showConfirmation(secret); err != nil {
		secret.Destroy()
		return nil, a.fail(err)
	}
	response, err := secure.ReadLine(a.alloc, a.in, MaxLineLength)
	if err != nil {
		secret.Destroy()
		return nil, a.fail(err)
	}
	a.state = Decide(response.Bytes())
	response.Destroy()

	if err := screen.Clear(a.out); err != nil {
		secret.Destroy()
		return nil, a.fail(err)
	}
	if a.state == Rejected {
		secret.Destroy()
		return nil, a.fail(ErrAborted)
	}
	return secret, nil
}

func (a *Acquirer) readSecret() (*secure.Buffer, error) {
	secret, err := secure.ReadLine(a.alloc, a.in, MaxLineLength)
	if err != nil {
		return nil, a.fail(err)
	}
	secret.TrimSpace()
	return secret, nil
}

func (a *Acquirer) showPrompt() error {
	if err := screen.Clear(a.out); err != nil {
		return err
	}
	_, err := fmt.Fprintf(a.out, "\n%s\n\n%s", screen.Banner("Secret Entry"), privacyNotice)
	return err
}

func (a *Acquirer) showConfirmation(secret *secure.Buffer) error {
	_, err := fmt.Fprintf(a.out, "\n%s\n\nThe following secret will be used to derive your passphrase:\n\n", screen.Banner("Secret Confirmation"))
	if err != nil {
		return err
	}
	if _, err := a.out.Write(secret.Bytes()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "\n\n[Length: %d characters]\n\n%s", utf8.RuneCount(secret.Bytes()), reviewNotice)
	return err
}

func (a *Acquirer) fail(err error) error {
	return &AcquisitionError{State: a.state, Err: err}
}
