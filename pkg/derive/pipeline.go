// Package derive turns a secret into a passphrase and delivers it, either on a terminal or as one line of output.
package derive

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/saylorsolutions/sphragis/pkg/codec"
	"github.com/saylorsolutions/sphragis/pkg/config"
	"github.com/saylorsolutions/sphragis/pkg/kdf"
	"github.com/saylorsolutions/sphragis/pkg/screen"
	"github.com/saylorsolutions/sphragis/pkg/secret"
	"github.com/saylorsolutions/sphragis/pkg/secure"
)

const (
	DefaultDisplayDuration = 60 * time.Second
	progressMessage        = "Deriving passphrase from secret... This may take up to several minutes."
)

// Pipeline acquires a secret, derives a key from it, and presents the resulting passphrase.
type Pipeline struct {
	alloc       secure.Allocator
	engine      *kdf.Engine
	in          io.Reader
	out         io.Writer
	interactive bool
	display     time.Duration
	log         *slog.Logger
}

type PipelineOpt = func(*Pipeline) error

// UseAllocator sets the Allocator for every sensitive buffer the Pipeline creates, including the derived key.
func UseAllocator(alloc secure.Allocator) PipelineOpt {
	return func(p *Pipeline) error {
		if alloc == nil {
			return errors.New("nil allocator")
		}
		p.alloc = alloc
		return nil
	}
}

// UseEngine overrides the derivation engine. By default one is created with the Pipeline's allocator.
func UseEngine(engine *kdf.Engine) PipelineOpt {
	return func(p *Pipeline) error {
		if engine == nil {
			return errors.New("nil engine")
		}
		p.engine = engine
		return nil
	}
}

// UseStreams sets where the secret is read from and where output is written. The defaults are stdin and stdout.
func UseStreams(in io.Reader, out io.Writer) PipelineOpt {
	return func(p *Pipeline) error {
		if in == nil || out == nil {
			return errors.New("nil stream")
		}
		p.in, p.out = in, out
		return nil
	}
}

// Interactive selects the terminal flow with confirmation and transient display.
func Interactive(interactive bool) PipelineOpt {
	return func(p *Pipeline) error {
		p.interactive = interactive
		return nil
	}
}

// DisplayFor sets how long an interactive passphrase stays on screen.
func DisplayFor(d time.Duration) PipelineOpt {
	return func(p *Pipeline) error {
		if d <= 0 {
			return errors.New("display duration must be positive")
		}
		p.display = d
		return nil
	}
}

func UseLogger(log *slog.Logger) PipelineOpt {
	return func(p *Pipeline) error {
		if log == nil {
			return errors.New("nil logger")
		}
		p.log = log
		return nil
	}
}

func NewPipeline(opts ...PipelineOpt) (*Pipeline, error) {
	p := &Pipeline{
		alloc:   secure.Locked,
		in:      os.Stdin,
		out:     os.Stdout,
		display: DefaultDisplayDuration,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	if p.engine == nil {
		engine, err := kdf.NewEngine(kdf.UseAllocator(p.alloc))
		if err != nil {
			return nil, err
		}
		p.engine = engine
	}
	return p, nil
}

// Run performs one derivation with the inputs in ctx.
// Every sensitive buffer is destroyed before Run returns, whether or not it succeeds.
func (p *Pipeline) Run(ctx *config.Context) error {
	if ctx == nil {
		return errors.New("nil derivation context")
	}
	p.log.Debug("Using Argon2id", "version", ctx.Version.String(), "params", ctx.Params.String())
	p.log.Debug("Using salt", "salt", codec.Hex(ctx.Salt))

	opts := []secret.AcquirerOpt{secret.UseAllocator(p.alloc)}
	if p.interactive {
		opts = append(opts, secret.Interactive(p.out))
	}
	acq, err := secret.NewAcquirer(p.in, opts...)
	if err != nil {
		return err
	}
	sec, err := acq.Acquire()
	if err != nil {
		return err
	}

	derive := func() (*secure.Buffer, error) {
		defer sec.Destroy()
		return p.engine.Derive(sec.Bytes(), ctx.Salt, ctx.Version, ctx.Params)
	}
	start := time.Now()
	var key *secure.Buffer
	if p.interactive {
		key, err = screen.WithProgress(p.out, progressMessage, derive)
	} else {
		key, err = derive()
	}
	if err != nil {
		key.Destroy()
		return err
	}
	p.log.Debug("Key derivation completed", "elapsed_ms", time.Since(start).Milliseconds())

	passphrase := codec.Passphrase(p.alloc, key)
	if p.interactive {
		if err := screen.NewTransient(p.out, p.in).Show(passphrase, p.display); err != nil {
			return &IOError{Err: err}
		}
		return nil
	}
	return p.emit(passphrase)
}

// emit writes the passphrase and a newline in a single write.
func (p *Pipeline) emit(passphrase *secure.Buffer) error {
	defer passphrase.Destroy()
	line := p.alloc.Alloc(passphrase.Len() + 1)
	defer line.Destroy()

	data := line.Bytes()
	copy(data, passphrase.Bytes())
	data[len(data)-1] = '\n'
	if _, err := p.out.Write(data); err != nil {
		return &IOError{Err: err}
	}
	return nil
}
