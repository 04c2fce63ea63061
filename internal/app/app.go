package app

import (
	"context"
	"errors"
	"io/fs"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/jot/internal/input/source"
	"github.com/dshills/jot/internal/renderer"
	"github.com/dshills/jot/internal/renderer/backend"
	"github.com/dshills/jot/internal/renderer/core"
)

// Application wires the document, the input source and the renderer
// together and runs the editor loop.
type Application struct {
	mu sync.Mutex

	backend  backend.Backend
	renderer *renderer.Renderer
	source   *source.Source
	editor   *Editor

	logger  *Logger
	session uuid.UUID

	// State
	running      atomic.Bool
	started      bool // backend initialized; guarded by mu
	done         chan struct{}
	shutdownOnce sync.Once

	opts       Options
	sourceOpts []source.Option
}

// Options configures the application.
type Options struct {
	// Path is the file to edit.
	Path string

	// FileMode is the permission used when a save creates the file.
	FileMode fs.FileMode

	// BorderColor is a hex colour for the panel border; "" keeps the
	// terminal default.
	BorderColor string

	// TitleBold draws the path in bold.
	TitleBold bool

	// Logger receives diagnostics. Nil discards them.
	Logger *Logger
}

// New loads the document and prepares the application. The terminal is
// not touched until Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		done:    make(chan struct{}),
		session: uuid.New(),
	}

	base := opts.Logger
	if base == nil {
		base = NullLogger()
	}
	app.logger = base.WithField("session", app.session.String())

	doc, err := LoadDocument(opts.Path, opts.FileMode)
	if err != nil {
		return nil, err
	}
	if !doc.Exists {
		app.logger.Warn("%s does not exist, starting with an empty buffer", opts.Path)
	} else {
		app.logger.Info("loaded %s (%d lines)", opts.Path, doc.LineCount())
	}

	app.editor = NewEditor(doc, app.logger.WithComponent("editor"))
	return app, nil
}

// rendererOptions builds the panel styles from the options.
func (app *Application) rendererOptions() (renderer.Options, error) {
	ro := renderer.DefaultOptions()

	border, err := core.ColorFromHex(app.opts.BorderColor)
	if err != nil {
		return ro, &InitError{Component: "renderer", Err: err}
	}
	ro.BorderStyle = ro.BorderStyle.WithForeground(border)

	ro.TitleStyle = core.DefaultStyle()
	if app.opts.TitleBold {
		ro.TitleStyle = ro.TitleStyle.Bold()
	}
	return ro, nil
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run takes over the terminal and runs the editor loop until the user
// quits, a save fails or the input source closes.
//
// Ctrl+X returns ErrQuit. Shutdown and ctx cancellation return nil.
func (app *Application) Run(ctx context.Context) (err error) {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	ro, err := app.rendererOptions()
	if err != nil {
		return err
	}

	// Init runs under mu so a concurrent Shutdown either stops us before
	// Init or finalizes the backend after it.
	app.mu.Lock()
	if app.stopping() {
		app.mu.Unlock()
		return nil
	}
	if err := b.Init(); err != nil {
		app.mu.Unlock()
		return &InitError{Component: "backend", Err: err}
	}
	app.started = true
	app.mu.Unlock()

	defer func() {
		app.mu.Lock()
		app.started = false
		app.mu.Unlock()
		b.Shutdown()
	}()

	// The terminal is restored by the deferred Shutdown before the panic
	// surfaces as an error.
	defer func() {
		if r := recover(); r != nil {
			perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			app.logger.Error("%v\n%s", perr, perr.Stack)
			err = perr
		}
	}()

	b.EnableMouse()
	app.renderer = renderer.New(b, ro)

	app.source = source.New(b, app.sourceOpts...)
	app.source.Start()
	defer app.source.Stop()

	app.editor.Seed()
	app.renderer.Draw(app.editor.Frame())

	return app.eventLoop(ctx)
}

// eventLoop is the main application loop: one event, one dispatch, one
// redraw.
func (app *Application) eventLoop(ctx context.Context) error {
	log := app.logger.WithComponent("loop")

	for {
		ev, err := app.source.Next(ctx)
		if err != nil {
			if app.stopping() || ctx.Err() != nil {
				log.Info("shutting down")
				return nil
			}
			if errors.Is(err, source.ErrClosed) {
				log.Error("input closed unexpectedly")
			}
			return err
		}

		if err := app.editor.Handle(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				log.Info("quit")
			}
			return err
		}

		app.renderer.Draw(app.editor.Frame())
		if ev.Resize {
			log.Debug("resize %dx%d", ev.Width, ev.Height)
			app.renderer.Resync()
		}
	}
}

func (app *Application) stopping() bool {
	select {
	case <-app.done:
		return true
	default:
		return false
	}
}

// Shutdown asks a running loop to stop and releases the terminal. It is
// safe to call from another goroutine, e.g. a signal handler.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		close(app.done)

		app.mu.Lock()
		defer app.mu.Unlock()

		if app.backend != nil && app.started {
			app.backend.Shutdown()
		}
	})
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor.
func (app *Application) Editor() *Editor {
	return app.editor
}

// Renderer returns the renderer, nil before Run.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Session returns the id that tags this process's log lines.
func (app *Application) Session() uuid.UUID {
	return app.session
}

// Logger returns the application's logger instance.
func (app *Application) Logger() *Logger {
	return app.logger
}
