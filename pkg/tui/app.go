package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dshills/goterm"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// App is the terminal application root: it owns the goterm screen, the
// input loop, and the editor.
type App struct {
	screen *goterm.Screen
	editor *Editor

	running   bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	inputChan chan canvas.KeyEvent
}

// NewApp initializes the terminal and builds an editor for the graph.
func NewApp(g *graph.Graph, opts canvas.Options, store GraphSaver) (*App, error) {
	screen, err := goterm.Init()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		screen:    screen,
		editor:    NewEditor(g, opts, store),
		ctx:       ctx,
		cancel:    cancel,
		inputChan: make(chan canvas.KeyEvent, 100),
	}

	// Frame the graph on startup.
	w, h := screen.Size()
	app.editor.Resize(w, h-1)
	app.editor.Engine().Viewport().FitView(g)

	return app, nil
}

// Editor returns the app's editor.
func (a *App) Editor() *Editor { return a.editor }

// Run starts the main loop: render on input and on a 16ms tick.
func (a *App) Run() error {
	a.mu.Lock()
	a.running = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.running = false
		a.mu.Unlock()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	go a.readKeyboardInput()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	if err := a.editor.Render(a.screen); err != nil {
		return fmt.Errorf("initial render failed: %w", err)
	}

	for {
		select {
		case <-a.ctx.Done():
			return nil

		case <-sigChan:
			a.cancel()
			return nil

		case event := <-a.inputChan:
			if a.isQuit(event) {
				a.cancel()
				return nil
			}
			a.editor.HandleKey(event)
			if err := a.editor.Render(a.screen); err != nil {
				return err
			}

		case <-ticker.C:
			a.editor.Advance(0.016)
			if err := a.editor.Render(a.screen); err != nil {
				return err
			}
		}
	}
}

// isQuit recognizes the quit key. Ctrl+C arrives as SIGINT and is
// handled by the signal case.
func (a *App) isQuit(ev canvas.KeyEvent) bool {
	return ev.Key == 'q' && !ev.Ctrl
}

// readKeyboardInput reads raw stdin in a background goroutine. The
// terminal is already in raw mode from goterm.
func (a *App) readKeyboardInput() {
	buf := make([]byte, 32)

	for {
		select {
		case <-a.ctx.Done():
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			if err == io.EOF {
				return
			}
			continue
		}

		if n > 0 {
			event := parseKeyInput(buf[:n])
			select {
			case a.inputChan <- event:
			case <-a.ctx.Done():
				return
			}
		}
	}
}

// parseKeyInput converts raw terminal bytes into the engine's
// normalized key event.
func parseKeyInput(buf []byte) canvas.KeyEvent {
	if len(buf) == 0 {
		return canvas.KeyEvent{}
	}

	// Escape sequences: arrows and delete.
	if buf[0] == 27 {
		if len(buf) == 1 {
			return canvas.KeyEvent{IsSpecial: true, Special: "Escape"}
		}
		if len(buf) > 2 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return canvas.KeyEvent{IsSpecial: true, Special: "Up"}
			case 'B':
				return canvas.KeyEvent{IsSpecial: true, Special: "Down"}
			case 'C':
				return canvas.KeyEvent{IsSpecial: true, Special: "Right"}
			case 'D':
				return canvas.KeyEvent{IsSpecial: true, Special: "Left"}
			case '3':
				return canvas.KeyEvent{IsSpecial: true, Special: "Delete"}
			}
		}
		return canvas.KeyEvent{IsSpecial: true, Special: "Escape"}
	}

	switch buf[0] {
	case 9:
		return canvas.KeyEvent{IsSpecial: true, Special: "Tab"}
	case 13:
		return canvas.KeyEvent{IsSpecial: true, Special: "Enter"}
	case 127:
		return canvas.KeyEvent{IsSpecial: true, Special: "Backspace"}
	}

	// Ctrl combinations arrive as bytes 1..26.
	if buf[0] < 32 {
		return canvas.KeyEvent{Key: rune(buf[0] + 'a' - 1), Ctrl: true}
	}

	key := rune(buf[0])
	return canvas.KeyEvent{Key: key, Shift: key >= 'A' && key <= 'Z'}
}

// Close restores the terminal.
func (a *App) Close() error {
	a.cancel()
	if err := a.screen.Close(); err != nil {
		return fmt.Errorf("failed to close screen: %w", err)
	}
	return nil
}
