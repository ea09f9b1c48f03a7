// Package shell drives a contact book from an interactive terminal: a menu to
// add and list contacts, with the Add-Contact draft collected field by field.
package shell

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers/text"
)

// Menu entries, in display order.
const (
	ActionAdd  = "Add contact"
	ActionList = "List contacts"
	ActionQuit = "Quit"
)

var menu = []string{ActionAdd, ActionList, ActionQuit}

// Option configures the Shell.
type Option func(*Shell)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Shell) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithRenderer overrides the renderer used to list contacts.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Shell) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// Shell runs the menu loop over a Book.
type Shell struct {
	book     *book.Book
	driver   PromptDriver
	renderer render.Renderer
}

// New constructs a shell over b using the survey driver and text renderer
// unless overridden.
func New(b *book.Book, options ...Option) *Shell {
	s := &Shell{book: b}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	if s.renderer == nil {
		s.renderer = text.New()
	}
	return s
}

// Interactive reports whether stdin is attached to a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Run loops until the user quits or aborts from the menu. Aborting while a
// draft is being entered cancels the draft only.
func (s *Shell) Run(ctx context.Context) error {
	if s.book == nil {
		return errors.New("shell: book is required")
	}
	for {
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message: s.book.Title(),
			Options: menu,
		})
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(menu) {
			return fmt.Errorf("shell: unknown menu selection %d", idx)
		}

		switch menu[idx] {
		case ActionAdd:
			if err := s.add(ctx); err != nil {
				return err
			}
		case ActionList:
			if err := s.list(ctx); err != nil {
				return err
			}
		case ActionQuit:
			return nil
		}
	}
}

func (s *Shell) add(ctx context.Context) error {
	s.book.OpenModal()
	for {
		values, err := s.collect(ctx)
		if errors.Is(err, ErrAborted) {
			s.book.Cancel()
			return s.driver.Info(ctx, "Cancelled.")
		}
		if err != nil {
			return err
		}

		result := s.book.Submit(values)
		if result.Accepted {
			return s.driver.Info(ctx, fmt.Sprintf("Added %s.", result.Contact.DisplayName()))
		}

		view := s.book.View()
		for _, field := range view.Fields {
			if field.Error == "" {
				continue
			}
			if err := s.driver.Info(ctx, fmt.Sprintf("%s: %s", field.Label, field.Error)); err != nil {
				return err
			}
		}
		for _, message := range view.FormErrors {
			if err := s.driver.Info(ctx, message); err != nil {
				return err
			}
		}

		retry, err := s.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if err != nil && !errors.Is(err, ErrAborted) {
			return err
		}
		if !retry || err != nil {
			s.book.Cancel()
			return nil
		}
	}
}

// collect prompts for every declared field, offering the current draft value
// as the default.
func (s *Shell) collect(ctx context.Context) (map[string]string, error) {
	session := s.book.Session()
	values := make(map[string]string)
	for _, field := range session.Shape().Fields {
		label := field.Label
		if label == "" {
			label = field.Name
		}
		value, err := s.driver.Input(ctx, InputConfig{
			Message: label,
			Default: session.Value(field.Name),
		})
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}
	return values, nil
}

func (s *Shell) list(ctx context.Context) error {
	out, err := s.renderer.Render(ctx, s.book.View(), render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("shell: render contacts: %w", err)
	}
	return s.driver.Info(ctx, string(out))
}
