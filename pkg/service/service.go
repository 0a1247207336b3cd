// Package service implements all operations on incomes, budgets and expenses.
//
// Mutations never return a Go error. They return a Result that carries
// a user facing message on failure. Reads return an *Error on failure.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/finova-app/backend/pkg/views"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Kinds of errors. Use errors.Is to check for them.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("resource not found")
	ErrDependency     = errors.New("referenced resource not found")
	ErrInfrastructure = errors.New("operation failed")
)

// Error is a failure of an operation.
//
// Message is safe to show to users, it never contains details of the
// underlying cause.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Result is the outcome of a mutation.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"` // *Error for failed operations, nil otherwise
}

// ID identifies the row affected by a mutation.
type ID struct {
	ID uint `json:"id" example:"12"`
}

func succeed[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

func fail[T any](err *Error) Result[T] {
	return Result[T]{Success: false, Error: err.Message, Err: err}
}

func notFound(entity string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", entity)}
}

func invalid(err error) *Error {
	return &Error{Kind: ErrValidation, Message: err.Error()}
}

// Service executes operations against the database.
type Service struct {
	db    *gorm.DB
	views views.Invalidator
	now   func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the function used to determine the current time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New returns a Service using db. Views changed by mutations are
// reported to invalidator, which may be nil.
func New(db *gorm.DB, invalidator views.Invalidator, opts ...Option) *Service {
	if invalidator == nil {
		invalidator = views.Nop{}
	}

	s := &Service{
		db:    db,
		views: invalidator,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// DB returns the database handle of the service.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// infrastructure logs an unexpected error and returns the generic message
// for the operation.
func (s *Service) infrastructure(err error, verb, entity string) *Error {
	log.Error().Err(err).Str("operation", verb).Str("entity", entity).Msg("Database operation failed")

	return &Error{
		Kind:    ErrInfrastructure,
		Message: fmt.Sprintf("Failed to %s %s. Please try again.", verb, strings.ToLower(entity)),
	}
}

// invalidate marks views as stale. Failures are logged, the mutation
// itself has already succeeded.
func (s *Service) invalidate(ctx context.Context, paths ...string) {
	if err := s.views.Invalidate(ctx, paths...); err != nil {
		log.Warn().Err(err).Strs("paths", paths).Msg("Could not invalidate views")
	}
}
