package logs

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("log not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Input es el payload de create y update: update es un reemplazo
// completo de los tres campos, no un patch parcial.
type Input struct {
	PetName string
	Task    string
	Time    time.Time
}

func (in Input) validate() (Input, error) {
	in.PetName = strings.TrimSpace(in.PetName)
	in.Task = strings.TrimSpace(in.Task)

	if in.PetName == "" {
		return Input{}, ErrInvalidInput
	}
	if in.Task == "" {
		return Input{}, ErrInvalidInput
	}
	if in.Time.IsZero() {
		return Input{}, ErrInvalidInput
	}
	return in, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Log, error) {
	in, err := in.validate()
	if err != nil {
		return Log{}, err
	}

	now := s.now()
	l := Log{
		PetName:   in.PetName,
		Task:      in.Task,
		Time:      in.Time,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Create(ctx, l)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Log, error) {
	if id <= 0 {
		return Log{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Log, error) {
	return s.repo.List(ctx)
}

// Update siempre refresca UpdatedAt; el contrato es explícito,
// no un efecto incidental de la query.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Log, error) {
	if id <= 0 {
		return Log{}, ErrInvalidInput
	}
	in, err := in.validate()
	if err != nil {
		return Log{}, err
	}

	l := Log{
		ID:        id,
		PetName:   in.PetName,
		Task:      in.Task,
		Time:      in.Time,
		UpdatedAt: s.now(),
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return Log{}, err
	}

	// Re-lectura: la respuesta sale del store, no del input.
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}
