package service

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/entity"
	"github.com/gradebench/webapp/internal/modules/assignment/dto"
	"github.com/gradebench/webapp/internal/modules/assignment/repository"
	submissionRepo "github.com/gradebench/webapp/internal/modules/submission/repository"
	"github.com/gradebench/webapp/pkg/apperror"
)

// The deadline must be an ISO-8601 UTC timestamp with millisecond
// precision, e.g. 2026-12-31T23:59:59.000Z.
var deadlinePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

const deadlineLayout = "2006-01-02T15:04:05.000Z"

type AssignmentService interface {
	Create(ctx context.Context, req dto.AssignmentRequest, ownerID uuid.UUID) (*entity.Assignment, error)
	Update(ctx context.Context, id uuid.UUID, req dto.AssignmentRequest, requesterID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	List(ctx context.Context) ([]*entity.Assignment, error)
}

type assignmentService struct {
	repo        repository.AssignmentRepository
	submissions submissionRepo.SubmissionRepository
}

func NewAssignmentService(repo repository.AssignmentRepository, submissions submissionRepo.SubmissionRepository) AssignmentService {
	return &assignmentService{repo: repo, submissions: submissions}
}

func (s *assignmentService) Create(ctx context.Context, req dto.AssignmentRequest, ownerID uuid.UUID) (*entity.Assignment, error) {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return nil, err
	}

	assignment := &entity.Assignment{
		Name:          req.Name,
		Points:        req.Points,
		NumOfAttempts: req.NumOfAttempts,
		Deadline:      deadline,
		AccountID:     ownerID,
	}

	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) Update(ctx context.Context, id uuid.UUID, req dto.AssignmentRequest, requesterID uuid.UUID) error {
	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		return err
	}

	assignment, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if !deadline.Equal(assignment.Deadline) {
		count, err := s.submissions.CountByAssignment(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.New(http.StatusBadRequest, "deadline cannot be changed once submissions exist", nil)
		}
	}

	assignment.Name = req.Name
	assignment.Points = req.Points
	assignment.NumOfAttempts = req.NumOfAttempts
	assignment.Deadline = deadline
	assignment.UpdatedAt = time.Now()

	return s.repo.Update(ctx, assignment)
}

func (s *assignmentService) Delete(ctx context.Context, id uuid.UUID, requesterID uuid.UUID) error {
	assignment, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	count, err := s.submissions.CountByAssignment(ctx, assignment.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.New(http.StatusConflict, "cannot delete assignment with existing submissions", apperror.ErrConflict)
	}

	return s.repo.Delete(ctx, assignment.ID)
}

// GetByID and List are deliberately not owner-scoped: any authenticated
// account may read any assignment. Only mutations check ownership.
func (s *assignmentService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) List(ctx context.Context) ([]*entity.Assignment, error) {
	return s.repo.FindAll(ctx)
}

func (s *assignmentService) findOwned(ctx context.Context, id, requesterID uuid.UUID) (*entity.Assignment, error) {
	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if assignment.AccountID != requesterID {
		return nil, apperror.ErrForbidden
	}
	return assignment, nil
}

func parseDeadline(raw string) (time.Time, error) {
	if !deadlinePattern.MatchString(raw) {
		return time.Time{}, apperror.New(http.StatusBadRequest, "deadline must be in YYYY-MM-DDTHH:mm:ss.sssZ format", nil)
	}

	deadline, err := time.Parse(deadlineLayout, raw)
	if err != nil {
		return time.Time{}, apperror.New(http.StatusBadRequest, "deadline must be a valid date", nil)
	}

	if !deadline.After(time.Now()) {
		return time.Time{}, apperror.New(http.StatusBadRequest, "deadline must be in the future", nil)
	}

	return deadline, nil
}
