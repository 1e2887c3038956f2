package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gradebench/webapp/internal/entity"
	"github.com/gradebench/webapp/internal/metrics"
	assignmentRepo "github.com/gradebench/webapp/internal/modules/assignment/repository"
	"github.com/gradebench/webapp/internal/modules/submission/dto"
	"github.com/gradebench/webapp/internal/modules/submission/repository"
	"github.com/gradebench/webapp/internal/notification"
	"github.com/gradebench/webapp/pkg/apperror"
	"github.com/gradebench/webapp/pkg/identifier"
	"github.com/gradebench/webapp/pkg/response"
)

type SubmissionService interface {
	// Submit runs the submission workflow for an assignment. Validation
	// short-circuits in a fixed order: identifier format, URL format,
	// assignment existence, deadline, attempt quota. Once the submission
	// is stored the operation is a success; a notification delivery
	// failure is logged and counted but never returned to the caller.
	Submit(ctx context.Context, rawAssignmentID string, req dto.SubmitRequest, ident response.Identity) (*entity.Submission, error)
}

type submissionService struct {
	repo        repository.SubmissionRepository
	assignments assignmentRepo.AssignmentRepository
	publisher   notification.Publisher
	now         func() time.Time
}

func NewSubmissionService(repo repository.SubmissionRepository, assignments assignmentRepo.AssignmentRepository, publisher notification.Publisher) SubmissionService {
	return &submissionService{
		repo:        repo,
		assignments: assignments,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, rawAssignmentID string, req dto.SubmitRequest, ident response.Identity) (*entity.Submission, error) {
	assignmentID, err := identifier.Parse(rawAssignmentID)
	if err != nil {
		metrics.SubmissionsRejected.WithLabelValues("invalid_id").Inc()
		return nil, err
	}

	if req.SubmissionURL == "" || !strings.HasSuffix(req.SubmissionURL, ".zip") {
		metrics.SubmissionsRejected.WithLabelValues("invalid_url").Inc()
		return nil, apperror.New(http.StatusBadRequest, "submission URL is required and must end with .zip", nil)
	}

	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.SubmissionsRejected.WithLabelValues("not_found").Inc()
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if !s.now().Before(assignment.Deadline) {
		metrics.SubmissionsRejected.WithLabelValues("deadline_passed").Inc()
		return nil, apperror.ErrDeadlinePassed
	}

	submission := &entity.Submission{
		AssignmentID:  assignment.ID,
		SubmissionURL: req.SubmissionURL,
	}

	priorCount, err := s.repo.CreateWithinQuota(ctx, submission)
	if err != nil {
		if errors.Is(err, apperror.ErrAttemptLimitReached) {
			metrics.SubmissionsRejected.WithLabelValues("attempt_limit").Inc()
		}
		return nil, err
	}

	metrics.SubmissionsCreated.Inc()

	event := notification.SubmissionEvent{
		Email:           ident.Email,
		AssignmentID:    assignment.ID.String(),
		AssignmentName:  assignment.Name,
		SubmissionCount: int(priorCount),
		SubmissionURL:   req.SubmissionURL,
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		// The submission is already durable; delivery failure must be
		// observable but does not fail the request.
		metrics.NotificationFailures.Inc()
		log.Printf("failed to publish submission event for assignment %s: %v", assignment.ID, err)
	}

	return submission, nil
}
