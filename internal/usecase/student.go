package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/studentperks/console-api/internal/model"
	"github.com/studentperks/console-api/internal/repository"
	"github.com/studentperks/console-api/shared/apperror"
	"github.com/studentperks/console-api/shared/auth"
)

// StudentUsecase covers the console's student views and the read-only
// transactions list.
type StudentUsecase interface {
	ListStudents(ctx context.Context, caller auth.Principal, params repository.ListParams) ([]*model.Student, string, error)
	GetStudent(ctx context.Context, caller auth.Principal, id string) (*model.Student, error)
	UpdateStudent(ctx context.Context, caller auth.Principal, id string, params repository.UpdateStudentParams) (*model.Student, error)
	ListRedemptions(ctx context.Context, caller auth.Principal, params repository.ListParams) ([]*model.Redemption, string, error)
}

type studentUsecase struct {
	studentRepo    repository.StudentRepository
	redemptionRepo repository.RedemptionRepository
}

func NewStudentUsecase(
	studentRepo repository.StudentRepository,
	redemptionRepo repository.RedemptionRepository,
) StudentUsecase {
	return &studentUsecase{
		studentRepo:    studentRepo,
		redemptionRepo: redemptionRepo,
	}
}

func (u *studentUsecase) ListStudents(
	ctx context.Context,
	caller auth.Principal,
	params repository.ListParams,
) ([]*model.Student, string, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, "", err
	}

	students, nextCursor, err := u.studentRepo.ListStudents(ctx, params)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeInternal, "failed to list students")
	}

	return students, nextCursor, nil
}

func (u *studentUsecase) GetStudent(ctx context.Context, caller auth.Principal, id string) (*model.Student, error) {
	if err := requireAdminOrSelf(caller, id); err != nil {
		return nil, err
	}

	student, err := u.studentRepo.GetStudent(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("student not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to get student")
	}

	return student, nil
}

func (u *studentUsecase) UpdateStudent(
	ctx context.Context,
	caller auth.Principal,
	id string,
	params repository.UpdateStudentParams,
) (*model.Student, error) {
	if err := requireAdminOrSelf(caller, id); err != nil {
		return nil, err
	}

	if params.Status != nil && !caller.Admin {
		return nil, apperror.PermissionDenied("only admins can change student status")
	}

	student, err := u.studentRepo.UpdateStudent(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("student not found")
		}

		return nil, apperror.Wrap(err, apperror.CodeInternal, "failed to update student")
	}

	return student, nil
}

func (u *studentUsecase) ListRedemptions(
	ctx context.Context,
	caller auth.Principal,
	params repository.ListParams,
) ([]*model.Redemption, string, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, "", err
	}

	redemptions, nextCursor, err := u.redemptionRepo.ListRedemptions(ctx, params)
	if err != nil {
		return nil, "", apperror.Wrap(err, apperror.CodeInternal, "failed to list redemptions")
	}

	return redemptions, nextCursor, nil
}
