package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/alexanderramin/gradeflow/internal/repository"
	"github.com/google/uuid"
)

// defaultSubjectColor matches the accent used for new subjects in the UI.
const defaultSubjectColor = "#458588"

type subjectService struct {
	subjects repository.SubjectRepo
}

func NewSubjectService(subjects repository.SubjectRepo) SubjectService {
	return &subjectService{subjects: subjects}
}

func (s *subjectService) Create(ctx context.Context, subj *domain.Subject) error {
	if subj.ID == "" {
		subj.ID = uuid.New().String()
	}
	subj.Name = strings.TrimSpace(subj.Name)
	subj.Color = domain.CoalesceStr(subj.Color, defaultSubjectColor)
	if err := domain.ValidateSubject(subj); err != nil {
		return err
	}
	now := utcNow()
	subj.CreatedAt = now
	subj.UpdatedAt = now
	return s.subjects.Create(ctx, subj)
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	return s.subjects.GetByID(ctx, id)
}

func (s *subjectService) List(ctx context.Context) ([]*domain.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *subjectService) Update(ctx context.Context, subj *domain.Subject) error {
	subj.Name = strings.TrimSpace(subj.Name)
	if err := domain.ValidateSubject(subj); err != nil {
		return err
	}
	subj.UpdatedAt = utcNow()
	return s.subjects.Update(ctx, subj)
}

// Delete relies on the evaluations foreign key cascade.
func (s *subjectService) Delete(ctx context.Context, id string) error {
	return s.subjects.Delete(ctx, id)
}
