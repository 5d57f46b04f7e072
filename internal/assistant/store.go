package assistant

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/callboard/callboard-backend/internal/shared"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Assistant{})
}

func (s *Store) Create(ctx context.Context, a *Assistant) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *Store) GetByID(ctx context.Context, id uint) (*Assistant, error) {
	var a Assistant
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	return &a, err
}

func (s *Store) ListByUser(ctx context.Context, userID uint) ([]*Assistant, error) {
	var assistants []*Assistant
	err := s.db.WithContext(ctx).Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&assistants).Error
	return assistants, err
}

func (s *Store) ListAll(ctx context.Context) ([]*Assistant, error) {
	var assistants []*Assistant
	err := s.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").
		Find(&assistants).Error
	return assistants, err
}

func (s *Store) Update(ctx context.Context, id uint, fields map[string]any) (*Assistant, error) {
	result := s.db.WithContext(ctx).Model(&Assistant{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, shared.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Assistant{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (s *Store) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Assistant{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// IDsForUser returns the ids of every assistant the user owns,
// optionally narrowed to a single assistant.
func (s *Store) IDsForUser(ctx context.Context, userID uint, assistantID *uint) ([]uint, error) {
	q := s.db.WithContext(ctx).Model(&Assistant{}).Where("user_id = ?", userID)
	if assistantID != nil {
		q = q.Where("id = ?", *assistantID)
	}
	var ids []uint
	err := q.Pluck("id", &ids).Error
	return ids, err
}

// ResolveVapiIDs maps external vapi identifiers to internal assistant
// ids. Unknown identifiers are simply absent from the result.
func (s *Store) ResolveVapiIDs(ctx context.Context, vapiIDs []string) (map[string]uint, error) {
	if len(vapiIDs) == 0 {
		return map[string]uint{}, nil
	}

	var assistants []Assistant
	err := s.db.WithContext(ctx).
		Where("vapi_id IN ?", vapiIDs).
		Find(&assistants).Error
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]uint, len(assistants))
	for _, a := range assistants {
		if a.VapiID != nil {
			resolved[*a.VapiID] = a.ID
		}
	}
	return resolved, nil
}
