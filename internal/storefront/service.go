package storefront

import (
	"context"
	"strings"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/kitestore/shopfront/internal/content"
	"github.com/kitestore/shopfront/internal/domain"
	"github.com/kitestore/shopfront/pkg/common"
)

// TopicSectionChanged carries (action string, sectionID int64, detail string)
// events for every administrative mutation.
const TopicSectionChanged = "storefront.section.changed"

// SectionPatch carries a partial update; nil fields are left untouched.
type SectionPatch struct {
	Type     *string
	Order    *int
	Content  *content.Payload
	IsActive *bool
}

// SectionService owns the write boundary of the section store. All content
// passes through the codec here, so rows are always persisted as canonical
// JSON text regardless of what the caller sent.
type SectionService struct {
	repo SectionRepository
	bus  evbus.Bus
}

func NewSectionService(repo SectionRepository, bus evbus.Bus) *SectionService {
	return &SectionService{repo: repo, bus: bus}
}

// List returns every section, active and inactive, in storage order. There
// is no service-level cache: a mutation is visible to the very next call.
func (s *SectionService) List(ctx context.Context) ([]domain.HomeSection, error) {
	return s.repo.List(ctx)
}

func (s *SectionService) Create(ctx context.Context, sectionType string, order int, payload content.Payload, isActive bool) (*domain.HomeSection, error) {
	sectionType = strings.TrimSpace(sectionType)
	if sectionType == "" {
		return nil, &ValidationError{Field: "type", Reason: "must not be empty"}
	}

	text, err := content.Encode(payload)
	if err != nil {
		return nil, &ValidationError{Field: "content", Reason: "must be a JSON-compatible mapping"}
	}

	now := time.Now()
	section := &domain.HomeSection{
		ID:        common.UUIDint64(),
		Type:      sectionType,
		Order:     order,
		IsActive:  isActive,
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, errors.Wrap(err, "create section")
	}
	s.publish("create", section.ID, "type="+section.Type)
	return section, nil
}

// Patch merges only the supplied fields into an existing section. Untouched
// fields are preserved verbatim. Last-writer-wins; concurrent edits are
// serialized by the store's native isolation.
func (s *SectionService) Patch(ctx context.Context, id int64, patch SectionPatch) (*domain.HomeSection, error) {
	section, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	var changed []string
	if patch.Type != nil {
		t := strings.TrimSpace(*patch.Type)
		if t == "" {
			return nil, &ValidationError{Field: "type", Reason: "must not be empty"}
		}
		fields["type"] = t
		section.Type = t
		changed = append(changed, "type")
	}
	if patch.Order != nil {
		fields["sort"] = *patch.Order
		section.Order = *patch.Order
		changed = append(changed, "order")
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
		section.IsActive = *patch.IsActive
		changed = append(changed, "isActive")
	}
	if patch.Content != nil {
		text, err := content.Encode(*patch.Content)
		if err != nil {
			return nil, &ValidationError{Field: "content", Reason: "must be a JSON-compatible mapping"}
		}
		fields["content"] = text
		section.Content = text
		changed = append(changed, "content")
	}
	if len(fields) == 0 {
		return section, nil
	}

	now := time.Now()
	fields["updated_at"] = now
	section.UpdatedAt = now

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, errors.Wrap(err, "patch section")
	}
	s.publish("update", id, "fields="+strings.Join(changed, ","))
	return section, nil
}

func (s *SectionService) Delete(ctx context.Context, id int64) error {
	section, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete section")
	}
	s.publish("delete", id, "type="+section.Type)
	return nil
}

func (s *SectionService) publish(action string, id int64, detail string) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(TopicSectionChanged, action, id, detail)
	zap.L().Debug("section changed",
		zap.String("action", action),
		zap.Int64("section_id", id),
		zap.String("detail", detail))
}
