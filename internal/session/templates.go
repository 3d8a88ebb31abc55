package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
)

// ErrNoTemplateStore is returned when the session has no template storage.
var ErrNoTemplateStore = errors.New("template storage unavailable")

// SaveTemplate stores the current scene under name and makes it the
// project name.
func (s *Session) SaveTemplate(ctx context.Context, name string) (project.SaveOutcome, error) {
	if s.templates == nil {
		return project.SaveOutcome{}, ErrNoTemplateStore
	}
	name, err := model.ValidateTemplateName(name)
	if err != nil {
		return project.SaveOutcome{}, err
	}
	out, err := s.templates.Save(ctx, name, s.Scene())
	if err != nil {
		s.log.Error("failed to save template", zap.String("name", name), zap.Error(err))
		return project.SaveOutcome{}, err
	}
	_ = s.update(func() (bool, error) {
		if s.projectName == name {
			return false, nil
		}
		s.projectName = name
		return true, nil
	})
	return out, nil
}

// LoadTemplate replaces the scene with the named template. The selection
// is cleared and the project takes the template's name.
func (s *Session) LoadTemplate(ctx context.Context, name string) error {
	if s.templates == nil {
		return ErrNoTemplateStore
	}
	t, err := s.templates.Load(ctx, name)
	if err != nil {
		s.log.Warn("failed to load template", zap.String("name", name), zap.Error(err))
		return err
	}
	s.ReplaceScene(t.ToScene(), t.Name)
	s.log.Info("template loaded", zap.String("name", t.Name))
	return nil
}

// ListTemplates returns the saved templates. Storage failures are logged and
// yield an empty list.
func (s *Session) ListTemplates(ctx context.Context) []model.Template {
	if s.templates == nil {
		return nil
	}
	list, err := s.templates.List(ctx)
	if err != nil {
		s.log.Error("failed to list templates", zap.Error(err))
		return nil
	}
	return list
}

// RemoveTemplate deletes the named template. The current scene is not
// affected.
func (s *Session) RemoveTemplate(ctx context.Context, name string) error {
	if s.templates == nil {
		return ErrNoTemplateStore
	}
	return s.templates.Remove(ctx, name)
}
