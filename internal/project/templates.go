package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/store"
)

// templatePrefix namespaces template records in the key-value store.
const templatePrefix = "template/"

// ErrTemplateNotFound is returned when no template has the requested name.
var ErrTemplateNotFound = errors.New("template not found")

// SaveOutcome tells the caller whether a save created or replaced a record.
type SaveOutcome struct {
	Template model.Template
	Created  bool
}

// Message returns the user-facing confirmation for the outcome.
func (o SaveOutcome) Message() string {
	if o.Created {
		return fmt.Sprintf("Template %q saved.", o.Template.Name)
	}
	return fmt.Sprintf("Template %q updated.", o.Template.Name)
}

// TemplateRepository persists named scene templates in a key-value store.
type TemplateRepository struct {
	kv  store.KV
	log *zap.Logger
}

func NewTemplateRepository(kv store.KV, log *zap.Logger) *TemplateRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &TemplateRepository{kv: kv, log: log}
}

func templateKey(name string) string {
	return templatePrefix + name
}

// Save stores the scene under name. The name is trimmed; an existing
// template with the same name is replaced in place.
func (r *TemplateRepository) Save(ctx context.Context, name string, s model.Scene) (SaveOutcome, error) {
	name, err := model.ValidateTemplateName(name)
	if err != nil {
		return SaveOutcome{}, err
	}
	return r.Put(ctx, model.NewTemplate(name, s))
}

// Put stores a complete template record, keeping its timestamp.
func (r *TemplateRepository) Put(ctx context.Context, t model.Template) (SaveOutcome, error) {
	name, err := model.ValidateTemplateName(t.Name)
	if err != nil {
		return SaveOutcome{}, err
	}
	t.Name = name
	data, err := json.Marshal(t)
	if err != nil {
		return SaveOutcome{}, fmt.Errorf("failed to marshal template: %w", err)
	}
	created, err := r.kv.Put(ctx, templateKey(name), data)
	if err != nil {
		return SaveOutcome{}, fmt.Errorf("failed to save template %q: %w", name, err)
	}
	r.log.Info("template saved", zap.String("name", name), zap.Bool("created", created))
	return SaveOutcome{Template: t, Created: created}, nil
}

// List returns every readable template in storage order. Records that
// cannot be decoded are skipped and logged.
func (r *TemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	entries, err := r.kv.List(ctx, templatePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	out := make([]model.Template, 0, len(entries))
	for _, e := range entries {
		var t model.Template
		if err := json.Unmarshal(e.Value, &t); err != nil {
			r.log.Warn("skipping corrupt template record", zap.String("key", e.Key), zap.Error(err))
			continue
		}
		if t.Name == "" {
			t.Name = strings.TrimPrefix(e.Key, templatePrefix)
		}
		out = append(out, t)
	}
	return out, nil
}

// Load returns the template with the exact given name.
func (r *TemplateRepository) Load(ctx context.Context, name string) (model.Template, error) {
	data, err := r.kv.Get(ctx, templateKey(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return model.Template{}, fmt.Errorf("failed to load template %q: %w", name, err)
	}
	var t model.Template
	if err := json.Unmarshal(data, &t); err != nil {
		return model.Template{}, fmt.Errorf("failed to parse template %q: %w", name, err)
	}
	return t, nil
}

// Remove deletes the template with the given name.
func (r *TemplateRepository) Remove(ctx context.Context, name string) error {
	if err := r.kv.Delete(ctx, templateKey(name)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
		return fmt.Errorf("failed to remove template %q: %w", name, err)
	}
	r.log.Info("template removed", zap.String("name", name))
	return nil
}

// Set returns all templates as a TemplateSet for backups.
func (r *TemplateRepository) Set(ctx context.Context) (model.TemplateSet, error) {
	list, err := r.List(ctx)
	if err != nil {
		return model.TemplateSet{}, err
	}
	return model.TemplateSet{Templates: list}, nil
}
