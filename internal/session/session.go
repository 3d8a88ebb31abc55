// Package session holds one designer's scene and keeps every renderer in
// step with it. Each mutation produces a single Snapshot that all
// subscribers receive before the mutating call returns.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/piwi3910/RoomCraft/internal/cart"
	"github.com/piwi3910/RoomCraft/internal/geom"
	"github.com/piwi3910/RoomCraft/internal/interact"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/projection"
	"github.com/piwi3910/RoomCraft/internal/scene3d"
)

// Templates is the persistence the session needs.
// *project.TemplateRepository satisfies it.
type Templates interface {
	Save(ctx context.Context, name string, s model.Scene) (project.SaveOutcome, error)
	List(ctx context.Context) ([]model.Template, error)
	Load(ctx context.Context, name string) (model.Template, error)
	Remove(ctx context.Context, name string) error
}

// Snapshot is the state every renderer draws from.
type Snapshot struct {
	Version     uint64
	Scene       model.Scene
	ProjectName string
	Views       projection.Views
	Model       scene3d.Model
	Camera      geom.Camera
	Dragging    model.FurnitureType
}

// Listener receives snapshots. Listeners must not call mutating Session
// methods.
type Listener func(Snapshot)

// Options wires a session to its collaborators. Templates and Cart may be
// nil when the feature is unavailable.
type Options struct {
	Templates Templates
	Cart      cart.Notifier
	Renderer  *projection.Renderer
	Logger    *zap.Logger
}

// Session is the designer context for one user.
type Session struct {
	mu          sync.Mutex
	deliver     sync.Mutex
	scene       model.Scene
	projectName string
	drag        *interact.DragController
	camera      *geom.Camera
	version     uint64
	last        Snapshot

	templates Templates
	cart      cart.Notifier
	renderer  *projection.Renderer
	log       *zap.Logger

	nextListener int
	listeners    map[int]Listener
}

// New creates a session with the default scene.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Renderer == nil {
		opts.Renderer = projection.NewRenderer(projection.DefaultScaleFactor, opts.Logger)
	}
	s := &Session{
		scene:       model.NewScene(),
		projectName: model.DefaultProjectName,
		drag:        interact.NewDragController(),
		camera:      geom.NewCamera(),
		templates:   opts.Templates,
		cart:        opts.Cart,
		renderer:    opts.Renderer,
		log:         opts.Logger,
		listeners:   make(map[int]Listener),
	}
	s.last = s.snapshotLocked()
	return s
}

// Subscribe registers l and immediately delivers the current snapshot.
// The returned function unregisters it.
func (s *Session) Subscribe(l Listener) func() {
	s.deliver.Lock()
	defer s.deliver.Unlock()
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	snap := s.last
	s.mu.Unlock()
	l(snap)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the latest published state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Scene returns a copy of the current scene.
func (s *Session) Scene() model.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

func (s *Session) snapshotLocked() Snapshot {
	s.version++
	dragging := model.FurnitureType("")
	if s.drag.Active() {
		dragging = s.drag.Item()
	}
	return Snapshot{
		Version:     s.version,
		Scene:       s.scene,
		ProjectName: s.projectName,
		Views:       s.renderer.RenderAll(s.scene),
		Model:       scene3d.Build(s.scene),
		Camera:      *s.camera,
		Dragging:    dragging,
	}
}

// update runs fn under the lock and, when it reports a change, publishes
// one snapshot to every listener. deliver is taken before mu and held
// through delivery, so listeners see snapshots in order and may read the
// session while mu is free.
func (s *Session) update(fn func() (bool, error)) error {
	_, err := s.commit(fn)
	return err
}

// commit is update returning the snapshot the change produced, or the
// current one when nothing changed.
func (s *Session) commit(fn func() (bool, error)) (Snapshot, error) {
	s.deliver.Lock()
	defer s.deliver.Unlock()

	s.mu.Lock()
	changed, err := fn()
	if err != nil || !changed {
		snap := s.last
		s.mu.Unlock()
		return snap, err
	}
	snap := s.snapshotLocked()
	s.last = snap
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return snap, nil
}

func (s *Session) mutate(fn func(sc *model.Scene)) {
	_ = s.update(func() (bool, error) {
		fn(&s.scene)
		return true, nil
	})
}

// SetRoomDimension replaces one room dimension (0 width, 1 height, 2 depth).
func (s *Session) SetRoomDimension(index int, value float64) error {
	return s.update(func() (bool, error) {
		return true, s.scene.SetRoomDimensions(index, value)
	})
}

func (s *Session) SetRoomColor(color string) {
	s.mutate(func(sc *model.Scene) { sc.SetRoomColor(color) })
}

// PlaceFurniture places t if needed and selects it.
func (s *Session) PlaceFurniture(t model.FurnitureType) {
	s.mutate(func(sc *model.Scene) { sc.PlaceAndSelect(t) })
}

func (s *Session) SetPlaced(t model.FurnitureType, placed bool) {
	s.mutate(func(sc *model.Scene) { sc.SetPlaced(t, placed) })
}

// RemoveFurniture hides t, keeping its position, rotation and scale.
func (s *Session) RemoveFurniture(t model.FurnitureType) {
	s.SetPlaced(t, false)
}

func (s *Session) SetPosition(t model.FurnitureType, p model.Point3) {
	s.mutate(func(sc *model.Scene) { sc.SetPosition(t, p) })
}

func (s *Session) SetRotation(t model.FurnitureType, radians float64) {
	s.mutate(func(sc *model.Scene) { sc.SetRotation(t, radians) })
}

func (s *Session) SetRotationDegrees(t model.FurnitureType, degrees float64) {
	s.mutate(func(sc *model.Scene) { sc.SetRotationDegrees(t, degrees) })
}

func (s *Session) SetScale(t model.FurnitureType, scale float64) {
	s.mutate(func(sc *model.Scene) { sc.SetScale(t, scale) })
}

// PlacementUpdate lists the fields to change on one item. Nil fields are
// left as they are.
type PlacementUpdate struct {
	Placed   *bool
	Position *model.Point3
	Rotation *float64
	Scale    *float64
}

// UpdatePlacement applies every set field of u to t as a single change, so
// listeners see one snapshot. The position is held on the floor.
func (s *Session) UpdatePlacement(t model.FurnitureType, u PlacementUpdate) Snapshot {
	snap, _ := s.commit(func() (bool, error) {
		if u.Placed == nil && u.Position == nil && u.Rotation == nil && u.Scale == nil {
			return false, nil
		}
		if u.Placed != nil {
			s.scene.SetPlaced(t, *u.Placed)
		}
		if u.Position != nil {
			p := *u.Position
			p[1] = 0
			s.scene.SetPosition(t, p)
		}
		if u.Rotation != nil {
			s.scene.SetRotation(t, *u.Rotation)
		}
		if u.Scale != nil {
			s.scene.SetScale(t, *u.Scale)
		}
		return true, nil
	})
	return snap
}

// AdjustScale nudges the scale of t and returns the stored value.
func (s *Session) AdjustScale(t model.FurnitureType, delta float64) float64 {
	var out float64
	s.mutate(func(sc *model.Scene) { out = sc.AdjustScale(t, delta) })
	return out
}

// Select selects a placed item; it returns false for unplaced items.
func (s *Session) Select(t model.FurnitureType) bool {
	var ok bool
	_ = s.update(func() (bool, error) {
		ok = s.scene.Select(t)
		return ok, nil
	})
	return ok
}

func (s *Session) ClearSelection() {
	s.mutate(func(sc *model.Scene) { sc.ClearSelection() })
}

// ReplaceScene swaps in a whole scene, as done by loading or importing.
func (s *Session) ReplaceScene(sc model.Scene, projectName string) {
	_ = s.update(func() (bool, error) {
		s.drag.Cancel()
		s.scene = sc
		if name := strings.TrimSpace(projectName); name != "" {
			s.projectName = name
		}
		return true, nil
	})
}

// NewScene resets the design and the project name.
func (s *Session) NewScene() {
	_ = s.update(func() (bool, error) {
		s.drag.Cancel()
		s.scene.Reset()
		s.projectName = model.DefaultProjectName
		return true, nil
	})
}

// ProjectName returns the current project name.
func (s *Session) ProjectName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectName
}

// AddToCart forwards t to the cart. Failures are logged and never change
// the scene.
func (s *Session) AddToCart(ctx context.Context, t model.FurnitureType) {
	if s.cart == nil {
		s.log.Warn("cart unavailable", zap.String("item", string(t)))
		return
	}
	if err := s.cart.AddToCart(ctx, t); err != nil {
		s.log.Error("add to cart failed", zap.String("item", string(t)), zap.Error(err))
		return
	}
	s.log.Info("added to cart", zap.String("item", string(t)))
}
