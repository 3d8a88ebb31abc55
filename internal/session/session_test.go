package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/RoomCraft/internal/cart"
	"github.com/piwi3910/RoomCraft/internal/model"
	"github.com/piwi3910/RoomCraft/internal/project"
	"github.com/piwi3910/RoomCraft/internal/store"
)

func newTestSession(t *testing.T) (*Session, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	kv := store.NewMemory()
	s := New(Options{
		Templates: project.NewTemplateRepository(kv, log),
		Cart:      cart.New(kv),
		Logger:    log,
	})
	return s, logs
}

func TestNewSessionDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.Snapshot()
	assert.Equal(t, model.DefaultProjectName, snap.ProjectName)
	assert.Equal(t, model.DefaultRoomDimensions, snap.Scene.Room.Dimensions)
	assert.Equal(t, 0, snap.Scene.PlacedCount())
	assert.True(t, snap.Views.Top.Valid())
	assert.Empty(t, snap.Model.Groups)
}

func TestEveryMutationPublishesOneSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) { got = append(got, snap) })
	require.Len(t, got, 1, "subscribe delivers the current snapshot")

	s.PlaceFurniture(model.Sofa)
	require.Len(t, got, 2)
	last := got[1]
	assert.True(t, last.Scene.Placements.Get(model.Sofa).Placed)
	assert.Equal(t, model.Sofa, last.Scene.Selected)
	require.Len(t, last.Views.Top.Items, 1)
	require.Len(t, last.Views.Front.Items, 1)
	require.Len(t, last.Model.Groups, 1)
	assert.True(t, last.Model.Groups[0].Selected)
	assert.Greater(t, last.Version, got[0].Version)

	unsubscribe()
	s.SetRoomColor("#ffffff")
	assert.Len(t, got, 2)
}

func TestSetRoomDimension(t *testing.T) {
	s, _ := newTestSession(t)
	require.NoError(t, s.SetRoomDimension(model.DimWidth, 4))
	assert.Equal(t, 4.0, s.Scene().Room.Width())

	before := s.Snapshot().Version
	assert.ErrorIs(t, s.SetRoomDimension(3, 4), model.ErrDimensionIndex)
	assert.Equal(t, before, s.Snapshot().Version, "failed update publishes nothing")

	require.NoError(t, s.SetRoomDimension(model.DimDepth, 0))
	snap := s.Snapshot()
	assert.False(t, snap.Views.Top.Valid())
	assert.Contains(t, snap.Views.Top.Diagnostic, "Invalid Room Dimensions for Top View")
	assert.True(t, snap.Views.Front.Valid())
}

func TestRemoveKeepsPlacementState(t *testing.T) {
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Table)
	s.SetPosition(model.Table, model.Point3{1, 0, 1})
	s.SetRotationDegrees(model.Table, 90)
	s.SetScale(model.Table, 0.9)

	s.RemoveFurniture(model.Table)
	st := s.Scene().Placements.Get(model.Table)
	assert.False(t, st.Placed)
	assert.Equal(t, model.Point3{1, 0, 1}, st.Position)
	assert.Equal(t, 0.9, st.Scale)
	assert.Equal(t, model.FurnitureType(""), s.Scene().Selected)

	s.PlaceFurniture(model.Table)
	assert.Equal(t, model.Point3{1, 0, 1}, s.Scene().Placements.Get(model.Table).Position)
}

func TestAdjustScaleClamps(t *testing.T) {
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Chair)
	assert.Equal(t, 0.6, s.AdjustScale(model.Chair, 0.1))
	assert.Equal(t, 1.0, s.AdjustScale(model.Chair, 5))
}

func TestSelectRequiresPlaced(t *testing.T) {
	s, _ := newTestSession(t)
	assert.False(t, s.Select(model.Cupboard))
	s.SetPlaced(model.Cupboard, true)
	assert.True(t, s.Select(model.Cupboard))
	s.ClearSelection()
	assert.Equal(t, model.FurnitureType(""), s.Scene().Selected)
}

func TestDragThroughCamera(t *testing.T) {
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Chair)
	s.ClearSelection()

	item, ok := s.BeginDrag(0, 0, 7)
	require.True(t, ok)
	assert.Equal(t, model.Chair, item)
	assert.True(t, s.Dragging())
	assert.Equal(t, model.Chair, s.Scene().Selected)
	assert.Equal(t, model.Chair, s.Snapshot().Dragging)

	_, again := s.BeginDrag(0, 0, 8)
	assert.False(t, again, "second drag is ignored")

	require.True(t, s.DragTo(0.1, 0))
	pos := s.Scene().Placements.Get(model.Chair).Position
	assert.Equal(t, 0.0, pos[1])
	assert.NotEqual(t, model.Point3{}, pos)

	assert.False(t, s.EndDrag(8), "other pointer cannot end the drag")
	assert.True(t, s.EndDrag(7))
	assert.False(t, s.Dragging())
	assert.False(t, s.DragTo(0.2, 0))
	assert.Equal(t, pos, s.Scene().Placements.Get(model.Chair).Position)
}

func TestBeginDragMissesEmptyFloor(t *testing.T) {
	s, _ := newTestSession(t)
	_, ok := s.BeginDrag(0, 0, 1)
	assert.False(t, ok)
}

func TestCancelDragKeepsPosition(t *testing.T) {
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Chair)
	_, ok := s.BeginDrag(0, 0, 1)
	require.True(t, ok)
	require.True(t, s.DragTo(0.05, 0.05))
	moved := s.Scene().Placements.Get(model.Chair).Position

	s.CancelDrag()
	assert.False(t, s.Dragging())
	assert.Equal(t, moved, s.Scene().Placements.Get(model.Chair).Position)
}

func TestDragAboveHorizonKeepsPosition(t *testing.T) {
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Sofa)
	s.OrbitCamera(0, -10000)

	_, ok := s.BeginDrag(0, 0, 1)
	require.True(t, ok)
	before := s.Scene().Placements.Get(model.Sofa).Position
	version := s.Snapshot().Version

	assert.False(t, s.DragTo(0, 0.95), "a pointer above the horizon does not reach the floor")
	assert.Equal(t, before, s.Scene().Placements.Get(model.Sofa).Position)
	assert.Equal(t, version, s.Snapshot().Version)
	assert.True(t, s.Dragging())
}

func TestUpdatePlacementPublishesOnce(t *testing.T) {
	s, _ := newTestSession(t)
	var got []Snapshot
	s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	placed, rotation, scale := true, 1.5, 5.0
	pos := model.Point3{0.5, 2, -0.25}
	snap := s.UpdatePlacement(model.Chair, PlacementUpdate{
		Placed:   &placed,
		Position: &pos,
		Rotation: &rotation,
		Scale:    &scale,
	})
	require.Len(t, got, 2)
	assert.Equal(t, got[1], snap)
	assert.Equal(t, got[0].Version+1, snap.Version)

	p := snap.Scene.Placements.Get(model.Chair)
	assert.True(t, p.Placed)
	assert.Equal(t, model.Point3{0.5, 0, -0.25}, p.Position)
	assert.Equal(t, 1.5, p.Rotation)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, model.Point3{0.5, 2, -0.25}, pos, "caller's value is not modified")

	same := s.UpdatePlacement(model.Chair, PlacementUpdate{})
	assert.Len(t, got, 2, "an empty update publishes nothing")
	assert.Equal(t, snap.Version, same.Version)
}

func TestSubscribeWhileListenerReadsSnapshot(t *testing.T) {
	s, _ := newTestSession(t)
	initial := s.Snapshot().Version

	entered := make(chan struct{})
	var once sync.Once
	s.Subscribe(func(snap Snapshot) {
		if snap.Version == initial {
			return
		}
		once.Do(func() { close(entered) })
		time.Sleep(20 * time.Millisecond)
		_ = s.Snapshot()
	})

	go s.PlaceFurniture(model.Sofa)
	<-entered

	done := make(chan struct{})
	go func() {
		defer close(done)
		unsubscribe := s.Subscribe(func(Snapshot) {})
		unsubscribe()
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe blocked against a listener reading the session")
	}
}

func TestCameraControlsPublish(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Snapshot().Camera
	s.OrbitCamera(100, 0)
	assert.NotEqual(t, before.Yaw, s.Snapshot().Camera.Yaw)

	s.ZoomCamera(0.5)
	assert.Less(t, s.Snapshot().Camera.Distance, before.Distance)

	s.SetViewport(800, 400)
	assert.Equal(t, 2.0, s.Snapshot().Camera.Aspect)

	s.ResetCamera()
	assert.Equal(t, before, s.Snapshot().Camera)
}

func TestTemplateRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)
	s.PlaceFurniture(model.Sofa)
	s.SetPosition(model.Sofa, model.Point3{0.5, 0, -0.5})
	require.NoError(t, s.SetRoomDimension(model.DimWidth, 5))

	out, err := s.SaveTemplate(ctx, "  Living  ")
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "Living", s.ProjectName())

	out, err = s.SaveTemplate(ctx, "Living")
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, `Template "Living" updated.`, out.Message())

	s.NewScene()
	assert.Equal(t, model.DefaultProjectName, s.ProjectName())
	assert.Equal(t, 0, s.Scene().PlacedCount())

	require.NoError(t, s.LoadTemplate(ctx, "Living"))
	sc := s.Scene()
	assert.Equal(t, 5.0, sc.Room.Width())
	assert.True(t, sc.Placements.Get(model.Sofa).Placed)
	assert.Equal(t, model.Point3{0.5, 0, -0.5}, sc.Placements.Get(model.Sofa).Position)
	assert.Equal(t, model.FurnitureType(""), sc.Selected)
	assert.Equal(t, "Living", s.ProjectName())

	list := s.ListTemplates(ctx)
	require.Len(t, list, 1)

	require.NoError(t, s.RemoveTemplate(ctx, "Living"))
	assert.Empty(t, s.ListTemplates(ctx))
	assert.True(t, s.Scene().Placements.Get(model.Sofa).Placed, "removal leaves the scene alone")
}

func TestSaveTemplateRejectsBlankName(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.SaveTemplate(context.Background(), "   ")
	assert.ErrorIs(t, err, model.ErrEmptyTemplateName)
	assert.Equal(t, model.DefaultProjectName, s.ProjectName())
}

func TestLoadMissingTemplate(t *testing.T) {
	s, _ := newTestSession(t)
	before := s.Scene()
	err := s.LoadTemplate(context.Background(), "nope")
	assert.ErrorIs(t, err, project.ErrTemplateNotFound)
	assert.Equal(t, before, s.Scene())
}

type failingTemplates struct{ Templates }

func (failingTemplates) List(context.Context) ([]model.Template, error) {
	return nil, errors.New("disk gone")
}

func TestListTemplatesFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(Options{Templates: failingTemplates{}, Logger: zap.New(core)})
	assert.Empty(t, s.ListTemplates(context.Background()))
	assert.Equal(t, 1, logs.FilterMessage("failed to list templates").Len())
}

type failingCart struct{}

func (failingCart) AddToCart(context.Context, model.FurnitureType) error {
	return errors.New("offline")
}

func TestAddToCartFailureDoesNotTouchScene(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := New(Options{Cart: failingCart{}, Logger: zap.New(core)})
	before := s.Snapshot().Version

	s.AddToCart(context.Background(), model.Sofa)
	assert.Equal(t, before, s.Snapshot().Version)
	assert.Equal(t, 1, logs.FilterMessage("add to cart failed").Len())
}

func TestAddToCartRecordsItem(t *testing.T) {
	kv := store.NewMemory()
	c := cart.New(kv)
	s := New(Options{Cart: c})
	s.AddToCart(context.Background(), model.Chair)
	s.AddToCart(context.Background(), model.Chair)

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestNoTemplateStore(t *testing.T) {
	s := New(Options{})
	_, err := s.SaveTemplate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoTemplateStore)
	assert.ErrorIs(t, s.LoadTemplate(context.Background(), "x"), ErrNoTemplateStore)
	assert.Nil(t, s.ListTemplates(context.Background()))
}
