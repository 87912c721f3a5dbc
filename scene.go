// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

type sceneState uint8

const (
	sceneCreated sceneState = iota
	sceneLoaded
	sceneInitialized
	sceneDestroyed
)

// firstObjectID is the first auto-allocated object id. Ids count down.
const firstObjectID = math.MaxUint16

// Scene owns a visual tree, the object stores of one scene and the
// backing scene manager.
//
// Names are unique within each store (lights, sensors, visuals,
// materials). Counts exclude the root visual.
type Scene struct {
	id     uint
	name   string
	engine *Engine
	sm     SceneManager
	state  sceneState
	nextID uint

	ambient    Color
	background Background
	root       *Visual

	lights    *store[Light]
	sensors   *store[*Camera]
	visuals   *store[*Visual]
	materials map[string]*Material
	matOrder  []string
	matIDs    map[uint]*Material
	targets   []*RenderTarget
}

func newScene(e *Engine, id uint, name string) *Scene {
	return &Scene{
		id:        id,
		name:      name,
		engine:    e,
		nextID:    firstObjectID,
		lights:    newStore[Light]("light"),
		sensors:   newStore[*Camera]("sensor"),
		visuals:   newStore[*Visual]("visual"),
		materials: make(map[string]*Material),
		matIDs:    make(map[uint]*Material),
	}
}

// ID returns the scene id.
func (s *Scene) ID() uint { return s.id }

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Engine returns the engine that created the scene.
func (s *Scene) Engine() *Engine { return s.engine }

// IsInitialized reports whether Init has completed and Destroy has not run.
func (s *Scene) IsInitialized() bool { return s.state == sceneInitialized }

// Load creates the backing scene manager.
func (s *Scene) Load() error {
	switch s.state {
	case sceneDestroyed:
		return fmt.Errorf("%w: scene %q", ErrDestroyed, s.name)
	case sceneCreated:
	default:
		return nil
	}
	sm, err := s.engine.drv.NewSceneManager(s.id, s.name)
	if err != nil {
		return fmt.Errorf("rendering: load scene %q: %w", s.name, err)
	}
	s.sm = sm
	s.state = sceneLoaded
	return nil
}

// Init creates the root visual and sets the default colors. Load must
// have succeeded.
func (s *Scene) Init() error {
	switch s.state {
	case sceneDestroyed:
		return fmt.Errorf("%w: scene %q", ErrDestroyed, s.name)
	case sceneCreated:
		return fmt.Errorf("rendering: init scene %q before load: %w", s.name, ErrNotInitialized)
	case sceneInitialized:
		return nil
	}
	id := s.allocID()
	name := s.name + "::_ROOT_"
	if err := s.sm.CreateObject(KindVisual, id, name); err != nil {
		return fmt.Errorf("rendering: create root visual: %w", err)
	}
	s.root = newVisual(object{id: id, name: name, kind: KindVisual, scene: s})
	s.root.root = true
	s.ambient = Black
	s.background = Background{Color: Black}
	s.state = sceneInitialized
	Logger().Debug("rendering: scene initialized", "scene", s.name, "id", s.id)
	return nil
}

func (s *Scene) checkReady() error {
	switch s.state {
	case sceneInitialized:
		return nil
	case sceneDestroyed:
		return fmt.Errorf("%w: scene %q", ErrDestroyed, s.name)
	default:
		return fmt.Errorf("rendering: scene %q: %w", s.name, ErrNotInitialized)
	}
}

// RootVisual returns the root of the visual tree.
func (s *Scene) RootVisual() *Visual { return s.root }

// AmbientLight returns the ambient light color.
func (s *Scene) AmbientLight() Color { return s.ambient }

// SetAmbientLight sets the ambient light color.
func (s *Scene) SetAmbientLight(c Color) { s.ambient = c }

// Background returns the scene background.
func (s *Scene) Background() Background { return s.background }

// BackgroundColor returns the solid background color.
func (s *Scene) BackgroundColor() Color { return s.background.Color }

// SetBackgroundColor sets the solid background color. A gradient, if set,
// still takes precedence.
func (s *Scene) SetBackgroundColor(c Color) { s.background.Color = c }

// IsGradientBackgroundColor reports whether a gradient background is set.
func (s *Scene) IsGradientBackgroundColor() bool { return s.background.HasGradient }

// GradientBackgroundColor returns the gradient corners ordered top-left,
// bottom-left, top-right, bottom-right.
func (s *Scene) GradientBackgroundColor() [4]Color { return s.background.Gradient }

// SetGradientBackgroundColor sets a four-corner gradient background
// ordered top-left, bottom-left, top-right, bottom-right.
func (s *Scene) SetGradientBackgroundColor(corners [4]Color) {
	s.background.Gradient = corners
	s.background.HasGradient = true
}

// RemoveGradientBackgroundColor restores the solid background color.
func (s *Scene) RemoveGradientBackgroundColor() {
	s.background.Gradient = [4]Color{}
	s.background.HasGradient = false
}

// allocID returns the next free auto id.
func (s *Scene) allocID() uint {
	id := s.nextID
	if s.nextID > 0 {
		s.nextID--
	}
	return id
}

// identity resolves the id and name of a new object.
func (s *Scene) identity(kind ObjectKind, opts []ObjectOption) (uint, string) {
	o := applyObjectOptions(opts)
	id := o.id
	if !o.hasID {
		id = s.allocID()
	}
	name := o.name
	if name == "" {
		name = fmt.Sprintf("%s::%s(%d)", s.name, kind, id)
	}
	return id, name
}

// allocate asks the scene manager for a backing object after check
// accepts its identity.
func (s *Scene) allocate(kind ObjectKind, opts []ObjectOption, check func(id uint, name string) error) (object, error) {
	if err := s.checkReady(); err != nil {
		return object{}, err
	}
	id, name := s.identity(kind, opts)
	if check != nil {
		if err := check(id, name); err != nil {
			return object{}, err
		}
	}
	if err := s.sm.CreateObject(kind, id, name); err != nil {
		return object{}, fmt.Errorf("rendering: create %s %q: %w", kind, name, err)
	}
	Logger().Debug("rendering: create object", "scene", s.name, "kind", kind, "id", id, "name", name)
	return object{id: id, name: name, kind: kind, scene: s}, nil
}

// register adds v to st, releasing the backing object if that fails.
func register[T Object](st *store[T], o *object, v T) (T, error) {
	if err := st.add(v); err != nil {
		_ = o.release()
		var zero T
		return zero, err
	}
	return v, nil
}

// CreateVisual creates a visual. It is not attached to the tree.
func (s *Scene) CreateVisual(opts ...ObjectOption) (*Visual, error) {
	o, err := s.allocate(KindVisual, opts, s.visuals.check)
	if err != nil {
		return nil, err
	}
	v := newVisual(o)
	return register(s.visuals, &v.object, v)
}

// CreateFrustumVisual creates a frustum outline visual.
func (s *Scene) CreateFrustumVisual(opts ...ObjectOption) (*FrustumVisual, error) {
	o, err := s.allocate(KindFrustumVisual, opts, s.visuals.check)
	if err != nil {
		return nil, err
	}
	fv := &FrustumVisual{
		Visual: newVisual(o),
		params: FrustumParams{Near: 0.1, Far: 1, HFOV: DefaultHFOV, AspectRatio: 1},
	}
	fv.frustum = fv
	if _, err := register(s.visuals, &fv.object, fv.Visual); err != nil {
		return nil, err
	}
	return fv, nil
}

// CreateCamera creates a camera with the engine's default resolution,
// field of view and anti-aliasing.
func (s *Scene) CreateCamera(opts ...ObjectOption) (*Camera, error) {
	o, err := s.allocate(KindCamera, opts, s.sensors.check)
	if err != nil {
		return nil, err
	}
	c := newCamera(o, s.engine.opts)
	return register(s.sensors, &c.object, c)
}

// CreateDirectionalLight creates a directional light pointing down.
func (s *Scene) CreateDirectionalLight(opts ...ObjectOption) (*DirectionalLight, error) {
	o, err := s.allocate(KindDirectionalLight, opts, s.lights.check)
	if err != nil {
		return nil, err
	}
	l := &DirectionalLight{light: newLight(o), direction: V3(0, 0, -1)}
	if _, err := register[Light](s.lights, &l.object, l); err != nil {
		return nil, err
	}
	return l, nil
}

// CreatePointLight creates a point light.
func (s *Scene) CreatePointLight(opts ...ObjectOption) (*PointLight, error) {
	o, err := s.allocate(KindPointLight, opts, s.lights.check)
	if err != nil {
		return nil, err
	}
	l := &PointLight{light: newLight(o), attenuation: DefaultAttenuation}
	if _, err := register[Light](s.lights, &l.object, l); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateSpotLight creates a spot light pointing down.
func (s *Scene) CreateSpotLight(opts ...ObjectOption) (*SpotLight, error) {
	o, err := s.allocate(KindSpotLight, opts, s.lights.check)
	if err != nil {
		return nil, err
	}
	inner, outer := defaultSpotAngles()
	l := &SpotLight{
		light:       newLight(o),
		direction:   V3(0, 0, -1),
		attenuation: DefaultAttenuation,
		innerAngle:  inner,
		outerAngle:  outer,
		falloff:     1,
	}
	if _, err := register[Light](s.lights, &l.object, l); err != nil {
		return nil, err
	}
	return l, nil
}

// CreateMaterial creates a material with default properties and registers
// it under its name.
func (s *Scene) CreateMaterial(opts ...ObjectOption) (*Material, error) {
	o, err := s.allocate(KindMaterial, opts, func(id uint, name string) error {
		if _, ok := s.matIDs[id]; ok {
			return fmt.Errorf("%w: material id %d", ErrDuplicate, id)
		}
		if s.MaterialRegistered(name) {
			return fmt.Errorf("%w: material name %q", ErrDuplicate, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m := &Material{object: o, props: DefaultMaterialProperties()}
	s.matIDs[m.id] = m
	s.materials[m.name] = m
	s.matOrder = append(s.matOrder, m.name)
	return m, nil
}

func (s *Scene) createShape(kind ObjectKind, opts []ObjectOption) (*Shape, error) {
	o, err := s.allocate(kind, opts, nil)
	if err != nil {
		return nil, err
	}
	return &Shape{geometry: geometry{object: o}}, nil
}

// CreateBox creates a unit box geometry.
func (s *Scene) CreateBox(opts ...ObjectOption) (*Shape, error) {
	return s.createShape(KindBox, opts)
}

// CreateCone creates a unit cone geometry with its apex along +Z.
func (s *Scene) CreateCone(opts ...ObjectOption) (*Shape, error) {
	return s.createShape(KindCone, opts)
}

// CreateCylinder creates a unit cylinder geometry along Z.
func (s *Scene) CreateCylinder(opts ...ObjectOption) (*Shape, error) {
	return s.createShape(KindCylinder, opts)
}

// CreatePlane creates a unit plane geometry in the XY plane.
func (s *Scene) CreatePlane(opts ...ObjectOption) (*Shape, error) {
	return s.createShape(KindPlane, opts)
}

// CreateSphere creates a unit-diameter sphere geometry.
func (s *Scene) CreateSphere(opts ...ObjectOption) (*Shape, error) {
	return s.createShape(KindSphere, opts)
}

// CreateMesh creates a mesh geometry from an opaque resource path.
func (s *Scene) CreateMesh(path string, opts ...ObjectOption) (*Mesh, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty mesh path", ErrInvalidArgument)
	}
	o, err := s.allocate(KindMesh, opts, nil)
	if err != nil {
		return nil, err
	}
	return &Mesh{geometry: geometry{object: o}, path: path}, nil
}

// CreateText creates a text geometry.
func (s *Scene) CreateText(text string, opts ...ObjectOption) (*Text, error) {
	o, err := s.allocate(KindText, opts, nil)
	if err != nil {
		return nil, err
	}
	return &Text{geometry: geometry{object: o}, text: text, charHeight: 0.25}, nil
}

// CreateRenderTexture creates an off-screen render target with the
// engine's default resolution and anti-aliasing.
func (s *Scene) CreateRenderTexture(opts ...ObjectOption) (*RenderTexture, error) {
	e := s.engine.opts
	return s.createRenderTexture(e.imageWidth, e.imageHeight, e.antiAliasing, opts)
}

func (s *Scene) createRenderTexture(w, h, aa int, opts []ObjectOption) (*RenderTexture, error) {
	o, err := s.allocate(KindRenderTexture, opts, nil)
	if err != nil {
		return nil, err
	}
	t := &RenderTexture{RenderTarget: newRenderTarget(o, w, h, aa)}
	t.source = t
	s.targets = append(s.targets, &t.RenderTarget)
	return t, nil
}

// CreateRenderWindow creates a render target presented to a native
// window. Call SetHandle and OnResize before the first PreRender.
func (s *Scene) CreateRenderWindow(opts ...ObjectOption) (*RenderWindow, error) {
	o, err := s.allocate(KindRenderWindow, opts, nil)
	if err != nil {
		return nil, err
	}
	e := s.engine.opts
	w := &RenderWindow{RenderTarget: newRenderTarget(o, e.imageWidth, e.imageHeight, e.antiAliasing)}
	w.source = w
	s.targets = append(s.targets, &w.RenderTarget)
	return w, nil
}

func (s *Scene) dropTarget(t *RenderTarget) {
	if i := slices.Index(s.targets, t); i >= 0 {
		s.targets = slices.Delete(s.targets, i, i+1)
	}
}

// unbindCamera clears c from every render target bound to it.
func (s *Scene) unbindCamera(c *Camera) {
	for _, t := range s.targets {
		if t.camera == c {
			t.camera = nil
			t.markDirty()
		}
	}
}

// Lights returns the lights in creation order.
func (s *Scene) Lights() []Light { return s.lights.all() }

// LightCount returns the number of lights.
func (s *Scene) LightCount() int { return s.lights.len() }

// HasLight reports whether a light with the given name exists.
func (s *Scene) HasLight(name string) bool {
	_, ok := s.lights.lookup(name)
	return ok
}

// LightByName returns the light with the given name.
func (s *Scene) LightByName(name string) (Light, bool) { return s.lights.lookup(name) }

// LightByID returns the light with the given id.
func (s *Scene) LightByID(id uint) (Light, bool) { return s.lights.get(id) }

// DestroyLight destroys l and removes it from the scene.
func (s *Scene) DestroyLight(l Light) error {
	if l == nil || l.lightBase().scene != s {
		return fmt.Errorf("%w: light not in scene %q", ErrUnknownReference, s.name)
	}
	return l.Destroy()
}

// DestroyLightByName destroys the light with the given name.
func (s *Scene) DestroyLightByName(name string) error {
	l, ok := s.lights.lookup(name)
	if !ok {
		return fmt.Errorf("%w: light %q", ErrUnknownReference, name)
	}
	return l.Destroy()
}

// DestroyLights destroys every light.
func (s *Scene) DestroyLights() error {
	return destroyAll(s.lights.all())
}

// Visuals returns the visuals in creation order, without the root.
func (s *Scene) Visuals() []*Visual { return s.visuals.all() }

// VisualCount returns the number of visuals, without the root.
func (s *Scene) VisualCount() int { return s.visuals.len() }

// HasVisual reports whether a visual with the given name exists.
func (s *Scene) HasVisual(name string) bool {
	_, ok := s.visuals.lookup(name)
	return ok
}

// VisualByName returns the visual with the given name.
func (s *Scene) VisualByName(name string) (*Visual, bool) { return s.visuals.lookup(name) }

// VisualByID returns the visual with the given id.
func (s *Scene) VisualByID(id uint) (*Visual, bool) { return s.visuals.get(id) }

// DestroyVisual destroys v. With recursive set, its descendants are
// destroyed too; otherwise they are detached.
func (s *Scene) DestroyVisual(v *Visual, recursive bool) error {
	if v == nil || v.scene != s {
		return fmt.Errorf("%w: visual not in scene %q", ErrUnknownReference, s.name)
	}
	if v.root {
		return fmt.Errorf("%w: root visual is owned by the scene", ErrInvalidArgument)
	}
	return v.destroy(recursive)
}

// DestroyVisualByName destroys the named visual, detaching its children.
func (s *Scene) DestroyVisualByName(name string) error {
	v, ok := s.visuals.lookup(name)
	if !ok {
		return fmt.Errorf("%w: visual %q", ErrUnknownReference, name)
	}
	return v.destroy(false)
}

// DestroyVisuals destroys every visual except the root.
func (s *Scene) DestroyVisuals() error {
	var firstErr error
	for _, v := range s.visuals.all() {
		if v.destroyed {
			continue
		}
		if err := v.destroy(false); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Sensors returns the cameras in creation order.
func (s *Scene) Sensors() []*Camera { return s.sensors.all() }

// SensorCount returns the number of cameras.
func (s *Scene) SensorCount() int { return s.sensors.len() }

// HasSensor reports whether a camera with the given name exists.
func (s *Scene) HasSensor(name string) bool {
	_, ok := s.sensors.lookup(name)
	return ok
}

// SensorByName returns the camera with the given name.
func (s *Scene) SensorByName(name string) (*Camera, bool) { return s.sensors.lookup(name) }

// SensorByID returns the camera with the given id.
func (s *Scene) SensorByID(id uint) (*Camera, bool) { return s.sensors.get(id) }

// DestroySensor destroys c and removes it from the scene.
func (s *Scene) DestroySensor(c *Camera) error {
	if c == nil || c.scene != s {
		return fmt.Errorf("%w: sensor not in scene %q", ErrUnknownReference, s.name)
	}
	return c.Destroy()
}

// DestroySensorByName destroys the named camera.
func (s *Scene) DestroySensorByName(name string) error {
	c, ok := s.sensors.lookup(name)
	if !ok {
		return fmt.Errorf("%w: sensor %q", ErrUnknownReference, name)
	}
	return c.Destroy()
}

// DestroySensors destroys every camera.
func (s *Scene) DestroySensors() error {
	return destroyAll(s.sensors.all())
}

// RegisterMaterial registers m under name. A name that is already
// registered fails with ErrDuplicate and keeps the original material.
func (s *Scene) RegisterMaterial(name string, m *Material) error {
	if err := s.checkReady(); err != nil {
		return err
	}
	if name == "" || m == nil {
		return fmt.Errorf("%w: material name and value required", ErrInvalidArgument)
	}
	if err := m.checkAlive(); err != nil {
		return err
	}
	if m.scene != s {
		return fmt.Errorf("%w: material %q belongs to another scene", ErrInvalidArgument, m.name)
	}
	if s.MaterialRegistered(name) {
		return fmt.Errorf("%w: material name %q", ErrDuplicate, name)
	}
	s.materials[name] = m
	s.matOrder = append(s.matOrder, name)
	return nil
}

// MaterialRegistered reports whether name is registered.
func (s *Scene) MaterialRegistered(name string) bool {
	_, ok := s.materials[name]
	return ok
}

// MaterialByID returns the live material with the given id, registered or
// not.
func (s *Scene) MaterialByID(id uint) (*Material, bool) {
	m, ok := s.matIDs[id]
	return m, ok
}

// Material returns the material registered under name.
func (s *Scene) Material(name string) (*Material, bool) {
	m, ok := s.materials[name]
	return m, ok
}

// UnregisterMaterial removes name from the material store. The material
// itself is not destroyed.
func (s *Scene) UnregisterMaterial(name string) error {
	if !s.MaterialRegistered(name) {
		return fmt.Errorf("%w: material %q", ErrUnknownReference, name)
	}
	delete(s.materials, name)
	if i := slices.Index(s.matOrder, name); i >= 0 {
		s.matOrder = slices.Delete(s.matOrder, i, i+1)
	}
	return nil
}

// unregisterAll removes every name under which m is registered and
// frees its id.
func (s *Scene) unregisterAll(m *Material) {
	delete(s.matIDs, m.id)
	s.matOrder = slices.DeleteFunc(s.matOrder, func(name string) bool {
		if s.materials[name] == m {
			delete(s.materials, name)
			return true
		}
		return false
	})
}

// MaterialNames returns the registered material names in registration
// order.
func (s *Scene) MaterialNames() []string { return slices.Clone(s.matOrder) }

// MaterialCount returns the number of registered names. A material
// registered under several names counts once per name.
func (s *Scene) MaterialCount() int { return len(s.matOrder) }

// DestroyMaterial destroys m and unregisters all its names.
func (s *Scene) DestroyMaterial(m *Material) error {
	if m == nil || m.scene != s {
		return fmt.Errorf("%w: material not in scene %q", ErrUnknownReference, s.name)
	}
	return m.Destroy()
}

// DestroyMaterials destroys every material of the scene, registered or
// not.
func (s *Scene) DestroyMaterials() error {
	var firstErr error
	for _, name := range s.MaterialNames() {
		m, ok := s.materials[name]
		if !ok || m.destroyed {
			continue
		}
		if err := m.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	// Materials whose names were all unregistered.
	for _, id := range slices.Sorted(maps.Keys(s.matIDs)) {
		if err := s.matIDs[id].Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func destroyAll[T Object](objs []T) error {
	var firstErr error
	for _, o := range objs {
		if err := o.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PreRender prepares every camera's render texture and every other render
// target bound to a camera for the next frame.
func (s *Scene) PreRender() error {
	if err := s.checkReady(); err != nil {
		return err
	}
	for _, c := range s.sensors.all() {
		if err := c.PreRender(); err != nil {
			return err
		}
	}
	for _, t := range slices.Clone(s.targets) {
		if t.camera == nil || t.camera.owns(t) {
			continue
		}
		if err := t.PreRender(); err != nil {
			return err
		}
	}
	return nil
}

// Clear destroys every camera, light, visual and material. Free-standing
// render targets stay alive. The scene remains initialized.
func (s *Scene) Clear() error {
	if err := s.checkReady(); err != nil {
		return err
	}
	var firstErr error
	for _, f := range []func() error{s.DestroySensors, s.DestroyLights, s.DestroyVisuals, s.DestroyMaterials} {
		if err := f(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.root.RemoveChildren()
	return firstErr
}

// Destroy clears the scene, releases its render targets and root visual,
// and destroys the backing scene manager.
func (s *Scene) Destroy() error {
	if s.state == sceneDestroyed {
		return nil
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.state == sceneInitialized {
		keep(s.Clear())
		for _, t := range slices.Clone(s.targets) {
			keep(t.Destroy())
		}
		keep(s.root.destroy(false))
	}
	if s.sm != nil {
		if err := s.sm.Destroy(); err != nil {
			keep(fmt.Errorf("rendering: destroy scene manager %q: %w", s.name, err))
		}
	}
	s.state = sceneDestroyed
	if s.engine != nil {
		s.engine.forget(s)
	}
	Logger().Debug("rendering: scene destroyed", "scene", s.name)
	return firstErr
}

// frame snapshots the tree reachable from the root.
func (s *Scene) frame(c *Camera, width, height int, number uint64) *Frame {
	f := &Frame{
		Number:     number,
		Width:      width,
		Height:     height,
		Camera:     c.view(),
		Background: s.background,
		Ambient:    s.ambient,
	}
	s.collect(s.root, f)
	return f
}

func (s *Scene) collect(v *Visual, f *Frame) {
	if !v.visible {
		return
	}
	if len(v.geometries) > 0 || v.frustum != nil {
		world := v.WorldTransform()
		for _, g := range v.geometries {
			f.Drawables = append(f.Drawables, drawableOf(g, world))
		}
		if v.frustum != nil {
			params := v.frustum.params
			d := Drawable{ID: v.id, Name: v.name, Kind: KindFrustumVisual, World: world, Frustum: &params}
			d.Material = materialProps(v.material)
			f.Drawables = append(f.Drawables, d)
		}
	}
	for _, child := range v.children {
		if l, ok := child.(Light); ok {
			f.Lights = append(f.Lights, lightView(l))
		}
		if cv := visualOf(child); cv != nil {
			s.collect(cv, f)
		}
	}
}

func drawableOf(g Geometry, world Transform) Drawable {
	gb := g.geom()
	d := Drawable{
		ID:       gb.id,
		Name:     gb.name,
		Kind:     gb.kind,
		World:    world,
		Material: materialProps(gb.material),
	}
	switch t := g.(type) {
	case *Mesh:
		d.MeshPath = t.path
	case *Text:
		d.Text = t.text
		d.World.Scale = d.World.Scale.Mul(t.charHeight)
	}
	return d
}

func materialProps(m *Material) MaterialProperties {
	if m == nil || m.destroyed {
		return DefaultMaterialProperties()
	}
	return m.props
}
