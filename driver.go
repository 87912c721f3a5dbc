// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rendering

import "image"

// ObjectKind identifies the type of a backing-engine object.
type ObjectKind uint8

// Object kinds.
const (
	KindVisual ObjectKind = iota
	KindFrustumVisual
	KindCamera
	KindDirectionalLight
	KindPointLight
	KindSpotLight
	KindMaterial
	KindBox
	KindCone
	KindCylinder
	KindPlane
	KindSphere
	KindMesh
	KindText
	KindRenderTexture
	KindRenderWindow
)

var kindNames = [...]string{
	KindVisual:           "Visual",
	KindFrustumVisual:    "FrustumVisual",
	KindCamera:           "Camera",
	KindDirectionalLight: "DirectionalLight",
	KindPointLight:       "PointLight",
	KindSpotLight:        "SpotLight",
	KindMaterial:         "Material",
	KindBox:              "Box",
	KindCone:             "Cone",
	KindCylinder:         "Cylinder",
	KindPlane:            "Plane",
	KindSphere:           "Sphere",
	KindMesh:             "Mesh",
	KindText:             "Text",
	KindRenderTexture:    "RenderTexture",
	KindRenderWindow:     "RenderWindow",
}

// String returns the kind name, also used as the auto-name prefix.
func (k ObjectKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsGeometry reports whether k is a geometry kind.
func (k ObjectKind) IsGeometry() bool {
	return k >= KindBox && k <= KindText
}

// IsLight reports whether k is a light kind.
func (k ObjectKind) IsLight() bool {
	return k >= KindDirectionalLight && k <= KindSpotLight
}

// Driver is the capability interface every backing engine implements.
//
// A Driver is injected into NewEngine, usually obtained from the backend
// registry. Drivers return errors wrapping ErrUnsupported for object kinds
// they cannot create.
type Driver interface {
	// Name returns the backend identifier (e.g., "classic", "workspace").
	Name() string

	// Open initializes the backing engine.
	Open() error

	// Close releases all backing-engine resources.
	Close()

	// NewSceneManager creates the backing scene manager of one scene.
	NewSceneManager(sceneID uint, name string) (SceneManager, error)
}

// SceneManager owns the backing resources of a single scene.
type SceneManager interface {
	// CreateObject allocates the backing object of the given kind.
	CreateObject(kind ObjectKind, id uint, name string) error

	// DestroyObject releases a backing object created by CreateObject.
	DestroyObject(kind ObjectKind, id uint) error

	// CreateSurface allocates the pixel storage of a render target.
	CreateSurface(desc *SurfaceDescriptor) (Surface, error)

	// CreateWorkspace builds the compositor workspace that renders into
	// surface.
	CreateWorkspace(surface Surface, desc *WorkspaceDescriptor) (Workspace, error)

	// Destroy releases the scene manager and everything it still owns.
	Destroy() error
}

// SurfaceKind selects how a render target's surface is realized.
type SurfaceKind uint8

// Surface kinds.
const (
	SurfaceTexture SurfaceKind = iota
	SurfaceWindow
)

// String returns the surface kind name.
func (k SurfaceKind) String() string {
	if k == SurfaceWindow {
		return "window"
	}
	return "texture"
}

// SurfaceDescriptor describes the surface of a render target.
type SurfaceDescriptor struct {
	Label        string
	Kind         SurfaceKind
	Width        int
	Height       int
	AntiAliasing int

	// Handle is the opaque native window handle for window surfaces.
	Handle string
}

// Surface is the backing pixel storage of a render target.
type Surface interface {
	Width() int
	Height() int
	Destroy() error
}

// WorkspaceDescriptor describes a compositor workspace.
type WorkspaceDescriptor struct {
	Label string

	// CameraID is the camera the workspace renders from.
	CameraID uint

	// Passes run in order after the scene pass.
	Passes []RenderPass
}

// Workspace is the compositor of one render target: the ordered sequence
// of passes that produces its final image.
type Workspace interface {
	// SetBackground sets the clear color or gradient of the scene pass.
	SetBackground(bg Background)

	// SetMaterial overrides the material of every drawable. Nil clears it.
	SetMaterial(m *MaterialProperties)

	// Render produces one frame.
	Render(f *Frame) error

	// ReadPixels copies the last frame into dst. It blocks until the
	// frame's pixels are available.
	ReadPixels(dst *image.RGBA) error

	// Destroy releases the workspace.
	Destroy() error
}
