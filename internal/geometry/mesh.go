package geometry

import (
	"fmt"

	"github.com/bhackett1/OptSimple/internal/fsutil"
)

// DefaultCapsulePath is the capsule mesh location relative to the working
// directory.
const DefaultCapsulePath = "./Capsule.stl"

// MeshImporter loads an external surface mesh as an opaque solid.
type MeshImporter interface {
	Import(name string) (*TessellatedSolid, error)
}

// FileMeshImporter checks that a mesh file exists and wraps it without
// reading its contents.
type FileMeshImporter struct {
	Path string
	FS   fsutil.FileSystem
}

func NewFileMeshImporter(path string) *FileMeshImporter {
	if path == "" {
		path = DefaultCapsulePath
	}
	return &FileMeshImporter{Path: path, FS: fsutil.OSFileSystem{}}
}

func (f *FileMeshImporter) Import(name string) (*TessellatedSolid, error) {
	fsys := f.FS
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}
	info, err := fsys.Stat(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to import mesh %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to import mesh %s: %s is a directory", name, f.Path)
	}
	return &TessellatedSolid{name: name, Source: f.Path, Size: info.Size()}, nil
}

// StaticMesh returns a placeholder solid without touching the filesystem.
type StaticMesh struct {
	Source string
}

func (s StaticMesh) Import(name string) (*TessellatedSolid, error) {
	return &TessellatedSolid{name: name, Source: s.Source}, nil
}
