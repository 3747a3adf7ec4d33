package geometry

import (
	"fmt"
	"slices"

	"github.com/bhackett1/OptSimple/internal/optics"
)

// ErrAlreadyAttached is returned when a tracking set is attached twice.
var ErrAlreadyAttached = fmt.Errorf("sensitive detector already attached")

// Rotation holds rotation angles in radians about the X, Y and Z axes,
// applied in that order.
type Rotation struct {
	X, Y, Z float64
}

// RotateX returns a rotation of angle about the X axis.
func RotateX(angle float64) *Rotation { return &Rotation{X: angle} }

// LogicalVolume binds a solid to a material.
type LogicalVolume struct {
	Name     string
	Solid    Solid
	Material *optics.Material

	sd *SensitiveDetector
}

// SensitiveDetector returns the attached detector, or nil.
func (lv *LogicalVolume) SensitiveDetector() *SensitiveDetector { return lv.sd }

// Placement positions a logical volume inside a mother volume. The world
// placement has a nil Mother.
type Placement struct {
	Name          string
	Logical       *LogicalVolume
	Mother        *LogicalVolume
	Translation   Vec3
	Rotation      *Rotation
	CopyNo        int
	CheckOverlaps bool
}

// SensitiveDetector is a named hit collector.
type SensitiveDetector struct {
	Name string
}

// TrackingVolumeSet is the set of logical volumes whose deposits are
// recorded. It is filled during Build and attached exactly once.
type TrackingVolumeSet struct {
	volumes  []*LogicalVolume
	attached *SensitiveDetector
}

func (s *TrackingVolumeSet) add(lv *LogicalVolume) {
	s.volumes = append(s.volumes, lv)
}

// Volumes returns the tracking volumes in build order.
func (s *TrackingVolumeSet) Volumes() []*LogicalVolume {
	return slices.Clone(s.volumes)
}

// Names returns the logical volume names in build order.
func (s *TrackingVolumeSet) Names() []string {
	names := make([]string, len(s.volumes))
	for i, lv := range s.volumes {
		names[i] = lv.Name
	}
	return names
}

// Attached returns the detector attached to the set, or nil.
func (s *TrackingVolumeSet) Attached() *SensitiveDetector { return s.attached }

// Attach binds sd to every volume in the set.
func (s *TrackingVolumeSet) Attach(sd *SensitiveDetector) error {
	if sd == nil {
		return fmt.Errorf("nil sensitive detector")
	}
	if s.attached != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, s.attached.Name)
	}
	for _, lv := range s.volumes {
		lv.sd = sd
	}
	s.attached = sd
	return nil
}
