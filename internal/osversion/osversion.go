// Package osversion reports the running Windows version, which decides the
// flags some link APIs accept.
package osversion

import "fmt"

// The packed form of GetVersion holds every field in 32 bits, so the narrow
// types are safe.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winnt/ns-winnt-osversioninfoexw
type (
	MajorVersion uint8
	MinorVersion uint8
	BuildNumber  uint16
)

// RS2 (version 1703) added the unprivileged symbolic link creation flag.
const RS2 BuildNumber = 15063

// Version is a Windows version number.
type Version struct {
	Major MajorVersion
	Minor MinorVersion
	Build BuildNumber
}

// FromPackedVersion unpacks the value returned by GetVersion.
func FromPackedVersion(v uint32) Version {
	return Version{
		Major: MajorVersion(v & 0xFF),
		Minor: MinorVersion(v >> 8 & 0xFF),
		Build: BuildNumber(v >> 16),
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Build)
}

// Compare returns -1, 0 or +1 as v is older than, the same as, or newer than
// other.
func (v Version) Compare(other Version) int {
	switch {
	case v.Major != other.Major:
		return sign(int(v.Major) - int(other.Major))
	case v.Minor != other.Minor:
		return sign(int(v.Minor) - int(other.Minor))
	}
	return sign(int(v.Build) - int(other.Build))
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}
