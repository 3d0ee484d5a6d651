//go:build windows

package osversion

import (
	"sync"

	"golang.org/x/sys/windows"
)

// Get returns the running Windows version. RtlGetVersion ignores
// compatibility manifests, so the real build is reported.
var Get = sync.OnceValue(func() Version {
	vi := windows.RtlGetVersion()
	return Version{
		Major: MajorVersion(vi.MajorVersion),
		Minor: MinorVersion(vi.MinorVersion),
		Build: BuildNumber(vi.BuildNumber),
	}
})

// Build returns the Windows build number.
func Build() BuildNumber {
	return Get().Build
}
