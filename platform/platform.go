package platform

import "runtime"

// Platform identifies a desktop target for the player runtime.
type Platform int

const (
	Linux Platform = iota
	MacOS
	Windows
)

func (p Platform) String() string {
	switch p {
	case MacOS:
		return "macos"
	case Windows:
		return "windows"
	default:
		return "linux"
	}
}

// ArchiveExt returns the extension of the player SDK archive published for
// the platform. Windows releases ship as zip, everything else as tar.gz.
func (p Platform) ArchiveExt() string {
	if p == Windows {
		return ".zip"
	}
	return ".tar.gz"
}

// All returns the three bundling targets in their fixed output order.
func All() []Platform {
	return []Platform{Linux, MacOS, Windows}
}

// Arch identifies the host processor architecture.
type Arch int

const (
	X64 Arch = iota
	Arm64
	Aarch64
)

func (a Arch) String() string {
	switch a {
	case Arm64:
		return "arm64"
	case Aarch64:
		return "aarch64"
	default:
		return "x64"
	}
}

// Detect maps a host operating-system identifier to a Platform. Anything not
// recognized as Windows or macOS is treated as Linux.
func Detect(hostOS string) Platform {
	switch hostOS {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

// DetectArch maps a host architecture identifier to an Arch, defaulting to X64.
func DetectArch(hostArch string) Arch {
	switch hostArch {
	case "arm64":
		return Arm64
	case "aarch64":
		return Aarch64
	default:
		return X64
	}
}

// Host returns the platform and architecture of the running process.
func Host() (Platform, Arch) {
	return Detect(runtime.GOOS), DetectArch(runtime.GOARCH)
}
