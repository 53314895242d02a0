package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	assert.Equal(t, Windows, Detect("windows"))
	assert.Equal(t, MacOS, Detect("darwin"))
	assert.Equal(t, Linux, Detect("linux"))
	// unrecognized identifiers fall back to Linux
	assert.Equal(t, Linux, Detect("freebsd"))
	assert.Equal(t, Linux, Detect(""))
}

func TestDetectArch(t *testing.T) {
	assert.Equal(t, Arm64, DetectArch("arm64"))
	assert.Equal(t, Aarch64, DetectArch("aarch64"))
	assert.Equal(t, X64, DetectArch("amd64"))
	assert.Equal(t, X64, DetectArch("386"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "linux", Linux.String())
	assert.Equal(t, "macos", MacOS.String())
	assert.Equal(t, "windows", Windows.String())
	assert.Equal(t, "x64", X64.String())
	assert.Equal(t, "arm64", Arm64.String())
	assert.Equal(t, "aarch64", Aarch64.String())
}

func TestArchiveExt(t *testing.T) {
	assert.Equal(t, ".zip", Windows.ArchiveExt())
	assert.Equal(t, ".tar.gz", Linux.ArchiveExt())
	assert.Equal(t, ".tar.gz", MacOS.ArchiveExt())
}

func TestAll(t *testing.T) {
	assert.Equal(t, []Platform{Linux, MacOS, Windows}, All())
}
