package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/firefly-engine/firefly/fetch"
	"github.com/firefly-engine/firefly/fs"
	"github.com/firefly-engine/firefly/logger"
	"github.com/firefly-engine/firefly/manifest"
	"github.com/firefly-engine/firefly/platform"
	"github.com/firefly-engine/firefly/proc"
)

// SDKVersion pins the player runtime release the wizard provisions.
const SDKVersion = "1.4.2"

const sdkBaseURL = "https://github.com/firefly-engine/player/releases/download"

// PlayerDirName is the fixed name the extracted SDK directory is renamed to.
const PlayerDirName = "player"

// Gateway is the boundary through which steps perform real file, process and
// network effects. One operation per step kind; each returns nil on success
// or an error whose text is the human-readable failure reason.
type Gateway interface {
	UpdateManifest(ctx context.Context, projectName string, includeUIOverlay bool) error
	InstallDevTooling(ctx context.Context) error
	InstallRuntimePackages(ctx context.Context) error
	WriteIgnoreFile(ctx context.Context) error
	WriteMainSourceFile(ctx context.Context, projectName string, template Template) error
	DetectPlatform(ctx context.Context) (platform.Platform, error)
	DownloadAndExtractSDK(ctx context.Context, p platform.Platform) error
	SetupPlatformBundles(ctx context.Context, projectName string) error
}

// LocalGateway performs the real effects against the project directory.
type LocalGateway struct {
	fs       *fs.FileSystem
	runner   proc.CommandRunner
	dl       fetch.Downloader
	editor   *manifest.Editor
	root     string
	hostOS   string
	hostArch platform.Arch
	logger   logger.Logger
}

func NewLocalGateway(fsys *fs.FileSystem, runner proc.CommandRunner, dl fetch.Downloader, root, hostOS, hostArch string, log logger.Logger) *LocalGateway {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &LocalGateway{
		fs:       fsys,
		runner:   runner,
		dl:       dl,
		editor:   manifest.NewEditor(fsys),
		root:     root,
		hostOS:   hostOS,
		hostArch: platform.DetectArch(hostArch),
		logger:   log,
	}
}

func (g *LocalGateway) UpdateManifest(ctx context.Context, projectName string, includeUIOverlay bool) error {
	path, err := manifest.Find(g.fs, g.root)
	if err != nil {
		return err
	}
	g.logger.Debug(fmt.Sprintf("Updating manifest at %s", path))
	return g.editor.Update(path, includeUIOverlay)
}

func (g *LocalGateway) InstallDevTooling(ctx context.Context) error {
	_, err := g.runner.Run(ctx, g.root, "gleam", "add", "--dev", "firefly_dev")
	return err
}

func (g *LocalGateway) InstallRuntimePackages(ctx context.Context) error {
	_, err := g.runner.Run(ctx, g.root, "gleam", "deps", "download")
	return err
}

func (g *LocalGateway) WriteIgnoreFile(ctx context.Context) error {
	return g.fs.WriteFile(filepath.Join(g.root, ".gitignore"), ignoreFileContent)
}

func (g *LocalGateway) WriteMainSourceFile(ctx context.Context, projectName string, template Template) error {
	source, err := TemplateSource(template, projectName)
	if err != nil {
		return err
	}
	path := filepath.Join(g.root, "src", projectName+".gleam")
	return g.fs.WriteFile(path, source)
}

func (g *LocalGateway) DetectPlatform(ctx context.Context) (platform.Platform, error) {
	p := platform.Detect(g.hostOS)
	g.logger.Debug(fmt.Sprintf("Detected platform %s from host identifier %q", p, g.hostOS))
	return p, nil
}

func (g *LocalGateway) DownloadAndExtractSDK(ctx context.Context, p platform.Platform) error {
	return g.setupSDK(ctx, g.root, p)
}

func (g *LocalGateway) SetupPlatformBundles(ctx context.Context, projectName string) error {
	descriptor, err := PackageDescriptor(projectName, true)
	if err != nil {
		return err
	}
	for _, p := range platform.All() {
		dir := filepath.Join(g.root, "bundle-"+p.String())
		if err := g.fs.MkdirAll(dir); err != nil {
			return err
		}
		if err := g.setupSDK(ctx, dir, p); err != nil {
			return fmt.Errorf("bundle %s: %w", p, err)
		}
		if err := g.fs.WriteFile(filepath.Join(dir, "package.json"), descriptor); err != nil {
			return fmt.Errorf("bundle %s: %w", p, err)
		}
	}
	return nil
}

// archiveName encodes version, platform and architecture, matching the
// player release naming scheme.
func (g *LocalGateway) archiveName(p platform.Platform) string {
	return fmt.Sprintf("firefly-player-v%s-%s-%s%s", SDKVersion, p, g.hostArch, p.ArchiveExt())
}

// setupSDK downloads the player archive into dir, extracts it, renames the
// extracted directory to the fixed player name and removes the archive.
// Deleting any pre-existing player directory first makes reruns converge on
// the same result.
func (g *LocalGateway) setupSDK(ctx context.Context, dir string, p platform.Platform) error {
	name := g.archiveName(p)
	archivePath := filepath.Join(dir, name)
	url := fmt.Sprintf("%s/v%s/%s", sdkBaseURL, SDKVersion, name)

	g.logger.Info(fmt.Sprintf("Downloading %s", url))
	if err := g.dl.Download(ctx, url, archivePath); err != nil {
		return err
	}
	if !g.fs.Exists(archivePath) {
		return fmt.Errorf("download did not produce %s", archivePath)
	}

	if strings.HasSuffix(name, ".zip") {
		if _, err := g.runner.Run(ctx, dir, "unzip", "-o", name); err != nil {
			return err
		}
	} else {
		if _, err := g.runner.Run(ctx, dir, "tar", "-xzf", name); err != nil {
			return err
		}
	}

	extracted := filepath.Join(dir, strings.TrimSuffix(name, p.ArchiveExt()))
	target := filepath.Join(dir, PlayerDirName)
	if g.fs.Exists(target) {
		if err := g.fs.RemoveAll(target); err != nil {
			return err
		}
	}
	if err := g.fs.Rename(extracted, target); err != nil {
		return err
	}
	return g.fs.RemoveAll(archivePath)
}
