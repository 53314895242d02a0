package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ignoreFileContent is written verbatim to .gitignore, overwriting any
// existing file.
const ignoreFileContent = `*.beam
*.ez
/build
erl_crash.dump
/dist
/player
/bundle-linux
/bundle-macos
/bundle-windows
`

const template2D = `import firefly
import firefly/canvas
import firefly/sprite
import firefly/vec2.{Vec2}

pub fn main() {
  firefly.new("{{name}}")
  |> firefly.with_canvas(canvas.fullscreen())
  |> firefly.add_sprite(sprite.from_image("assets/ship.png", Vec2(400.0, 300.0)))
  |> firefly.on_frame(update)
  |> firefly.run
}

fn update(world: firefly.World, delta: Float) -> firefly.World {
  firefly.translate_sprites(world, Vec2(0.0, 40.0 *. delta))
}
`

const template3D = `import firefly
import firefly/camera
import firefly/light
import firefly/mesh
import firefly/scene
import firefly/vec3.{Vec3}

pub fn main() {
  let world =
    scene.new()
    |> scene.add_camera(camera.perspective(Vec3(0.0, 2.0, 5.0), Vec3(0.0, 0.0, 0.0)))
    |> scene.add_light(light.directional(Vec3(-1.0, -1.0, 0.0)))
    |> scene.add_mesh(mesh.cube(1.0))

  firefly.new("{{name}}")
  |> firefly.with_scene(world)
  |> firefly.on_frame(spin)
  |> firefly.run
}

fn spin(world: firefly.World, delta: Float) -> firefly.World {
  firefly.rotate_meshes(world, 0.5 *. delta)
}
`

const templatePhysics = `import firefly
import firefly/body
import firefly/canvas
import firefly/physics
import firefly/vec2.{Vec2}

pub fn main() {
  let space =
    physics.new_space(gravity: Vec2(0.0, 9.81))
    |> physics.add_body(body.circle(radius: 12.0, at: Vec2(400.0, 40.0)))
    |> physics.add_body(body.static_segment(Vec2(0.0, 560.0), Vec2(800.0, 560.0)))

  firefly.new("{{name}}")
  |> firefly.with_canvas(canvas.sized(800, 600))
  |> firefly.with_physics(space)
  |> firefly.run
}
`

// TemplateSource returns the starter source file body for the selected
// template, with the project name substituted in.
func TemplateSource(t Template, projectName string) (string, error) {
	var body string
	switch t {
	case Template2D:
		body = template2D
	case Template3D:
		body = template3D
	case TemplatePhysics:
		body = templatePhysics
	default:
		return "", fmt.Errorf("no source template for %q", t)
	}
	return strings.ReplaceAll(body, "{{name}}", projectName), nil
}

type windowConfig struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type packageDescriptor struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Window       *windowConfig     `json:"window,omitempty"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// PackageDescriptor renders the package descriptor copied into each platform
// bundle. Desktop bundles carry a window configuration and the two runtime
// dependencies the player resolves at launch.
func PackageDescriptor(projectName string, desktop bool) (string, error) {
	desc := packageDescriptor{
		Name:    projectName,
		Version: "1.0.0",
	}
	if desktop {
		desc.Window = &windowConfig{
			Name:   projectName,
			Width:  800,
			Height: 600,
		}
		desc.Dependencies = map[string]string{
			"firefly":        "1.4.2",
			"firefly-player": "1.4.2",
		}
	}
	out, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("could not render package descriptor: %w", err)
	}
	return string(out) + "\n", nil
}
