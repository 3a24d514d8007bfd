package effects

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/glyphgen/internal/core"
)

// Registry maps effect names to constructors. Effects are stateful
// (some carry simulation state between frames), so Get always returns
// a fresh instance.
type Registry struct {
	effects map[string]func() core.Effect
}

func NewRegistry() *Registry {
	r := &Registry{
		effects: make(map[string]func() core.Effect),
	}

	r.effects["plasma"] = func() core.Effect { return NewPlasma() }
	r.effects["wave"] = func() core.Effect { return NewWave() }
	r.effects["moire"] = func() core.Effect { return NewMoire() }
	r.effects["chroma_spiral"] = func() core.Effect { return NewChromaSpiral() }
	r.effects["dyna"] = func() core.Effect { return NewDyna() }
	r.effects["sdf_shapes"] = func() core.Effect { return NewSDFShapes() }
	r.effects["donut"] = func() core.Effect { return NewDonut() }
	r.effects["wireframe_cube"] = func() core.Effect { return NewWireframeCube() }
	r.effects["mod_xor"] = func() core.Effect { return NewModXor() }
	r.effects["ten_print"] = func() core.Effect { return NewTenPrint() }
	r.effects["noise_field"] = func() core.Effect { return NewNoiseField() }
	r.effects["wobbly"] = func() core.Effect { return NewWobbly() }
	r.effects["flame"] = func() core.Effect { return NewFlame() }
	r.effects["game_of_life"] = func() core.Effect { return NewGameOfLife() }
	r.effects["sand_game"] = func() core.Effect { return NewSandGame() }
	r.effects["slime_dish"] = func() core.Effect { return NewSlimeDish() }
	r.effects["cppn"] = func() core.Effect { return NewCPPN(42) }

	return r
}

func (r *Registry) Get(name string) (core.Effect, error) {
	fn, ok := r.effects[name]
	if !ok {
		return nil, fmt.Errorf("unknown effect %q (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return fn(), nil
}

func (r *Registry) Has(name string) bool {
	_, ok := r.effects[name]
	return ok
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.effects))
	for name := range r.effects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the shared registry used by the pipeline and CLI.
var Default = NewRegistry()
