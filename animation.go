package marquee

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// UniformTween animates one float uniform of a Material. Call Update(dt)
// each frame; Done reports completion.
//
// There is no global animation manager; owners call Update themselves.
type UniformTween struct {
	tween    *gween.Tween
	material *Material
	name     string
	Done     bool
}

// TweenUniform creates a tween moving material's uniform name from its
// current value to `to` over duration seconds.
func TweenUniform(m *Material, name string, to float64, duration float32, fn ease.TweenFunc) *UniformTween {
	if fn == nil {
		fn = ease.Linear
	}
	return &UniformTween{
		tween:    gween.New(float32(m.Float(name)), float32(to), duration, fn),
		material: m,
		name:     name,
	}
}

// Update advances the tween by dt seconds and writes the uniform.
func (t *UniformTween) Update(dt float32) {
	if t.Done {
		return
	}
	v, finished := t.tween.Update(dt)
	t.material.SetFloat(t.name, float64(v))
	t.Done = finished
}
