package lamp

import (
	"context"
	"math"
	"time"
)

// Pulse flashes a color on and off. Each pulse holds the color for half the
// period and darkness for the other half. Cancellation is checked between
// iterations; an in-flight write cannot be retracted.
func (s *Session) Pulse(ctx context.Context, r, g, b, times int, period time.Duration) error {
	for i := 0; i < times; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.SetRGB(ctx, r, g, b); err != nil {
			return err
		}
		if err := sleep(ctx, period/2); err != nil {
			return err
		}
		if err := s.SetRGB(ctx, 0, 0, 0); err != nil {
			return err
		}
		if err := sleep(ctx, period/2); err != nil {
			return err
		}
	}
	return nil
}

// Rainbow sweeps the hue circle at full saturation and value over the given
// duration.
func (s *Session) Rainbow(ctx context.Context, duration time.Duration, steps int) error {
	if steps <= 0 {
		steps = 30
	}
	delay := duration / time.Duration(steps)
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, g, b := HSVToRGB(float64(i)/float64(steps)*360, 1.0, 1.0)
		if err := s.SetRGB(ctx, r, g, b); err != nil {
			return err
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

// HSVToRGB converts hue (degrees), saturation and value (both 0..1) to RGB
// channels in 0..255.
func HSVToRGB(h, s, v float64) (r, g, b int) {
	if s == 0 {
		c := int(v * 255)
		return c, c, c
	}

	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	hh := h / 60.0
	i := int(hh)
	ff := hh - float64(i)
	p := v * (1.0 - s)
	q := v * (1.0 - s*ff)
	t := v * (1.0 - s*(1.0-ff))

	var rr, gg, bb float64
	switch i {
	case 0:
		rr, gg, bb = v, t, p
	case 1:
		rr, gg, bb = q, v, p
	case 2:
		rr, gg, bb = p, v, t
	case 3:
		rr, gg, bb = p, q, v
	case 4:
		rr, gg, bb = t, p, v
	default:
		rr, gg, bb = v, p, q
	}

	return int(rr * 255), int(gg * 255), int(bb * 255)
}
