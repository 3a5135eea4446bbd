package termview

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	clickSampleRate = beep.SampleRate(44100)
	clickTone       = 660 // Hz
	clickLength     = 30 * time.Millisecond
)

// clicker plays a short tone through the default audio device.
type clicker struct {
	sr beep.SampleRate
}

func newClicker() (*clicker, error) {
	if err := speaker.Init(clickSampleRate, clickSampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &clicker{sr: clickSampleRate}, nil
}

// Click plays one tone without blocking.
func (c *clicker) Click() {
	sine, err := generators.SineTone(c.sr, clickTone)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(c.sr.N(clickLength), sine))
}

func (c *clicker) Close() {
	speaker.Close()
}
