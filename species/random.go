package species

import (
	"fmt"
	"math/rand"
)

// Random draws a config uniformly from the randomization ranges:
// spawn weight [25,75), perception [0,50), separation [50,250),
// multipliers [0.001,1.2), max force [0.001,0.5), max speed [0.001,10),
// agent size [3,15) and each color channel [0,255).
func Random(rng *rand.Rand) Config {
	return Config{
		SpawnWeight:          25 + rng.Intn(50),
		PerceptionRadius:     float32(rng.Intn(50)),
		SeparationRadius:     float32(50 + rng.Intn(200)),
		SeparationMultiplier: 0.001 + rng.Float32()*1.199,
		AlignmentMultiplier:  0.001 + rng.Float32()*1.199,
		CohesionMultiplier:   0.001 + rng.Float32()*1.199,
		MaxForce:             0.001 + rng.Float32()*0.499,
		MaxSpeed:             0.001 + rng.Float32()*9.999,
		AgentSize:            3 + rng.Float32()*12,
		Color: ColorFromBytes(
			uint8(rng.Intn(255)),
			uint8(rng.Intn(255)),
			uint8(rng.Intn(255)),
		),
	}
}

// RandomID returns an 8 hex digit id for a generated species.
func RandomID(rng *rand.Rand) string {
	return fmt.Sprintf("%08x", rng.Uint32())
}
