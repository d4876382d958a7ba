package party

import (
	"math/rand/v2"
	"sync"

	"github.com/mmuslimabdulj/comuno/internal/domain"
)

// ActivitySource produces the activity of the other viewers.
// The default Simulation fakes it locally; a message bus subscription can take its place.
type ActivitySource interface {
	// NextMessage picks an author among guests and a line to post; ok is false to stay quiet
	NextMessage(guests []domain.Participant) (author domain.Participant, body string, ok bool)
	// NextToggle picks a guest whose camera (or mic, when camera is false) flips
	NextToggle(guests []domain.Participant) (id string, camera bool, ok bool)
	// InitialDevices returns camera/mic state for a guest admitted in ambient mode
	InitialDevices() (cameraOn, micOn bool)
}

var reactionPhrases = map[domain.Locale][]string{
	domain.LocaleES: {
		"¡Wow, qué escena!",
		"No puedo creer esto",
		"¿Vieron eso? 😮",
		"Esta parte es mi favorita",
		"Increíble actuación",
		"La música es espectacular",
		"Amo esta película",
	},
	domain.LocaleEN: {
		"Wow, what a scene!",
		"I can't believe this",
		"Did you see that? 😮",
		"This is my favorite part",
		"Amazing acting",
		"The music is spectacular",
		"I love this movie",
	},
}

// Phrases returns the reaction lines used for locale
func Phrases(locale domain.Locale) []string {
	p, ok := reactionPhrases[locale]
	if !ok {
		p = reactionPhrases[domain.LocaleES]
	}
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// SimulationConfig tunes a Simulation. Nil probabilities take the defaults;
// use Chance to set one, zero included.
type SimulationConfig struct {
	Locale     domain.Locale
	ChatChance *float64   // probability a chat tick posts
	CameraOn   *float64   // probability an ambient guest joins with camera on
	MicOn      *float64   // probability an ambient guest joins with mic on
	Seed       *[2]uint64 // nil seeds from the runtime
}

// Chance returns a probability for SimulationConfig
func Chance(p float64) *float64 { return &p }

func chanceOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Simulation is the randomized stand-in for real viewers
type Simulation struct {
	mu         sync.Mutex
	rng        *rand.Rand
	chatChance float64
	cameraOn   float64
	micOn      float64
	phrases    []string
}

// NewSimulation creates a Simulation
func NewSimulation(cfg SimulationConfig) *Simulation {
	var src rand.Source
	if cfg.Seed != nil {
		src = rand.NewPCG(cfg.Seed[0], cfg.Seed[1])
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Simulation{
		rng:        rand.New(src),
		chatChance: chanceOr(cfg.ChatChance, domain.ChatTickChance),
		cameraOn:   chanceOr(cfg.CameraOn, domain.AmbientCameraOnChance),
		micOn:      chanceOr(cfg.MicOn, domain.AmbientMicOnChance),
		phrases:    Phrases(cfg.Locale),
	}
}

// NextMessage implements ActivitySource
func (s *Simulation) NextMessage(guests []domain.Participant) (domain.Participant, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(guests) == 0 || s.rng.Float64() >= s.chatChance {
		return domain.Participant{}, "", false
	}
	author := guests[s.rng.IntN(len(guests))]
	return author, s.phrases[s.rng.IntN(len(s.phrases))], true
}

// NextToggle implements ActivitySource
func (s *Simulation) NextToggle(guests []domain.Participant) (string, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(guests) == 0 {
		return "", false, false
	}
	p := guests[s.rng.IntN(len(guests))]
	return p.ID, s.rng.Float64() < 0.5, true
}

// InitialDevices implements ActivitySource
func (s *Simulation) InitialDevices() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.cameraOn, s.rng.Float64() < s.micOn
}
