// Package commentary turns a delivery outcome into a line of text.
package commentary

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

// Kind is the type of delivery being described.
type Kind string

const (
	Legal  Kind = "legal"
	Wide   Kind = "wide"
	NoBall Kind = "no_ball"
	Wicket Kind = "wicket"
)

var (
	dotPhrases = []string{
		"defended solidly back to the bowler",
		"beaten outside off stump",
		"straight to the fielder, no run",
		"left alone outside off",
		"good length, blocked",
	}
	singlePhrases = []string{
		"pushed into the gap for a quick single",
		"worked off the pads for one",
		"dropped at his feet and they scamper through",
		"nudged to third man",
	}
	twoPhrases = []string{
		"driven into the deep, they come back for two",
		"good running between the wickets",
		"flicked through midwicket for a couple",
	}
	threePhrases = []string{
		"chased down just inside the rope, three taken",
		"excellent running, they come back for the third",
	}
	fourPhrases = []string{
		"cracking drive through the covers",
		"pulled away in front of square",
		"races away to the boundary",
		"beautiful timing, no need to run",
	}
	sixPhrases = []string{
		"launched over long on",
		"that is out of the ground",
		"clean strike into the stands",
		"picked up and deposited over midwicket",
	}
	widePhrases = []string{
		"strays down the leg side",
		"too wide outside off, the umpire stretches the arms",
		"lost control of that one",
	}
	noBallPhrases = []string{
		"overstepped, the umpire signals no ball",
		"front foot no ball",
		"above waist height, called no ball",
	}
	wicketPhrases = []string{
		"that is the end of the innings for the batsman",
		"big breakthrough for the bowling side",
		"the batsman has to go",
		"a crucial wicket",
	}
)

// Generator picks phrases from a seeded random source. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator drawing from src.
func New(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// NewSeeded returns a Generator whose output is fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate describes one delivery as "<bowler> to <batsman>, <outcome>, <phrase>".
// over and ball are accepted for callers that log them and do not change the text.
func (g *Generator) Generate(bowler, batsman string, runs int, kind Kind, over, ball int, wicketType string) string {
	return fmt.Sprintf("%s to %s, %s, %s", bowler, batsman, outcome(runs, kind), g.phrase(runs, kind, wicketType))
}

func outcome(runs int, kind Kind) string {
	switch kind {
	case Wicket:
		return "OUT"
	case Wide:
		return fmt.Sprintf("%d wides", runs+1)
	case NoBall:
		return fmt.Sprintf("%d (nb)", runs+1)
	}
	switch runs {
	case 0:
		return "dot ball"
	case 4:
		return "FOUR"
	case 6:
		return "SIX"
	case 1:
		return "1 run"
	default:
		return fmt.Sprintf("%d runs", runs)
	}
}

func (g *Generator) phrase(runs int, kind Kind, wicketType string) string {
	switch kind {
	case Wicket:
		p := g.pick(wicketPhrases)
		if wicketType != "" {
			p += " (" + strings.ReplaceAll(wicketType, "_", " ") + ")"
		}
		return p
	case Wide:
		return g.pick(widePhrases)
	case NoBall:
		return g.pick(noBallPhrases)
	}
	switch runs {
	case 0:
		return g.pick(dotPhrases)
	case 1:
		return g.pick(singlePhrases)
	case 2:
		return g.pick(twoPhrases)
	case 3:
		return g.pick(threePhrases)
	case 4:
		return g.pick(fourPhrases)
	case 6:
		return g.pick(sixPhrases)
	default:
		return fmt.Sprintf("%d runs scored", runs)
	}
}

func (g *Generator) pick(pool []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return pool[g.rng.IntN(len(pool))]
}

// ShortName truncates a display name to eight characters.
func ShortName(name string) string {
	r := []rune(name)
	if len(r) <= 8 {
		return name
	}
	return string(r[:8])
}
