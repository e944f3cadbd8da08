// internal/engine/headline.go
package engine

import (
	"math/rand"
	"sync"

	"github.com/cespare/xxhash/v2"

	"brand-audit/internal/models"
)

var headlines = map[models.Phase][]string{
	models.PhaseBrandingFirst: {
		"Critical Visual Foundations Required",
		"Build the Identity Before Anything Else",
		"Urgent: The Brand Has No Solid Base Yet",
	},
	models.PhaseStrategyFirst: {
		"Strategic Alignment Needed Before Execution",
		"Define the Message Before Amplifying It",
		"The Look Exists, the Direction Does Not",
	},
	models.PhaseReadyForWeb: {
		"Ecosystem Ready for Digitalization",
		"Solid Foundations, Time to Go Digital",
		"Ready to Build the Digital Presence",
	},
	models.PhaseReadyToScale: {
		"Brand Optimized for Accelerated Growth",
		"Ready to Scale Reach and Revenue",
		"Strong Brand, Time to Grow",
	},
}

// HeadlinePicker selects one entry from a non-empty headline pool.
type HeadlinePicker interface {
	Pick(record *models.AuditRecord, pool []string) string
}

// HashPicker picks by hashing the project name, so the same project always
// gets the same headline.
type HashPicker struct{}

func (HashPicker) Pick(record *models.AuditRecord, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	name := ""
	if record != nil {
		name = record.ProjectName
	}
	return pool[xxhash.Sum64String(name)%uint64(len(pool))]
}

// RandomPicker picks from an injected random source. It is safe for
// concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPicker(seed int64) *RandomPicker {
	return &RandomPicker{rnd: rand.New(rand.NewSource(seed))}
}

func (p *RandomPicker) Pick(_ *models.AuditRecord, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return pool[p.rnd.Intn(len(pool))]
}

// Headline returns the headline for phase using picker, falling back to the
// phase label when the phase has no pool.
func Headline(picker HeadlinePicker, record *models.AuditRecord, phase models.Phase) string {
	pool := headlines[phase]
	if len(pool) == 0 {
		return phase.Label()
	}
	if picker == nil {
		picker = HashPicker{}
	}
	return picker.Pick(record, pool)
}
