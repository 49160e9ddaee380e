package session

import (
	"fmt"
	"strings"

	"github.com/abhisek/lexiz/internal/prng"
)

// RequeuePolicy decides, after the n-th advance, whether a missed word is
// due to be reinserted.
type RequeuePolicy interface {
	Due(answered int) bool
}

// FixedInterval reinserts every k advances.
type FixedInterval int

func (k FixedInterval) Due(answered int) bool {
	return k > 0 && answered%int(k) == 0
}

// RandomInterval picks a fresh interval from Choices at every check.
type RandomInterval struct {
	Choices []int
	Source  prng.Source
}

func (r RandomInterval) Due(answered int) bool {
	src := r.Source
	if src == nil {
		src = prng.Unseeded()
	}
	k := prng.Choice(src, r.Choices)
	return k > 0 && answered%k == 0
}

// NoRequeue never reinserts.
type NoRequeue struct{}

func (NoRequeue) Due(int) bool { return false }

// DefaultRequeueInterval is the interval used by FixedInterval policies
// when none is configured.
const DefaultRequeueInterval = 5

// DefaultPolicy returns FixedInterval(DefaultRequeueInterval).
func DefaultPolicy() RequeuePolicy {
	return FixedInterval(DefaultRequeueInterval)
}

// ParsePolicy builds a policy by name: "fixed", "random" or "off".
func ParsePolicy(name string, interval int) (RequeuePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fixed":
		if interval <= 0 {
			interval = DefaultRequeueInterval
		}
		return FixedInterval(interval), nil
	case "random":
		return RandomInterval{Choices: []int{2, 3}}, nil
	case "off", "none":
		return NoRequeue{}, nil
	default:
		return nil, fmt.Errorf("unknown requeue policy %q: must be fixed, random or off", name)
	}
}
