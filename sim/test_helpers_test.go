package sim

import (
	"bytes"
	"math/rand"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
)

// fixtureBay builds a bay from a bottom-to-top layout or fails the test.
func fixtureBay(t *testing.T, maxTier int, layout [][]int) *Bay {
	t.Helper()
	b, err := NewBayFromLayout(maxTier, layout)
	if err != nil {
		t.Fatalf("fixture layout %v: %v", layout, err)
	}
	return b
}

// digOut moves the top of the lane holding the lowest pending container to
// the first other lane with room. It always finds a destination while the
// bay holds at most (DimZ-1)*MaxTier+1 containers.
type digOut struct{}

func (digOut) Decide(obs *Observation, _ *rand.Rand) (int, int) {
	_, src, _ := obs.MinPending()
	for z, l := range obs.Lanes {
		if z != src && !l.Full {
			return src, z
		}
	}
	return src, src
}

// sameLane always requests an illegal move.
type sameLane struct{}

func (sameLane) Decide(_ *Observation, _ *rand.Rand) (int, int) { return 0, 0 }

// assertBayInvariants checks capacity, conservation and uniqueness.
func assertBayInvariants(t *testing.T, b *Bay) {
	t.Helper()
	seen := make(map[int]bool)
	for z, lane := range b.Layout() {
		if len(lane) > b.MaxTier {
			t.Errorf("lane %d holds %d containers, capacity %d", z, len(lane), b.MaxTier)
		}
		for _, c := range lane {
			if seen[c.Priority] {
				t.Errorf("priority %d stored twice", c.Priority)
			}
			seen[c.Priority] = true
		}
	}
	if b.Retrieved()+b.Stored() != b.MaxLabel {
		t.Errorf("retrieved %d + stored %d != maxLabel %d", b.Retrieved(), b.Stored(), b.MaxLabel)
	}
}

// captureLogOutput runs fn and returns the log output as a string.
func captureLogOutput(fn func()) string {
	var buf bytes.Buffer
	origOutput := logrus.StandardLogger().Out
	origLevel := logrus.GetLevel()
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.WarnLevel)
	defer func() {
		if origOutput != nil {
			logrus.SetOutput(origOutput)
		} else {
			logrus.SetOutput(os.Stderr)
		}
		logrus.SetLevel(origLevel)
	}()
	fn()
	return buf.String()
}
