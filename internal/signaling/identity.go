package signaling

import (
	"strconv"

	"github.com/google/uuid"
)

// IdentityGenerator mints student identities. A generator belongs to a
// single room instance and must never hand out the same identity twice
// within that instance, including for students that already left.
type IdentityGenerator interface {
	Next() string
}

// IdentityFactory produces a fresh generator for each new room.
type IdentityFactory func() IdentityGenerator

// SequentialIdentity mints "student1", "student2", ... in join order.
// Deterministic, which keeps the protocol easy to follow in logs and tests.
func SequentialIdentity() IdentityGenerator {
	return &sequentialGenerator{}
}

type sequentialGenerator struct {
	next int
}

func (g *sequentialGenerator) Next() string {
	g.next++
	return "student" + strconv.Itoa(g.next)
}

// RandomIdentity mints UUID-backed identities. Preferred in production so
// an identity can never be confused across rooms or room instances.
func RandomIdentity() IdentityGenerator {
	return randomGenerator{}
}

type randomGenerator struct{}

func (randomGenerator) Next() string {
	return "student-" + uuid.NewString()
}
