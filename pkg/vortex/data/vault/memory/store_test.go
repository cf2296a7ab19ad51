package memory

import (
	"testing"

	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault/tests"
)

func TestVaultMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}
