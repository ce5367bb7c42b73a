package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bfunes/runwaysim/internal/descriptor"
	"github.com/bfunes/runwaysim/internal/randgen"
	"github.com/bfunes/runwaysim/internal/tuning"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "aircraft.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadSkipsBlankAndCommentLines(t *testing.T) {
	path := writeFile(t, "# header\n\n0 5 10\n# trailing comment\n1 0 20\n")
	descs, err := descriptor.Load(path, tuning.Default(), randgen.New())
	require.NoError(t, err)
	require.Len(t, descs, 2)
	require.Equal(t, descriptor.Commercial, descs[0].Class)
	require.Equal(t, 5*time.Second, descs[0].InterArrivalDelay)
	require.Equal(t, 10*time.Second, descs[0].RunwayOccupancy)
	require.Equal(t, descriptor.Cargo, descs[1].Class)
}

func TestLoadSkipsUnparsableLines(t *testing.T) {
	path := writeFile(t, "not three ints\n0 5\n9 5 10\n2 0 5\nabc def ghi\n")
	descs, err := descriptor.Load(path, tuning.Default(), randgen.New())
	require.NoError(t, err)
	require.Len(t, descs, 1)
	require.Equal(t, descriptor.Emergency, descs[0].Class)
}

func TestLoadAssignsDenseIDs(t *testing.T) {
	path := writeFile(t, "0 0 1\n1 0 1\n2 0 1\n")
	descs, err := descriptor.Load(path, tuning.Default(), randgen.New())
	require.NoError(t, err)
	for i, d := range descs {
		require.Equal(t, i, d.ID)
	}
}

func TestLoadCapsAtMaxAircraft(t *testing.T) {
	tn := tuning.Default()
	tn.MaxAircraft = 3
	contents := ""
	for i := 0; i < 10; i++ {
		contents += "0 0 1\n"
	}
	path := writeFile(t, contents)
	descs, err := descriptor.Load(path, tn, randgen.New())
	require.NoError(t, err)
	require.Len(t, descs, 3)
}

func TestLoadFuelReserveWithinBounds(t *testing.T) {
	path := writeFile(t, "0 0 1\n1 0 1\n2 0 1\n")
	rng := randgen.New()
	rng.Seed(99)
	tn := tuning.Default()
	descs, err := descriptor.Load(path, tn, rng)
	require.NoError(t, err)
	for _, d := range descs {
		secs := int(d.FuelReserve.Seconds())
		require.GreaterOrEqual(t, secs, tn.FuelReserveMinSeconds)
		require.LessOrEqual(t, secs, tn.FuelReserveMaxSeconds)
	}
}

func TestLoadOpenFailure(t *testing.T) {
	_, err := descriptor.Load(filepath.Join(t.TempDir(), "missing.txt"), tuning.Default(), randgen.New())
	require.Error(t, err)
}
