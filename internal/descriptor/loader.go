package descriptor

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bfunes/runwaysim/internal/randgen"
	"github.com/bfunes/runwaysim/internal/tuning"
)

// Load reads the line-oriented descriptor file at path. Lines beginning
// with '#' and blank lines are ignored; each remaining line must hold
// three whitespace-separated integers (class, inter-arrival seconds,
// runway seconds). Unparsable lines are silently skipped. Reading stops
// once tn.MaxAircraft valid descriptors have been collected.
//
// Load enforces no count bounds beyond the cap above; the caller decides
// whether zero descriptors is an error.
func Load(path string, tn tuning.Tuning, rng *randgen.Rand) ([]Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open descriptor file: %w", err)
	}
	defer f.Close()

	var out []Descriptor
	id := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() && len(out) < tn.MaxAircraft {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		classVal, err1 := strconv.Atoi(fields[0])
		interArrival, err2 := strconv.Atoi(fields[1])
		runwaySeconds, err3 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		if classVal < int(Commercial) || classVal > int(Emergency) {
			continue
		}
		if interArrival < 0 || runwaySeconds <= 0 {
			continue
		}
		fuel := rng.IntRange(tn.FuelReserveMinSeconds, tn.FuelReserveMaxSeconds)
		out = append(out, Descriptor{
			ID:                id,
			Class:             Class(classVal),
			InterArrivalDelay: time.Duration(interArrival) * time.Second,
			RunwayOccupancy:   time.Duration(runwaySeconds) * time.Second,
			FuelReserve:       time.Duration(fuel) * time.Second,
		})
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read descriptor file: %w", err)
	}
	return out, nil
}
