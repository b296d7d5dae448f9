package dem

import (
	"fmt"
	"math"
	"sort"

	"github.com/blossomdecode/sparseblossom/core"
	"github.com/blossomdecode/sparseblossom/dijkstra"
	"github.com/blossomdecode/sparseblossom/graph"
)

// maxDiscretizationLevels bounds the requested level count so that a
// quantized weight (level count times the largest floating-point weight
// magnitude seen) stays comfortably inside int64 for any weight produced
// by a realistic error probability.
const maxDiscretizationLevels = 1 << 30

// boundaryDetector is the reserved detector name standing in for the
// virtual boundary vertex inside the working core.Graph. Callers' real
// detector names are never expected to collide with it.
const boundaryDetector = "\x00boundary"

// ObservableSet is the set of observable indices one error mechanism
// flips, named by position (bit i of the resulting mask for observable
// i). Indices must be < 64, the width of a graph.MatchingMask.
type ObservableSet []int

func (o ObservableSet) mask() (graph.MatchingMask, error) {
	var m graph.MatchingMask
	for _, i := range o {
		if i < 0 || i >= 64 {
			return 0, fmt.Errorf("%w: observable %d", ErrObservableOverflow, i)
		}
		m |= graph.MatchingMask(1) << uint(i)
	}
	return m, nil
}

// MergeWeights combines two log-odds weights representing independent
// error mechanisms on the same detector pair into the weight of their
// combined effect, via the stable log-sum-exp identity (spec.md §6.1,
// §8 testable property 7):
//
//	merge(a,b) = sign(a)*sign(b)*min(|a|,|b|) + log(1+exp(-|a+b|)) - log(1+exp(-|a-b|))
//
// It is commutative and associative, so repeated calls accumulate any
// number of mechanisms on one edge regardless of arrival order.
func MergeWeights(a, b float64) float64 {
	sign := func(x float64) float64 {
		if x < 0 {
			return -1
		}
		return 1
	}
	absA, absB := math.Abs(a), math.Abs(b)
	minAbs := absA
	if absB < absA {
		minAbs = absB
	}
	signedMin := sign(a) * sign(b) * minAbs
	return signedMin + math.Log1p(math.Exp(-math.Abs(a+b))) - math.Log1p(math.Exp(-math.Abs(a-b)))
}

// pairKey identifies the unordered detector pair a mechanism targets. b is
// boundaryDetector for a single-detector (boundary) mechanism.
type pairKey struct{ a, b string }

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

type mechanism struct {
	a, b   string
	weight float64
	obs    graph.MatchingMask
}

// Builder accumulates error mechanisms and, via Discretize, turns them
// into a graph.MatchingGraph ready for mwpm.Decode. See the package doc
// for the two-phase accumulate/discretize design.
type Builder struct {
	cfg        builderConfig
	mechanisms map[pairKey]*mechanism
}

// NewBuilder constructs an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	return &Builder{
		cfg:        newBuilderConfig(opts...),
		mechanisms: make(map[pairKey]*mechanism),
	}
}

// AddMechanism records one independent error mechanism: it fires with
// probability p, triggers the one or two detectors named, and flips the
// observables in observables. A mechanism already present on the same
// detector pair is merged via MergeWeights rather than replaced, and its
// observable mask is XORed with the new mechanism's (two independent
// mechanisms both firing cancels any observable they share).
func (b *Builder) AddMechanism(detectors []string, p float64, observables ObservableSet) error {
	switch len(detectors) {
	case 0:
		return ErrNoDetectors
	case 1, 2:
	default:
		return ErrTooManyDetectors
	}
	for _, d := range detectors {
		if d == "" {
			return ErrEmptyDetectorID
		}
	}
	if len(detectors) == 2 && detectors[0] == detectors[1] {
		return ErrDuplicateDetector
	}
	if !(p > 0 && p < 1) {
		return fmt.Errorf("%w: p=%v", ErrInvalidProbability, p)
	}

	mask, err := observables.mask()
	if err != nil {
		return err
	}

	a := detectors[0]
	bName := boundaryDetector
	if len(detectors) == 2 {
		bName = detectors[1]
	}
	weight := math.Log((1 - p) / p)

	key := newPairKey(a, bName)
	if existing, ok := b.mechanisms[key]; ok {
		existing.weight = MergeWeights(existing.weight, weight)
		existing.obs = existing.obs.Xor(mask)
		return nil
	}
	b.mechanisms[key] = &mechanism{a: a, b: bName, weight: weight, obs: mask}
	return nil
}

// Discretize quantizes every accumulated mechanism's floating-point weight
// into a non-negative-after-sync integer across levels distinct levels,
// builds the resulting graph.MatchingGraph, runs its one-time
// negative-weight canonicalisation, and returns a Normalizer that lets the
// caller translate excited-detector names and the final decoded mask back
// and forth across both the discretization and the canonicalisation.
//
// It also assembles the same detectors into a weighted *core.Graph (each
// edge carrying the absolute value of its quantized weight) and, when any
// boundary mechanism exists, runs one dijkstra.Dijkstra query from the
// boundary, using only reachability and logging (not failing on) any
// detector the boundary cannot reach — a
// connectivity diagnostic the matching itself has no use for, but that a
// caller feeding in a malformed error model would want surfaced early.
func (b *Builder) Discretize(levels int) (*graph.MatchingGraph, Normalizer, error) {
	if len(b.mechanisms) == 0 {
		return nil, Normalizer{}, ErrNoMechanisms
	}
	if levels <= 0 || levels > maxDiscretizationLevels {
		return nil, Normalizer{}, fmt.Errorf("%w: levels=%d", ErrResolutionOverflow, levels)
	}

	keys := make([]pairKey, 0, len(b.mechanisms))
	for k := range b.mechanisms {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	maxAbs := 0.0
	for _, k := range keys {
		if w := math.Abs(b.mechanisms[k].weight); w > maxAbs {
			maxAbs = w
		}
	}
	scale := 1.0
	if maxAbs > 0 {
		scale = float64(levels) / maxAbs
	}

	nameSet := make(map[string]struct{})
	hasBoundary := false
	for _, k := range keys {
		nameSet[k.a] = struct{}{}
		if k.b == boundaryDetector {
			hasBoundary = true
		} else {
			nameSet[k.b] = struct{}{}
		}
	}
	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)

	index := make(map[string]graph.NodeID, len(names))
	for i, name := range names {
		index[name] = graph.NodeID(i)
	}

	coreGraph := core.NewGraph(core.WithWeighted())
	mg := graph.New[graph.MatchingMask](len(names), graph.MatchingMask(0))

	for _, k := range keys {
		m := b.mechanisms[k]
		quantized := int64(math.Round(m.weight * scale))

		coreWeight := quantized
		if coreWeight < 0 {
			coreWeight = -coreWeight
		}

		if m.b == boundaryDetector {
			if _, err := coreGraph.AddEdge(m.a, boundaryDetector, coreWeight); err != nil {
				return nil, Normalizer{}, fmt.Errorf("dem: core graph boundary edge: %w", err)
			}
			if _, err := mg.AddBoundaryEdge(index[m.a], quantized, m.obs); err != nil {
				return nil, Normalizer{}, fmt.Errorf("dem: boundary edge: %w", err)
			}
			continue
		}

		if _, err := coreGraph.AddEdge(m.a, m.b, coreWeight); err != nil {
			return nil, Normalizer{}, fmt.Errorf("dem: core graph edge: %w", err)
		}
		if _, err := mg.AddEdge(index[m.a], index[m.b], quantized, m.obs); err != nil {
			return nil, Normalizer{}, fmt.Errorf("dem: edge: %w", err)
		}
	}

	toggle, boundaryMask, err := mg.SyncNegativeWeights()
	if err != nil {
		return nil, Normalizer{}, fmt.Errorf("dem: negative-weight sync: %w", err)
	}

	if hasBoundary {
		b.warnUnreachableDetectors(coreGraph, names, levels)
	}

	return mg, Normalizer{
		scale:        scale,
		index:        index,
		names:        names,
		toggle:       toggle,
		boundaryMask: boundaryMask,
	}, nil
}

// warnUnreachableDetectors runs one dijkstra.Dijkstra query from the
// boundary vertex, using only reachability, and logs a warning for every
// detector it cannot reach. Failure to run the query (e.g. a stray negative
// weight in coreGraph, which should not happen since its weights are the
// absolute values of the quantized weights) is itself only logged: this is
// a diagnostic, never a build failure.
func (b *Builder) warnUnreachableDetectors(coreGraph *core.Graph, names []string, levels int) {
	dist, _, err := dijkstra.Dijkstra(
		coreGraph,
		dijkstra.Source(boundaryDetector),
		dijkstra.WithInfEdgeThreshold(int64(levels)+1),
	)
	if err != nil {
		b.cfg.logger.WithError(err).Warn("dem: boundary reachability diagnostic failed")
		return
	}
	for _, name := range names {
		if d, ok := dist[name]; !ok || d == math.MaxInt64 {
			b.cfg.logger.Warnf("dem: detector %q is unreachable from the boundary", name)
		}
	}
}
