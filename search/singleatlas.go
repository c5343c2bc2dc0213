package search

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/nullforge/atlaspack/pack"
	"github.com/nullforge/atlaspack/raster"
)

// AtlasSizes are the candidate bin sizes tried by FindBestSingleAtlas,
// largest first.
var AtlasSizes = [...]int{2048, 1536, 1024}

// maxCandidateSize is the size the pre-check tests against, independent of
// which of AtlasSizes ends up chosen.
const maxCandidateSize = 2048

// permutationsPerConfig is the number of block-shuffle permutations tried
// per (size, sort, placement) triple.
const permutationsPerConfig = 2

// refinementIterations is the number of fully-shuffled global-refinement
// passes run against the grid winner's (size, placement).
const refinementIterations = 10

// candidate describes one grid cell to evaluate: its (size, sort,
// placement) triple and, when permIndex >= 0, which block-shuffle
// permutation of that triple to try instead of the plain sort. configSeed
// is the seed blockShuffle uses for a permutation candidate; refine records
// its own shuffle seed there for the candidate it returns.
type candidate struct {
	size       int
	sortIdx    int // index into pack.SearchStrategies
	policyIdx  int // index into pack.Policies
	permIndex  int // -1 = plain sorted pack, >=0 = block-shuffle permutation
	configSeed int
}

// FindBestSingleAtlas runs the exhaustive grid search over (atlas size ×
// sort × placement), the per-triple block-shuffle permutations, and the
// global refinement pass, ranked by the three-key score in score.better.
// Returns nil if no placement fits at all: the caller, the adaptive
// driver, treats that as a signal to stop or fall back.
//
// onCandidate, if non-nil, is invoked once per candidate configuration
// evaluated (a checkpoint for progress reporting); it may be called
// concurrently from multiple goroutines.
//
// Evaluation of independent candidates is parallelized with a bounded
// worker pool; the winner is picked by a single sequential reduction over
// results in canonical candidate order, so the outcome is identical
// regardless of completion order or GOMAXPROCS.
func FindBestSingleAtlas(ctx context.Context, backend raster.Backend, items []Item, padding int, onCandidate func()) *Atlas {
	if len(items) == 0 {
		return nil
	}
	for _, it := range items {
		if it.W+2*padding > maxCandidateSize || it.H+2*padding > maxCandidateSize {
			return nil
		}
	}

	candidates := buildGrid()
	results := evaluate(ctx, backend, items, padding, candidates, onCandidate)

	best, bestScore, bestCandidate := reduceBest(results, candidates)
	if best == nil {
		return nil
	}

	refined, refinedScore, _ := refine(ctx, backend, items, padding, bestCandidate.size, bestCandidate.policyIdx, bestScore, onCandidate)
	if refined != nil && refinedScore.better(bestScore) {
		best = refined
	}
	return best
}

// buildGrid enumerates the (size × sort × placement) grid plus its
// block-shuffle permutations. counter numbers the (size, sort, placement)
// configurations; the plain cell carries it as configSeed, and permutation
// perm of that cell is seeded with size+counter+perm*1000.
func buildGrid() []candidate {
	var out []candidate
	counter := 0
	for _, size := range AtlasSizes {
		for pIdx := range pack.Policies {
			for sIdx := range pack.SearchStrategies {
				counter++
				out = append(out, candidate{size: size, sortIdx: sIdx, policyIdx: pIdx, permIndex: -1, configSeed: counter})
				for perm := 0; perm < permutationsPerConfig; perm++ {
					out = append(out, candidate{size: size, sortIdx: sIdx, policyIdx: pIdx, permIndex: perm, configSeed: size + counter + perm*1000})
				}
			}
		}
	}
	return out
}

// evaluate runs PackInto for every candidate concurrently, bounded to a
// small worker pool, and returns results aligned by index with
// candidates.
func evaluate(ctx context.Context, backend raster.Backend, items []Item, padding int, candidates []candidate, onCandidate func()) []*Atlas {
	results := make([]*Atlas, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit())

	for i := range candidates {
		i := i
		c := candidates[i]
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			ordered := orderedItems(items, c)
			results[i] = PackInto(backend, ordered, c.size, pack.SortNone, pack.Policies[c.policyIdx], padding)
			if onCandidate != nil {
				onCandidate()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// orderedItems produces the item sequence a candidate should be packed
// with: the plain sort for permIndex==-1, or that sort's block-shuffled
// variant otherwise. PackInto is always invoked with pack.SortNone
// afterward since the ordering has already been applied.
func orderedItems(items []Item, c candidate) []Item {
	sorted := pack.Sort(items, pack.SearchStrategies[c.sortIdx])
	if c.permIndex < 0 {
		return sorted
	}
	return blockShuffle(sorted, c.configSeed)
}

// blockShuffle applies a deterministic block-shuffle: block size
// max(3, n/10), shuffling successive overlapping windows of that size
// stepping by block/2, stopping once the window would run past the end
// (the last window starts at or before n-block).
func blockShuffle[T any](items []T, seed int) []T {
	n := len(items)
	out := make([]T, n)
	copy(out, items)

	block := max(3, n/10)
	if block > n {
		return out
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	for i := 0; i <= n-block; i += max(block/2, 1) {
		rng.Shuffle(block, func(a, b int) {
			out[i+a], out[i+b] = out[i+b], out[i+a]
		})
	}
	return out
}

// refine runs the global-refinement pass: 10 iterations of a
// fully-shuffled input, packed with sort "none" against the grid winner's
// (size, placement), seeds 5000..5009.
func refine(ctx context.Context, backend raster.Backend, items []Item, padding, size, policyIdx int, baseline score, onCandidate func()) (*Atlas, score, candidate) {
	type result struct {
		atlas *Atlas
		sc    score
		seed  int
	}
	results := make([]result, refinementIterations)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit())

	for i := 0; i < refinementIterations; i++ {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			seed := 5000 + i
			shuffled := fullShuffle(items, seed)
			atlas := PackInto(backend, shuffled, size, pack.SortNone, pack.Policies[policyIdx], padding)
			results[i] = result{atlas: atlas, sc: scoreOf(atlas), seed: seed}
			if onCandidate != nil {
				onCandidate()
			}
			return nil
		})
	}
	_ = g.Wait()

	best := baseline
	var bestAtlas *Atlas
	var bestCand candidate
	for i, r := range results {
		if r.atlas == nil {
			continue
		}
		if r.sc.better(best) {
			best = r.sc
			bestAtlas = r.atlas
			bestCand = candidate{size: size, policyIdx: policyIdx, permIndex: i, configSeed: r.seed}
		}
	}
	return bestAtlas, best, bestCand
}

// fullShuffle returns a fully-shuffled copy of items seeded deterministically.
func fullShuffle[T any](items []T, seed int) []T {
	out := make([]T, len(items))
	copy(out, items)
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(out), func(a, b int) { out[a], out[b] = out[b], out[a] })
	return out
}

// reduceBest walks results in canonical candidate order (the order
// buildGrid produced them in, which is a fixed function of size, policy,
// sort and permutation index) and keeps the first strictly-better one,
// so parallel evaluation order never affects the outcome.
func reduceBest(results []*Atlas, candidates []candidate) (*Atlas, score, candidate) {
	var best *Atlas
	var bestScore score
	var bestCand candidate
	for i, atlas := range results {
		if atlas == nil {
			continue
		}
		sc := scoreOf(atlas)
		if best == nil || sc.better(bestScore) {
			best = atlas
			bestScore = sc
			bestCand = candidates[i]
		}
	}
	return best, bestScore, bestCand
}

func scoreOf(a *Atlas) score {
	if a == nil {
		return score{}
	}
	placedArea := 0
	for _, uv := range a.UV {
		placedArea += uv.Width * uv.Height
	}
	return score{count: a.Count, area: a.Width * a.Height, placedArea: placedArea}
}

// workerLimit bounds the concurrent candidate-evaluation fan-out.
func workerLimit() int {
	return 8
}
