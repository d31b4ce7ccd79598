package rank

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/semrank/semrank/ai"
	"github.com/semrank/semrank/cache"
	"github.com/semrank/semrank/core"
	"github.com/semrank/semrank/feedback"
	"github.com/semrank/semrank/keywords"
	"github.com/semrank/semrank/query"
)

const (
	// Default cache capacities: thumbnails are heavier to produce than
	// query vectors, but queries repeat more.
	defaultImageCacheSize = 128
	defaultQueryCacheSize = 256

	// maxFeedbackExamples bounds how many history examples per polarity
	// feed the feedback-similarity stage.
	maxFeedbackExamples = 20
)

// Ranker scores and orders candidate items against a query. It owns the
// two embedding caches shared across requests and is safe for
// concurrent use.
type Ranker struct {
	textEmbedder  ai.Embedder
	imageEmbedder ai.ImageEmbedder
	fetcher       *ai.ImageFetcher
	queryCache    *cache.VectorCache
	imageCache    *cache.VectorCache
	analyzer      *query.Analyzer
	classifier    *feedback.Classifier
	tables        *keywords.Tables
	pipeline      *Pipeline
	pool          *ants.Pool
	config        Config
	logger        *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithTextEmbedder sets the semantic text embedder. Without one the
// ranker degrades to the token-overlap fallback scorer.
func WithTextEmbedder(embedder ai.Embedder) Option {
	return func(r *Ranker) error {
		r.textEmbedder = embedder
		return nil
	}
}

// WithImageEmbedder sets the cross-modal embedder and the fetcher used
// to download thumbnails. Without them items carry no image signal.
func WithImageEmbedder(embedder ai.ImageEmbedder, fetcher *ai.ImageFetcher) Option {
	return func(r *Ranker) error {
		r.imageEmbedder = embedder
		r.fetcher = fetcher
		return nil
	}
}

// WithConfig sets the fusion configuration.
func WithConfig(cfg Config) Option {
	return func(r *Ranker) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if cfg.PoolSize < 1 {
			cfg.PoolSize = DefaultConfig().PoolSize
		}
		r.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithCacheSizes overrides the query and image cache capacities.
func WithCacheSizes(querySize, imageSize int) Option {
	return func(r *Ranker) error {
		if querySize > 0 {
			r.queryCache = cache.New(querySize)
		}
		if imageSize > 0 {
			r.imageCache = cache.New(imageSize)
		}
		return nil
	}
}

// NewRanker creates a ranker over the given keyword tables and
// classifier. A nil classifier disables the learned-negative stage; the
// stage still runs but always sees probability zero.
func NewRanker(tables *keywords.Tables, classifier *feedback.Classifier, opts ...Option) (*Ranker, error) {
	if tables == nil {
		tables = keywords.DefaultTables()
	}

	r := &Ranker{
		queryCache: cache.New(defaultQueryCacheSize),
		imageCache: cache.New(defaultImageCacheSize),
		analyzer:   query.NewAnalyzer(tables),
		classifier: classifier,
		tables:     tables,
		pipeline:   NewPipeline(),
		config:     DefaultConfig(),
		logger:     slog.Default().With("component", "ranker"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(r.config.PoolSize)
	if err != nil {
		return nil, err
	}
	r.pool = pool

	return r, nil
}

// Release frees the worker pool.
func (r *Ranker) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// QueryCache exposes the query-text vector cache for reuse by the tag
// matcher.
func (r *Ranker) QueryCache() *cache.VectorCache {
	return r.queryCache
}

// ImageCache exposes the thumbnail vector cache for reuse by the tag
// matcher.
func (r *Ranker) ImageCache() *cache.VectorCache {
	return r.imageCache
}

// Rank scores items against the query and returns them ordered by
// descending score, ties preserving input order. Items whose text is
// empty after trimming are dropped; ErrNoValidItems is returned when
// nothing survives.
func (r *Ranker) Rank(ctx context.Context, q string, items []core.CandidateItem, history *core.FeedbackHistory) ([]core.RankedResult, core.Intent, error) {
	if strings.TrimSpace(q) == "" {
		return nil, "", ErrEmptyQuery
	}
	if len(items) == 0 {
		return nil, "", ErrNoItems
	}

	valid := make([]core.CandidateItem, 0, len(items))
	for i := range items {
		if err := core.ValidateItem(&items[i]); err != nil {
			continue
		}
		valid = append(valid, items[i])
	}
	if len(valid) == 0 {
		return nil, "", ErrNoValidItems
	}

	variants := r.analyzer.Expand(q)
	intent := r.analyzer.DetectIntent(q)
	sc := NewContext(q, variants, intent, r.tables)

	sig := r.prepareSignals(ctx, sc, valid, history)

	scored := make([]*ScoredItem, len(valid))
	var wg sync.WaitGroup
	for i := range valid {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			scored[i] = r.scoreItem(ctx, sc, sig, i)
		}
		if err := r.pool.Submit(task); err != nil {
			// Pool saturated or released; score inline rather than fail.
			task()
		}
	}
	wg.Wait()

	results := make([]core.RankedResult, len(scored))
	for i, it := range scored {
		results[i] = core.RankedResult{
			ID:          it.Item.ID,
			Score:       it.FinalScore,
			Title:       it.Item.Title,
			Text:        it.Item.Text,
			Description: it.Item.Description,
			Thumbnail:   it.Item.Thumbnail,
			TextScore:   it.TextSim,
			ImageScore:  it.ImageScore,
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	r.logger.Debug("ranked items",
		"query", q, "intent", intent,
		"items", len(valid), "variants", len(variants))
	return results, intent, nil
}

// requestSignals holds the per-request embeddings shared by all items:
// query variant vectors in both spaces, feedback example vectors, and
// the batch item embeddings.
type requestSignals struct {
	items        []core.CandidateItem
	variantVecs  [][]float32 // text space; nil when degraded to fallback
	clipVecs     [][]float32 // image space
	textVecs     [][]float32 // per-item text embeddings
	profileVecs  [][]float32 // per-item title+description embeddings
	negVecs      [][]float32
	posVecs      [][]float32
	negTexts     []string // fallback comparison texts
	posTexts     []string
	embedderLive bool
}

func (r *Ranker) prepareSignals(ctx context.Context, sc *Context, items []core.CandidateItem, history *core.FeedbackHistory) *requestSignals {
	sig := &requestSignals{items: items}

	if r.textEmbedder != nil {
		sig.variantVecs = r.cachedTextVectors(ctx, sc.Variants)
		sig.embedderLive = len(sig.variantVecs) > 0

		if sig.embedderLive {
			texts := make([]string, 0, 2*len(items))
			for i := range items {
				texts = append(texts, items[i].Text)
			}
			for i := range items {
				texts = append(texts, items[i].Profile())
			}
			vecs, err := r.textEmbedder.EmbedTexts(ctx, texts)
			if err != nil || len(vecs) != len(texts) {
				// Degrade the whole request to the fallback scorer.
				r.logger.Warn("item embedding failed, falling back to token overlap", "err", err)
				sig.embedderLive = false
			} else {
				sig.textVecs = vecs[:len(items)]
				sig.profileVecs = vecs[len(items):]
			}
		}
	}

	if r.imageEmbedder != nil {
		sig.clipVecs = r.cachedClipVectors(ctx, sc.Variants)
	}

	if history != nil {
		neg := lastExamples(history.Negative, maxFeedbackExamples)
		pos := lastExamples(history.Positive, maxFeedbackExamples)
		for i := range neg {
			sig.negTexts = append(sig.negTexts, neg[i].Text())
		}
		for i := range pos {
			sig.posTexts = append(sig.posTexts, pos[i].Text())
		}
		if sig.embedderLive {
			sig.negVecs = r.cachedContentVectors(ctx, sig.negTexts)
			sig.posVecs = r.cachedContentVectors(ctx, sig.posTexts)
		}
	}

	return sig
}

// scoreItem computes every signal for one item and runs the pipeline.
func (r *Ranker) scoreItem(ctx context.Context, sc *Context, sig *requestSignals, idx int) *ScoredItem {
	item := sig.items[idx]
	it := newScoredItem(item)

	// Text similarity: max across expansion variants.
	if sig.embedderLive {
		for _, qv := range sig.variantVecs {
			if sim := ai.Cosine(sig.textVecs[idx], qv); sim > it.TextSim {
				it.TextSim = sim
			}
		}
	} else {
		for _, variant := range sc.Variants {
			if sim := Jaccard(variant, item.Text); sim > it.TextSim {
				it.TextSim = sim
			}
		}
	}

	// Image similarity and cross-modal validation.
	if r.imageEmbedder != nil && r.fetcher != nil && item.Thumbnail != "" && len(sig.clipVecs) > 0 {
		if thumbVec := r.thumbnailVector(ctx, item.Thumbnail); thumbVec != nil {
			best := 0.0
			for _, qv := range sig.clipVecs {
				if s := rescaleCosine(ai.Cosine(thumbVec, qv)); s > best {
					best = s
				}
			}
			it.ImageScore = &best
			it.VisualScore = r.visualCategoryScore(ctx, sc, it, thumbVec)
		}
	}

	// Learned classifier and feedback similarity operate on the profile.
	if r.classifier != nil {
		it.NegProb = r.classifier.PredictNegative(item.Profile())
	}
	if sig.embedderLive {
		it.MaxNegSim = maxCosine(sig.profileVecs[idx], sig.negVecs)
		it.MaxPosSim = maxCosine(sig.profileVecs[idx], sig.posVecs)
	} else {
		it.MaxNegSim = maxJaccard(item.Profile(), sig.negTexts)
		it.MaxPosSim = maxJaccard(item.Profile(), sig.posTexts)
	}

	base := it.TextSim
	if it.ImageScore != nil {
		base = it.TextSim*r.config.TextWeight + *it.ImageScore*r.config.ImageWeight
	}

	it.FinalScore = r.pipeline.Run(base, it, sc)
	return it
}

// thumbnailVector returns the cached embedding for a thumbnail URL,
// fetching and embedding on miss. Permanent failures are memoized so
// repeated requests short-circuit. Returns nil for no image signal.
func (r *Ranker) thumbnailVector(ctx context.Context, url string) []float32 {
	if vec, ok := r.imageCache.Get(url); ok {
		return vec // nil when previously marked unfetchable
	}

	data, err := r.fetcher.Fetch(ctx, url)
	if err != nil {
		r.imageCache.SetAbsent(url)
		return nil
	}

	vec, err := r.imageEmbedder.EmbedImage(ctx, data)
	if err != nil {
		r.logger.Warn("thumbnail embedding failed", "url", url, "err", err)
		r.imageCache.SetAbsent(url)
		return nil
	}

	r.imageCache.Set(url, vec)
	return vec
}

// visualCategoryScore scores the thumbnail against the query's expected
// visual category phrases, averaging the rescaled similarities. Returns
// nil when no category matches the query, so the validation stage
// leaves the item unchanged.
func (r *Ranker) visualCategoryScore(ctx context.Context, sc *Context, it *ScoredItem, thumbVec []float32) *float64 {
	category := matchVisualCategory(sc, it, r.tables)
	if category == nil || len(category.Phrases) == 0 {
		return nil
	}

	total, counted := 0.0, 0
	for _, phrase := range category.Phrases {
		phraseVec := r.cachedClipVector(ctx, phrase)
		if phraseVec == nil {
			continue
		}
		total += rescaleCosine(ai.Cosine(thumbVec, phraseVec))
		counted++
	}
	if counted == 0 {
		return nil
	}
	avg := total / float64(counted)
	return &avg
}

// matchVisualCategory picks the first category whose query hints match,
// preferring one whose content hints also match the item.
func matchVisualCategory(sc *Context, it *ScoredItem, tables *keywords.Tables) *keywords.VisualCategory {
	for i := range tables.VisualCategories {
		cat := &tables.VisualCategories[i]
		for _, hint := range cat.QueryHints {
			if strings.Contains(sc.QueryLower, hint) {
				if len(cat.ContentHints) == 0 || countHits(it.content, cat.ContentHints) > 0 {
					return cat
				}
			}
		}
	}
	return nil
}

// cachedTextVectors embeds the given texts in the text space through
// the query cache, skipping texts that fail to embed.
func (r *Ranker) cachedTextVectors(ctx context.Context, texts []string) [][]float32 {
	vecs := make([][]float32, 0, len(texts))
	for _, text := range texts {
		key := "text:" + text
		if vec, ok := r.queryCache.Get(key); ok && vec != nil {
			vecs = append(vecs, vec)
			continue
		}
		vec, err := r.textEmbedder.EmbedText(ctx, text)
		if err != nil || len(vec) == 0 {
			r.logger.Warn("query embedding failed", "text", text, "err", err)
			continue
		}
		r.queryCache.Set(key, vec)
		vecs = append(vecs, vec)
	}
	return vecs
}

// cachedContentVectors embeds longer content texts, keyed by content
// hash to keep cache keys bounded.
func (r *Ranker) cachedContentVectors(ctx context.Context, texts []string) [][]float32 {
	vecs := make([][]float32, 0, len(texts))
	for _, text := range texts {
		key := "fb:" + core.KeyFromContent(text)
		if vec, ok := r.queryCache.Get(key); ok && vec != nil {
			vecs = append(vecs, vec)
			continue
		}
		vec, err := r.textEmbedder.EmbedText(ctx, text)
		if err != nil || len(vec) == 0 {
			continue
		}
		r.queryCache.Set(key, vec)
		vecs = append(vecs, vec)
	}
	return vecs
}

// cachedClipVectors embeds texts in the image space through the cache.
func (r *Ranker) cachedClipVectors(ctx context.Context, texts []string) [][]float32 {
	vecs := make([][]float32, 0, len(texts))
	for _, text := range texts {
		if vec := r.cachedClipVector(ctx, text); vec != nil {
			vecs = append(vecs, vec)
		}
	}
	return vecs
}

func (r *Ranker) cachedClipVector(ctx context.Context, text string) []float32 {
	key := "clip:" + text
	if vec, ok := r.queryCache.Get(key); ok {
		return vec
	}
	vec, err := r.imageEmbedder.EmbedText(ctx, text)
	if err != nil || len(vec) == 0 {
		r.logger.Warn("image-space text embedding failed", "text", text, "err", err)
		return nil
	}
	r.queryCache.Set(key, vec)
	return vec
}

// rescaleCosine maps cosine similarity from [-1,1] to [0,1], clamped.
func rescaleCosine(cos float64) float64 {
	return clamp((cos + 1.0) / 2.0)
}

func maxCosine(vec []float32, others [][]float32) float64 {
	best := 0.0
	for _, other := range others {
		if sim := ai.Cosine(vec, other); sim > best {
			best = sim
		}
	}
	return best
}

func maxJaccard(text string, others []string) float64 {
	best := 0.0
	for _, other := range others {
		if sim := Jaccard(text, other); sim > best {
			best = sim
		}
	}
	return best
}

func lastExamples(examples []core.FeedbackExample, max int) []core.FeedbackExample {
	if len(examples) <= max {
		return examples
	}
	return examples[len(examples)-max:]
}
