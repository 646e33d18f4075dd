package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/histquiz/internal/adapt"
	"github.com/abhisek/histquiz/internal/config"
	"github.com/abhisek/histquiz/internal/llm"
	"github.com/abhisek/histquiz/internal/logging"
	"github.com/abhisek/histquiz/internal/metrics"
	"github.com/abhisek/histquiz/internal/questiongen"
	"github.com/abhisek/histquiz/internal/recommend"
	sessionscreen "github.com/abhisek/histquiz/internal/screens/session"
	sess "github.com/abhisek/histquiz/internal/session"
	"github.com/abhisek/histquiz/internal/store"
	"github.com/abhisek/histquiz/internal/topics"
	"github.com/abhisek/histquiz/internal/youtube"
)

// services holds everything a quiz run needs.
type services struct {
	store    *store.Store
	metrics  *metrics.Metrics
	provider llm.Provider // nil when no LLM is configured
	searcher youtube.Searcher
	quiz     sessionscreen.Deps
	topic    *topics.Topic
	catalog  []topics.Topic
}

func addQuizFlags(cmd *cobra.Command) {
	cmd.Flags().String("topic", "", "Quiz only this topic (catalog ID, name, or any custom subject)")
	cmd.Flags().Int("questions", 0, "Questions per quiz (overrides HISTQUIZ_MAX_QUESTIONS)")
	cmd.Flags().String("level", "", "Starting level: Easy, Medium or Hard")
}

// quizConfig merges flags over the loaded configuration.
func quizConfig(cmd *cobra.Command, cfg *config.App) (sess.Config, error) {
	qc := sess.DefaultConfig()
	qc.MaxQuestions = cfg.Quiz.MaxQuestions
	if n, _ := cmd.Flags().GetInt("questions"); n > 0 {
		qc.MaxQuestions = n
	}

	levelName := cfg.Quiz.StartLevel
	if l, _ := cmd.Flags().GetString("level"); l != "" {
		levelName = l
	}
	level, err := topics.ParseLevel(levelName)
	if err != nil {
		return qc, err
	}
	qc.StartLevel = level

	qc.Adapt = adapt.Config{
		Min:        topics.Easy,
		Max:        topics.Hard,
		RaiseAfter: cfg.Adapt.RaiseAfter,
		LowerAfter: cfg.Adapt.LowerAfter,
	}
	return qc, nil
}

// fixedTopic returns the topic chosen by --topic or HISTQUIZ_TOPIC.
func fixedTopic(cmd *cobra.Command, cfg *config.App, catalog []topics.Topic) *topics.Topic {
	name := cfg.Quiz.Topic
	if f := cmd.Flags().Lookup("topic"); f != nil && f.Value.String() != "" {
		name = f.Value.String()
	}
	if name == "" {
		return nil
	}
	t := topics.Resolve(catalog, name)
	return &t
}

// newSearcher picks the YouTube Data API when a key is set and falls back
// to scraping the public results page. It returns nil when videos are off.
func newSearcher(ctx context.Context, v config.Video) (youtube.Searcher, error) {
	if v.Disabled {
		return nil, nil
	}
	if v.YouTubeAPIKey != "" {
		return youtube.NewAPISearcher(ctx, v.YouTubeAPIKey)
	}
	return youtube.NewPageSearcher(v.Timeout), nil
}

// buildServices opens the store and wires the quiz. The returned cleanup
// closes everything that was opened.
func buildServices(cmd *cobra.Command) (*services, func(), error) {
	ctx := cmd.Context()
	cfg := appCfg
	log := logging.FromContext(ctx)

	qc, err := quizConfig(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { st.Close() }

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Warn().Err(err).Str("addr", cfg.Metrics.Addr).Msg("metrics server stopped")
			}
		}()
	}

	svc := &services{
		store:   st,
		metrics: m,
		catalog: topics.DefaultTopics(),
	}
	svc.topic = fixedTopic(cmd, cfg, svc.catalog)

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), m)
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		log.Warn().Msg("no LLM provider configured")
	case err != nil:
		cleanup()
		return nil, nil, fmt.Errorf("LLM provider: %w", err)
	default:
		svc.provider = provider
	}

	searcher, err := newSearcher(ctx, cfg.Video)
	if err != nil {
		log.Warn().Err(err).Msg("youtube API unavailable, using page search")
		searcher = youtube.NewPageSearcher(cfg.Video.Timeout)
	}
	svc.searcher = searcher

	rc := recommend.DefaultConfig()
	rc.Audience = cfg.Quiz.Audience
	rec := recommend.NewService(recommend.NewRecommender(provider, rc), searcher, st.EventRepo(), m)

	engine := sess.Deps{
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		Recommend: rec,
		Metrics:   m,
		Audience:  cfg.Quiz.Audience,
	}
	if svc.provider != nil {
		engine.Generator = questiongen.New(svc.provider, questiongen.DefaultConfig())
	}

	reportDir, err := store.DataDir()
	if err != nil {
		reportDir = "."
	}

	svc.quiz = sessionscreen.Deps{
		Engine:          engine,
		Config:          qc,
		Ctx:             ctx,
		QuestionTimeout: cfg.Quiz.GenTimeout,
		ReportDir:       reportDir,
	}
	return svc, cleanup, nil
}

// planner builds the focus model for one quiz.
func (s *services) planner() *sess.Planner {
	return sess.NewPlanner(s.catalog, s.topic, s.quiz.Config)
}
