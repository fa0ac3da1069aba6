package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/silverhaven/eventscout/internal/dedupe"
	"github.com/silverhaven/eventscout/internal/extract"
	"github.com/silverhaven/eventscout/internal/model"
	"github.com/silverhaven/eventscout/internal/normalize"
	"github.com/silverhaven/eventscout/internal/source"
	"github.com/silverhaven/eventscout/internal/store"
)

var fixedNow = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

const fitnessBody = "## Senior Fitness Class\nJoin us January 15, 2026 at 10:00 AM\nLocation: Community Center"
const bingoBody = "## Bingo Night\nPrizes and snacks on January 20, 2026 at 6:00 PM in the lounge"

type stubFetcher struct {
	bodies map[string]string
	errs   map[string]error
	calls  int
}

func (f *stubFetcher) Fetch(_ context.Context, src source.Descriptor) (*model.RawContent, error) {
	f.calls++
	if err, ok := f.errs[src.Name]; ok {
		return nil, err
	}
	return &model.RawContent{
		SourceName: src.Name,
		SourceURL:  src.URL,
		Body:       f.bodies[src.Name],
		FetchedAt:  fixedNow,
	}, nil
}

func testCatalog() source.Catalog {
	return source.Catalog{
		{Name: "Alpha Center", URL: "https://example.org/a", Neighborhood: "Ballard", Category: model.CategoryCommunityHub},
		{Name: "Beta Center", URL: "https://example.org/b", Neighborhood: "Magnolia", Category: model.CategoryCommunityHub},
		{Name: "Gamma Center", URL: "https://example.org/c", Neighborhood: "Queen Anne", Category: model.CategoryCommunityHub},
	}
}

func newTestPipeline(catalog source.Catalog, fetcher ContentFetcher, st store.EventStore, opts ...Option) *Pipeline {
	opts = append(opts, WithClock(clock))
	return New(
		catalog,
		fetcher,
		extract.New(90, extract.WithClock(clock)),
		normalize.New(20, catalog.Neighborhoods(), normalize.WithClock(clock)),
		st,
		opts...,
	)
}

func TestRun_HappyPath(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": fitnessBody,
		"Beta Center":  bingoBody,
		"Gamma Center": "nothing resembling an event here, just a welcome note",
	}}
	st := store.NewMemory()

	summary := newTestPipeline(testCatalog(), fetcher, st).Run(context.Background())

	if summary.SourcesAttempted != 3 {
		t.Errorf("SourcesAttempted = %d, want 3", summary.SourcesAttempted)
	}
	if summary.EventsFound != 2 {
		t.Errorf("EventsFound = %d, want 2", summary.EventsFound)
	}
	if summary.EventsUpserted != 2 {
		t.Errorf("EventsUpserted = %d, want 2", summary.EventsUpserted)
	}
	if summary.SourcesWithError != 0 {
		t.Errorf("SourcesWithError = %d, want 0", summary.SourcesWithError)
	}
	if st.Len() != 2 {
		t.Errorf("store rows = %d, want 2", st.Len())
	}
}

func TestRun_Idempotence(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": fitnessBody,
		"Beta Center":  bingoBody,
		"Gamma Center": "",
	}}
	st := store.NewMemory()
	pl := newTestPipeline(testCatalog(), fetcher, st)

	pl.Run(context.Background())
	once := st.Len()
	pl.Run(context.Background())

	if st.Len() != once {
		t.Errorf("rows after second run = %d, want %d (no duplicates)", st.Len(), once)
	}
}

func TestRun_FailureIsolation(t *testing.T) {
	fetcher := &stubFetcher{
		bodies: map[string]string{
			"Alpha Center": fitnessBody,
			"Gamma Center": bingoBody,
		},
		errs: map[string]error{
			"Beta Center": errors.New("upstream timeout"),
		},
	}
	st := store.NewMemory()

	summary := newTestPipeline(testCatalog(), fetcher, st).Run(context.Background())

	if summary.SourcesAttempted != 3 {
		t.Fatalf("SourcesAttempted = %d, want 3: one failing source must not stop the loop", summary.SourcesAttempted)
	}
	if summary.SourcesWithError != 1 {
		t.Errorf("SourcesWithError = %d, want 1", summary.SourcesWithError)
	}
	for _, src := range summary.Sources {
		switch src.SourceName {
		case "Beta Center":
			if !strings.Contains(src.Error, "upstream timeout") {
				t.Errorf("Beta error = %q", src.Error)
			}
		default:
			if src.Error != "" {
				t.Errorf("%s unexpectedly errored: %q", src.SourceName, src.Error)
			}
			if src.Found != 1 {
				t.Errorf("%s Found = %d, want 1", src.SourceName, src.Found)
			}
		}
	}
}

func TestRun_PersistFailureRecordedPerSource(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": fitnessBody,
		"Beta Center":  bingoBody,
		"Gamma Center": "",
	}}

	summary := newTestPipeline(testCatalog(), fetcher, failStore{}).Run(context.Background())

	if summary.SourcesAttempted != 3 {
		t.Errorf("SourcesAttempted = %d, want 3", summary.SourcesAttempted)
	}
	if summary.SourcesWithError != 2 {
		t.Errorf("SourcesWithError = %d, want 2 (sources with events to write)", summary.SourcesWithError)
	}
}

func TestRun_IntraBatchDedup(t *testing.T) {
	duplicated := fitnessBody + "\n\n## SENIOR FITNESS CLASS\nAlso on January 15, 2026 at 10:00 AM"
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": duplicated,
		"Beta Center":  "",
		"Gamma Center": "",
	}}
	st := store.NewMemory()

	summary := newTestPipeline(testCatalog(), fetcher, st).Run(context.Background())

	if summary.EventsFound != 1 {
		t.Errorf("EventsFound = %d, want 1 after intra-batch dedup", summary.EventsFound)
	}
	if st.Len() != 1 {
		t.Errorf("store rows = %d, want 1", st.Len())
	}
}

func TestRun_AnnotatesBeforePersisting(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": fitnessBody,
		"Beta Center":  "",
		"Gamma Center": "",
	}}
	st := store.NewMemory()

	newTestPipeline(testCatalog(), fetcher, st).Run(context.Background())

	events, _ := st.ListUpcoming(context.Background(), fixedNow, 10)
	if len(events) != 1 {
		t.Fatalf("Expected 1 stored event, got %d", len(events))
	}
	if events[0].Schema == nil || events[0].Schema["@type"] != "Event" {
		t.Errorf("stored record missing schema annotation: %v", events[0].Schema)
	}
}

func TestRun_RecentSkipsUnchangedWrites(t *testing.T) {
	fetcher := &stubFetcher{bodies: map[string]string{
		"Alpha Center": fitnessBody,
		"Beta Center":  "",
		"Gamma Center": "",
	}}
	st := store.NewMemory()
	pl := newTestPipeline(testCatalog(), fetcher, st,
		WithRecent(dedupe.NewRecent(100, time.Hour)))

	first := pl.Run(context.Background())
	second := pl.Run(context.Background())

	if first.EventsUpserted != 1 {
		t.Errorf("first run upserted = %d, want 1", first.EventsUpserted)
	}
	if second.EventsUpserted != 0 {
		t.Errorf("second run upserted = %d, want 0 (unchanged records skipped)", second.EventsUpserted)
	}
	if st.Len() != 1 {
		t.Errorf("store rows = %d, want 1", st.Len())
	}
}

type failStore struct{}

func (failStore) Upsert(context.Context, []model.EventRecord) (int, error) {
	return 0, errors.New("write refused")
}

func (failStore) ListUpcoming(context.Context, time.Time, int64) ([]model.EventRecord, error) {
	return nil, nil
}
