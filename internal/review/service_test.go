package review_test

import (
	"context"
	"testing"

	"worldfeed/internal/logging"
	"worldfeed/internal/review"
	"worldfeed/internal/store"
	"worldfeed/internal/testsupport"
)

func newService(t *testing.T) (*review.Service, *store.Store) {
	t.Helper()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))
	return review.NewService(st, logging.NewNop()), st
}

func TestPendingListsCollectionOrder(t *testing.T) {
	service, st := newService(t)

	testsupport.MustUpsert(t, st, testsupport.SampleRecord("b"))
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))

	pending, err := service.Pending(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 2 || pending[0].ID != "wrld_b" || pending[1].ID != "wrld_a" {
		t.Fatalf("pending order = %+v", pending)
	}
}

func TestApplyApprove(t *testing.T) {
	service, st := newService(t)
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))

	item, err := service.Apply(context.Background(), review.ActionApprove, "wrld_a", "solid")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if item.Status != store.StatusApproved || item.ReviewNote != "solid" {
		t.Fatalf("apply result: %+v", item)
	}
}

func TestApplyUnknownAction(t *testing.T) {
	service, st := newService(t)
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))

	if _, err := service.Apply(context.Background(), review.Action("archive"), "wrld_a", ""); err == nil {
		t.Fatal("unknown action accepted")
	}
}

func TestApplyAllCollectsOutcomes(t *testing.T) {
	service, st := newService(t)
	ctx := context.Background()

	testsupport.MustUpsert(t, st, testsupport.SampleRecord("a"))
	testsupport.MustUpsert(t, st, testsupport.SampleRecord("b"))
	if _, err := service.Apply(ctx, review.ActionReject, "wrld_b", ""); err != nil {
		t.Fatalf("seed reject: %v", err)
	}

	result, err := service.ApplyAll(ctx, review.ActionApprove,
		[]string{"wrld_a", "wrld_b", "wrld_missing"}, "")
	if err != nil {
		t.Fatalf("apply all: %v", err)
	}
	if result.UpdatedCount != 1 {
		t.Fatalf("updated count = %d, want 1", result.UpdatedCount)
	}
	want := []review.Outcome{
		review.OutcomeUpdated,
		review.OutcomeInvalidTransition,
		review.OutcomeNotFound,
	}
	if len(result.Items) != len(want) {
		t.Fatalf("got %d items, want %d", len(result.Items), len(want))
	}
	for i, item := range result.Items {
		if item.Outcome != want[i] {
			t.Fatalf("item %d outcome = %q, want %q", i, item.Outcome, want[i])
		}
	}
}
