package round_mem_repo

import (
	"context"
	"fmt"
	"testing"

	"mermaid_slot/internal/model"
)

func TestRoundRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewRoundRepository(3)

	for i := 0; i < 5; i++ {
		if err := r.Save(ctx, &model.RoundOutcome{ID: fmt.Sprint(i), Username: "ariel"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Save(ctx, &model.RoundOutcome{ID: "other", Username: "eric"}); err != nil {
		t.Fatal(err)
	}

	got, err := r.List(ctx, "ariel", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"4", "3", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rounds, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("round %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	limited, _ := r.List(ctx, "ariel", 1)
	if len(limited) != 1 || limited[0].ID != "4" {
		t.Errorf("unexpected limited list %+v", limited)
	}

	none, _ := r.List(ctx, "nobody", 10)
	if len(none) != 0 {
		t.Errorf("expected empty history, got %d", len(none))
	}
}
