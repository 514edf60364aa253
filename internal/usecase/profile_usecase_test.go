package usecase

import (
	"context"
	"errors"
	"testing"

	"career-match/internal/domain/level"
	"career-match/internal/domain/user"

	"github.com/google/uuid"
)

func TestProfileUsecase_UpdateProfileText(t *testing.T) {
	uid := uuid.New()
	users := newFakeUsers()
	emb := &fakeEmbedder{vec: []float32{0.1, 0.2}, space: testSpace}
	uc := NewProfileUsecase(users, emb, nil)

	p, err := uc.UpdateProfileText(context.Background(), uid, "  I build data pipelines in Python  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.ProfileText != "I build data pipelines in Python" {
		t.Fatalf("expected trimmed text, got %q", p.ProfileText)
	}
	if len(p.Embedding) != 2 || p.EmbeddingSpace != testSpace {
		t.Fatalf("expected embedding in %s, got %#v", testSpace, p)
	}

	if _, err := uc.UpdateProfileText(context.Background(), uid, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if emb.calls != 1 {
		t.Fatalf("blank text must not be embedded")
	}

	emb.err = errBoom
	if _, err := uc.UpdateProfileText(context.Background(), uid, "text"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestProfileUsecase_ReplaceHoldings(t *testing.T) {
	uid := uuid.New()
	users := newFakeUsers(user.Profile{
		ID:     uid,
		Skills: map[string]level.Level{"Java": level.Advanced},
	})
	uc := NewProfileUsecase(users, nil, nil)

	p, err := uc.ReplaceHoldings(context.Background(), uid,
		map[string]level.Level{" Python ": level.Intermediate, "": level.Basic},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(p.Skills) != 1 || p.Skills["Python"] != level.Intermediate {
		t.Fatalf("expected skills replaced, got %v", p.Skills)
	}
	if _, ok := p.Skills["Java"]; ok {
		t.Fatalf("previous skills must not survive a replace")
	}
	if p.Knowledge == nil {
		t.Fatalf("expected empty, non-nil knowledge map")
	}
}
