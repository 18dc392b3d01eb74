package pairing_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/strengthscope/backend/internal/catalog"
	"github.com/strengthscope/backend/internal/domain/category"
	"github.com/strengthscope/backend/internal/domain/pairing"
	"github.com/strengthscope/backend/internal/domain/strength"
)

func standardBank(t *testing.T) *strength.Bank {
	t.Helper()
	cats, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	return cats.Strengths
}

func buildBank(t *testing.T, strengths, perStrength int) *strength.Bank {
	t.Helper()
	var ss []strength.Strength
	var qs []strength.Question
	for i := 0; i < strengths; i++ {
		sid := fmt.Sprintf("s%d", i)
		ss = append(ss, strength.Strength{ID: sid, Category: category.Interpersonal})
		for j := 0; j < perStrength; j++ {
			qs = append(qs, strength.Question{ID: fmt.Sprintf("%s-%d", sid, j), Text: "x", StrengthID: sid})
		}
	}
	bank, err := strength.NewBank(ss, qs)
	if err != nil {
		t.Fatalf("failed to build bank: %v", err)
	}
	return bank
}

func newConstructor(bank *strength.Bank, seed int64) *pairing.Constructor {
	return pairing.NewConstructor(bank, rand.New(rand.NewSource(seed)), pairing.DefaultOptions())
}

func TestBuild_Invariants(t *testing.T) {
	bank := standardBank(t)

	for seed := int64(0); seed < 200; seed++ {
		ps := newConstructor(bank, seed).Build()

		if got := len(ps.Pairs) + len(ps.Failures); got != pairing.DefaultPairCount {
			t.Fatalf("seed %d: pairs+failures = %d, want %d", seed, got, pairing.DefaultPairCount)
		}

		seen := make(map[string]bool)
		for _, p := range ps.Pairs {
			if p.TraitA == p.TraitB {
				t.Fatalf("seed %d: pair %s matches %s with itself", seed, p.ID, p.TraitA)
			}
			if p.QuestionA.StrengthID != p.TraitA || p.QuestionB.StrengthID != p.TraitB {
				t.Fatalf("seed %d: pair %s traits do not match its questions", seed, p.ID)
			}
			for _, qid := range []string{p.QuestionA.ID, p.QuestionB.ID} {
				if seen[qid] {
					t.Fatalf("seed %d: question %s used twice", seed, qid)
				}
				seen[qid] = true
			}
		}

		for trait, n := range ps.Appearances() {
			if n > pairing.DefaultMaxAppearances {
				t.Fatalf("seed %d: trait %s appears %d times", seed, trait, n)
			}
		}

		if ps.Complete() && len(seen) != 100 {
			t.Fatalf("seed %d: complete set used %d questions, want 100", seed, len(seen))
		}
	}
}

func TestBuild_PairIDsFollowEmissionOrder(t *testing.T) {
	ps := newConstructor(standardBank(t), 3).Build()

	for i, p := range ps.Pairs {
		want := fmt.Sprintf("pair-%02d", i+1)
		if p.ID != want {
			t.Fatalf("pair %d: expected id %q, got %q", i, want, p.ID)
		}
		if _, ok := ps.Pair(want); !ok {
			t.Fatalf("lookup of %q failed", want)
		}
	}
}

func TestBuild_DeterministicForSeed(t *testing.T) {
	bank := standardBank(t)

	a := newConstructor(bank, 42).Build()
	b := newConstructor(bank, 42).Build()

	if len(a.Pairs) != len(b.Pairs) {
		t.Fatalf("expected equal lengths, got %d and %d", len(a.Pairs), len(b.Pairs))
	}
	for i := range a.Pairs {
		if a.Pairs[i] != b.Pairs[i] {
			t.Fatalf("pair %d differs: %+v vs %+v", i, a.Pairs[i], b.Pairs[i])
		}
	}
}

func TestBuild_SingleStrengthBankFailsEverySlot(t *testing.T) {
	bank := buildBank(t, 1, 4)
	ps := pairing.NewConstructor(bank, rand.New(rand.NewSource(1)), pairing.Options{}).Build()

	if len(ps.Pairs) != 0 {
		t.Errorf("expected no pairs, got %d", len(ps.Pairs))
	}
	if len(ps.Failures) != 2 {
		t.Fatalf("expected 2 failed slots, got %d", len(ps.Failures))
	}

	f := ps.Failures[0]
	if f.Attempts != pairing.DefaultMaxAttempts {
		t.Errorf("expected %d attempts, got %d", pairing.DefaultMaxAttempts, f.Attempts)
	}
	if f.Remaining != 4 {
		t.Errorf("expected 4 remaining questions, got %d", f.Remaining)
	}
	if f.Error() == "" {
		t.Error("expected failure message")
	}
}

func TestBuild_AppearanceCapLimitsPairs(t *testing.T) {
	bank := buildBank(t, 2, 10)
	c := pairing.NewConstructor(bank, rand.New(rand.NewSource(9)), pairing.Options{
		PairCount:      10,
		MaxAppearances: 3,
	})

	ps := c.Build()

	if len(ps.Pairs) != 3 {
		t.Fatalf("expected cap to allow exactly 3 pairs, got %d", len(ps.Pairs))
	}
	if len(ps.Failures) != 7 {
		t.Errorf("expected 7 failed slots, got %d", len(ps.Failures))
	}
	for trait, n := range ps.Appearances() {
		if n != 3 {
			t.Errorf("trait %s: expected 3 appearances, got %d", trait, n)
		}
	}
}

func TestBuild_DefaultPairCountIsHalfTheBank(t *testing.T) {
	bank := buildBank(t, 3, 2)
	c := pairing.NewConstructor(bank, rand.New(rand.NewSource(5)), pairing.Options{})

	ps := c.Build()

	if got := len(ps.Pairs) + len(ps.Failures); got != 3 {
		t.Errorf("expected 3 slots for a 6-question bank, got %d", got)
	}
}

func TestBuildComplete_ProducesFullSets(t *testing.T) {
	bank := standardBank(t)

	for seed := int64(0); seed < 20; seed++ {
		ps := newConstructor(bank, seed).BuildComplete(10)
		if !ps.Complete() {
			t.Fatalf("seed %d: expected complete set, got %d failures", seed, len(ps.Failures))
		}
		if len(ps.Pairs) != pairing.DefaultPairCount {
			t.Fatalf("seed %d: expected %d pairs, got %d", seed, pairing.DefaultPairCount, len(ps.Pairs))
		}
	}
}

func TestBuildComplete_GivesUpAfterBudget(t *testing.T) {
	bank := buildBank(t, 1, 4)
	ps := newConstructor(bank, 1).BuildComplete(3)

	if ps.Complete() {
		t.Fatal("expected impossible bank to stay incomplete")
	}
	if ps.Rebuilds != 3 {
		t.Errorf("expected 3 rebuilds, got %d", ps.Rebuilds)
	}
}
