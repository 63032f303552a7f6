package tagging

import (
	"testing"
)

func TestTags_MatchesVocabulary(t *testing.T) {
	tags := Tags("I want to deploy the model on my local docker server")

	want := map[string]bool{"infrastructure": true, "ai_ml": true, "preference": true}
	for tag := range want {
		found := false
		for _, got := range tags {
			if got == tag {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected tag %q in %v", tag, tags)
		}
	}
}

func TestTags_NoMatch(t *testing.T) {
	if tags := Tags("the quick brown fox"); len(tags) != 0 {
		t.Fatalf("expected no tags, got %v", tags)
	}
}

func TestTags_Sorted(t *testing.T) {
	tags := Tags("python error in the docker deploy, I prefer to learn by fixing")
	for i := 1; i < len(tags); i++ {
		if tags[i-1] > tags[i] {
			t.Fatalf("tags not sorted: %v", tags)
		}
	}
}

func TestMerge_Deduplicates(t *testing.T) {
	out := Merge([]string{"python", "debugging"}, []string{"debugging", "source:chat", ""})
	if len(out) != 3 {
		t.Fatalf("expected 3 tags, got %v", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1] >= out[i] {
			t.Fatalf("merged tags not sorted unique: %v", out)
		}
	}
}

func TestConfidence_BaselineAndHedging(t *testing.T) {
	base := Confidence("q", "I will use Postgres for this.")
	if base != 0.85 {
		t.Fatalf("expected baseline 0.85, got %v", base)
	}

	hedged := Confidence("q", "Maybe, perhaps it might work, not sure.")
	if hedged >= base {
		t.Fatalf("expected hedged answer below baseline, got %v >= %v", hedged, base)
	}
}

func TestConfidence_Clamped(t *testing.T) {
	heavy := "maybe perhaps might could unclear depends uncertain possibly maybe perhaps"
	if got := Confidence("q", heavy); got != 0.3 {
		t.Fatalf("expected floor 0.3, got %v", got)
	}
}

func TestConfidence_LengthBonus(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "word "
	}
	if got := Confidence("q", long); got != 0.9 {
		t.Fatalf("expected 0.9 with length bonus, got %v", got)
	}
}
