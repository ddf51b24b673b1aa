package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeedbackState_Apply_Table(t *testing.T) {
	t.Parallel()

	base := FeedbackState{LikeCount: 3, DislikeCount: 2}

	tcs := []struct {
		name      string
		existing  Feedback
		requested Feedback
		want      Feedback
		likeD     int
		dislikeD  int
	}{
		{"none_like", FeedbackNone, FeedbackLike, FeedbackLike, +1, 0},
		{"none_dislike", FeedbackNone, FeedbackDislike, FeedbackDislike, 0, +1},
		{"like_like", FeedbackLike, FeedbackLike, FeedbackNone, -1, 0},
		{"like_dislike", FeedbackLike, FeedbackDislike, FeedbackDislike, -1, +1},
		{"dislike_dislike", FeedbackDislike, FeedbackDislike, FeedbackNone, 0, -1},
		{"dislike_like", FeedbackDislike, FeedbackLike, FeedbackLike, +1, -1},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			in.UserFeedback = tc.existing

			got := in.Apply(tc.requested)
			require.Equal(t, tc.want, got.UserFeedback)
			require.Equal(t, base.LikeCount+tc.likeD, got.LikeCount)
			require.Equal(t, base.DislikeCount+tc.dislikeD, got.DislikeCount)
		})
	}
}

// Двойное применение одной и той же реакции возвращает исходное состояние.
func TestFeedbackState_Apply_TwiceIsIdentity(t *testing.T) {
	t.Parallel()

	for _, existing := range []Feedback{FeedbackNone, FeedbackLike, FeedbackDislike} {
		for _, requested := range []Feedback{FeedbackLike, FeedbackDislike} {
			start := FeedbackState{UserFeedback: existing, LikeCount: 5, DislikeCount: 5}
			if existing == requested {
				// like->none->like: возвращаемся к исходному.
				require.Equal(t, start, start.Apply(requested).Apply(requested))
				continue
			}
			// none->like->none и dislike->like->none: в исходное возвращает
			// повторение, только если исходной реакции не было.
			if existing == FeedbackNone {
				require.Equal(t, start, start.Apply(requested).Apply(requested))
			}
		}
	}
}

func TestFeedbackState_Apply_NeverNegative(t *testing.T) {
	t.Parallel()

	s := FeedbackState{UserFeedback: FeedbackLike, LikeCount: 0, DislikeCount: 0}
	got := s.Apply(FeedbackDislike)
	require.Equal(t, 0, got.LikeCount)
	require.Equal(t, 1, got.DislikeCount)
}

func TestMenuItem_FeedbackStateRoundTrip(t *testing.T) {
	t.Parallel()

	m := MenuItem{ID: "menu-42", LikeCount: 3}
	s := m.FeedbackState().Apply(FeedbackLike)
	m.SetFeedbackState(s)

	require.Equal(t, FeedbackLike, m.UserFeedback)
	require.Equal(t, 4, m.LikeCount)
	require.Equal(t, "menu-42", m.Key())
}

func TestParseFeedback(t *testing.T) {
	t.Parallel()

	f, err := ParseFeedback(" Like ")
	require.NoError(t, err)
	require.Equal(t, FeedbackLike, f)

	f, err = ParseFeedback("dislike")
	require.NoError(t, err)
	require.Equal(t, FeedbackDislike, f)

	_, err = ParseFeedback("")
	require.Error(t, err)

	_, err = ParseFeedback("love")
	require.Error(t, err)
}

func TestFoodTypes_ReturnsCopy(t *testing.T) {
	t.Parallel()

	a := FoodTypes()
	require.Contains(t, a, "Curry")
	a[0] = "mutated"
	require.NotEqual(t, "mutated", FoodTypes()[0])
}
