package fsm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsmkit/fsmkit/pkg/fsm"
)

func TestBuilder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("full wiring", func(t *testing.T) {
		t.Parallel()
		var fired []string
		touch := fsm.StringEvent("touch")

		m, err := fsm.NewBuilder(Draft, fsm.WithLogger(discardLogger())).
			From(Draft).When(Submit).To(InReview).
			WithAction(func(ctx context.Context, args ...any) (fsm.State, error) {
				fired = append(fired, "action:submit")
				return nil, nil
			}).
			Add().
			From(InReview).When(Approve).To(Published).Add().
			From(InReview).When(touch).Internal().
			WithAction(func(ctx context.Context, args ...any) (fsm.State, error) {
				fired = append(fired, "action:touch")
				return nil, nil
			}).
			Add().
			OnExit(Draft, record(&fired, "exit:draft")).
			OnEnter(InReview, record(&fired, "entry:in_review")).
			Build()
		require.NoError(t, err)

		state, err := m.Execute(ctx, Submit)
		require.NoError(t, err)
		assert.Equal(t, InReview, state)
		assert.Equal(t, []string{"exit:draft", "action:submit", "entry:in_review"}, fired)

		fired = nil
		state, err = m.Execute(ctx, touch)
		require.NoError(t, err)
		assert.Equal(t, InReview, state)
		assert.Equal(t, []string{"action:touch"}, fired)

		state, err = m.Execute(ctx, Approve)
		require.NoError(t, err)
		assert.Equal(t, Published, state)
	})

	t.Run("guard through builder", func(t *testing.T) {
		t.Parallel()
		m, err := fsm.NewBuilder(Draft, fsm.WithLogger(discardLogger())).
			From(Draft).When(Submit).To(InReview).
			WithGuard(func(ctx context.Context, from fsm.State, event fsm.Event, args ...any) bool {
				return false
			}).
			Add().
			Build()
		require.NoError(t, err)

		state, err := m.Execute(ctx, Submit)
		require.NoError(t, err)
		assert.Equal(t, Draft, state)
	})

	t.Run("missing target surfaces at build", func(t *testing.T) {
		t.Parallel()
		_, err := fsm.NewBuilder(Draft, fsm.WithLogger(discardLogger())).
			From(Draft).When(Submit).Add().
			Build()
		require.ErrorIs(t, err, fsm.ErrNilState)
	})

	t.Run("nil initial surfaces at build", func(t *testing.T) {
		t.Parallel()
		_, err := fsm.NewBuilder(nil).Build()
		require.ErrorIs(t, err, fsm.ErrNilInitialState)
	})
}
